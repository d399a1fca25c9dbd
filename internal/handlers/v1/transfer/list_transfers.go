package transfer

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/pouch-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/pouch-server/internal/logging"
	"github.com/carson-networks/pouch-server/internal/service"
	"github.com/carson-networks/pouch-server/internal/storage/transfer"
)

// ListTransfersCursor represents a pagination cursor in request and
// response bodies.
type ListTransfersCursor struct {
	Position int `json:"position" minimum:"0" doc:"Numeric offset position for the next page"`
	Limit    int `json:"limit" minimum:"1" maximum:"100" doc:"Page size used for this cursor"`
}

// ListTransfersBody is the request body for listing transfers.
type ListTransfersBody struct {
	OwnerID string               `json:"ownerID" required:"true" format:"uuid" doc:"Owner UUID"`
	Cursor  *ListTransfersCursor `json:"cursor,omitempty" doc:"Cursor from a previous response to fetch the next page"`
}

// ListTransfersInput is the Huma input for listing transfers.
type ListTransfersInput struct {
	Body ListTransfersBody
}

// ListTransfersResponseBody is the response body for listing transfers.
type ListTransfersResponseBody struct {
	Transfers  []Transfer           `json:"transfers" doc:"Page of transfers, newest first"`
	NextCursor *ListTransfersCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListTransfersOutput is the Huma output for listing transfers.
type ListTransfersOutput struct {
	Body ListTransfersResponseBody
}

// transferLister is the interface for listing transfers.
type transferLister interface {
	ListTransfers(ctx context.Context, ownerID uuid.UUID, cursor *service.TransferCursor) ([]*transfer.Transfer, *service.TransferCursor, error)
}

// ListTransfersHandler handles POST /v1/transfer/list.
type ListTransfersHandler struct {
	TransferService transferLister
}

// NewListTransfersHandler creates a new ListTransfersHandler.
func NewListTransfersHandler(svc transferLister) *ListTransfersHandler {
	return &ListTransfersHandler{TransferService: svc}
}

// Register registers the list transfers endpoint with the Huma API.
func (h *ListTransfersHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transfers",
		Method:      http.MethodPost,
		Path:        "/v1/transfer/list",
		Summary:     "List transfers",
		Description: "Returns a paginated list of the owner's transfers, newest first.",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func (h *ListTransfersHandler) handle(ctx context.Context, input *ListTransfersInput) (*ListTransfersOutput, error) {
	logData := logging.GetLogData(ctx)

	ownerID, err := uuid.FromString(input.Body.OwnerID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid ownerID", err)
	}

	var cursor *service.TransferCursor
	if input.Body.Cursor != nil {
		cursor = &service.TransferCursor{
			Position: input.Body.Cursor.Position,
			Limit:    input.Body.Cursor.Limit,
		}
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listTransfersMs")
	}
	transfers, nextCursor, err := h.TransferService.ListTransfers(ctx, ownerID, cursor)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.Translate("failed to list transfers", err)
	}

	if logData != nil {
		logData.AddData("transferCount", len(transfers))
	}

	resp := ListTransfersResponseBody{
		Transfers: make([]Transfer, len(transfers)),
	}
	for i, row := range transfers {
		resp.Transfers[i] = fromStorage(row)
	}
	if nextCursor != nil {
		resp.NextCursor = &ListTransfersCursor{
			Position: nextCursor.Position,
			Limit:    nextCursor.Limit,
		}
	}

	return &ListTransfersOutput{Body: resp}, nil
}
