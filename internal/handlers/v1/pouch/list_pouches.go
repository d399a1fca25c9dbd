package pouch

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/pouch-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/pouch-server/internal/logging"
	"github.com/carson-networks/pouch-server/internal/service"
	"github.com/carson-networks/pouch-server/internal/storage/pouch"
)

// ListPouchesCursor represents a pagination cursor in request and response
// bodies.
type ListPouchesCursor struct {
	Position int `json:"position" minimum:"0" doc:"Numeric offset position for the next page"`
	Limit    int `json:"limit" minimum:"1" maximum:"100" doc:"Page size used for this cursor"`
}

// ListPouchesBody is the request body for listing pouches.
type ListPouchesBody struct {
	OwnerID string             `json:"ownerID" required:"true" format:"uuid" doc:"Owner UUID"`
	Cursor  *ListPouchesCursor `json:"cursor,omitempty" doc:"Cursor from a previous response to fetch the next page"`
}

// ListPouchesInput is the Huma input for listing pouches.
type ListPouchesInput struct {
	Body ListPouchesBody
}

// ListPouchesResponseBody is the response body for listing pouches.
type ListPouchesResponseBody struct {
	Pouches    []Pouch            `json:"pouches" doc:"Page of pouches"`
	NextCursor *ListPouchesCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListPouchesOutput is the Huma output for listing pouches.
type ListPouchesOutput struct {
	Body ListPouchesResponseBody
}

// pouchLister is the interface for listing pouches.
type pouchLister interface {
	ListPouches(ctx context.Context, ownerID uuid.UUID, cursor *service.PouchCursor) ([]*pouch.Pouch, *service.PouchCursor, error)
}

// ListPouchesHandler handles POST /v1/pouch/list.
type ListPouchesHandler struct {
	PouchService pouchLister
}

// NewListPouchesHandler creates a new ListPouchesHandler.
func NewListPouchesHandler(svc pouchLister) *ListPouchesHandler {
	return &ListPouchesHandler{PouchService: svc}
}

// Register registers the list pouches endpoint with the Huma API.
func (h *ListPouchesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-pouches",
		Method:      http.MethodPost,
		Path:        "/v1/pouch/list",
		Summary:     "List pouches",
		Description: "Returns a paginated list of the owner's pouches.",
		Tags:        []string{"Pouches"},
	}, h.handle)
}

func (h *ListPouchesHandler) handle(ctx context.Context, input *ListPouchesInput) (*ListPouchesOutput, error) {
	logData := logging.GetLogData(ctx)

	ownerID, err := uuid.FromString(input.Body.OwnerID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid ownerID", err)
	}

	var cursor *service.PouchCursor
	if input.Body.Cursor != nil {
		cursor = &service.PouchCursor{
			Position: input.Body.Cursor.Position,
			Limit:    input.Body.Cursor.Limit,
		}
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listPouchesMs")
	}
	pouches, nextCursor, err := h.PouchService.ListPouches(ctx, ownerID, cursor)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.Translate("failed to list pouches", err)
	}

	if logData != nil {
		logData.AddData("pouchCount", len(pouches))
	}

	resp := ListPouchesResponseBody{
		Pouches: make([]Pouch, len(pouches)),
	}
	for i, row := range pouches {
		resp.Pouches[i] = fromStorage(row)
	}
	if nextCursor != nil {
		resp.NextCursor = &ListPouchesCursor{
			Position: nextCursor.Position,
			Limit:    nextCursor.Limit,
		}
	}

	return &ListPouchesOutput{Body: resp}, nil
}
