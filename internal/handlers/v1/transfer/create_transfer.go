package transfer

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/pouch-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/pouch-server/internal/logging"
	"github.com/carson-networks/pouch-server/internal/service"
	"github.com/carson-networks/pouch-server/internal/storage/transfer"
)

// CreateTransferBody is the request body for creating a transfer.
type CreateTransferBody struct {
	OwnerID       string `json:"ownerID" required:"true" format:"uuid" doc:"Owner UUID"`
	FromAccountID string `json:"fromAccountID" required:"true" format:"uuid" doc:"Account to debit"`
	ToAccountID   string `json:"toAccountID" required:"true" format:"uuid" doc:"Account to credit"`
	Amount        string `json:"amount" required:"true" doc:"Decimal amount, must be positive"`
	Currency      string `json:"currency" required:"true" minLength:"3" maxLength:"3" doc:"ISO currency code"`
}

// CreateTransferInput is the Huma input for creating a transfer.
type CreateTransferInput struct {
	Body CreateTransferBody
}

// CreateTransferOutput is the response for creating a transfer.
type CreateTransferOutput struct {
	Status int
	Body   Transfer
}

// transferCreator is the interface for creating transfers.
type transferCreator interface {
	CreateTransfer(ctx context.Context, input service.CreateTransferInput) (*transfer.Transfer, error)
}

// CreateTransferHandler handles POST /v1/transfer.
type CreateTransferHandler struct {
	TransferService transferCreator
}

// NewCreateTransferHandler creates a new CreateTransferHandler.
func NewCreateTransferHandler(svc transferCreator) *CreateTransferHandler {
	return &CreateTransferHandler{TransferService: svc}
}

// Register registers the create transfer endpoint with the Huma API.
func (h *CreateTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transfer",
		Method:      http.MethodPost,
		Path:        "/v1/transfer",
		Summary:     "Create transfer",
		Description: "Moves an amount between two accounts, debiting the source and crediting the destination.",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func parseCreateTransferInput(input *CreateTransferInput) (service.CreateTransferInput, error) {
	ownerID, err := uuid.FromString(input.Body.OwnerID)
	if err != nil {
		return service.CreateTransferInput{}, huma.NewError(http.StatusBadRequest, "invalid ownerID", err)
	}
	fromAccountID, err := uuid.FromString(input.Body.FromAccountID)
	if err != nil {
		return service.CreateTransferInput{}, huma.NewError(http.StatusBadRequest, "invalid fromAccountID", err)
	}
	toAccountID, err := uuid.FromString(input.Body.ToAccountID)
	if err != nil {
		return service.CreateTransferInput{}, huma.NewError(http.StatusBadRequest, "invalid toAccountID", err)
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return service.CreateTransferInput{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	return service.CreateTransferInput{
		OwnerID:       ownerID,
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		Amount:        amount,
		Currency:      input.Body.Currency,
	}, nil
}

func (h *CreateTransferHandler) handle(ctx context.Context, input *CreateTransferInput) (*CreateTransferOutput, error) {
	logData := logging.GetLogData(ctx)

	parsed, err := parseCreateTransferInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransferMs")
	}
	created, err := h.TransferService.CreateTransfer(ctx, parsed)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.Translate("failed to create transfer", err)
	}

	if logData != nil {
		logData.AddData("transferID", created.ID.String())
	}

	return &CreateTransferOutput{
		Status: http.StatusCreated,
		Body:   fromStorage(created),
	}, nil
}
