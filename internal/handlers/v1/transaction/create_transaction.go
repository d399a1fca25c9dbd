package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/pouch-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/pouch-server/internal/logging"
	"github.com/carson-networks/pouch-server/internal/service"
	"github.com/carson-networks/pouch-server/internal/storage/transaction"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	OwnerID     string  `json:"ownerID" required:"true" format:"uuid" doc:"Owner UUID"`
	AccountID   string  `json:"accountID" required:"true" format:"uuid" doc:"Account UUID"`
	Amount      string  `json:"amount" required:"true" doc:"Decimal amount, must be positive"`
	Currency    string  `json:"currency" required:"true" minLength:"3" maxLength:"3" doc:"ISO currency code"`
	Type        int     `json:"type" minimum:"0" maximum:"1" doc:"Transaction type: 0=Income, 1=Expense"`
	Description string  `json:"description,omitempty" doc:"Free-form description"`
	Category    string  `json:"category,omitempty" doc:"Category label"`
	PouchID     string  `json:"pouchID,omitempty" format:"uuid" doc:"Pouch the full amount contributes to"`
	Recurring   bool    `json:"recurring,omitempty" doc:"True for recurring transactions"`
	Splits      []Split `json:"splits,omitempty" doc:"Pouch sub-allocations, override pouchID when present"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   Transaction
}

// transactionCreator is the interface for creating transactions.
type transactionCreator interface {
	CreateTransaction(ctx context.Context, input service.CreateTransactionInput) (*service.Transaction, error)
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction",
		Summary:     "Create transaction",
		Description: "Creates a new transaction and applies its effect to the account and pouch balances.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseCreateTransactionInput(input *CreateTransactionInput) (service.CreateTransactionInput, error) {
	ownerID, err := uuid.FromString(input.Body.OwnerID)
	if err != nil {
		return service.CreateTransactionInput{}, huma.NewError(http.StatusBadRequest, "invalid ownerID", err)
	}
	accountID, err := uuid.FromString(input.Body.AccountID)
	if err != nil {
		return service.CreateTransactionInput{}, huma.NewError(http.StatusBadRequest, "invalid accountID", err)
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return service.CreateTransactionInput{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	var pouchID uuid.NullUUID
	if input.Body.PouchID != "" {
		parsed, err := uuid.FromString(input.Body.PouchID)
		if err != nil {
			return service.CreateTransactionInput{}, huma.NewError(http.StatusBadRequest, "invalid pouchID", err)
		}
		pouchID = uuid.NullUUID{UUID: parsed, Valid: true}
	}

	splits, err := parseSplits(input.Body.Splits)
	if err != nil {
		return service.CreateTransactionInput{}, err
	}

	return service.CreateTransactionInput{
		OwnerID:     ownerID,
		AccountID:   accountID,
		Amount:      amount,
		Currency:    input.Body.Currency,
		Type:        transaction.Type(input.Body.Type),
		Description: input.Body.Description,
		Category:    input.Body.Category,
		PouchID:     pouchID,
		Recurring:   input.Body.Recurring,
		Splits:      splits,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	parsed, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransactionMs")
	}
	created, err := h.TransactionService.CreateTransaction(ctx, parsed)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.Translate("failed to create transaction", err)
	}

	if logData != nil {
		logData.AddData("transactionID", created.ID.String())
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   fromService(created),
	}, nil
}
