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

// UpdateTransactionBody is the request body for updating a transaction.
// Absent fields keep their current value. An empty pouchID string clears
// the pouch assignment; an empty splits array removes all splits.
type UpdateTransactionBody struct {
	Amount      *string  `json:"amount,omitempty" doc:"New decimal amount, must be positive"`
	Type        *int     `json:"type,omitempty" minimum:"0" maximum:"1" doc:"New transaction type: 0=Income, 1=Expense"`
	Description *string  `json:"description,omitempty" doc:"New description"`
	Category    *string  `json:"category,omitempty" doc:"New category label"`
	Recurring   *bool    `json:"recurring,omitempty" doc:"New recurring flag"`
	PouchID     *string  `json:"pouchID,omitempty" doc:"New pouch UUID, empty string to clear"`
	Splits      *[]Split `json:"splits,omitempty" doc:"Replacement splits, empty array to remove all"`
}

// UpdateTransactionInput is the Huma input for updating a transaction.
type UpdateTransactionInput struct {
	ID   string `path:"id" format:"uuid" doc:"Transaction UUID"`
	Body UpdateTransactionBody
}

// UpdateTransactionOutput is the Huma output for updating a transaction.
type UpdateTransactionOutput struct {
	Body Transaction
}

// transactionUpdater is the interface for updating transactions.
type transactionUpdater interface {
	UpdateTransaction(ctx context.Context, id uuid.UUID, patch service.UpdateTransactionPatch) (*service.Transaction, error)
}

// UpdateTransactionHandler handles PATCH /v1/transaction/{id}.
type UpdateTransactionHandler struct {
	TransactionService transactionUpdater
}

// NewUpdateTransactionHandler creates a new UpdateTransactionHandler.
func NewUpdateTransactionHandler(svc transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc}
}

// Register registers the update transaction endpoint with the Huma API.
func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPatch,
		Path:        "/v1/transaction/{id}",
		Summary:     "Update transaction",
		Description: "Patches a transaction and moves the account and pouch balances by the resulting delta.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseUpdateTransactionInput(input *UpdateTransactionInput) (uuid.UUID, service.UpdateTransactionPatch, error) {
	var patch service.UpdateTransactionPatch

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return uuid.Nil, patch, huma.NewError(http.StatusBadRequest, "invalid transaction id", err)
	}

	if input.Body.Amount != nil {
		amount, err := decimal.NewFromString(*input.Body.Amount)
		if err != nil {
			return uuid.Nil, patch, huma.NewError(http.StatusBadRequest, "invalid amount", err)
		}
		patch.Amount = &amount
	}
	if input.Body.Type != nil {
		txType := transaction.Type(*input.Body.Type)
		patch.Type = &txType
	}
	patch.Description = input.Body.Description
	patch.Category = input.Body.Category
	patch.Recurring = input.Body.Recurring

	if input.Body.PouchID != nil {
		var pouchID uuid.NullUUID
		if *input.Body.PouchID != "" {
			parsed, err := uuid.FromString(*input.Body.PouchID)
			if err != nil {
				return uuid.Nil, patch, huma.NewError(http.StatusBadRequest, "invalid pouchID", err)
			}
			pouchID = uuid.NullUUID{UUID: parsed, Valid: true}
		}
		patch.PouchID = &pouchID
	}

	if input.Body.Splits != nil {
		splits, err := parseSplits(*input.Body.Splits)
		if err != nil {
			return uuid.Nil, patch, err
		}
		patch.Splits = &splits
	}

	return id, patch, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	id, patch, err := parseUpdateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("updateTransactionMs")
	}
	updated, err := h.TransactionService.UpdateTransaction(ctx, id, patch)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.Translate("failed to update transaction", err)
	}

	return &UpdateTransactionOutput{Body: fromService(updated)}, nil
}
