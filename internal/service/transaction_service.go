package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/pouch-server/internal/errs"
	"github.com/carson-networks/pouch-server/internal/operator"
	"github.com/carson-networks/pouch-server/internal/operator/actions"
	"github.com/carson-networks/pouch-server/internal/storage"
	"github.com/carson-networks/pouch-server/internal/storage/transaction"
)

const defaultLimit = 20

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage  *storage.Storage
	operator *operator.OperatorDelegator
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, op *operator.OperatorDelegator) *TransactionService {
	return &TransactionService{storage: store, operator: op}
}

// CreateTransaction creates a transaction and applies its balance effects.
func (s *TransactionService) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*Transaction, error) {
	action := &actions.CreateTransaction{
		OwnerID:     input.OwnerID,
		AccountID:   input.AccountID,
		Amount:      input.Amount,
		Currency:    input.Currency,
		Type:        input.Type,
		Description: input.Description,
		Category:    input.Category,
		PouchID:     input.PouchID,
		Recurring:   input.Recurring,
		Splits:      splitsToActionInputs(input.Splits),
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	result := transactionFromStorage(&action.Created, input.Splits)
	return &result, nil
}

// UpdateTransaction patches a transaction, applying the balance delta. Fails
// with a NotFoundError when the record is missing or soft-deleted.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id uuid.UUID, patch UpdateTransactionPatch) (*Transaction, error) {
	action := &actions.UpdateTransaction{
		ID:          id,
		Amount:      patch.Amount,
		Type:        patch.Type,
		Description: patch.Description,
		Category:    patch.Category,
		Recurring:   patch.Recurring,
		PouchID:     patch.PouchID,
	}
	if patch.Splits != nil {
		splits := splitsToActionInputs(*patch.Splits)
		action.Splits = &splits
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	rows, err := s.storage.Transactions.SplitsByTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	result := transactionFromStorage(&action.Updated, splitsFromRows(rows))
	return &result, nil
}

// DeleteTransaction soft-deletes a transaction and reverses its effects.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return s.operator.Process(ctx, &actions.DeleteTransaction{ID: id})
}

// GetTransaction retrieves an active transaction with its splits.
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	row, err := s.storage.Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row.Deleted {
		return nil, &errs.NotFoundError{Collection: "transactions", ID: id.String()}
	}
	rows, err := s.storage.Transactions.SplitsByTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	result := transactionFromStorage(row, splitsFromRows(rows))
	return &result, nil
}

// ListTransactions returns a page of active transactions using cursor-based
// pagination.
func (s *TransactionService) ListTransactions(ctx context.Context, ownerID uuid.UUID, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	limit := defaultLimit
	offset := 0
	var maxCreationTime *time.Time
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
		maxCreationTime = &cursor.MaxCreationTime
	}

	filter := &transaction.Filter{
		OwnerID:         &ownerID,
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	}

	rows, err := s.storage.Transactions.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxCreationTime := rows[0].CreatedAt
		if maxCreationTime != nil {
			cursorMaxCreationTime = *maxCreationTime
		}

		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: cursorMaxCreationTime,
		}
	}

	converted := make([]Transaction, len(rows))
	for i, row := range rows {
		converted[i] = transactionFromStorage(row, nil)
	}

	return converted, nextCursor, nil
}
