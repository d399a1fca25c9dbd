package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/pouch-server/internal/operator"
	"github.com/carson-networks/pouch-server/internal/operator/actions"
	"github.com/carson-networks/pouch-server/internal/storage"
	"github.com/carson-networks/pouch-server/internal/storage/transfer"
)

// CreateTransferInput is the input for moving money between two accounts.
type CreateTransferInput struct {
	OwnerID       uuid.UUID
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	Amount        decimal.Decimal
	Currency      string
}

// TransferCursor identifies a position in a paginated transfer listing.
type TransferCursor struct {
	Position int
	Limit    int
}

// TransferService handles transfer business logic.
type TransferService struct {
	storage  *storage.Storage
	operator *operator.OperatorDelegator
}

// NewTransferService creates a new TransferService.
func NewTransferService(store *storage.Storage, op *operator.OperatorDelegator) *TransferService {
	return &TransferService{storage: store, operator: op}
}

// CreateTransfer records a transfer and moves the amount between the two
// account balances.
func (s *TransferService) CreateTransfer(ctx context.Context, input CreateTransferInput) (*transfer.Transfer, error) {
	action := &actions.CreateTransfer{
		OwnerID:       input.OwnerID,
		FromAccountID: input.FromAccountID,
		ToAccountID:   input.ToAccountID,
		Amount:        input.Amount,
		Currency:      input.Currency,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	created := action.Created
	return &created, nil
}

// GetTransfer retrieves a transfer by id.
func (s *TransferService) GetTransfer(ctx context.Context, id uuid.UUID) (*transfer.Transfer, error) {
	return s.storage.Transfers.FindByID(ctx, id)
}

// ListTransfers returns a page of the owner's transfers, newest first.
func (s *TransferService) ListTransfers(ctx context.Context, ownerID uuid.UUID, cursor *TransferCursor) ([]*transfer.Transfer, *TransferCursor, error) {
	limit := defaultLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	rows, err := s.storage.Transfers.List(ctx, &transfer.Filter{
		OwnerID: &ownerID,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, nil, err
	}

	var nextCursor *TransferCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &TransferCursor{Position: offset + limit, Limit: limit}
	}

	return rows, nextCursor, nil
}
