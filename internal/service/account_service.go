package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/pouch-server/internal/operator"
	"github.com/carson-networks/pouch-server/internal/operator/actions"
	"github.com/carson-networks/pouch-server/internal/storage"
	"github.com/carson-networks/pouch-server/internal/storage/account"
)

// CreateAccountInput is the input for creating an account.
type CreateAccountInput struct {
	OwnerID         uuid.UUID
	Name            string
	Type            account.Type
	Currency        string
	StartingBalance decimal.Decimal
}

// AccountCursor identifies a position in a paginated account listing.
type AccountCursor struct {
	Position int
	Limit    int
}

// AccountService handles account business logic.
type AccountService struct {
	storage  *storage.Storage
	operator *operator.OperatorDelegator
}

// NewAccountService creates a new AccountService.
func NewAccountService(store *storage.Storage, op *operator.OperatorDelegator) *AccountService {
	return &AccountService{storage: store, operator: op}
}

// CreateAccount creates an account. The balance starts at the starting
// balance and is only moved by transactions and transfers afterwards.
func (s *AccountService) CreateAccount(ctx context.Context, input CreateAccountInput) (*account.Account, error) {
	action := &actions.CreateAccount{
		OwnerID:         input.OwnerID,
		Name:            input.Name,
		Type:            input.Type,
		Currency:        input.Currency,
		StartingBalance: input.StartingBalance,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return s.storage.Accounts.FindByID(ctx, action.CreatedID)
}

// GetAccount retrieves an account by id.
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return s.storage.Accounts.FindByID(ctx, id)
}

// ListAccounts returns a page of the owner's accounts.
func (s *AccountService) ListAccounts(ctx context.Context, ownerID uuid.UUID, cursor *AccountCursor) ([]*account.Account, *AccountCursor, error) {
	limit := defaultLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	rows, err := s.storage.Accounts.List(ctx, &account.Filter{
		OwnerID: &ownerID,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, nil, err
	}

	var nextCursor *AccountCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &AccountCursor{Position: offset + limit, Limit: limit}
	}

	return rows, nextCursor, nil
}

// DeactivateAccount marks an account inactive. New transactions and
// transfers against it are rejected; history stays queryable.
func (s *AccountService) DeactivateAccount(ctx context.Context, id uuid.UUID) error {
	return s.operator.Process(ctx, &actions.DeactivateAccount{ID: id})
}
