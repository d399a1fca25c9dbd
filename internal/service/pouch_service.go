package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/pouch-server/internal/operator"
	"github.com/carson-networks/pouch-server/internal/operator/actions"
	"github.com/carson-networks/pouch-server/internal/storage"
	"github.com/carson-networks/pouch-server/internal/storage/pouch"
)

// CreatePouchInput is the input for creating a pouch.
type CreatePouchInput struct {
	OwnerID      uuid.UUID
	Name         string
	Visibility   pouch.Visibility
	BudgetAmount decimal.NullDecimal
	BudgetPeriod *string
}

// PouchCursor identifies a position in a paginated pouch listing.
type PouchCursor struct {
	Position int
	Limit    int
}

// PouchService handles pouch business logic.
type PouchService struct {
	storage  *storage.Storage
	operator *operator.OperatorDelegator
}

// NewPouchService creates a new PouchService.
func NewPouchService(store *storage.Storage, op *operator.OperatorDelegator) *PouchService {
	return &PouchService{storage: store, operator: op}
}

// CreatePouch creates a pouch with a zero balance.
func (s *PouchService) CreatePouch(ctx context.Context, input CreatePouchInput) (*pouch.Pouch, error) {
	action := &actions.CreatePouch{
		OwnerID:      input.OwnerID,
		Name:         input.Name,
		Visibility:   input.Visibility,
		BudgetAmount: input.BudgetAmount,
		BudgetPeriod: input.BudgetPeriod,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return s.storage.Pouches.FindByID(ctx, action.CreatedID)
}

// GetPouch retrieves a pouch by id.
func (s *PouchService) GetPouch(ctx context.Context, id uuid.UUID) (*pouch.Pouch, error) {
	return s.storage.Pouches.FindByID(ctx, id)
}

// ListPouches returns a page of the owner's pouches.
func (s *PouchService) ListPouches(ctx context.Context, ownerID uuid.UUID, cursor *PouchCursor) ([]*pouch.Pouch, *PouchCursor, error) {
	limit := defaultLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	rows, err := s.storage.Pouches.List(ctx, &pouch.Filter{
		OwnerID: &ownerID,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, nil, err
	}

	var nextCursor *PouchCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &PouchCursor{Position: offset + limit, Limit: limit}
	}

	return rows, nextCursor, nil
}

// SharePouch grants userID the given role on a pouch. Granting the same
// user twice fails with a ConstraintError.
func (s *PouchService) SharePouch(ctx context.Context, pouchID, userID uuid.UUID, role pouch.Role) error {
	return s.operator.Process(ctx, &actions.SharePouch{
		PouchID: pouchID,
		UserID:  userID,
		Role:    role,
	})
}

// ListShares returns the share grants on a pouch.
func (s *PouchService) ListShares(ctx context.Context, pouchID uuid.UUID) ([]*pouch.Share, error) {
	if _, err := s.storage.Pouches.FindByID(ctx, pouchID); err != nil {
		return nil, err
	}
	return s.storage.Pouches.SharesByPouch(ctx, pouchID)
}
