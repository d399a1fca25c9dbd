package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/pouch-server/internal/errs"
	"github.com/carson-networks/pouch-server/internal/storage"
	"github.com/carson-networks/pouch-server/internal/storage/pouch"
)

type CreatePouch struct {
	OwnerID      uuid.UUID
	Name         string
	Visibility   pouch.Visibility
	BudgetAmount decimal.NullDecimal
	BudgetPeriod *string

	// CreatedID holds the new pouch id after a successful Perform.
	CreatedID uuid.UUID

	IAction
}

func (a *CreatePouch) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.Name == "" {
		return &errs.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if a.BudgetAmount.Valid && !a.BudgetAmount.Decimal.IsPositive() {
		return &errs.ValidationError{Field: "budgetAmount", Reason: "must be positive when set"}
	}

	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	err = writer.Pouches.Create(ctx, &pouch.Create{
		ID:           id,
		OwnerID:      a.OwnerID,
		Name:         a.Name,
		Visibility:   a.Visibility,
		BudgetAmount: a.BudgetAmount,
		BudgetPeriod: a.BudgetPeriod,
	})
	if err != nil {
		return err
	}

	a.CreatedID = id
	return nil
}

// SharePouch grants a user a role on a pouch. Shares carry no balance
// logic; a duplicate grant surfaces as a ConstraintError.
type SharePouch struct {
	PouchID uuid.UUID
	UserID  uuid.UUID
	Role    pouch.Role

	IAction
}

func (a *SharePouch) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.Role < pouch.RoleOwner || a.Role > pouch.RoleViewer {
		return &errs.ValidationError{Field: "role", Reason: "unknown share role"}
	}
	if _, err := writer.Pouches.FindByID(ctx, a.PouchID); err != nil {
		return err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	return writer.Pouches.CreateShare(ctx, &pouch.Share{
		ID:      id,
		PouchID: a.PouchID,
		UserID:  a.UserID,
		Role:    a.Role,
	})
}
