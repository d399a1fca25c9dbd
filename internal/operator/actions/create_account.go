package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/pouch-server/internal/errs"
	"github.com/carson-networks/pouch-server/internal/storage"
	"github.com/carson-networks/pouch-server/internal/storage/account"
)

type CreateAccount struct {
	OwnerID         uuid.UUID
	Name            string
	Type            account.Type
	Currency        string
	StartingBalance decimal.Decimal

	// CreatedID holds the new account id after a successful Perform.
	CreatedID uuid.UUID

	IAction
}

func (a *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.Name == "" {
		return &errs.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if a.Currency == "" {
		return &errs.ValidationError{Field: "currency", Reason: "must not be empty"}
	}
	if a.Type < account.TypeCash || a.Type > account.TypeInvestment {
		return &errs.ValidationError{Field: "type", Reason: "unknown account type"}
	}

	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	err = writer.Accounts.Create(ctx, &account.Create{
		ID:              id,
		OwnerID:         a.OwnerID,
		Name:            a.Name,
		Type:            a.Type,
		Currency:        a.Currency,
		StartingBalance: a.StartingBalance,
	})
	if err != nil {
		return err
	}

	a.CreatedID = id
	return nil
}

// DeactivateAccount soft-deactivates an account. Accounts with history are
// never removed.
type DeactivateAccount struct {
	ID uuid.UUID

	IAction
}

func (a *DeactivateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Accounts.SetActive(ctx, a.ID, false)
}
