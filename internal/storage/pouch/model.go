package pouch

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Visibility controls who can see a pouch.
type Visibility int8

const (
	VisibilityPrivate Visibility = iota
	VisibilityShared
)

// Role is the access level of a pouch share entry.
type Role int8

const (
	RoleOwner Role = iota
	RoleEditor
	RoleViewer
)

// Pouch is a named budget bucket. Balance is derived state owned by the
// ledger actions.
type Pouch struct {
	ID           uuid.UUID           `db:"id"`
	OwnerID      uuid.UUID           `db:"owner_id"`
	Name         string              `db:"name"`
	Visibility   Visibility          `db:"visibility"`
	BudgetAmount decimal.NullDecimal `db:"budget_amount"`
	BudgetPeriod *string             `db:"budget_period"`
	Balance      decimal.Decimal     `db:"balance"`
	CreatedAt    time.Time           `db:"created_at"`
}

// Create is the input for creating a new pouch.
type Create struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Name         string
	Visibility   Visibility
	BudgetAmount decimal.NullDecimal
	BudgetPeriod *string
}

// Share grants a user a role on a pouch. Shares carry no balance logic.
type Share struct {
	ID      uuid.UUID `db:"id"`
	PouchID uuid.UUID `db:"pouch_id"`
	UserID  uuid.UUID `db:"user_id"`
	Role    Role      `db:"role"`
}

// Filter specifies filters for listing pouches.
type Filter struct {
	OwnerID *uuid.UUID
	Limit   int
	Offset  int
}
