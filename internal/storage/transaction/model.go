package transaction

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Type is the direction of a ledger amount.
type Type int8

const (
	TypeIncome Type = iota
	TypeExpense
)

// Effect returns the signed balance impact of an amount of this type:
// positive for income, negative for expense.
func (t Type) Effect(amount decimal.Decimal) decimal.Decimal {
	if t == TypeIncome {
		return amount
	}
	return amount.Neg()
}

// Transaction represents a ledger record. AccountID and PouchID are plain
// application-level identifiers into other shards, not enforced relations.
type Transaction struct {
	ID          uuid.UUID       `db:"id"`
	OwnerID     uuid.UUID       `db:"owner_id"`
	AccountID   uuid.UUID       `db:"account_id"`
	PouchID     uuid.NullUUID   `db:"pouch_id"`
	Amount      decimal.Decimal `db:"amount"`
	Currency    string          `db:"currency"`
	Type        Type            `db:"type"`
	Description string          `db:"description"`
	Category    string          `db:"category"`
	Recurring   bool            `db:"recurring"`
	Deleted     bool            `db:"deleted"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// Split sub-allocates part of a transaction's amount to a pouch.
type Split struct {
	ID            uuid.UUID       `db:"id"`
	TransactionID uuid.UUID       `db:"transaction_id"`
	PouchID       uuid.UUID       `db:"pouch_id"`
	Amount        decimal.Decimal `db:"amount"`
}

// Filter specifies filters for listing transactions. Soft-deleted records
// are excluded unless IncludeDeleted is set.
type Filter struct {
	OwnerID         *uuid.UUID
	AccountID       *uuid.UUID
	PouchID         *uuid.UUID
	IncludeDeleted  bool
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}
