package account

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Type classifies an account.
type Type int8

const (
	TypeCash Type = iota
	TypeSavings
	TypeCredit
	TypeLoan
	TypeCrypto
	TypeInvestment
)

// Account represents an account record. Balance is derived state: it is
// written exclusively by the ledger actions, never set directly by callers.
type Account struct {
	ID              uuid.UUID       `db:"id"`
	OwnerID         uuid.UUID       `db:"owner_id"`
	Name            string          `db:"name"`
	Type            Type            `db:"type"`
	Currency        string          `db:"currency"`
	StartingBalance decimal.Decimal `db:"starting_balance"`
	Balance         decimal.Decimal `db:"balance"`
	Active          bool            `db:"active"`
	CreatedAt       time.Time       `db:"created_at"`
}

// Create is the input for creating a new account.
type Create struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	Name            string
	Type            Type
	Currency        string
	StartingBalance decimal.Decimal
}

// Filter specifies filters for listing accounts.
type Filter struct {
	OwnerID *uuid.UUID
	Limit   int
	Offset  int
}
