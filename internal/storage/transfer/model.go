package transfer

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a transfer.
type Status int8

const (
	StatusPending Status = iota
	StatusCompleted
)

// Transfer records money moving between two accounts as a single record,
// not a linked transaction pair. Account ids point into the account shard
// without storage-enforced integrity.
type Transfer struct {
	ID            uuid.UUID       `db:"id"`
	OwnerID       uuid.UUID       `db:"owner_id"`
	FromAccountID uuid.UUID       `db:"from_account_id"`
	ToAccountID   uuid.UUID       `db:"to_account_id"`
	Amount        decimal.Decimal `db:"amount"`
	Currency      string          `db:"currency"`
	Status        Status          `db:"status"`
	CreatedAt     time.Time       `db:"created_at"`
}

// Filter specifies filters for listing transfers.
type Filter struct {
	OwnerID *uuid.UUID
	Limit   int
	Offset  int
}
