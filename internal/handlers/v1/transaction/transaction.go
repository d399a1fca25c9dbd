package transaction

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/pouch-server/internal/service"
)

// Transaction is the API response model for a transaction.
type Transaction struct {
	ID          string  `json:"id" doc:"Transaction UUID"`
	OwnerID     string  `json:"ownerID" doc:"Owner UUID"`
	AccountID   string  `json:"accountID" doc:"Account UUID"`
	PouchID     string  `json:"pouchID,omitempty" doc:"Pouch UUID, empty when unassigned"`
	Amount      string  `json:"amount" doc:"Decimal amount, always positive"`
	Currency    string  `json:"currency" doc:"ISO currency code"`
	Type        int     `json:"type" doc:"Transaction type: 0=Income, 1=Expense"`
	Description string  `json:"description" doc:"Free-form description"`
	Category    string  `json:"category" doc:"Category label"`
	Recurring   bool    `json:"recurring" doc:"True for recurring transactions"`
	Splits      []Split `json:"splits,omitempty" doc:"Pouch sub-allocations"`
	CreatedAt   string  `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt   string  `json:"updatedAt" doc:"RFC3339 last update time"`
}

// Split is the API model for a sub-allocation of a transaction to a pouch.
type Split struct {
	PouchID string `json:"pouchID" required:"true" format:"uuid" doc:"Pouch UUID"`
	Amount  string `json:"amount" required:"true" doc:"Decimal amount allocated to the pouch"`
}

func fromService(tx *service.Transaction) Transaction {
	out := Transaction{
		ID:          tx.ID.String(),
		OwnerID:     tx.OwnerID.String(),
		AccountID:   tx.AccountID.String(),
		Amount:      tx.Amount.String(),
		Currency:    tx.Currency,
		Type:        int(tx.Type),
		Description: tx.Description,
		Category:    tx.Category,
		Recurring:   tx.Recurring,
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   tx.UpdatedAt.Format(time.RFC3339),
	}
	if tx.PouchID.Valid {
		out.PouchID = tx.PouchID.UUID.String()
	}
	if len(tx.Splits) > 0 {
		out.Splits = make([]Split, len(tx.Splits))
		for i, s := range tx.Splits {
			out.Splits[i] = Split{PouchID: s.PouchID.String(), Amount: s.Amount.String()}
		}
	}
	return out
}

func parseSplits(splits []Split) ([]service.Split, error) {
	out := make([]service.Split, len(splits))
	for i, s := range splits {
		pouchID, err := uuid.FromString(s.PouchID)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid split pouchID", err)
		}
		amount, err := decimal.NewFromString(s.Amount)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid split amount", err)
		}
		out[i] = service.Split{PouchID: pouchID, Amount: amount}
	}
	return out, nil
}
