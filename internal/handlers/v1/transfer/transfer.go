package transfer

import (
	"time"

	"github.com/carson-networks/pouch-server/internal/storage/transfer"
)

// Transfer is the API response model for a transfer.
type Transfer struct {
	ID            string `json:"id" doc:"Transfer UUID"`
	OwnerID       string `json:"ownerID" doc:"Owner UUID"`
	FromAccountID string `json:"fromAccountID" doc:"Debited account UUID"`
	ToAccountID   string `json:"toAccountID" doc:"Credited account UUID"`
	Amount        string `json:"amount" doc:"Decimal amount moved"`
	Currency      string `json:"currency" doc:"ISO currency code"`
	Status        int    `json:"status" doc:"Transfer status: 0=Pending, 1=Completed"`
	CreatedAt     string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromStorage(row *transfer.Transfer) Transfer {
	return Transfer{
		ID:            row.ID.String(),
		OwnerID:       row.OwnerID.String(),
		FromAccountID: row.FromAccountID.String(),
		ToAccountID:   row.ToAccountID.String(),
		Amount:        row.Amount.String(),
		Currency:      row.Currency,
		Status:        int(row.Status),
		CreatedAt:     row.CreatedAt.Format(time.RFC3339),
	}
}
