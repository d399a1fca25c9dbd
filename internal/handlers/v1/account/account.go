package account

import (
	"time"

	"github.com/carson-networks/pouch-server/internal/storage/account"
)

// Account is the API response model for an account.
type Account struct {
	ID              string `json:"id" doc:"Account UUID"`
	OwnerID         string `json:"ownerID" doc:"Owner UUID"`
	Name            string `json:"name" doc:"Account name"`
	Type            int    `json:"type" doc:"Account type: 0=Cash, 1=Savings, 2=Credit, 3=Loan, 4=Crypto, 5=Investment"`
	Currency        string `json:"currency" doc:"ISO currency code"`
	StartingBalance string `json:"startingBalance" doc:"Decimal balance at creation"`
	Balance         string `json:"balance" doc:"Decimal current balance"`
	Active          bool   `json:"active" doc:"False once the account is deactivated"`
	CreatedAt       string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromStorage(row *account.Account) Account {
	return Account{
		ID:              row.ID.String(),
		OwnerID:         row.OwnerID.String(),
		Name:            row.Name,
		Type:            int(row.Type),
		Currency:        row.Currency,
		StartingBalance: row.StartingBalance.String(),
		Balance:         row.Balance.String(),
		Active:          row.Active,
		CreatedAt:       row.CreatedAt.Format(time.RFC3339),
	}
}
