package pouch

import (
	"time"

	"github.com/carson-networks/pouch-server/internal/storage/pouch"
)

// Pouch is the API response model for a pouch.
type Pouch struct {
	ID           string `json:"id" doc:"Pouch UUID"`
	OwnerID      string `json:"ownerID" doc:"Owner UUID"`
	Name         string `json:"name" doc:"Pouch name"`
	Visibility   int    `json:"visibility" doc:"Visibility: 0=Private, 1=Shared"`
	BudgetAmount string `json:"budgetAmount,omitempty" doc:"Decimal budget amount, empty when no budget is set"`
	BudgetPeriod string `json:"budgetPeriod,omitempty" doc:"Budget period, e.g. monthly"`
	Balance      string `json:"balance" doc:"Decimal running balance"`
	CreatedAt    string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromStorage(row *pouch.Pouch) Pouch {
	out := Pouch{
		ID:         row.ID.String(),
		OwnerID:    row.OwnerID.String(),
		Name:       row.Name,
		Visibility: int(row.Visibility),
		Balance:    row.Balance.String(),
		CreatedAt:  row.CreatedAt.Format(time.RFC3339),
	}
	if row.BudgetAmount.Valid {
		out.BudgetAmount = row.BudgetAmount.Decimal.String()
	}
	if row.BudgetPeriod != nil {
		out.BudgetPeriod = *row.BudgetPeriod
	}
	return out
}
