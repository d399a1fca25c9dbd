package goal

import (
	"time"

	"github.com/carson-networks/pouch-server/internal/service"
)

// Goal is the API response model for a savings goal.
type Goal struct {
	ID                  string `json:"id" doc:"Goal UUID"`
	OwnerID             string `json:"ownerID" doc:"Owner UUID"`
	PouchID             string `json:"pouchID,omitempty" doc:"Linked pouch UUID, empty when unlinked"`
	Title               string `json:"title" doc:"Goal title"`
	TargetAmount        string `json:"targetAmount" doc:"Decimal target amount"`
	CurrentAmount       string `json:"currentAmount" doc:"Decimal amount saved so far"`
	TargetDate          string `json:"targetDate" doc:"RFC3339 date the goal should be reached"`
	MonthlyContribution string `json:"monthlyContribution" doc:"Decimal amount to save per month to stay on schedule"`
	BehindSchedule      bool   `json:"behindSchedule" doc:"True when the target date has passed with the goal unmet"`
	CreatedAt           string `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt           string `json:"updatedAt" doc:"RFC3339 last update time"`
}

func fromService(view *service.GoalView) Goal {
	out := Goal{
		ID:                  view.ID.String(),
		OwnerID:             view.OwnerID.String(),
		Title:               view.Title,
		TargetAmount:        view.TargetAmount.String(),
		CurrentAmount:       view.CurrentAmount.String(),
		TargetDate:          view.TargetDate.Format(time.RFC3339),
		MonthlyContribution: view.MonthlyContribution.String(),
		BehindSchedule:      view.BehindSchedule,
		CreatedAt:           view.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           view.UpdatedAt.Format(time.RFC3339),
	}
	if view.PouchID.Valid {
		out.PouchID = view.PouchID.UUID.String()
	}
	return out
}
