package pouch

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Goal tracks saving toward a target amount by a target date.
// MonthlyContribution is derived and recomputed whenever target amount,
// current amount or target date changes.
type Goal struct {
	ID                  uuid.UUID       `db:"id"`
	OwnerID             uuid.UUID       `db:"owner_id"`
	PouchID             uuid.NullUUID   `db:"pouch_id"`
	Title               string          `db:"title"`
	TargetAmount        decimal.Decimal `db:"target_amount"`
	CurrentAmount       decimal.Decimal `db:"current_amount"`
	TargetDate          time.Time       `db:"target_date"`
	MonthlyContribution decimal.Decimal `db:"monthly_contribution"`
	CreatedAt           time.Time       `db:"created_at"`
	UpdatedAt           time.Time       `db:"updated_at"`
}

// BehindSchedule reports whether the target date has passed with the goal
// unmet.
func (g *Goal) BehindSchedule(now time.Time) bool {
	return now.After(g.TargetDate) && g.CurrentAmount.LessThan(g.TargetAmount)
}

// MonthlyContribution returns (target - current) spread over the months
// remaining until targetDate, with a floor of one month. Rounded to cents.
func MonthlyContribution(target, current decimal.Decimal, targetDate, now time.Time) decimal.Decimal {
	remaining := target.Sub(current)
	if remaining.Sign() <= 0 {
		return decimal.Zero
	}
	months := monthsUntil(now, targetDate)
	if months < 1 {
		months = 1
	}
	return remaining.DivRound(decimal.NewFromInt(months), 2)
}

// monthsUntil counts whole months from now to target, rounding partial
// months up. Zero when target is not in the future.
func monthsUntil(now, target time.Time) int64 {
	if !target.After(now) {
		return 0
	}
	months := int64(target.Year()-now.Year())*12 + int64(int(target.Month())-int(now.Month()))
	if months < 0 {
		months = 0
	}
	if target.After(now.AddDate(0, int(months), 0)) {
		months++
	}
	return months
}
