package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/pouch-server/internal/errs"
	"github.com/carson-networks/pouch-server/internal/storage"
	"github.com/carson-networks/pouch-server/internal/storage/pouch"
)

type CreateGoal struct {
	OwnerID       uuid.UUID
	PouchID       uuid.NullUUID
	Title         string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    time.Time

	// Created holds the persisted goal after a successful Perform.
	Created pouch.Goal

	IAction
}

func (a *CreateGoal) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.Title == "" {
		return &errs.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if !a.TargetAmount.IsPositive() {
		return &errs.ValidationError{Field: "targetAmount", Reason: "must be positive"}
	}
	if a.CurrentAmount.IsNegative() {
		return &errs.ValidationError{Field: "currentAmount", Reason: "must not be negative"}
	}
	if a.TargetDate.IsZero() {
		return &errs.ValidationError{Field: "targetDate", Reason: "must be set"}
	}
	if a.PouchID.Valid {
		if _, err := writer.Pouches.FindByID(ctx, a.PouchID.UUID); err != nil {
			return err
		}
	}

	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	goal := pouch.Goal{
		ID:                  id,
		OwnerID:             a.OwnerID,
		PouchID:             a.PouchID,
		Title:               a.Title,
		TargetAmount:        a.TargetAmount,
		CurrentAmount:       a.CurrentAmount,
		TargetDate:          a.TargetDate,
		MonthlyContribution: pouch.MonthlyContribution(a.TargetAmount, a.CurrentAmount, a.TargetDate, now),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := writer.Pouches.CreateGoal(ctx, &goal); err != nil {
		return err
	}

	a.Created = goal
	return nil
}

// UpdateGoal patches a goal. The monthly contribution is derived from
// target amount, current amount and target date, so it is recomputed on
// every change to any of them.
type UpdateGoal struct {
	ID uuid.UUID

	PouchID       *uuid.NullUUID
	Title         *string
	TargetAmount  *decimal.Decimal
	CurrentAmount *decimal.Decimal
	TargetDate    *time.Time

	// Updated holds the patched goal after a successful Perform.
	Updated pouch.Goal

	IAction
}

func (a *UpdateGoal) Perform(ctx context.Context, writer *storage.Writer) error {
	goal, err := writer.Pouches.FindGoalByID(ctx, a.ID)
	if err != nil {
		return err
	}

	updated := *goal
	if a.PouchID != nil {
		if a.PouchID.Valid {
			if _, err := writer.Pouches.FindByID(ctx, a.PouchID.UUID); err != nil {
				return err
			}
		}
		updated.PouchID = *a.PouchID
	}
	if a.Title != nil {
		if *a.Title == "" {
			return &errs.ValidationError{Field: "title", Reason: "must not be empty"}
		}
		updated.Title = *a.Title
	}
	if a.TargetAmount != nil {
		if !a.TargetAmount.IsPositive() {
			return &errs.ValidationError{Field: "targetAmount", Reason: "must be positive"}
		}
		updated.TargetAmount = *a.TargetAmount
	}
	if a.CurrentAmount != nil {
		if a.CurrentAmount.IsNegative() {
			return &errs.ValidationError{Field: "currentAmount", Reason: "must not be negative"}
		}
		updated.CurrentAmount = *a.CurrentAmount
	}
	if a.TargetDate != nil {
		if a.TargetDate.IsZero() {
			return &errs.ValidationError{Field: "targetDate", Reason: "must be set"}
		}
		updated.TargetDate = *a.TargetDate
	}

	updated.MonthlyContribution = pouch.MonthlyContribution(
		updated.TargetAmount, updated.CurrentAmount, updated.TargetDate, time.Now().UTC(),
	)
	if err := writer.Pouches.UpdateGoal(ctx, &updated); err != nil {
		return err
	}

	a.Updated = updated
	return nil
}
