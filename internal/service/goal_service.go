package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/pouch-server/internal/operator"
	"github.com/carson-networks/pouch-server/internal/operator/actions"
	"github.com/carson-networks/pouch-server/internal/storage"
	"github.com/carson-networks/pouch-server/internal/storage/pouch"
)

// CreateGoalInput is the input for creating a savings goal.
type CreateGoalInput struct {
	OwnerID       uuid.UUID
	PouchID       uuid.NullUUID
	Title         string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    time.Time
}

// UpdateGoalPatch carries the changed fields of a goal update; nil fields
// are left untouched.
type UpdateGoalPatch struct {
	PouchID       *uuid.NullUUID
	Title         *string
	TargetAmount  *decimal.Decimal
	CurrentAmount *decimal.Decimal
	TargetDate    *time.Time
}

// GoalView is a goal together with its schedule standing at read time.
type GoalView struct {
	pouch.Goal
	BehindSchedule bool
}

// GoalService handles savings goal business logic.
type GoalService struct {
	storage  *storage.Storage
	operator *operator.OperatorDelegator
}

// NewGoalService creates a new GoalService.
func NewGoalService(store *storage.Storage, op *operator.OperatorDelegator) *GoalService {
	return &GoalService{storage: store, operator: op}
}

// CreateGoal creates a goal with its monthly contribution derived from the
// target amount, current amount and target date.
func (s *GoalService) CreateGoal(ctx context.Context, input CreateGoalInput) (*GoalView, error) {
	action := &actions.CreateGoal{
		OwnerID:       input.OwnerID,
		PouchID:       input.PouchID,
		Title:         input.Title,
		TargetAmount:  input.TargetAmount,
		CurrentAmount: input.CurrentAmount,
		TargetDate:    input.TargetDate,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return viewOf(&action.Created), nil
}

// UpdateGoal patches a goal, recomputing the monthly contribution.
func (s *GoalService) UpdateGoal(ctx context.Context, id uuid.UUID, patch UpdateGoalPatch) (*GoalView, error) {
	action := &actions.UpdateGoal{
		ID:            id,
		PouchID:       patch.PouchID,
		Title:         patch.Title,
		TargetAmount:  patch.TargetAmount,
		CurrentAmount: patch.CurrentAmount,
		TargetDate:    patch.TargetDate,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return viewOf(&action.Updated), nil
}

// GetGoal retrieves a goal by id.
func (s *GoalService) GetGoal(ctx context.Context, id uuid.UUID) (*GoalView, error) {
	row, err := s.storage.Pouches.FindGoalByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return viewOf(row), nil
}

// ListGoals returns the owner's goals ordered by target date.
func (s *GoalService) ListGoals(ctx context.Context, ownerID uuid.UUID) ([]*GoalView, error) {
	rows, err := s.storage.Pouches.ListGoals(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	views := make([]*GoalView, len(rows))
	for i, row := range rows {
		views[i] = viewOf(row)
	}
	return views, nil
}

func viewOf(goal *pouch.Goal) *GoalView {
	return &GoalView{
		Goal:           *goal,
		BehindSchedule: goal.BehindSchedule(time.Now().UTC()),
	}
}
