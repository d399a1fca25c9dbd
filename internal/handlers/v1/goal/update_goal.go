package goal

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/pouch-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/pouch-server/internal/service"
)

// UpdateGoalBody is the request body for updating a goal. Absent fields
// keep their current value. An empty pouchID string clears the link.
type UpdateGoalBody struct {
	PouchID       *string `json:"pouchID,omitempty" doc:"New pouch UUID, empty string to clear"`
	Title         *string `json:"title,omitempty" doc:"New title"`
	TargetAmount  *string `json:"targetAmount,omitempty" doc:"New decimal target amount"`
	CurrentAmount *string `json:"currentAmount,omitempty" doc:"New decimal amount saved so far"`
	TargetDate    *string `json:"targetDate,omitempty" format:"date-time" doc:"New RFC3339 target date"`
}

// UpdateGoalInput is the Huma input for updating a goal.
type UpdateGoalInput struct {
	ID   string `path:"id" format:"uuid" doc:"Goal UUID"`
	Body UpdateGoalBody
}

// UpdateGoalOutput is the Huma output for updating a goal.
type UpdateGoalOutput struct {
	Body Goal
}

// goalUpdater is the interface for updating goals.
type goalUpdater interface {
	UpdateGoal(ctx context.Context, id uuid.UUID, patch service.UpdateGoalPatch) (*service.GoalView, error)
}

// UpdateGoalHandler handles PATCH /v1/goal/{id}.
type UpdateGoalHandler struct {
	GoalService goalUpdater
}

// NewUpdateGoalHandler creates a new UpdateGoalHandler.
func NewUpdateGoalHandler(svc goalUpdater) *UpdateGoalHandler {
	return &UpdateGoalHandler{GoalService: svc}
}

// Register registers the update goal endpoint with the Huma API.
func (h *UpdateGoalHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-goal",
		Method:      http.MethodPatch,
		Path:        "/v1/goal/{id}",
		Summary:     "Update a savings goal",
		Description: "Patches a goal and recomputes the monthly contribution.",
		Tags:        []string{"Goals"},
	}, h.handle)
}

func parseUpdateGoalInput(input *UpdateGoalInput) (uuid.UUID, service.UpdateGoalPatch, error) {
	var patch service.UpdateGoalPatch

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return uuid.Nil, patch, huma.NewError(http.StatusBadRequest, "invalid goal id", err)
	}

	if input.Body.PouchID != nil {
		var pouchID uuid.NullUUID
		if *input.Body.PouchID != "" {
			parsed, err := uuid.FromString(*input.Body.PouchID)
			if err != nil {
				return uuid.Nil, patch, huma.NewError(http.StatusBadRequest, "invalid pouchID", err)
			}
			pouchID = uuid.NullUUID{UUID: parsed, Valid: true}
		}
		patch.PouchID = &pouchID
	}
	patch.Title = input.Body.Title
	if input.Body.TargetAmount != nil {
		amount, err := decimal.NewFromString(*input.Body.TargetAmount)
		if err != nil {
			return uuid.Nil, patch, huma.NewError(http.StatusBadRequest, "invalid targetAmount", err)
		}
		patch.TargetAmount = &amount
	}
	if input.Body.CurrentAmount != nil {
		amount, err := decimal.NewFromString(*input.Body.CurrentAmount)
		if err != nil {
			return uuid.Nil, patch, huma.NewError(http.StatusBadRequest, "invalid currentAmount", err)
		}
		patch.CurrentAmount = &amount
	}
	if input.Body.TargetDate != nil {
		date, err := time.Parse(time.RFC3339, *input.Body.TargetDate)
		if err != nil {
			return uuid.Nil, patch, huma.NewError(http.StatusBadRequest, "invalid targetDate", err)
		}
		patch.TargetDate = &date
	}

	return id, patch, nil
}

func (h *UpdateGoalHandler) handle(ctx context.Context, input *UpdateGoalInput) (*UpdateGoalOutput, error) {
	id, patch, err := parseUpdateGoalInput(input)
	if err != nil {
		return nil, err
	}

	updated, err := h.GoalService.UpdateGoal(ctx, id, patch)
	if err != nil {
		return nil, httperr.Translate("failed to update goal", err)
	}

	return &UpdateGoalOutput{Body: fromService(updated)}, nil
}
