package goal

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/pouch-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/pouch-server/internal/logging"
	"github.com/carson-networks/pouch-server/internal/service"
)

// CreateGoalBody is the request body for creating a savings goal.
type CreateGoalBody struct {
	OwnerID       string `json:"ownerID" required:"true" format:"uuid" doc:"Owner UUID"`
	PouchID       string `json:"pouchID,omitempty" format:"uuid" doc:"Pouch the goal is linked to"`
	Title         string `json:"title" required:"true" minLength:"1" doc:"Goal title"`
	TargetAmount  string `json:"targetAmount" required:"true" doc:"Decimal target amount, must be positive"`
	CurrentAmount string `json:"currentAmount,omitempty" doc:"Decimal amount already saved, defaults to 0"`
	TargetDate    string `json:"targetDate" required:"true" format:"date-time" doc:"RFC3339 date the goal should be reached"`
}

// CreateGoalInput is the Huma input for creating a goal.
type CreateGoalInput struct {
	Body CreateGoalBody
}

// CreateGoalOutput is the response for creating a goal.
type CreateGoalOutput struct {
	Status int
	Body   Goal
}

// goalCreator is the interface for creating goals.
type goalCreator interface {
	CreateGoal(ctx context.Context, input service.CreateGoalInput) (*service.GoalView, error)
}

// CreateGoalHandler handles POST /v1/goal.
type CreateGoalHandler struct {
	GoalService goalCreator
}

// NewCreateGoalHandler creates a new CreateGoalHandler.
func NewCreateGoalHandler(svc goalCreator) *CreateGoalHandler {
	return &CreateGoalHandler{GoalService: svc}
}

// Register registers the create goal endpoint with the Huma API.
func (h *CreateGoalHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-goal",
		Method:      http.MethodPost,
		Path:        "/v1/goal",
		Summary:     "Create a savings goal",
		Description: "Creates a goal and derives the monthly contribution needed to reach it by the target date.",
		Tags:        []string{"Goals"},
	}, h.handle)
}

func parseCreateGoalInput(input *CreateGoalInput) (service.CreateGoalInput, error) {
	ownerID, err := uuid.FromString(input.Body.OwnerID)
	if err != nil {
		return service.CreateGoalInput{}, huma.NewError(http.StatusBadRequest, "invalid ownerID", err)
	}

	var pouchID uuid.NullUUID
	if input.Body.PouchID != "" {
		parsed, err := uuid.FromString(input.Body.PouchID)
		if err != nil {
			return service.CreateGoalInput{}, huma.NewError(http.StatusBadRequest, "invalid pouchID", err)
		}
		pouchID = uuid.NullUUID{UUID: parsed, Valid: true}
	}

	targetAmount, err := decimal.NewFromString(input.Body.TargetAmount)
	if err != nil {
		return service.CreateGoalInput{}, huma.NewError(http.StatusBadRequest, "invalid targetAmount", err)
	}

	currentAmount := decimal.Zero
	if input.Body.CurrentAmount != "" {
		currentAmount, err = decimal.NewFromString(input.Body.CurrentAmount)
		if err != nil {
			return service.CreateGoalInput{}, huma.NewError(http.StatusBadRequest, "invalid currentAmount", err)
		}
	}

	targetDate, err := time.Parse(time.RFC3339, input.Body.TargetDate)
	if err != nil {
		return service.CreateGoalInput{}, huma.NewError(http.StatusBadRequest, "invalid targetDate", err)
	}

	return service.CreateGoalInput{
		OwnerID:       ownerID,
		PouchID:       pouchID,
		Title:         input.Body.Title,
		TargetAmount:  targetAmount,
		CurrentAmount: currentAmount,
		TargetDate:    targetDate,
	}, nil
}

func (h *CreateGoalHandler) handle(ctx context.Context, input *CreateGoalInput) (*CreateGoalOutput, error) {
	logData := logging.GetLogData(ctx)

	parsed, err := parseCreateGoalInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createGoalMs")
	}
	created, err := h.GoalService.CreateGoal(ctx, parsed)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.Translate("failed to create goal", err)
	}

	if logData != nil {
		logData.AddData("goalID", created.ID.String())
	}

	return &CreateGoalOutput{
		Status: http.StatusCreated,
		Body:   fromService(created),
	}, nil
}
