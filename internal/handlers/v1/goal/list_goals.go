package goal

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/pouch-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/pouch-server/internal/logging"
	"github.com/carson-networks/pouch-server/internal/service"
)

// ListGoalsBody is the request body for listing goals.
type ListGoalsBody struct {
	OwnerID string `json:"ownerID" required:"true" format:"uuid" doc:"Owner UUID"`
}

// ListGoalsInput is the Huma input for listing goals.
type ListGoalsInput struct {
	Body ListGoalsBody
}

// ListGoalsResponseBody is the response body for listing goals.
type ListGoalsResponseBody struct {
	Goals []Goal `json:"goals" doc:"Goals ordered by target date"`
}

// ListGoalsOutput is the Huma output for listing goals.
type ListGoalsOutput struct {
	Body ListGoalsResponseBody
}

// goalLister is the interface for listing goals.
type goalLister interface {
	ListGoals(ctx context.Context, ownerID uuid.UUID) ([]*service.GoalView, error)
}

// ListGoalsHandler handles POST /v1/goal/list.
type ListGoalsHandler struct {
	GoalService goalLister
}

// NewListGoalsHandler creates a new ListGoalsHandler.
func NewListGoalsHandler(svc goalLister) *ListGoalsHandler {
	return &ListGoalsHandler{GoalService: svc}
}

// Register registers the list goals endpoint with the Huma API.
func (h *ListGoalsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-goals",
		Method:      http.MethodPost,
		Path:        "/v1/goal/list",
		Summary:     "List savings goals",
		Description: "Returns the owner's goals ordered by target date, each with its schedule standing.",
		Tags:        []string{"Goals"},
	}, h.handle)
}

func (h *ListGoalsHandler) handle(ctx context.Context, input *ListGoalsInput) (*ListGoalsOutput, error) {
	logData := logging.GetLogData(ctx)

	ownerID, err := uuid.FromString(input.Body.OwnerID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid ownerID", err)
	}

	goals, err := h.GoalService.ListGoals(ctx, ownerID)
	if err != nil {
		return nil, httperr.Translate("failed to list goals", err)
	}

	if logData != nil {
		logData.AddData("goalCount", len(goals))
	}

	resp := ListGoalsResponseBody{
		Goals: make([]Goal, len(goals)),
	}
	for i, view := range goals {
		resp.Goals[i] = fromService(view)
	}

	return &ListGoalsOutput{Body: resp}, nil
}
