package user

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/pouch-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/pouch-server/internal/logging"
	storageuser "github.com/carson-networks/pouch-server/internal/storage/user"
)

// GetUserInput is the Huma input for fetching a user.
type GetUserInput struct {
	ID string `path:"id" format:"uuid" doc:"User UUID"`
}

// GetUserOutput is the response for fetching a user.
type GetUserOutput struct {
	Body User
}

// userFinder is the interface for fetching users.
type userFinder interface {
	GetUser(ctx context.Context, id uuid.UUID) (*storageuser.User, error)
}

// GetUserHandler handles GET /v1/user/{id}.
type GetUserHandler struct {
	UserService userFinder
}

// NewGetUserHandler creates a new GetUserHandler.
func NewGetUserHandler(svc userFinder) *GetUserHandler {
	return &GetUserHandler{UserService: svc}
}

// Register registers the get user endpoint with the Huma API.
func (h *GetUserHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-user",
		Method:      http.MethodGet,
		Path:        "/v1/user/{id}",
		Summary:     "Get a user",
		Description: "Fetches a user profile by id.",
		Tags:        []string{"Users"},
	}, h.handle)
}

func (h *GetUserHandler) handle(ctx context.Context, input *GetUserInput) (*GetUserOutput, error) {
	logData := logging.GetLogData(ctx)

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid user id", err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("getUserMs")
	}
	row, err := h.UserService.GetUser(ctx, id)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.Translate("failed to fetch user", err)
	}

	return &GetUserOutput{Body: fromStorage(row)}, nil
}
