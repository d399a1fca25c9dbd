package user

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/pouch-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/pouch-server/internal/logging"
	"github.com/carson-networks/pouch-server/internal/service"
	storageuser "github.com/carson-networks/pouch-server/internal/storage/user"
)

// CreateUserBody is the request body for registering a user.
type CreateUserBody struct {
	Email  string `json:"email" required:"true" format:"email" doc:"Email address, unique per user"`
	Name   string `json:"name" required:"true" minLength:"1" doc:"Display name"`
	Locale string `json:"locale,omitempty" doc:"BCP 47 locale tag, defaults to en"`
}

// CreateUserInput is the Huma input for registering a user.
type CreateUserInput struct {
	Body CreateUserBody
}

// CreateUserOutput is the response for registering a user.
type CreateUserOutput struct {
	Status int
	Body   User
}

// userCreator is the interface for registering users.
type userCreator interface {
	CreateUser(ctx context.Context, input service.CreateUserInput) (*storageuser.User, error)
}

// CreateUserHandler handles POST /v1/user.
type CreateUserHandler struct {
	UserService userCreator
}

// NewCreateUserHandler creates a new CreateUserHandler.
func NewCreateUserHandler(svc userCreator) *CreateUserHandler {
	return &CreateUserHandler{UserService: svc}
}

// Register registers the create user endpoint with the Huma API.
func (h *CreateUserHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-user",
		Method:      http.MethodPost,
		Path:        "/v1/user",
		Summary:     "Register a user",
		Description: "Registers a user profile. Credentials are managed by the identity layer, not this service.",
		Tags:        []string{"Users"},
	}, h.handle)
}

func (h *CreateUserHandler) handle(ctx context.Context, input *CreateUserInput) (*CreateUserOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createUserMs")
	}
	created, err := h.UserService.CreateUser(ctx, service.CreateUserInput{
		Email:  input.Body.Email,
		Name:   input.Body.Name,
		Locale: input.Body.Locale,
	})
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.Translate("failed to create user", err)
	}

	if logData != nil {
		logData.AddData("userID", created.ID.String())
	}

	return &CreateUserOutput{
		Status: http.StatusCreated,
		Body:   fromStorage(created),
	}, nil
}
