package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/pouch-server/internal/handlers/v1/httperr"
)

// DeactivateAccountInput is the Huma input for deactivating an account.
type DeactivateAccountInput struct {
	ID string `path:"id" format:"uuid" doc:"Account UUID"`
}

// DeactivateAccountOutput is the response for deactivating an account.
type DeactivateAccountOutput struct {
	Status int
}

// accountDeactivator is the interface for deactivating accounts.
type accountDeactivator interface {
	DeactivateAccount(ctx context.Context, id uuid.UUID) error
}

// DeactivateAccountHandler handles DELETE /v1/account/{id}.
type DeactivateAccountHandler struct {
	AccountService accountDeactivator
}

// NewDeactivateAccountHandler creates a new DeactivateAccountHandler.
func NewDeactivateAccountHandler(svc accountDeactivator) *DeactivateAccountHandler {
	return &DeactivateAccountHandler{AccountService: svc}
}

// Register registers the deactivate account endpoint with the Huma API.
func (h *DeactivateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "deactivate-account",
		Method:      http.MethodDelete,
		Path:        "/v1/account/{id}",
		Summary:     "Deactivate an account",
		Description: "Marks an account inactive. Its history stays queryable but new transactions and transfers against it are rejected.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *DeactivateAccountHandler) handle(ctx context.Context, input *DeactivateAccountInput) (*DeactivateAccountOutput, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid account id", err)
	}

	if err := h.AccountService.DeactivateAccount(ctx, id); err != nil {
		return nil, httperr.Translate("failed to deactivate account", err)
	}

	return &DeactivateAccountOutput{Status: http.StatusNoContent}, nil
}
