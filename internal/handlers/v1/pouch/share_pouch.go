package pouch

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/pouch-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/pouch-server/internal/storage/pouch"
)

// SharePouchBody is the request body for sharing a pouch.
type SharePouchBody struct {
	UserID string `json:"userID" required:"true" format:"uuid" doc:"User the pouch is shared with"`
	Role   int    `json:"role" minimum:"0" maximum:"2" doc:"Granted role: 0=Owner, 1=Editor, 2=Viewer"`
}

// SharePouchInput is the Huma input for sharing a pouch.
type SharePouchInput struct {
	ID   string `path:"id" format:"uuid" doc:"Pouch UUID"`
	Body SharePouchBody
}

// SharePouchOutput is the response for sharing a pouch.
type SharePouchOutput struct {
	Status int
}

// pouchSharer is the interface for granting pouch shares.
type pouchSharer interface {
	SharePouch(ctx context.Context, pouchID, userID uuid.UUID, role pouch.Role) error
}

// SharePouchHandler handles POST /v1/pouch/{id}/share.
type SharePouchHandler struct {
	PouchService pouchSharer
}

// NewSharePouchHandler creates a new SharePouchHandler.
func NewSharePouchHandler(svc pouchSharer) *SharePouchHandler {
	return &SharePouchHandler{PouchService: svc}
}

// Register registers the share pouch endpoint with the Huma API.
func (h *SharePouchHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "share-pouch",
		Method:      http.MethodPost,
		Path:        "/v1/pouch/{id}/share",
		Summary:     "Share a pouch",
		Description: "Grants a user a role on a pouch. Granting the same user twice fails with a conflict.",
		Tags:        []string{"Pouches"},
	}, h.handle)
}

func (h *SharePouchHandler) handle(ctx context.Context, input *SharePouchInput) (*SharePouchOutput, error) {
	pouchID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid pouch id", err)
	}
	userID, err := uuid.FromString(input.Body.UserID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid userID", err)
	}

	if err := h.PouchService.SharePouch(ctx, pouchID, userID, pouch.Role(input.Body.Role)); err != nil {
		return nil, httperr.Translate("failed to share pouch", err)
	}

	return &SharePouchOutput{Status: http.StatusCreated}, nil
}
