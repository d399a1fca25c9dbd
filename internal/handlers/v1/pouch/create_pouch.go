package pouch

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/pouch-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/pouch-server/internal/logging"
	"github.com/carson-networks/pouch-server/internal/service"
	"github.com/carson-networks/pouch-server/internal/storage/pouch"
)

// CreatePouchBody is the request body for creating a pouch.
type CreatePouchBody struct {
	OwnerID      string `json:"ownerID" required:"true" format:"uuid" doc:"Owner UUID"`
	Name         string `json:"name" required:"true" minLength:"1" doc:"Pouch name"`
	Visibility   int    `json:"visibility" minimum:"0" maximum:"1" doc:"Visibility: 0=Private, 1=Shared"`
	BudgetAmount string `json:"budgetAmount,omitempty" doc:"Decimal budget amount, omit for no budget"`
	BudgetPeriod string `json:"budgetPeriod,omitempty" doc:"Budget period, e.g. monthly"`
}

// CreatePouchInput is the Huma input for creating a pouch.
type CreatePouchInput struct {
	Body CreatePouchBody
}

// CreatePouchOutput is the response for creating a pouch.
type CreatePouchOutput struct {
	Status int
	Body   Pouch
}

// pouchCreator is the interface for creating pouches.
type pouchCreator interface {
	CreatePouch(ctx context.Context, input service.CreatePouchInput) (*pouch.Pouch, error)
}

// CreatePouchHandler handles POST /v1/pouch.
type CreatePouchHandler struct {
	PouchService pouchCreator
}

// NewCreatePouchHandler creates a new CreatePouchHandler.
func NewCreatePouchHandler(svc pouchCreator) *CreatePouchHandler {
	return &CreatePouchHandler{PouchService: svc}
}

// Register registers the create pouch endpoint with the Huma API.
func (h *CreatePouchHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-pouch",
		Method:      http.MethodPost,
		Path:        "/v1/pouch",
		Summary:     "Create a pouch",
		Description: "Creates a new pouch with a zero balance.",
		Tags:        []string{"Pouches"},
	}, h.handle)
}

func parseCreatePouchInput(input *CreatePouchInput) (service.CreatePouchInput, error) {
	ownerID, err := uuid.FromString(input.Body.OwnerID)
	if err != nil {
		return service.CreatePouchInput{}, huma.NewError(http.StatusBadRequest, "invalid ownerID", err)
	}

	var budgetAmount decimal.NullDecimal
	if input.Body.BudgetAmount != "" {
		parsed, err := decimal.NewFromString(input.Body.BudgetAmount)
		if err != nil {
			return service.CreatePouchInput{}, huma.NewError(http.StatusBadRequest, "invalid budgetAmount", err)
		}
		budgetAmount = decimal.NullDecimal{Decimal: parsed, Valid: true}
	}

	var budgetPeriod *string
	if input.Body.BudgetPeriod != "" {
		budgetPeriod = &input.Body.BudgetPeriod
	}

	return service.CreatePouchInput{
		OwnerID:      ownerID,
		Name:         input.Body.Name,
		Visibility:   pouch.Visibility(input.Body.Visibility),
		BudgetAmount: budgetAmount,
		BudgetPeriod: budgetPeriod,
	}, nil
}

func (h *CreatePouchHandler) handle(ctx context.Context, input *CreatePouchInput) (*CreatePouchOutput, error) {
	logData := logging.GetLogData(ctx)

	parsed, err := parseCreatePouchInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createPouchMs")
	}
	created, err := h.PouchService.CreatePouch(ctx, parsed)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.Translate("failed to create pouch", err)
	}

	if logData != nil {
		logData.AddData("pouchID", created.ID.String())
	}

	return &CreatePouchOutput{
		Status: http.StatusCreated,
		Body:   fromStorage(created),
	}, nil
}
