package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/pouch-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/pouch-server/internal/logging"
	"github.com/carson-networks/pouch-server/internal/service"
	"github.com/carson-networks/pouch-server/internal/storage/account"
)

// CreateAccountBody is the request body for creating an account.
type CreateAccountBody struct {
	OwnerID         string `json:"ownerID" required:"true" format:"uuid" doc:"Owner UUID"`
	Name            string `json:"name" required:"true" minLength:"1" doc:"Account name"`
	Type            int    `json:"type" minimum:"0" maximum:"5" doc:"Account type: 0=Cash, 1=Savings, 2=Credit, 3=Loan, 4=Crypto, 5=Investment"`
	Currency        string `json:"currency" required:"true" minLength:"3" maxLength:"3" doc:"ISO currency code"`
	StartingBalance string `json:"startingBalance,omitempty" doc:"Decimal starting balance, defaults to 0"`
}

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	Body CreateAccountBody
}

// CreateAccountOutput is the response for creating an account.
type CreateAccountOutput struct {
	Status int
	Body   Account
}

// accountCreator is the interface for creating accounts.
type accountCreator interface {
	CreateAccount(ctx context.Context, input service.CreateAccountInput) (*account.Account, error)
}

// CreateAccountHandler handles POST /v1/account.
type CreateAccountHandler struct {
	AccountService accountCreator
}

// NewCreateAccountHandler creates a new CreateAccountHandler.
func NewCreateAccountHandler(svc accountCreator) *CreateAccountHandler {
	return &CreateAccountHandler{AccountService: svc}
}

// Register registers the create account endpoint with the Huma API.
func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-account",
		Method:      http.MethodPost,
		Path:        "/v1/account",
		Summary:     "Create an account",
		Description: "Creates a new account with the given name, type, currency and starting balance.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func parseCreateAccountInput(input *CreateAccountInput) (service.CreateAccountInput, error) {
	ownerID, err := uuid.FromString(input.Body.OwnerID)
	if err != nil {
		return service.CreateAccountInput{}, huma.NewError(http.StatusBadRequest, "invalid ownerID", err)
	}

	startingBalanceStr := input.Body.StartingBalance
	if startingBalanceStr == "" {
		startingBalanceStr = "0"
	}
	startingBalance, err := decimal.NewFromString(startingBalanceStr)
	if err != nil {
		return service.CreateAccountInput{}, huma.NewError(http.StatusBadRequest, "invalid startingBalance", err)
	}

	return service.CreateAccountInput{
		OwnerID:         ownerID,
		Name:            input.Body.Name,
		Type:            account.Type(input.Body.Type),
		Currency:        input.Body.Currency,
		StartingBalance: startingBalance,
	}, nil
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	logData := logging.GetLogData(ctx)

	parsed, err := parseCreateAccountInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createAccountMs")
	}
	created, err := h.AccountService.CreateAccount(ctx, parsed)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.Translate("failed to create account", err)
	}

	if logData != nil {
		logData.AddData("accountID", created.ID.String())
	}

	return &CreateAccountOutput{
		Status: http.StatusCreated,
		Body:   fromStorage(created),
	}, nil
}
