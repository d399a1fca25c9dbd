package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/pouch-server/internal/errs"
	"github.com/carson-networks/pouch-server/internal/service"
	storagetx "github.com/carson-networks/pouch-server/internal/storage/transaction"
)

// mockTransactionCreator is a mock for transactionCreator.
type mockTransactionCreator struct {
	mock.Mock
}

func (m *mockTransactionCreator) CreateTransaction(ctx context.Context, input service.CreateTransactionInput) (*service.Transaction, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Transaction), args.Error(1)
}

// newTestAPI registers the handler against a humatest API and returns it.
func newTestAPI(t *testing.T, svc transactionCreator) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateTransactionHandler(svc).Register(api)
	return api
}

func serviceTransaction(input service.CreateTransactionInput) *service.Transaction {
	return &service.Transaction{
		ID:          uuid.Must(uuid.NewV4()),
		OwnerID:     input.OwnerID,
		AccountID:   input.AccountID,
		PouchID:     input.PouchID,
		Amount:      input.Amount,
		Currency:    input.Currency,
		Type:        input.Type,
		Description: input.Description,
		Category:    input.Category,
		Recurring:   input.Recurring,
	}
}

// -- parseCreateTransactionInput unit tests --
// These verify individual parsed field values which the HTTP tests don't assert.

func TestParseCreateTransactionInput_ValidInput(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())
	pouchID := uuid.Must(uuid.NewV4())

	input := &CreateTransactionInput{
		Body: CreateTransactionBody{
			OwnerID:     ownerID.String(),
			AccountID:   accountID.String(),
			Amount:      "123.45",
			Currency:    "USD",
			Type:        1,
			Description: "Weekly shop",
			PouchID:     pouchID.String(),
		},
	}

	parsed, err := parseCreateTransactionInput(input)
	assert.NoError(t, err)
	assert.Equal(t, ownerID, parsed.OwnerID)
	assert.Equal(t, accountID, parsed.AccountID)
	assert.True(t, parsed.Amount.Equal(decimal.RequireFromString("123.45")))
	assert.Equal(t, storagetx.TypeExpense, parsed.Type)
	assert.Equal(t, "Weekly shop", parsed.Description)
	assert.True(t, parsed.PouchID.Valid)
	assert.Equal(t, pouchID, parsed.PouchID.UUID)
}

func TestParseCreateTransactionInput_SplitsParsed(t *testing.T) {
	splitPouch := uuid.Must(uuid.NewV4())

	input := &CreateTransactionInput{
		Body: CreateTransactionBody{
			OwnerID:   uuid.Must(uuid.NewV4()).String(),
			AccountID: uuid.Must(uuid.NewV4()).String(),
			Amount:    "100.00",
			Currency:  "USD",
			Splits: []Split{
				{PouchID: splitPouch.String(), Amount: "40.00"},
			},
		},
	}

	parsed, err := parseCreateTransactionInput(input)
	assert.NoError(t, err)
	assert.Len(t, parsed.Splits, 1)
	assert.Equal(t, splitPouch, parsed.Splits[0].PouchID)
	assert.True(t, parsed.Splits[0].Amount.Equal(decimal.RequireFromString("40.00")))
}

// -- HTTP integration tests (full Huma stack via humatest) --

func TestHTTP_CreateTransaction_Success(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockTransactionCreator)
	mockSvc.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(input service.CreateTransactionInput) bool {
		return input.OwnerID == ownerID &&
			input.AccountID == accountID &&
			input.Amount.Equal(decimal.RequireFromString("12.50")) &&
			input.Type == storagetx.TypeExpense
	})).Return(serviceTransaction(service.CreateTransactionInput{
		OwnerID:   ownerID,
		AccountID: accountID,
		Amount:    decimal.RequireFromString("12.50"),
		Currency:  "USD",
		Type:      storagetx.TypeExpense,
	}), nil)

	resp := newTestAPI(t, mockSvc).Post("/v1/transaction", CreateTransactionBody{
		OwnerID:   ownerID.String(),
		AccountID: accountID.String(),
		Amount:    "12.50",
		Currency:  "USD",
		Type:      1,
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body Transaction
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, accountID.String(), body.AccountID)
	assert.Equal(t, "12.5", body.Amount)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_MissingRequiredFields(t *testing.T) {
	mockSvc := new(mockTransactionCreator)

	// Huma schema validation rejects the request before the handler runs.
	resp := newTestAPI(t, mockSvc).Post("/v1/transaction", CreateTransactionBody{
		OwnerID: uuid.Must(uuid.NewV4()).String(),
		// AccountID, Amount, Currency omitted
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateTransaction")
}

func TestHTTP_CreateTransaction_InvalidAccountID(t *testing.T) {
	mockSvc := new(mockTransactionCreator)

	// Huma's format:"uuid" schema validation rejects this before the handler runs.
	resp := newTestAPI(t, mockSvc).Post("/v1/transaction", CreateTransactionBody{
		OwnerID:   uuid.Must(uuid.NewV4()).String(),
		AccountID: "not-a-uuid",
		Amount:    "10.00",
		Currency:  "USD",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateTransaction")
}

func TestHTTP_CreateTransaction_InvalidAmount(t *testing.T) {
	mockSvc := new(mockTransactionCreator)

	// Amount is a plain string with no Huma format tag, so
	// parseCreateTransactionInput handles validation and returns 400.
	resp := newTestAPI(t, mockSvc).Post("/v1/transaction", CreateTransactionBody{
		OwnerID:   uuid.Must(uuid.NewV4()).String(),
		AccountID: uuid.Must(uuid.NewV4()).String(),
		Amount:    "not-a-decimal",
		Currency:  "USD",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateTransaction")
}

func TestHTTP_CreateTransaction_ValidationErrorMapsTo400(t *testing.T) {
	mockSvc := new(mockTransactionCreator)
	mockSvc.On("CreateTransaction", mock.Anything, mock.Anything).
		Return(nil, &errs.ValidationError{Field: "amount", Reason: "must be positive"})

	resp := newTestAPI(t, mockSvc).Post("/v1/transaction", CreateTransactionBody{
		OwnerID:   uuid.Must(uuid.NewV4()).String(),
		AccountID: uuid.Must(uuid.NewV4()).String(),
		Amount:    "-10.00",
		Currency:  "USD",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_NotFoundMapsTo404(t *testing.T) {
	mockSvc := new(mockTransactionCreator)
	mockSvc.On("CreateTransaction", mock.Anything, mock.Anything).
		Return(nil, &errs.NotFoundError{Collection: "accounts", ID: "x"})

	resp := newTestAPI(t, mockSvc).Post("/v1/transaction", CreateTransactionBody{
		OwnerID:   uuid.Must(uuid.NewV4()).String(),
		AccountID: uuid.Must(uuid.NewV4()).String(),
		Amount:    "10.00",
		Currency:  "USD",
	})

	assert.Equal(t, http.StatusNotFound, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_ServiceError(t *testing.T) {
	mockSvc := new(mockTransactionCreator)
	mockSvc.On("CreateTransaction", mock.Anything, mock.Anything).
		Return(nil, errors.New("database unavailable"))

	resp := newTestAPI(t, mockSvc).Post("/v1/transaction", CreateTransactionBody{
		OwnerID:   uuid.Must(uuid.NewV4()).String(),
		AccountID: uuid.Must(uuid.NewV4()).String(),
		Amount:    "10.00",
		Currency:  "USD",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	mockSvc.AssertExpectations(t)
}
