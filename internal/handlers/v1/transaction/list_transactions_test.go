package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/pouch-server/internal/service"
	storagetx "github.com/carson-networks/pouch-server/internal/storage/transaction"
)

// mockTransactionLister is a mock for transactionLister.
type mockTransactionLister struct {
	mock.Mock
}

func (m *mockTransactionLister) ListTransactions(ctx context.Context, ownerID uuid.UUID, cursor *service.TransactionCursor) ([]service.Transaction, *service.TransactionCursor, error) {
	args := m.Called(ctx, ownerID, cursor)
	var rows []service.Transaction
	if args.Get(0) != nil {
		rows = args.Get(0).([]service.Transaction)
	}
	var next *service.TransactionCursor
	if args.Get(1) != nil {
		next = args.Get(1).(*service.TransactionCursor)
	}
	return rows, next, args.Error(2)
}

func newListTestAPI(t *testing.T, svc transactionLister) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewListTransactionsHandler(svc).Register(api)
	return api
}

func listedTransaction(ownerID uuid.UUID, description string) service.Transaction {
	return service.Transaction{
		ID:          uuid.Must(uuid.NewV4()),
		OwnerID:     ownerID,
		AccountID:   uuid.Must(uuid.NewV4()),
		Amount:      decimal.RequireFromString("10.00"),
		Currency:    "USD",
		Type:        storagetx.TypeExpense,
		Description: description,
	}
}

// -- parseListTransactionsInput unit tests --

func TestParseListTransactionsInput_NoCursor(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())

	parsedOwner, cursor, err := parseListTransactionsInput(&ListTransactionsInput{
		Body: ListTransactionsBody{OwnerID: ownerID.String()},
	})
	assert.NoError(t, err)
	assert.Equal(t, ownerID, parsedOwner)
	assert.Nil(t, cursor)
}

func TestParseListTransactionsInput_WithCursor(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())
	maxCreationTime := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	parsedOwner, cursor, err := parseListTransactionsInput(&ListTransactionsInput{
		Body: ListTransactionsBody{
			OwnerID: ownerID.String(),
			Cursor: &ListTransactionsCursor{
				Position:        40,
				Limit:           20,
				MaxCreationTime: maxCreationTime.Format(time.RFC3339),
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, ownerID, parsedOwner)
	require.NotNil(t, cursor)
	assert.Equal(t, 40, cursor.Position)
	assert.Equal(t, 20, cursor.Limit)
	assert.True(t, cursor.MaxCreationTime.Equal(maxCreationTime))
}

func TestParseListTransactionsInput_BadMaxCreationTime(t *testing.T) {
	_, _, err := parseListTransactionsInput(&ListTransactionsInput{
		Body: ListTransactionsBody{
			OwnerID: uuid.Must(uuid.NewV4()).String(),
			Cursor: &ListTransactionsCursor{
				Position:        0,
				Limit:           20,
				MaxCreationTime: "yesterday",
			},
		},
	})
	assert.Error(t, err)
}

// -- HTTP integration tests --

func TestHTTP_ListTransactions_FirstPage(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())
	rows := []service.Transaction{
		listedTransaction(ownerID, "coffee"),
		listedTransaction(ownerID, "lunch"),
	}
	next := &service.TransactionCursor{
		Position:        2,
		Limit:           2,
		MaxCreationTime: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
	}

	mockSvc := new(mockTransactionLister)
	mockSvc.On("ListTransactions", mock.Anything, ownerID, (*service.TransactionCursor)(nil)).
		Return(rows, next, nil)

	resp := newListTestAPI(t, mockSvc).Post("/v1/transaction/list", ListTransactionsBody{
		OwnerID: ownerID.String(),
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListTransactionsResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Transactions, 2)
	assert.Equal(t, "coffee", body.Transactions[0].Description)
	require.NotNil(t, body.NextCursor)
	assert.Equal(t, 2, body.NextCursor.Position)
	assert.Equal(t, 2, body.NextCursor.Limit)
	assert.Equal(t, "2026-02-01T12:00:00Z", body.NextCursor.MaxCreationTime)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListTransactions_CursorPassedThrough(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())
	maxCreationTime := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	mockSvc := new(mockTransactionLister)
	mockSvc.On("ListTransactions", mock.Anything, ownerID, mock.MatchedBy(func(cursor *service.TransactionCursor) bool {
		return cursor != nil &&
			cursor.Position == 4 &&
			cursor.Limit == 2 &&
			cursor.MaxCreationTime.Equal(maxCreationTime)
	})).Return([]service.Transaction{listedTransaction(ownerID, "last")}, nil, nil)

	resp := newListTestAPI(t, mockSvc).Post("/v1/transaction/list", ListTransactionsBody{
		OwnerID: ownerID.String(),
		Cursor: &ListTransactionsCursor{
			Position:        4,
			Limit:           2,
			MaxCreationTime: maxCreationTime.Format(time.RFC3339),
		},
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListTransactionsResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Transactions, 1)
	assert.Nil(t, body.NextCursor)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListTransactions_MissingOwnerID(t *testing.T) {
	mockSvc := new(mockTransactionLister)

	resp := newListTestAPI(t, mockSvc).Post("/v1/transaction/list", map[string]any{})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "ListTransactions")
}

func TestHTTP_ListTransactions_ServiceError(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockTransactionLister)
	mockSvc.On("ListTransactions", mock.Anything, ownerID, (*service.TransactionCursor)(nil)).
		Return(nil, nil, errors.New("database unavailable"))

	resp := newListTestAPI(t, mockSvc).Post("/v1/transaction/list", ListTransactionsBody{
		OwnerID: ownerID.String(),
	})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	mockSvc.AssertExpectations(t)
}
