package account

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/pouch-server/internal/errs"
)

// mockAccountDeactivator is a mock for accountDeactivator.
type mockAccountDeactivator struct {
	mock.Mock
}

func (m *mockAccountDeactivator) DeactivateAccount(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newDeactivateTestAPI(t *testing.T, svc accountDeactivator) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewDeactivateAccountHandler(svc).Register(api)
	return api
}

func TestHTTP_DeactivateAccount_Success(t *testing.T) {
	id := uuid.Must(uuid.NewV4())

	mockSvc := new(mockAccountDeactivator)
	mockSvc.On("DeactivateAccount", mock.Anything, id).Return(nil)

	resp := newDeactivateTestAPI(t, mockSvc).Delete("/v1/account/" + id.String())

	assert.Equal(t, http.StatusNoContent, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_DeactivateAccount_UnknownAccount(t *testing.T) {
	id := uuid.Must(uuid.NewV4())

	mockSvc := new(mockAccountDeactivator)
	mockSvc.On("DeactivateAccount", mock.Anything, id).
		Return(&errs.NotFoundError{Collection: "accounts", ID: id.String()})

	resp := newDeactivateTestAPI(t, mockSvc).Delete("/v1/account/" + id.String())

	assert.Equal(t, http.StatusNotFound, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_DeactivateAccount_InvalidID(t *testing.T) {
	mockSvc := new(mockAccountDeactivator)

	// Huma's format:"uuid" path validation rejects this before the handler.
	resp := newDeactivateTestAPI(t, mockSvc).Delete("/v1/account/not-a-uuid")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "DeactivateAccount")
}
