// Package httperr maps domain errors onto HTTP status errors so handlers
// don't repeat the translation.
package httperr

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/pouch-server/internal/errs"
)

// Translate wraps err in a huma status error: missing records become 404,
// rejected inputs 400, uniqueness violations 409, everything else 500.
// Errors that already carry a status pass through unchanged.
func Translate(message string, err error) error {
	var statusErr huma.StatusError
	if errors.As(err, &statusErr) {
		return err
	}

	switch {
	case errors.Is(err, errs.ErrNotFound):
		return huma.NewError(http.StatusNotFound, message, err)
	case errors.Is(err, errs.ErrValidation):
		return huma.NewError(http.StatusBadRequest, message, err)
	case errors.Is(err, errs.ErrConstraint):
		return huma.NewError(http.StatusConflict, message, err)
	}
	return huma.NewError(http.StatusInternalServerError, message, err)
}
