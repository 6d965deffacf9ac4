package httpx

import (
	"errors"
	"net/http"

	"github.com/vds-erp/vds-erp/internal/shared"
)

// RespondError maps domain errors to HTTP failure responses. Internal errors
// are reported with a generic message only; the caller is expected to log the
// full detail server-side.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, shared.ErrDuplicate):
		Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, shared.ErrConflict):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, shared.ErrInvalidCredentials):
		Error(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, shared.ErrUnauthorized):
		Error(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, shared.ErrForbidden):
		Error(w, http.StatusForbidden, "Forbidden")
	default:
		Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
