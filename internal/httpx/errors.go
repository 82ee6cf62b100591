package httpx

import (
	"net/http"

	"github.com/sundayezeilo/repositories/internal/errx"
)

// ErrorKindToStatus maps errx.Kind to an HTTP status code.
// Lookups of unknown records are client errors in this API, so NotFound
// answers 400 rather than 404.
func ErrorKindToStatus(kind errx.Kind) int {
	switch kind {
	case errx.Invalid, errx.NotFound:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
