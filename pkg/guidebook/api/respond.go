package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/tripcraft/guidebook/pkg/guidebook"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// writeError maps engine errors onto HTTP statuses. Validation failures name
// the missing fields so forms can surface field-level messages; store
// failures surface as 500 and leave the client's form state intact to retry.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *guidebook.ValidationError
	if errors.As(err, &verr) {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, ErrorResponse{Error: verr.Error(), Fields: verr.Fields})
		return
	}

	switch {
	case isNotFound(err):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Error: err.Error()})
	case errors.Is(err, guidebook.ErrUnknownField),
		errors.Is(err, guidebook.ErrUnknownCategory),
		errors.Is(err, guidebook.ErrUnknownRefArray),
		errors.Is(err, guidebook.ErrInvalidContentType),
		errors.Is(err, guidebook.ErrBodyTypeMismatch),
		errors.Is(err, guidebook.ErrIndexOutOfRange),
		errors.Is(err, guidebook.ErrDuplicateRef):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: err.Error()})
	default:
		slog.Error("request failed", "path", r.URL.Path, "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: err.Error()})
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, guidebook.ErrCountryNotFound) ||
		errors.Is(err, guidebook.ErrCountryDetailNotFound) ||
		errors.Is(err, guidebook.ErrCityNotFound) ||
		errors.Is(err, guidebook.ErrContentObjectNotFound) ||
		errors.Is(err, guidebook.ErrGuidebookNotFound) ||
		errors.Is(err, guidebook.ErrDistrictNotFound)
}
