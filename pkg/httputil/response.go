package httputil

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/chartgrid/pkg/errors"
)

// ErrorBody is the JSON shape of an error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the code and message of an error response. Field
// names the offending document field of INVALID_DOCUMENT errors.
type ErrorDetail struct {
	Code    errors.Code `json:"code"`
	Field   string      `json:"field,omitempty"`
	Message string      `json:"message"`
}

// StatusFor maps an error code to an HTTP status.
func StatusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidDocument,
		errors.ErrCodeInvalidSize, errors.ErrCodeInvalidColor:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeSessionNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes err as a JSON error response and returns the status
// it used. Request bodies over the size limit are reported as 413.
func WriteError(w http.ResponseWriter, err error) int {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		WriteJSON(w, http.StatusRequestEntityTooLarge, ErrorBody{ErrorDetail{
			Code:    errors.ErrCodeInvalidInput,
			Message: err.Error(),
		}})
		return http.StatusRequestEntityTooLarge
	}

	detail := ErrorDetail{
		Code:    errors.GetCode(err),
		Field:   errors.GetField(err),
		Message: errors.UserMessage(err),
	}
	if detail.Code == "" {
		detail = ErrorDetail{Code: errors.ErrCodeInternal, Message: "internal error"}
	}
	status := StatusFor(detail.Code)
	WriteJSON(w, status, ErrorBody{detail})
	return status
}
