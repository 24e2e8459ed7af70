// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here — along with
// the one mapping that actually matters: domain error → client-facing
// status and message. Handlers never translate errors themselves, and
// internal store/cache error text never reaches a client.
//
// Consistent response shapes also make life easier for API consumers —
// they always know what success and error responses look like.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/BehruzDev0000/learning-center/internal/types"

	"github.com/go-playground/validator/v10"
)

// Envelope is the uniform success shape:
//
//	{ "status": 201, "message": "success", "data": { ... } }
//
// Status is the outcome code (200 reads/updates, 201 creates,
// 204 deletes), Data the payload — a record, a list, or a deletion
// confirmation.
type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Response is the standard envelope for error cases:
//
//	{ "status": "error", "error": "email already exists" }
type Response struct {
	Status string `json:"status"` // "ok" or "error"
	Error  string `json:"error"`  // human-readable error detail
}

// Status string constants — use these instead of raw string literals so
// a typo is caught by the compiler rather than silently sending "eroor".
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Success wraps a payload in the uniform success envelope.
func Success(status int, data any) Envelope {
	return Envelope{
		Status:  status,
		Message: "success",
		Data:    data,
	}
}

// Deleted is the 204 confirmation envelope for delete operations, e.g.
//
//	{ "status": 204, "message": "success",
//	  "data": { "message": "course successfully deleted" } }
func Deleted(entity string) Envelope {
	return Envelope{
		Status:  http.StatusNoContent,
		Message: "success",
		Data:    map[string]string{"message": entity + " successfully deleted"},
	}
}

// FromError maps a domain error to the HTTP status and error envelope
// the client should see. Anything outside the taxonomy — a store or
// cache transport failure, a programming error — collapses to a generic
// 500 so internal details are never leaked.
func FromError(err error) (int, Response) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, types.ErrInvalidDateRange):
		status, message = http.StatusBadRequest, types.ErrInvalidDateRange.Error()
	case errors.Is(err, types.ErrDuplicateEmail):
		status, message = http.StatusConflict, types.ErrDuplicateEmail.Error()
	case errors.Is(err, types.ErrDuplicatePhone):
		status, message = http.StatusConflict, types.ErrDuplicatePhone.Error()
	case errors.Is(err, types.ErrCourseNotFound):
		status, message = http.StatusNotFound, types.ErrCourseNotFound.Error()
	case errors.Is(err, types.ErrStudentNotFound):
		status, message = http.StatusNotFound, types.ErrStudentNotFound.Error()
	}

	return status, Response{Status: StatusError, Error: message}
}

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	// Tell the client the body is JSON, not HTML or plain text.
	w.Header().Set("Content-Type", "application/json")

	// Write the HTTP status line (e.g. "HTTP/1.1 201 Created").
	// This must happen before any body bytes are written.
	w.WriteHeader(status)

	// json.NewEncoder(w) streams directly into w, avoiding an
	// intermediate buffer. Encode() appends a newline after the JSON —
	// handy for CLI testing.
	return json.NewEncoder(w).Encode(data)
}

// WriteEnvelope writes a success envelope using its own status as the
// HTTP status — except 204, which RFC 9110 forbids from carrying a
// body, so the confirmation envelope goes out as a 200 instead.
func WriteEnvelope(w http.ResponseWriter, env Envelope) error {
	status := env.Status
	if status == http.StatusNoContent {
		status = http.StatusOK
	}
	return WriteJSON(w, status, env)
}

// WriteError maps err through FromError and writes the result.
func WriteError(w http.ResponseWriter, err error) error {
	status, resp := FromError(err)
	return WriteJSON(w, status, resp)
}

// GeneralError wraps any Go error into our standard Response shape.
// Use this for request-shape problems (empty body, bad id, decode
// errors) where the error text came from us, not from a collaborator.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError converts a slice of validator.FieldError values into
// a single human-readable Response.
//
// The go-playground/validator package returns one FieldError per failing
// struct field. We convert each to a plain English sentence and join them
// with ", " so the client sees a single descriptive error string.
//
// Example output:
//
//	{ "status": "error", "error": "field Name is required, field Email must be a valid email address" }
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		// "required" tag — field was missing or zero-valued
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		// "email" tag — field did not match email format
		case "email":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be a valid email address", e.Field()))
		// "e164" tag — field did not match international phone format
		case "e164":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be a valid phone number", e.Field()))
		// "datetime" tag — field did not match the calendar-date format
		case "datetime":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be a date in YYYY-MM-DD form", e.Field()))
		// Catch-all for any other validation tag (min, max, len, etc.)
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMessages, ", "),
	}
}
