// Package response provides helpers for the JSON envelope the students
// API speaks:
//
//	{ "status": "error", "error": "field Name is required" }
//
// The UI writes it on its own health endpoint, reads it back out of
// failed API responses, and uses the same wording for presence-check
// failures on its forms.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response is the standard envelope.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes data as JSON with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// OK is the envelope for a successful call with nothing else to say.
func OK() Response {
	return Response{Status: StatusOK}
}

// ValidationError converts validator field errors into a single
// human-readable Response, one sentence per field joined with ", ".
//
//	{ "status": "error", "error": "field Name is required, field Age is required" }
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
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

// DecodeError extracts the error message from an error envelope body.
// It returns "" when body is not an envelope or carries no message.
func DecodeError(body []byte) string {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}
	return resp.Error
}
