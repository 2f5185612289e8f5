package cli

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/jacksmith/todo/internal/model"
)

// FormatError returns err prefixed with "error: " for CLI output.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return "error: " + err.Error()
}

// ResponseCode is the outcome recorded in a Response.
type ResponseCode int

const (
	ResponseFailed  ResponseCode = 0
	ResponseSuccess ResponseCode = 1
)

// Response is the envelope printed by commands run with --json. Recovered is
// set when unreadable stored tasks were reset while serving the command.
type Response struct {
	Code       ResponseCode `json:"code"`
	Message    string       `json:"message,omitempty"`
	Data       any          `json:"data"`
	ErrorCause string       `json:"errorCause,omitempty"`
	Recovered  bool         `json:"recovered,omitempty"`
}

// Success wraps data in a successful Response.
func Success(message string, data any) Response {
	return Response{Code: ResponseSuccess, Message: message, Data: data}
}

// Failure wraps err in a failed Response. Message names the error class and
// ErrorCause carries the full error text.
func Failure(err error) Response {
	return Response{Code: ResponseFailed, Message: ErrorKind(err), ErrorCause: err.Error()}
}

// ErrorKind classifies err by the task error it wraps.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return "not found"
	case errors.Is(err, model.ErrConflict):
		return "conflict"
	case errors.Is(err, model.ErrValidation):
		return "validation failed"
	case errors.Is(err, ErrAmbiguousID):
		return "ambiguous id"
	default:
		return "failed"
	}
}

// Write encodes r as indented JSON followed by a newline.
func (r Response) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
