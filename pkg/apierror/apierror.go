// Package apierror defines the closed set of error kinds the API can return
// and the single table mapping them to HTTP status codes and user-visible
// messages. Internal error detail (driver text, hash parse errors) never
// reaches the client; only the fixed message set below does.
package apierror

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind enumerates every externally visible error condition.
type Kind int

const (
	KindStoreFailure Kind = iota // default for anything unclassified
	KindBadRequest
	KindInvalidCredentials
	KindNotFound
	KindUserExists
	KindSessionFailure
)

// Error carries a Kind plus the wrapped internal cause. Message is only used
// for BadRequest, where the validation failure itself is the user-facing text.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Public() + ": " + e.Err.Error()
	}
	return e.Public()
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status for the kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindInvalidCredentials:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindUserExists:
		return http.StatusConflict
	case KindSessionFailure, KindStoreFailure:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// Public returns the user-visible message for the kind.
func (e *Error) Public() string {
	switch e.Kind {
	case KindBadRequest:
		if e.Message != "" {
			return e.Message
		}
		return "Invalid request"
	case KindInvalidCredentials:
		return "Invalid credentials"
	case KindNotFound:
		return "Not found"
	case KindUserExists:
		return "User already exists"
	case KindSessionFailure:
		return "Session error"
	case KindStoreFailure:
		return "Database error"
	}
	return "Database error"
}

func BadRequest(msg string) *Error       { return &Error{Kind: KindBadRequest, Message: msg} }
func InvalidCredentials() *Error         { return &Error{Kind: KindInvalidCredentials} }
func NotFound() *Error                   { return &Error{Kind: KindNotFound} }
func UserExists() *Error                 { return &Error{Kind: KindUserExists} }
func SessionFailure(err error) *Error    { return &Error{Kind: KindSessionFailure, Err: err} }
func StoreFailure(err error) *Error      { return &Error{Kind: KindStoreFailure, Err: err} }
func Wrap(kind Kind, err error) *Error   { return &Error{Kind: kind, Err: err} }

// Classify is the single boundary between internal errors and the external
// taxonomy. Errors already carrying a Kind pass through; everything unknown
// deliberately collapses to StoreFailure so no new internal error type can
// leak an unmapped message.
func Classify(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return StoreFailure(err)
}

// Write renders err through Classify as the response, aborting the request.
// Every error body has exactly one field: {"error": message}.
func Write(c *gin.Context, err error) {
	ae := Classify(err)
	c.AbortWithStatusJSON(ae.Status(), gin.H{"error": ae.Public()})
}
