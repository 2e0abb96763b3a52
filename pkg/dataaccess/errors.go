package dataaccess

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies a failure for the caller-facing taxonomy.
type ErrorKind string

const (
	// KindDatabaseError covers anything surfaced by the driver: connection
	// refusal, auth failure, SQL syntax errors, timeouts.
	KindDatabaseError ErrorKind = "DatabaseError"
	// KindValidationError covers identifiers failing the lexical rule.
	KindValidationError ErrorKind = "ValidationError"
	// KindNotFoundError covers lexically valid identifiers with no
	// matching table.
	KindNotFoundError ErrorKind = "NotFoundError"
	// KindUnexpectedError is the defensive catch-all. Rare, and the only
	// category worth alerting on.
	KindUnexpectedError ErrorKind = "UnexpectedError"
)

// ClassifiedError is a failure already converted for textual rendering.
// Errors never cross the protocol boundary as faults; they are always
// returned to the caller as the rendered message.
type ClassifiedError struct {
	Kind    ErrorKind
	Message string
}

func (e *ClassifiedError) Error() string { return e.Message }

// Render produces the caller-facing one-line message.
func (e *ClassifiedError) Render() string {
	switch e.Kind {
	case KindDatabaseError:
		return "MySQL error: " + e.Message
	case KindUnexpectedError:
		return "Unexpected error: " + e.Message
	default:
		return e.Message
	}
}

// databaseError renders an error that crossed the Conn boundary. Context
// cancellation and deadline expiry originate with the caller, not the
// server, so they render as unexpected; everything else arrived through
// the driver path and renders as a MySQL error.
func databaseError(err error) string {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return unexpectedError(err)
	}
	return (&ClassifiedError{Kind: KindDatabaseError, Message: err.Error()}).Render()
}

func unexpectedError(v interface{}) string {
	return (&ClassifiedError{Kind: KindUnexpectedError, Message: fmt.Sprintf("%v", v)}).Render()
}
