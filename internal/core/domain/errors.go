package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrSpamDetected marks a submission that tripped the honeypot. It is never
// surfaced to the caller as a failure: the transport layer renders a
// success-shaped response while the operator sees a warning log entry.
var ErrSpamDetected = errors.New("spam detected")

// FieldError is a single validation failure on one submitted field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ValidationError carries the full, ordered set of field errors for a
// submission. Malformed input is the expected case, not an exceptional one,
// so validation never short-circuits at the first failure.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// DuplicateError signals that the duplicate guard matched a recent prior
// submission. ExistingID references the conflicting record for audit logging;
// Window is the lookback span the caller must wait out.
type DuplicateError struct {
	Kind       string
	ExistingID int64
	Window     time.Duration
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s submission (existing id %d)", e.Kind, e.ExistingID)
}
