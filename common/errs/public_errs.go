package errs

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/withstack"
)

// PublicError carries a user-facing message. The API error handler returns it
// to the caller verbatim instead of masking it as an internal error.
type PublicError struct {
	err     error
	message string
	code    string // optional, identifies the error condition for clients
}

func (p PublicError) Error() string {
	return p.err.Error()
}

func (p PublicError) Message() string {
	return p.message
}

func (p PublicError) Code() string {
	return p.code
}

func (p PublicError) Unwrap() error {
	return p.err
}

func NewPublicError(message string) error {
	return withstack.WithStackDepth(&PublicError{err: errors.New(message), message: message}, 1)
}

// WithPublicMessage wraps err with a user-facing message. Returns nil if err is nil.
func WithPublicMessage(err error, prefix string) error {
	if err == nil {
		return nil
	}
	message := err.Error()
	if prefix != "" {
		message = fmt.Sprintf("%s: %s", prefix, message)
	}
	return withstack.WithStackDepth(&PublicError{err: err, message: message}, 1)
}

// WithPublicCode wraps err with an explicit user-facing message and a
// machine-readable condition code. Returns nil if err is nil.
func WithPublicCode(err error, message string, code string) error {
	if err == nil {
		return nil
	}
	if message == "" {
		message = err.Error()
	}
	return withstack.WithStackDepth(&PublicError{err: err, message: message, code: code}, 1)
}
