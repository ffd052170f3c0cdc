package apperrors

import (
	"errors"
	"fmt"
)

// ErrMissingInput indicates a required key (locality, country code) was absent
// and no request was issued.
var ErrMissingInput = errors.New("missing input")

// ErrTransport indicates an upstream answered with a non-2xx status or could not be reached.
var ErrTransport = errors.New("transport error")

// ErrApplication indicates a 2xx response whose payload reported failure.
var ErrApplication = errors.New("application error")

// ErrTimeout indicates a readiness signal did not arrive within its window.
var ErrTimeout = errors.New("timed out")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUnknownCurrency indicates a currency code absent from the fetched rate table.
var ErrUnknownCurrency = errors.New("unknown currency")

// MissingInputError names the absent field. Message is what the user sees.
type MissingInputError struct {
	Field   string
	Message string
}

func MissingInput(field, message string) *MissingInputError {
	return &MissingInputError{Field: field, Message: message}
}

func (e *MissingInputError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("missing %s", e.Field)
}

func (e *MissingInputError) Is(target error) bool { return target == ErrMissingInput }

// TransportError carries the upstream status code. StatusCode is zero when the
// request never produced a response.
type TransportError struct {
	Source     string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	source := e.Source
	if source == "" {
		source = "API"
	}
	switch {
	case e.StatusCode == 0 && e.Err != nil:
		return fmt.Sprintf("%s request failed: %v", source, e.Err)
	case e.Body != "":
		return fmt.Sprintf("%s error: %d: %s", source, e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("%s error: %d", source, e.StatusCode)
	}
}

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

func (e *TransportError) Unwrap() error { return e.Err }

// ApplicationError is a well-formed response that reports failure in its body.
type ApplicationError struct {
	Source string
	Reason string
}

func (e *ApplicationError) Error() string {
	if e.Source == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Reason)
}

func (e *ApplicationError) Is(target error) bool { return target == ErrApplication }

// StatusCode returns the HTTP status of a TransportError anywhere in err's chain.
func StatusCode(err error) (int, bool) {
	var te *TransportError
	if errors.As(err, &te) && te.StatusCode != 0 {
		return te.StatusCode, true
	}
	return 0, false
}
