package marketdata

import (
	"errors"
	"fmt"
)

// Collaborator failure causes. CollaboratorError matches these with errors.Is.
var (
	ErrMissingData = errors.New("missing forecast data")
	ErrTransport   = errors.New("time-series transport failure")
	ErrDecode      = errors.New("time-series decode failure")
	ErrInference   = errors.New("forecast inference failure")

	// ErrInsufficientHistory is an inference failure raised before the model runs.
	ErrInsufficientHistory = fmt.Errorf("%w: insufficient price history", ErrInference)
)

// ErrorKind classifies a collaborator failure.
type ErrorKind string

const (
	KindMissingData ErrorKind = "missing_data"
	KindTransport   ErrorKind = "transport"
	KindDecode      ErrorKind = "decode"
	KindInference   ErrorKind = "inference"
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindMissingData:
		return ErrMissingData
	case KindTransport:
		return ErrTransport
	case KindDecode:
		return ErrDecode
	case KindInference:
		return ErrInference
	}
	return nil
}

// CollaboratorError is the typed failure surfaced when forecast acquisition aborts a run.
type CollaboratorError struct {
	Kind   ErrorKind
	Symbol string
	Err    error
}

func (e *CollaboratorError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Symbol, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Symbol, e.Kind, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for this error's kind.
func (e *CollaboratorError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// Classify wraps err in a CollaboratorError, picking decode or transport for
// source failures and inference for oracle failures.
func Classify(symbol string, err error, fromOracle bool) *CollaboratorError {
	var ce *CollaboratorError
	if errors.As(err, &ce) {
		return ce
	}
	kind := KindTransport
	switch {
	case fromOracle || errors.Is(err, ErrInference):
		kind = KindInference
	case errors.Is(err, ErrDecode):
		kind = KindDecode
	case errors.Is(err, ErrMissingData):
		kind = KindMissingData
	}
	return &CollaboratorError{Kind: kind, Symbol: symbol, Err: err}
}
