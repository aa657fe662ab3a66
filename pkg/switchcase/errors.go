package switchcase

import (
	"errors"
	"fmt"
)

// ErrorType categorizes dispatch errors for handling strategy
type ErrorType int

const (
	ErrorTypeUnknown          ErrorType = iota
	ErrorTypeMissingDefault             // Activation found no matching case and no default
	ErrorTypeDuplicateLabel             // Two cases in one group share a label
	ErrorTypeDuplicateDefault           // More than one default handler declared
	ErrorTypeMalformedLabel             // Label value is reserved or otherwise unusable
	ErrorTypeNilHandler                 // Handler declared without a behavior
)

// Sentinel targets for errors.Is checks
var (
	ErrMissingDefault   = errors.New("no case matched and no default handler is declared")
	ErrDuplicateLabel   = errors.New("duplicate case label")
	ErrDuplicateDefault = errors.New("more than one default handler")
	ErrMalformedLabel   = errors.New("malformed case label")
	ErrNilHandler       = errors.New("handler has no behavior")
)

// DispatchError wraps declaration-time and activation-time failures with the
// group they occurred in. Declaration malformations are reported when the
// group is built; a missing default is reported by Activate.
type DispatchError struct {
	Type  ErrorType
	Group string // group name, may be empty
	Label string // offending label rendered with %v, if any
	Err   error  // sentinel target for errors.Is
}

// Error implements error interface
func (e *DispatchError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("switch group %q: label %q: %v", e.Group, e.Label, e.Err)
	}
	return fmt.Sprintf("switch group %q: %v", e.Group, e.Err)
}

// Unwrap implements error unwrapping
func (e *DispatchError) Unwrap() error {
	return e.Err
}

// newDispatchError creates a new dispatch error
func newDispatchError(errType ErrorType, group, label string, err error) *DispatchError {
	return &DispatchError{
		Type:  errType,
		Group: group,
		Label: label,
		Err:   err,
	}
}
