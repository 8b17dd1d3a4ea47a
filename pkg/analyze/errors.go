package analyze

import "fmt"

// The pipeline surfaces every failure as one of a small set of typed
// errors so the caller can render a specific message. Nothing here is
// fatal to the hosting process.

// NoNumericDataError reports an operation that needs numeric columns the
// table does not have.
type NoNumericDataError struct {
	Op   string
	Need int
	Have int
}

func (e *NoNumericDataError) Error() string {
	return fmt.Sprintf("%s: need at least %d numeric column(s), have %d", e.Op, e.Need, e.Have)
}

// InsufficientDataError reports too few complete rows for the requested
// computation (for example more clusters than rows).
type InsufficientDataError struct {
	Op   string
	Need int
	Have int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: need at least %d complete row(s), have %d", e.Op, e.Need, e.Have)
}

// UnknownOperationError reports a dispatch miss.
type UnknownOperationError struct {
	Name string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation %q", e.Name)
}

// InvalidParameterError reports a request parameter that could not be
// coerced or is out of range.
type InvalidParameterError struct {
	Name   string
	Value  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%q: %s", e.Name, e.Value, e.Reason)
}
