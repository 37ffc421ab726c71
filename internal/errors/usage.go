package errors

import "fmt"

// UsageError is a fatal argument or configuration problem detected before
// any scanning starts. It maps to exit code 2, unlike violations which map
// to exit code 1.
type UsageError struct {
	Argument string
	Message  string
}

// Error implements the error interface
func (e *UsageError) Error() string {
	if e.Argument != "" {
		return fmt.Sprintf("usage error: %s: %s", e.Argument, e.Message)
	}
	return fmt.Sprintf("usage error: %s", e.Message)
}

// NewUsageError creates a usage error naming the bad argument.
func NewUsageError(argument, format string, args ...interface{}) *UsageError {
	return &UsageError{
		Argument: argument,
		Message:  fmt.Sprintf(format, args...),
	}
}
