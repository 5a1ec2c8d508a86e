package crosscheck

import "fmt"

// BurnAddress is the Solana system program address. It shows up as the
// counterparty of mint and burn transfers and is never a real trader,
// so it is excluded from trader sets.
const BurnAddress = "11111111111111111111111111111111"

// ValidationError indicates a malformed cross-check request. It is raised
// before any upstream I/O and maps to a client error at the HTTP layer.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
