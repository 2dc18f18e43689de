package world

import "fmt"

// ContractError reports a caller or configuration mismatch that the sampler
// cannot continue past. It is returned for invalid shapes and used as the panic
// value when a derived block index falls outside the column.
type ContractError struct {
	Op     string
	Reason string
}

func (e *ContractError) Error() string {
	return "world: contract violation in " + e.Op + ": " + e.Reason
}

func contractf(op, format string, args ...any) *ContractError {
	return &ContractError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
