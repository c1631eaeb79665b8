package types

import "fmt"

// OperationType is the execution mode of a call made on behalf of a Safe.
type OperationType uint8

const (
	// OperationCall is a regular message call.
	OperationCall OperationType = 0
	// OperationDelegateCall executes the target code in the caller's storage context.
	OperationDelegateCall OperationType = 1
)

// IsValid reports whether o is one of the known operation types.
func (o OperationType) IsValid() bool {
	return o == OperationCall || o == OperationDelegateCall
}

func (o OperationType) String() string {
	switch o {
	case OperationCall:
		return "call"
	case OperationDelegateCall:
		return "delegatecall"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(o))
	}
}
