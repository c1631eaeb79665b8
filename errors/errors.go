package calldataerrors

import (
	"fmt"
)

// UnknownSelectorError is returned when the leading 4 bytes of call data match no function of the
// contract interface used to decode it.
type UnknownSelectorError struct {
	Contract string
	Selector string
	// DataLength is set when the call data is too short to carry a selector at all.
	DataLength int
}

// Error implements the error interface.
func (e *UnknownSelectorError) Error() string {
	if e.Selector == "" {
		return fmt.Sprintf("call data too short for a function selector: %d bytes (contract %s)", e.DataLength, e.Contract)
	}

	return fmt.Sprintf("unknown function selector %s for contract %s", e.Selector, e.Contract)
}

func NewUnknownSelectorError(contract, selector string) *UnknownSelectorError {
	return &UnknownSelectorError{Contract: contract, Selector: selector}
}

func NewShortCallDataError(contract string, dataLength int) *UnknownSelectorError {
	return &UnknownSelectorError{Contract: contract, DataLength: dataLength}
}

// StructuralDecodeError is returned when offsets or lengths inside an ABI encoded buffer are
// inconsistent with the declared parameter types, or when a type is not supported.
type StructuralDecodeError struct {
	Function string
	Reason   string
	Err      error
}

// Error implements the error interface.
func (e *StructuralDecodeError) Error() string {
	msg := "structural decode error"
	if e.Function != "" {
		msg += " in " + e.Function
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *StructuralDecodeError) Unwrap() error {
	return e.Err
}

// WithFunction returns a copy of the error attributed to the named function.
func (e *StructuralDecodeError) WithFunction(name string) *StructuralDecodeError {
	return &StructuralDecodeError{Function: name, Reason: e.Reason, Err: e.Err}
}

func NewStructuralDecodeError(reason string, err error) *StructuralDecodeError {
	return &StructuralDecodeError{Reason: reason, Err: err}
}

// FunctionMismatchError is returned by typed accessors when the call data decodes successfully
// but as a different function of the same interface than the one requested.
type FunctionMismatchError struct {
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *FunctionMismatchError) Error() string {
	return fmt.Sprintf("function mismatch: expected %s, call data decodes as %s", e.Expected, e.Actual)
}

func NewFunctionMismatchError(expected, actual string) *FunctionMismatchError {
	return &FunctionMismatchError{Expected: expected, Actual: actual}
}

// TruncatedBatchError is returned when packed MultiSend data ends before an entry declared by
// its header (or the header itself) is complete.
type TruncatedBatchError struct {
	// Index is the zero based position of the incomplete entry in the batch.
	Index int
	// Offset is where the incomplete part starts in the packed buffer.
	Offset int
	Want   uint64
	Have   int
}

// Error implements the error interface.
func (e *TruncatedBatchError) Error() string {
	return fmt.Sprintf("truncated multisend batch: entry %d at offset %d needs %d bytes, %d available",
		e.Index, e.Offset, e.Want, e.Have)
}

func NewTruncatedBatchError(index, offset int, want uint64, have int) *TruncatedBatchError {
	return &TruncatedBatchError{Index: index, Offset: offset, Want: want, Have: have}
}
