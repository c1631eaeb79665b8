// Package contracts binds the fixed, versioned contract interfaces the engine understands to
// typed decoders.
package contracts

import (
	"errors"
	"fmt"

	geth_abi "github.com/ethereum/go-ethereum/accounts/abi"
	gethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/smartcontractkit/calldata"
	calldataerrors "github.com/smartcontractkit/calldata/errors"
	"github.com/smartcontractkit/calldata/types"
)

// Version identifies a release of a versioned contract interface.
type Version string

const (
	Version130 Version = "1.3.0"
	Version141 Version = "1.4.1"

	// VersionNone is used for interfaces that are not versioned.
	VersionNone Version = ""
)

// ErrUnsupportedVersion is returned when no decoder is bundled for the requested version.
var ErrUnsupportedVersion = errors.New("unsupported contract version")

// decodeAs decodes data as a call to the named function and copies its arguments into a T by
// argument name (see the abi struct tags).
func decodeAs[T any](d *calldata.Decoder, name string, data []byte) (*T, error) {
	call, err := d.DecodeFunction(name, data)
	if err != nil {
		return nil, err
	}

	out := new(T)
	if err := call.Inputs.Copy(out, call.Args); err != nil {
		return nil, fmt.Errorf("failed to copy %s arguments: %w", name, err)
	}

	return out, nil
}

// decodeEventAs decodes log as the named event and copies all of its arguments, indexed or not,
// into a T. Failures are logged and reported as false.
func decodeEventAs[T any](d *calldata.Decoder, name string, log *gethtypes.Log) (*T, bool) {
	event, ok := d.DecodeLog(log)
	if !ok {
		return nil, false
	}
	if event.EventName != name {
		d.Logger().Warnf("%s log is a %s event, expected %s", d.Name(), event.EventName, name)
		return nil, false
	}

	inputs := make(geth_abi.Arguments, len(event.Inputs))
	copy(inputs, event.Inputs)
	for i := range inputs {
		inputs[i].Indexed = false
	}

	out := new(T)
	if err := inputs.Copy(out, event.Args); err != nil {
		d.Logger().Warnf("failed to copy %s arguments: %v", name, err)
		return nil, false
	}

	return out, true
}

// checkOperation rejects operation values that are neither a call nor a delegatecall.
func checkOperation(function string, op uint8) error {
	if !types.OperationType(op).IsValid() {
		return calldataerrors.NewStructuralDecodeError(fmt.Sprintf("unknown operation %d", op), nil).
			WithFunction(function)
	}

	return nil
}

func unsupportedVersion(kind Kind, version Version) error {
	return fmt.Errorf("%w: %s %q", ErrUnsupportedVersion, kind, version)
}
