package calldata

import (
	"errors"
	"fmt"
	"strings"

	geth_abi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"

	calldataerrors "github.com/smartcontractkit/calldata/errors"
	abiutils "github.com/smartcontractkit/calldata/internal/utils/abi"
	"github.com/smartcontractkit/calldata/types"
)

// Decoder decodes call data and event logs against one fixed contract interface.
//
// A Decoder is immutable once built and safe for concurrent use.
type Decoder struct {
	name    string
	abi     geth_abi.ABI
	methods map[types.Selector]geth_abi.Method
	events  map[common.Hash]geth_abi.Event
	lggr    Logger
}

// NewDecoder parses abiJSON and indexes its functions by selector and its events by topic.
// It fails if two functions share a selector or two events share a topic.
func NewDecoder(name, abiJSON string, opts ...Option) (*Decoder, error) {
	parsed, err := geth_abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s ABI: %w", name, err)
	}

	d := &Decoder{
		name:    name,
		abi:     parsed,
		methods: make(map[types.Selector]geth_abi.Method, len(parsed.Methods)),
		events:  make(map[common.Hash]geth_abi.Event, len(parsed.Events)),
		lggr:    LoggerFromOptions(opts...),
	}

	for _, method := range parsed.Methods {
		sel, _ := types.SelectorOf(method.ID)
		if prev, ok := d.methods[sel]; ok {
			return nil, fmt.Errorf("%s ABI: selector %s is shared by %s and %s", name, sel, prev.Sig, method.Sig)
		}
		d.methods[sel] = method
	}

	for _, event := range parsed.Events {
		if event.Anonymous {
			continue
		}
		if prev, ok := d.events[event.ID]; ok {
			return nil, fmt.Errorf("%s ABI: topic %s is shared by %s and %s", name, event.ID, prev.Sig, event.Sig)
		}
		d.events[event.ID] = event
	}

	return d, nil
}

// MustNewDecoder is like NewDecoder but panics on error. It is meant for the fixed interfaces
// bundled with this module.
func MustNewDecoder(name, abiJSON string, opts ...Option) *Decoder {
	d, err := NewDecoder(name, abiJSON, opts...)
	if err != nil {
		panic(err)
	}

	return d
}

// Name returns the name of the contract interface.
func (d *Decoder) Name() string {
	return d.name
}

// Logger returns the logger the decoder reports to.
func (d *Decoder) Logger() Logger {
	return d.lggr
}

// Selector returns the selector of the named function.
func (d *Decoder) Selector(name string) (types.Selector, error) {
	method, ok := d.abi.Methods[name]
	if !ok {
		return types.Selector{}, fmt.Errorf("function %s not found in %s ABI", name, d.name)
	}
	sel, _ := types.SelectorOf(method.ID)

	return sel, nil
}

// HasSelector reports whether the leading 4 bytes of data match a function of the interface.
// The arguments are not inspected.
func (d *Decoder) HasSelector(data []byte) bool {
	sel, ok := types.SelectorOf(data)
	if !ok {
		return false
	}
	_, ok = d.methods[sel]

	return ok
}

// DecodeFunctionData decodes a full call data payload (with the function selector at the front
// of it).
//
// It returns an *UnknownSelectorError when the selector matches no function of the interface
// and a *StructuralDecodeError when the arguments are malformed.
func (d *Decoder) DecodeFunctionData(data []byte) (*types.DecodedCall, error) {
	sel, ok := types.SelectorOf(data)
	if !ok {
		return nil, calldataerrors.NewShortCallDataError(d.name, len(data))
	}
	method, ok := d.methods[sel]
	if !ok {
		return nil, calldataerrors.NewUnknownSelectorError(d.name, sel.String())
	}

	args, err := abiutils.Decode(method.Inputs, data[types.SelectorLength:])
	if err != nil {
		var structural *calldataerrors.StructuralDecodeError
		if errors.As(err, &structural) {
			return nil, structural.WithFunction(method.RawName)
		}

		return nil, calldataerrors.NewStructuralDecodeError("decode failed", err).WithFunction(method.RawName)
	}

	return &types.DecodedCall{
		FunctionName: method.RawName,
		Selector:     sel,
		Inputs:       method.Inputs,
		Args:         args,
	}, nil
}

// TryDecodeFunctionData is the best-effort counterpart of DecodeFunctionData: failures are
// logged and reported as false.
func (d *Decoder) TryDecodeFunctionData(data []byte) (*types.DecodedCall, bool) {
	call, err := d.DecodeFunctionData(data)
	if err != nil {
		d.logFailure(err)
		return nil, false
	}

	return call, true
}

// IsCall reports whether data is a well formed call to any function of the interface.
func (d *Decoder) IsCall(data []byte) bool {
	_, ok := d.TryDecodeFunctionData(data)
	return ok
}

// IsFunction reports whether data is a well formed call to the named function.
func (d *Decoder) IsFunction(name string, data []byte) bool {
	sel, err := d.Selector(name)
	if err != nil {
		d.lggr.Warnf("%v", err)
		return false
	}
	if got, ok := types.SelectorOf(data); !ok || got != sel {
		return false
	}

	return d.IsCall(data)
}

// DecodeFunction decodes data and requires it to be a call to the named function. A call that
// decodes as another function of the same interface yields a *FunctionMismatchError.
//
// name is the key of the function in the parsed ABI, so the second overload of transfer is
// named transfer0. The match is made on the selector, while the decoded call keeps the name
// declared in the ABI.
func (d *Decoder) DecodeFunction(name string, data []byte) (*types.DecodedCall, error) {
	sel, err := d.Selector(name)
	if err != nil {
		return nil, err
	}

	call, err := d.DecodeFunctionData(data)
	if err != nil {
		return nil, err
	}
	if call.Selector != sel {
		return nil, calldataerrors.NewFunctionMismatchError(name, d.methods[call.Selector].Name)
	}

	return call, nil
}

// EncodeFunctionData packs a call to the named function.
func (d *Decoder) EncodeFunctionData(name string, args ...any) ([]byte, error) {
	data, err := d.abi.Pack(name, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s.%s: %w", d.name, name, err)
	}

	return data, nil
}

// DecodeLog decodes an event log emitted by a contract implementing the interface. See
// DecodeEventLog.
func (d *Decoder) DecodeLog(log *gethtypes.Log) (*types.DecodedEvent, bool) {
	if log == nil {
		return nil, false
	}

	return d.DecodeEventLog(log.Topics, log.Data)
}

// DecodeEventLog decodes the topics and data of an event log. Logs come from historical chain
// data that routinely does not match, so failures are logged and reported as false.
func (d *Decoder) DecodeEventLog(topics []common.Hash, data []byte) (*types.DecodedEvent, bool) {
	event, err := d.decodeEvent(topics, data)
	if err != nil {
		d.lggr.Warnf("failed to decode %s event log: %v", d.name, err)
		return nil, false
	}

	return event, true
}

func (d *Decoder) decodeEvent(topics []common.Hash, data []byte) (*types.DecodedEvent, error) {
	if len(topics) == 0 {
		return nil, errors.New("log has no topics")
	}
	event, ok := d.events[topics[0]]
	if !ok {
		return nil, fmt.Errorf("unknown event topic %s", topics[0])
	}

	var indexed geth_abi.Arguments
	for _, input := range event.Inputs {
		if input.Indexed {
			indexed = append(indexed, input)
		}
	}
	if len(topics)-1 != len(indexed) {
		return nil, fmt.Errorf("%s expects %d indexed topics, log has %d", event.Name, len(indexed), len(topics)-1)
	}

	topicValues := make(map[string]any, len(indexed))
	if err := geth_abi.ParseTopicsIntoMap(topicValues, indexed, topics[1:]); err != nil {
		return nil, fmt.Errorf("%s topics: %w", event.Name, err)
	}

	values, err := abiutils.Decode(event.Inputs.NonIndexed(), data)
	if err != nil {
		return nil, fmt.Errorf("%s data: %w", event.Name, err)
	}

	args := make([]any, 0, len(event.Inputs))
	next := 0
	for _, input := range event.Inputs {
		if input.Indexed {
			args = append(args, topicValues[input.Name])
			continue
		}
		args = append(args, values[next])
		next++
	}

	return &types.DecodedEvent{
		EventName: event.RawName,
		Inputs:    event.Inputs,
		Args:      args,
	}, nil
}

// logFailure reports a failed decode. Unknown selectors are routine when classifying arbitrary
// call data and are only logged at debug level.
func (d *Decoder) logFailure(err error) {
	var unknown *calldataerrors.UnknownSelectorError
	if errors.As(err, &unknown) {
		d.lggr.Debugf("not a %s call: %v", d.name, err)
		return
	}
	d.lggr.Warnf("failed to decode %s call data: %v", d.name, err)
}
