package abi

import (
	"fmt"
	"strings"

	geth_abi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/holiman/uint256"

	calldataerrors "github.com/smartcontractkit/calldata/errors"
	"github.com/smartcontractkit/calldata/internal/utils/safecast"
)

// wordSize is the size of one head slot in the standard ABI encoding.
const wordSize = 32

// ParseArguments builds an argument list from a JSON array of ABI parameters, e.g.
// `[{"type":"address"},{"type":"tuple","components":[{"name":"data","type":"bytes"}]}]`.
func ParseArguments(abiStr string) (geth_abi.Arguments, error) {
	// Create a dummy method with arguments
	inDef := fmt.Sprintf(`[{ "name" : "method", "type": "function", "inputs": %s}]`, abiStr)
	inAbi, err := geth_abi.JSON(strings.NewReader(inDef))
	if err != nil {
		return nil, calldataerrors.NewStructuralDecodeError("unsupported parameter types", err)
	}

	return inAbi.Methods["method"].Inputs, nil
}

// NewArguments builds an unnamed argument list from canonical type strings such as "address",
// "uint256" or "bytes32[]".
func NewArguments(typeNames ...string) (geth_abi.Arguments, error) {
	args := make(geth_abi.Arguments, 0, len(typeNames))
	for _, name := range typeNames {
		t, err := geth_abi.NewType(name, "", nil)
		if err != nil {
			return nil, calldataerrors.NewStructuralDecodeError("unsupported parameter type "+name, err)
		}
		args = append(args, geth_abi.Argument{Type: t})
	}

	return args, nil
}

// ABIEncode is the equivalent of abi.encode.
// See a full set of examples https://github.com/ethereum/go-ethereum/blob/420b78659bef661a83c5c442121b13f13288c09f/accounts/abi/packing_test.go#L31
func ABIEncode(abiStr string, values ...any) ([]byte, error) {
	args, err := ParseArguments(abiStr)
	if err != nil {
		return nil, err
	}

	return Encode(args, values...)
}

// ABIDecode is the equivalent of abi.decode.
func ABIDecode(abiStr string, data []byte) ([]any, error) {
	args, err := ParseArguments(abiStr)
	if err != nil {
		return nil, err
	}

	return Decode(args, data)
}

// Encode packs values according to args using the standard 32-byte aligned encoding.
func Encode(args geth_abi.Arguments, values ...any) ([]byte, error) {
	res, err := args.Pack(values...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode arguments: %w", err)
	}

	return res, nil
}

// Decode reads the non-indexed arguments in args from data.
//
// Every head slot, offset and length is checked against the buffer before any value is built.
// Bytes past the end of what the types consume are ignored. data is never modified.
func Decode(args geth_abi.Arguments, data []byte) ([]any, error) {
	if err := ValidateLayout(args, data); err != nil {
		return nil, err
	}

	return unpack(args, data)
}

// ValidateLayout checks that data holds a well formed encoding of the non-indexed arguments in
// args without materialising any value.
func ValidateLayout(args geth_abi.Arguments, data []byte) error {
	elems := make([]geth_abi.Type, 0, len(args))
	for _, arg := range args {
		if arg.Indexed {
			continue
		}
		if err := checkSupported(arg.Type); err != nil {
			return err
		}
		elems = append(elems, arg.Type)
	}

	return validateTuple(elems, data, "args")
}

func unpack(args geth_abi.Arguments, data []byte) (values []any, err error) {
	defer func() {
		if r := recover(); r != nil {
			values = nil
			err = calldataerrors.NewStructuralDecodeError(fmt.Sprintf("unpack panicked: %v", r), nil)
		}
	}()

	values, err = args.UnpackValues(data)
	if err != nil {
		return nil, calldataerrors.NewStructuralDecodeError("unpack failed", err)
	}

	return values, nil
}

func structuralf(format string, args ...any) error {
	return calldataerrors.NewStructuralDecodeError(fmt.Sprintf(format, args...), nil)
}

func checkSupported(t geth_abi.Type) error {
	switch t.T {
	case geth_abi.IntTy, geth_abi.UintTy, geth_abi.BoolTy, geth_abi.StringTy, geth_abi.AddressTy,
		geth_abi.FixedBytesTy, geth_abi.BytesTy, geth_abi.FunctionTy:
		return nil
	case geth_abi.SliceTy, geth_abi.ArrayTy:
		return checkSupported(*t.Elem)
	case geth_abi.TupleTy:
		for _, elem := range t.TupleElems {
			if err := checkSupported(*elem); err != nil {
				return err
			}
		}

		return nil
	default:
		return structuralf("unsupported type %s", t.String())
	}
}

func isDynamic(t geth_abi.Type) bool {
	switch t.T {
	case geth_abi.StringTy, geth_abi.BytesTy, geth_abi.SliceTy:
		return true
	case geth_abi.ArrayTy:
		return isDynamic(*t.Elem)
	case geth_abi.TupleTy:
		for _, elem := range t.TupleElems {
			if isDynamic(*elem) {
				return true
			}
		}

		return false
	default:
		return false
	}
}

// headSize is the number of bytes t occupies in the head of its enclosing tuple.
func headSize(t geth_abi.Type) int {
	if isDynamic(t) {
		return wordSize
	}
	switch t.T {
	case geth_abi.ArrayTy:
		return t.Size * headSize(*t.Elem)
	case geth_abi.TupleTy:
		size := 0
		for _, elem := range t.TupleElems {
			size += headSize(*elem)
		}

		return size
	default:
		return wordSize
	}
}

func tupleElems(t geth_abi.Type) []geth_abi.Type {
	elems := make([]geth_abi.Type, 0, len(t.TupleElems))
	for _, elem := range t.TupleElems {
		elems = append(elems, *elem)
	}

	return elems
}

// readWord reads the 32-byte big endian word at pos in view as an int.
func readWord(view []byte, pos int, path, what string) (int, error) {
	if pos < 0 || pos > len(view)-wordSize {
		return 0, structuralf("%s: %s at %d is out of bounds (len=%d)", path, what, pos, len(view))
	}
	word := new(uint256.Int).SetBytes(view[pos : pos+wordSize])
	n, err := safecast.Uint256ToInt(word)
	if err != nil {
		return 0, calldataerrors.NewStructuralDecodeError(fmt.Sprintf("%s: %s at %d", path, what, pos), err)
	}

	return n, nil
}

// validateTuple checks a sequence of types laid out as a head followed by a tail, with dynamic
// offsets relative to the start of view.
func validateTuple(elems []geth_abi.Type, view []byte, path string) error {
	head := 0
	for _, t := range elems {
		head += headSize(t)
	}
	if len(view) < head {
		return structuralf("%s: head needs %d bytes, have %d", path, head, len(view))
	}

	pos := 0
	for i, t := range elems {
		elemPath := fmt.Sprintf("%s[%d]", path, i)
		if !isDynamic(t) {
			pos += headSize(t)
			continue
		}
		offset, err := readWord(view, pos, elemPath, "offset")
		if err != nil {
			return err
		}
		if err := validateTail(t, view, offset, elemPath); err != nil {
			return err
		}
		pos += wordSize
	}

	return nil
}

// validateTail checks the dynamic value of type t stored at offset within view.
func validateTail(t geth_abi.Type, view []byte, offset int, path string) error {
	if offset > len(view) {
		return structuralf("%s: offset %d points outside the buffer (len=%d)", path, offset, len(view))
	}

	switch t.T {
	case geth_abi.StringTy, geth_abi.BytesTy:
		length, err := readWord(view, offset, path, "length")
		if err != nil {
			return err
		}
		start := offset + wordSize
		if length > len(view)-start {
			return structuralf("%s: length %d at %d reads past the end of the buffer (len=%d)", path, length, offset, len(view))
		}

		return nil

	case geth_abi.SliceTy:
		length, err := readWord(view, offset, path, "length")
		if err != nil {
			return err
		}
		elems := view[offset+wordSize:]
		elemSize := headSize(*t.Elem)
		if elemSize == 0 {
			return structuralf("%s: zero sized element type %s", path, t.Elem.String())
		}
		if length > len(elems)/elemSize {
			return structuralf("%s: %d elements of %d bytes at %d read past the end of the buffer (len=%d)",
				path, length, elemSize, offset, len(view))
		}

		return validateElems(*t.Elem, elems, length, path)

	case geth_abi.ArrayTy:
		// Only arrays of dynamic elements are dynamic themselves.
		elems := view[offset:]
		if t.Size > len(elems)/wordSize {
			return structuralf("%s: %d element offsets at %d read past the end of the buffer (len=%d)",
				path, t.Size, offset, len(view))
		}

		return validateElems(*t.Elem, elems, t.Size, path)

	case geth_abi.TupleTy:
		return validateTuple(tupleElems(t), view[offset:], path)

	default:
		return structuralf("%s: type %s has no dynamic encoding", path, t.String())
	}
}

// validateElems checks n consecutive elements of type elem at the start of view.
func validateElems(elem geth_abi.Type, view []byte, n int, path string) error {
	if !isDynamic(elem) {
		return nil
	}
	for j := 0; j < n; j++ {
		elemPath := fmt.Sprintf("%s[%d]", path, j)
		offset, err := readWord(view, j*wordSize, elemPath, "offset")
		if err != nil {
			return err
		}
		if err := validateTail(elem, view, offset, elemPath); err != nil {
			return err
		}
	}

	return nil
}
