// Package multisend packs and unpacks the transaction batches executed by the Safe MultiSend
// contracts.
//
// Each entry of a batch is encoded without padding as
//
//	operation (1 byte) | to (20 bytes) | value (32 bytes) | data length (32 bytes) | data
//
// and entries are concatenated in execution order.
package multisend

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	calldataerrors "github.com/smartcontractkit/calldata/errors"
	"github.com/smartcontractkit/calldata/internal/utils/safecast"
	"github.com/smartcontractkit/calldata/types"
)

const (
	operationSize = 1
	valueSize     = 32
	lengthSize    = 32

	// HeaderSize is the size of an entry without its data.
	HeaderSize = operationSize + common.AddressLength + valueSize + lengthSize
)

// Selector is the selector of multiSend(bytes).
var Selector = types.Selector{0x8d, 0x80, 0xff, 0x0a}

// IsMultiSend reports whether data is a call to multiSend(bytes). Only the selector is checked.
func IsMultiSend(data []byte) bool {
	sel, ok := types.SelectorOf(data)
	return ok && sel == Selector
}

// Encode packs txs into a batch. A nil To packs as the zero address and a nil Value as zero.
func Encode(txs []types.Transaction) ([]byte, error) {
	size := 0
	for _, tx := range txs {
		size += HeaderSize + len(tx.Data)
	}

	buf := bytes.NewBuffer(make([]byte, 0, size))
	for i, tx := range txs {
		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("multisend entry %d: %w", i, err)
		}

		value, _ := uint256.FromBig(tx.ValueOrZero())
		length := uint256.NewInt(uint64(len(tx.Data)))
		target := tx.Target()
		valueWord := value.Bytes32()
		lengthWord := length.Bytes32()

		buf.WriteByte(byte(tx.Operation))
		buf.Write(target.Bytes())
		buf.Write(valueWord[:])
		buf.Write(lengthWord[:])
		buf.Write(tx.Data)
	}

	return buf.Bytes(), nil
}

// Decode unpacks a batch. The whole batch fails if any entry is incomplete or carries an unknown
// operation; an empty batch decodes to no transactions. packed is never modified and the returned
// transactions do not share memory with it.
func Decode(packed []byte) ([]types.Transaction, error) {
	txs := make([]types.Transaction, 0)

	for offset := 0; offset < len(packed); {
		index := len(txs)
		remaining := len(packed) - offset
		if remaining < HeaderSize {
			return nil, calldataerrors.NewTruncatedBatchError(index, offset, HeaderSize, remaining)
		}

		pos := offset
		op := types.OperationType(packed[pos])
		if !op.IsValid() {
			return nil, calldataerrors.NewStructuralDecodeError(
				fmt.Sprintf("entry %d at offset %d: unknown operation %d", index, offset, uint8(op)), nil)
		}
		pos += operationSize

		to := common.BytesToAddress(packed[pos : pos+common.AddressLength])
		pos += common.AddressLength

		value := new(uint256.Int).SetBytes(packed[pos : pos+valueSize])
		pos += valueSize

		length := new(uint256.Int).SetBytes(packed[pos : pos+lengthSize])
		pos += lengthSize

		available := len(packed) - pos
		if !length.IsUint64() || length.Uint64() > uint64(available) {
			return nil, calldataerrors.NewTruncatedBatchError(index, pos, safecast.Uint256ToUint64(length), available)
		}
		dataLen, err := safecast.Uint256ToInt(length)
		if err != nil {
			return nil, calldataerrors.NewStructuralDecodeError(fmt.Sprintf("entry %d data length", index), err)
		}

		data := common.CopyBytes(packed[pos : pos+dataLen])
		txs = append(txs, types.NewTransaction(to, data, value.ToBig(), op))
		offset = pos + dataLen
	}

	return txs, nil
}
