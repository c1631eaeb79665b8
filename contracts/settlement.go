package contracts

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/smartcontractkit/calldata"
)

const SettlementABI = `[
	{"type":"function","name":"setPreSignature","stateMutability":"nonpayable","inputs":[{"name":"orderUid","type":"bytes"},{"name":"signed","type":"bool"}],"outputs":[]},
	{"type":"function","name":"invalidateOrder","stateMutability":"nonpayable","inputs":[{"name":"orderUid","type":"bytes"}],"outputs":[]},
	{"type":"event","name":"PreSignature","anonymous":false,"inputs":[{"name":"owner","type":"address","indexed":true},{"name":"orderUid","type":"bytes","indexed":false},{"name":"signed","type":"bool","indexed":false}]}
]`

// OrderUIDLength is the size of a packed order uid: digest, owner and expiry.
const OrderUIDLength = common.HashLength + common.AddressLength + 4

var ErrInvalidOrderUID = errors.New("invalid order uid")

type SettlementSetPreSignature struct {
	OrderUID []byte `abi:"orderUid"`
	Signed   bool   `abi:"signed"`
}

type SettlementInvalidateOrder struct {
	OrderUID []byte `abi:"orderUid"`
}

// OrderUID identifies a CoW Protocol order.
type OrderUID struct {
	Digest  common.Hash
	Owner   common.Address
	ValidTo uint32
}

// Expiry returns the time after which the order can no longer be settled.
func (u OrderUID) Expiry() time.Time {
	return time.Unix(int64(u.ValidTo), 0).UTC()
}

// ParseOrderUID splits a packed order uid into its parts.
func ParseOrderUID(uid []byte) (OrderUID, error) {
	if len(uid) != OrderUIDLength {
		return OrderUID{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidOrderUID, OrderUIDLength, len(uid))
	}

	return OrderUID{
		Digest:  common.BytesToHash(uid[:common.HashLength]),
		Owner:   common.BytesToAddress(uid[common.HashLength : common.HashLength+common.AddressLength]),
		ValidTo: binary.BigEndian.Uint32(uid[common.HashLength+common.AddressLength:]),
	}, nil
}

// Bytes returns the packed form of the uid.
func (u OrderUID) Bytes() []byte {
	out := make([]byte, 0, OrderUIDLength)
	out = append(out, u.Digest.Bytes()...)
	out = append(out, u.Owner.Bytes()...)

	return binary.BigEndian.AppendUint32(out, u.ValidTo)
}

// SettlementDecoder decodes calls to the CoW Protocol GPv2Settlement contract.
type SettlementDecoder struct {
	*calldata.Decoder
}

func NewSettlementDecoder(opts ...calldata.Option) *SettlementDecoder {
	return &SettlementDecoder{Decoder: calldata.MustNewDecoder("GPv2Settlement", SettlementABI, opts...)}
}

func (d *SettlementDecoder) DecodeSetPreSignature(data []byte) (*SettlementSetPreSignature, error) {
	return decodeAs[SettlementSetPreSignature](d.Decoder, "setPreSignature", data)
}

func (d *SettlementDecoder) DecodeInvalidateOrder(data []byte) (*SettlementInvalidateOrder, error) {
	return decodeAs[SettlementInvalidateOrder](d.Decoder, "invalidateOrder", data)
}

func (d *SettlementDecoder) EncodeSetPreSignature(orderUID []byte, signed bool) ([]byte, error) {
	return d.EncodeFunctionData("setPreSignature", orderUID, signed)
}
