package multisend

import (
	"fmt"

	"github.com/smartcontractkit/calldata/contracts"
	"github.com/smartcontractkit/calldata/types"
)

// Decoder unwraps multiSend(bytes) calls into their batch.
type Decoder struct {
	multiSend *contracts.MultiSendDecoder
}

func NewDecoder(multiSend *contracts.MultiSendDecoder) *Decoder {
	return &Decoder{multiSend: multiSend}
}

// DecodeCall decodes a full multiSend call and returns the transactions of its batch.
func (d *Decoder) DecodeCall(data []byte) ([]types.Transaction, error) {
	packed, err := d.multiSend.DecodeMultiSend(data)
	if err != nil {
		return nil, err
	}

	txs, err := Decode(packed)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s batch: %w", d.multiSend.Name(), err)
	}

	return txs, nil
}

// EncodeCall packs txs and wraps them in a multiSend call.
func (d *Decoder) EncodeCall(txs []types.Transaction) ([]byte, error) {
	packed, err := Encode(txs)
	if err != nil {
		return nil, err
	}

	return d.multiSend.EncodeMultiSend(packed)
}

// TryDecodeCall is the best-effort counterpart of DecodeCall: data that is not a well formed
// multiSend call is logged and reported as false.
func (d *Decoder) TryDecodeCall(data []byte) ([]types.Transaction, bool) {
	if !IsMultiSend(data) {
		return nil, false
	}

	txs, err := d.DecodeCall(data)
	if err != nil {
		d.multiSend.Logger().Warnf("%v", err)
		return nil, false
	}

	return txs, true
}
