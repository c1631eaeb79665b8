package contracts

import (
	"github.com/smartcontractkit/calldata"
)

const MultiSendABI = `[
	{"type":"function","name":"multiSend","stateMutability":"payable","inputs":[{"name":"transactions","type":"bytes"}],"outputs":[]}
]`

type multiSendCall struct {
	Transactions []byte `abi:"transactions"`
}

// MultiSendDecoder decodes the outer call of a MultiSend batch. MultiSend and MultiSendCallOnly
// share this interface in every supported release.
type MultiSendDecoder struct {
	*calldata.Decoder

	version Version
}

func NewMultiSendDecoder(version Version, opts ...calldata.Option) (*MultiSendDecoder, error) {
	if version != Version130 && version != Version141 {
		return nil, unsupportedVersion(KindMultiSend, version)
	}

	return &MultiSendDecoder{
		Decoder: calldata.MustNewDecoder("MultiSend "+string(version), MultiSendABI, opts...),
		version: version,
	}, nil
}

func (d *MultiSendDecoder) Version() Version {
	return d.version
}

// DecodeMultiSend returns the packed transactions payload of a multiSend call.
func (d *MultiSendDecoder) DecodeMultiSend(data []byte) ([]byte, error) {
	call, err := decodeAs[multiSendCall](d.Decoder, "multiSend", data)
	if err != nil {
		return nil, err
	}

	return call.Transactions, nil
}

// EncodeMultiSend wraps a packed transactions payload in a multiSend call.
func (d *MultiSendDecoder) EncodeMultiSend(packed []byte) ([]byte, error) {
	return d.EncodeFunctionData("multiSend", packed)
}
