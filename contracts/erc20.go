package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/smartcontractkit/calldata"
)

const ERC20ABI = `[
	{"type":"function","name":"transfer","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"transferFrom","stateMutability":"nonpayable","inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[{"name":"spender","type":"address"},{"name":"value","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"event","name":"Transfer","anonymous":false,"inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}]},
	{"type":"event","name":"Approval","anonymous":false,"inputs":[{"name":"owner","type":"address","indexed":true},{"name":"spender","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}]}
]`

type ERC20Transfer struct {
	To    common.Address `abi:"to"`
	Value *big.Int       `abi:"value"`
}

type ERC20TransferFrom struct {
	From  common.Address `abi:"from"`
	To    common.Address `abi:"to"`
	Value *big.Int       `abi:"value"`
}

type ERC20Approve struct {
	Spender common.Address `abi:"spender"`
	Value   *big.Int       `abi:"value"`
}

// ERC20TransferEvent is the Transfer event emitted by ERC-20 tokens.
type ERC20TransferEvent struct {
	From  common.Address `abi:"from"`
	To    common.Address `abi:"to"`
	Value *big.Int       `abi:"value"`
}

// ERC20Decoder decodes calls to the ERC-20 token interface.
type ERC20Decoder struct {
	*calldata.Decoder
}

func NewERC20Decoder(opts ...calldata.Option) *ERC20Decoder {
	return &ERC20Decoder{Decoder: calldata.MustNewDecoder("ERC20", ERC20ABI, opts...)}
}

func (d *ERC20Decoder) DecodeTransfer(data []byte) (*ERC20Transfer, error) {
	return decodeAs[ERC20Transfer](d.Decoder, "transfer", data)
}

func (d *ERC20Decoder) DecodeTransferFrom(data []byte) (*ERC20TransferFrom, error) {
	return decodeAs[ERC20TransferFrom](d.Decoder, "transferFrom", data)
}

func (d *ERC20Decoder) DecodeApprove(data []byte) (*ERC20Approve, error) {
	return decodeAs[ERC20Approve](d.Decoder, "approve", data)
}

func (d *ERC20Decoder) IsTransfer(data []byte) bool {
	return d.IsFunction("transfer", data)
}

func (d *ERC20Decoder) IsTransferFrom(data []byte) bool {
	return d.IsFunction("transferFrom", data)
}

func (d *ERC20Decoder) IsApprove(data []byte) bool {
	return d.IsFunction("approve", data)
}

func (d *ERC20Decoder) EncodeTransfer(to common.Address, value *big.Int) ([]byte, error) {
	return d.EncodeFunctionData("transfer", to, value)
}

func (d *ERC20Decoder) EncodeTransferFrom(from, to common.Address, value *big.Int) ([]byte, error) {
	return d.EncodeFunctionData("transferFrom", from, to, value)
}

func (d *ERC20Decoder) EncodeApprove(spender common.Address, value *big.Int) ([]byte, error) {
	return d.EncodeFunctionData("approve", spender, value)
}

// DecodeTransferEvent decodes a Transfer log. It returns false for any other log.
func (d *ERC20Decoder) DecodeTransferEvent(log *gethtypes.Log) (*ERC20TransferEvent, bool) {
	return decodeEventAs[ERC20TransferEvent](d.Decoder, "Transfer", log)
}
