package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/smartcontractkit/calldata"
)

const VaultABI = `[
	{"type":"function","name":"deposit","stateMutability":"nonpayable","inputs":[{"name":"assets","type":"uint256"},{"name":"receiver","type":"address"}],"outputs":[{"name":"shares","type":"uint256"}]},
	{"type":"function","name":"withdraw","stateMutability":"nonpayable","inputs":[{"name":"assets","type":"uint256"},{"name":"receiver","type":"address"},{"name":"owner","type":"address"}],"outputs":[{"name":"shares","type":"uint256"}]}
]`

type VaultDeposit struct {
	Assets   *big.Int       `abi:"assets"`
	Receiver common.Address `abi:"receiver"`
}

type VaultWithdraw struct {
	Assets   *big.Int       `abi:"assets"`
	Receiver common.Address `abi:"receiver"`
	Owner    common.Address `abi:"owner"`
}

// VaultDecoder decodes calls to ERC-4626 vaults.
type VaultDecoder struct {
	*calldata.Decoder
}

func NewVaultDecoder(opts ...calldata.Option) *VaultDecoder {
	return &VaultDecoder{Decoder: calldata.MustNewDecoder("ERC4626", VaultABI, opts...)}
}

func (d *VaultDecoder) DecodeDeposit(data []byte) (*VaultDeposit, error) {
	return decodeAs[VaultDeposit](d.Decoder, "deposit", data)
}

func (d *VaultDecoder) DecodeWithdraw(data []byte) (*VaultWithdraw, error) {
	return decodeAs[VaultWithdraw](d.Decoder, "withdraw", data)
}

func (d *VaultDecoder) EncodeDeposit(assets *big.Int, receiver common.Address) ([]byte, error) {
	return d.EncodeFunctionData("deposit", assets, receiver)
}

func (d *VaultDecoder) EncodeWithdraw(assets *big.Int, receiver, owner common.Address) ([]byte, error) {
	return d.EncodeFunctionData("withdraw", assets, receiver, owner)
}
