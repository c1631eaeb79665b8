package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/smartcontractkit/calldata"
	"github.com/smartcontractkit/calldata/types"
)

const safeFunctionsABI = `
	{"type":"function","name":"addOwnerWithThreshold","stateMutability":"nonpayable","inputs":[{"name":"owner","type":"address"},{"name":"_threshold","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"removeOwner","stateMutability":"nonpayable","inputs":[{"name":"prevOwner","type":"address"},{"name":"owner","type":"address"},{"name":"_threshold","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"swapOwner","stateMutability":"nonpayable","inputs":[{"name":"prevOwner","type":"address"},{"name":"oldOwner","type":"address"},{"name":"newOwner","type":"address"}],"outputs":[]},
	{"type":"function","name":"changeThreshold","stateMutability":"nonpayable","inputs":[{"name":"_threshold","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"execTransaction","stateMutability":"payable","inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"},{"name":"data","type":"bytes"},{"name":"operation","type":"uint8"},{"name":"safeTxGas","type":"uint256"},{"name":"baseGas","type":"uint256"},{"name":"gasPrice","type":"uint256"},{"name":"gasToken","type":"address"},{"name":"refundReceiver","type":"address"},{"name":"signatures","type":"bytes"}],"outputs":[{"name":"success","type":"bool"}]},
	{"type":"function","name":"setup","stateMutability":"nonpayable","inputs":[{"name":"_owners","type":"address[]"},{"name":"_threshold","type":"uint256"},{"name":"to","type":"address"},{"name":"data","type":"bytes"},{"name":"fallbackHandler","type":"address"},{"name":"paymentToken","type":"address"},{"name":"payment","type":"uint256"},{"name":"paymentReceiver","type":"address"}],"outputs":[]},
	{"type":"event","name":"ChangedThreshold","anonymous":false,"inputs":[{"name":"threshold","type":"uint256","indexed":false}]},`

// The owner events gained an indexed owner in 1.4.0.
const (
	SafeABIv130 = `[` + safeFunctionsABI + `
	{"type":"event","name":"AddedOwner","anonymous":false,"inputs":[{"name":"owner","type":"address","indexed":false}]},
	{"type":"event","name":"RemovedOwner","anonymous":false,"inputs":[{"name":"owner","type":"address","indexed":false}]}
]`
	SafeABIv141 = `[` + safeFunctionsABI + `
	{"type":"event","name":"AddedOwner","anonymous":false,"inputs":[{"name":"owner","type":"address","indexed":true}]},
	{"type":"event","name":"RemovedOwner","anonymous":false,"inputs":[{"name":"owner","type":"address","indexed":true}]}
]`
)

var safeOwnerManagementFunctions = []string{"addOwnerWithThreshold", "removeOwner", "swapOwner", "changeThreshold"}

type SafeAddOwnerWithThreshold struct {
	Owner     common.Address `abi:"owner"`
	Threshold *big.Int       `abi:"_threshold"`
}

type SafeRemoveOwner struct {
	PrevOwner common.Address `abi:"prevOwner"`
	Owner     common.Address `abi:"owner"`
	Threshold *big.Int       `abi:"_threshold"`
}

type SafeSwapOwner struct {
	PrevOwner common.Address `abi:"prevOwner"`
	OldOwner  common.Address `abi:"oldOwner"`
	NewOwner  common.Address `abi:"newOwner"`
}

type SafeChangeThreshold struct {
	Threshold *big.Int `abi:"_threshold"`
}

// SafeExecTransaction is a signed Safe transaction submitted through execTransaction.
type SafeExecTransaction struct {
	To             common.Address `abi:"to"`
	Value          *big.Int       `abi:"value"`
	Data           []byte         `abi:"data"`
	Operation      uint8          `abi:"operation"`
	SafeTxGas      *big.Int       `abi:"safeTxGas"`
	BaseGas        *big.Int       `abi:"baseGas"`
	GasPrice       *big.Int       `abi:"gasPrice"`
	GasToken       common.Address `abi:"gasToken"`
	RefundReceiver common.Address `abi:"refundReceiver"`
	Signatures     []byte         `abi:"signatures"`
}

// Transaction returns the call the Safe executes.
func (e *SafeExecTransaction) Transaction() types.Transaction {
	return types.NewTransaction(e.To, e.Data, e.Value, types.OperationType(e.Operation))
}

// SafeSetup is the initializer of a freshly deployed Safe proxy.
type SafeSetup struct {
	Owners          []common.Address `abi:"_owners"`
	Threshold       *big.Int         `abi:"_threshold"`
	To              common.Address   `abi:"to"`
	Data            []byte           `abi:"data"`
	FallbackHandler common.Address   `abi:"fallbackHandler"`
	PaymentToken    common.Address   `abi:"paymentToken"`
	Payment         *big.Int         `abi:"payment"`
	PaymentReceiver common.Address   `abi:"paymentReceiver"`
}

type safeOwnerEvent struct {
	Owner common.Address `abi:"owner"`
}

// SafeDecoder decodes calls to a Safe singleton.
type SafeDecoder struct {
	*calldata.Decoder

	version Version
}

// NewSafeDecoder returns the decoder for the given Safe release.
func NewSafeDecoder(version Version, opts ...calldata.Option) (*SafeDecoder, error) {
	var abiJSON string
	switch version {
	case Version130:
		abiJSON = SafeABIv130
	case Version141:
		abiJSON = SafeABIv141
	default:
		return nil, unsupportedVersion(KindSafe, version)
	}

	return &SafeDecoder{
		Decoder: calldata.MustNewDecoder("Safe "+string(version), abiJSON, opts...),
		version: version,
	}, nil
}

func (d *SafeDecoder) Version() Version {
	return d.version
}

func (d *SafeDecoder) DecodeAddOwnerWithThreshold(data []byte) (*SafeAddOwnerWithThreshold, error) {
	return decodeAs[SafeAddOwnerWithThreshold](d.Decoder, "addOwnerWithThreshold", data)
}

func (d *SafeDecoder) DecodeRemoveOwner(data []byte) (*SafeRemoveOwner, error) {
	return decodeAs[SafeRemoveOwner](d.Decoder, "removeOwner", data)
}

func (d *SafeDecoder) DecodeSwapOwner(data []byte) (*SafeSwapOwner, error) {
	return decodeAs[SafeSwapOwner](d.Decoder, "swapOwner", data)
}

func (d *SafeDecoder) DecodeChangeThreshold(data []byte) (*SafeChangeThreshold, error) {
	return decodeAs[SafeChangeThreshold](d.Decoder, "changeThreshold", data)
}

// DecodeExecTransaction decodes an execTransaction call. An operation other than call or
// delegatecall is a StructuralDecodeError.
func (d *SafeDecoder) DecodeExecTransaction(data []byte) (*SafeExecTransaction, error) {
	exec, err := decodeAs[SafeExecTransaction](d.Decoder, "execTransaction", data)
	if err != nil {
		return nil, err
	}
	if err := checkOperation("execTransaction", exec.Operation); err != nil {
		return nil, err
	}

	return exec, nil
}

func (d *SafeDecoder) DecodeSetup(data []byte) (*SafeSetup, error) {
	return decodeAs[SafeSetup](d.Decoder, "setup", data)
}

// IsOwnerManagement reports whether data is a well formed call that changes the owners or the
// threshold of a Safe.
func (d *SafeDecoder) IsOwnerManagement(data []byte) bool {
	for _, name := range safeOwnerManagementFunctions {
		if d.IsFunction(name, data) {
			return true
		}
	}

	return false
}

// DecodeAddedOwnerEvent returns the owner announced by an AddedOwner log.
func (d *SafeDecoder) DecodeAddedOwnerEvent(log *gethtypes.Log) (common.Address, bool) {
	event, ok := decodeEventAs[safeOwnerEvent](d.Decoder, "AddedOwner", log)
	if !ok {
		return common.Address{}, false
	}

	return event.Owner, true
}

// DecodeRemovedOwnerEvent returns the owner announced by a RemovedOwner log.
func (d *SafeDecoder) DecodeRemovedOwnerEvent(log *gethtypes.Log) (common.Address, bool) {
	event, ok := decodeEventAs[safeOwnerEvent](d.Decoder, "RemovedOwner", log)
	if !ok {
		return common.Address{}, false
	}

	return event.Owner, true
}
