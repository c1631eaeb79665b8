package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/smartcontractkit/calldata"
	"github.com/smartcontractkit/calldata/types"
)

const DelayModifierABI = `[
	{"type":"function","name":"execTransactionFromModule","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"},{"name":"data","type":"bytes"},{"name":"operation","type":"uint8"}],"outputs":[{"name":"success","type":"bool"}]},
	{"type":"function","name":"executeNextTx","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"},{"name":"data","type":"bytes"},{"name":"operation","type":"uint8"}],"outputs":[]},
	{"type":"event","name":"TransactionAdded","anonymous":false,"inputs":[{"name":"queueNonce","type":"uint256","indexed":true},{"name":"txHash","type":"bytes32","indexed":true},{"name":"to","type":"address","indexed":false},{"name":"value","type":"uint256","indexed":false},{"name":"data","type":"bytes","indexed":false},{"name":"operation","type":"uint8","indexed":false}]}
]`

// DelayModifierCall holds the arguments shared by execTransactionFromModule and executeNextTx.
type DelayModifierCall struct {
	To        common.Address `abi:"to"`
	Value     *big.Int       `abi:"value"`
	Data      []byte         `abi:"data"`
	Operation uint8          `abi:"operation"`
}

// Transaction returns the queued call.
func (c *DelayModifierCall) Transaction() types.Transaction {
	return types.NewTransaction(c.To, c.Data, c.Value, types.OperationType(c.Operation))
}

// TransactionAdded is emitted when a module queues a transaction behind the cooldown.
type TransactionAdded struct {
	QueueNonce *big.Int       `abi:"queueNonce"`
	TxHash     [32]byte       `abi:"txHash"`
	To         common.Address `abi:"to"`
	Value      *big.Int       `abi:"value"`
	Data       []byte         `abi:"data"`
	Operation  uint8          `abi:"operation"`
}

// Transaction returns the queued call.
func (e *TransactionAdded) Transaction() types.Transaction {
	return types.NewTransaction(e.To, e.Data, e.Value, types.OperationType(e.Operation))
}

// DelayModifierDecoder decodes calls to and logs of the Zodiac Delay modifier.
type DelayModifierDecoder struct {
	*calldata.Decoder
}

func NewDelayModifierDecoder(opts ...calldata.Option) *DelayModifierDecoder {
	return &DelayModifierDecoder{Decoder: calldata.MustNewDecoder("Delay", DelayModifierABI, opts...)}
}

// DecodeTransactionAdded decodes a TransactionAdded log. Logs that are not well formed
// TransactionAdded events, including ones carrying an unknown operation, are logged and reported
// as false.
func (d *DelayModifierDecoder) DecodeTransactionAdded(log *gethtypes.Log) (*TransactionAdded, bool) {
	event, ok := decodeEventAs[TransactionAdded](d.Decoder, "TransactionAdded", log)
	if !ok {
		return nil, false
	}
	if err := checkOperation("TransactionAdded", event.Operation); err != nil {
		d.Logger().Warnf("%s log rejected: %v", d.Name(), err)
		return nil, false
	}

	return event, true
}

func (d *DelayModifierDecoder) DecodeExecTransactionFromModule(data []byte) (*DelayModifierCall, error) {
	return d.decodeCall("execTransactionFromModule", data)
}

func (d *DelayModifierDecoder) DecodeExecuteNextTx(data []byte) (*DelayModifierCall, error) {
	return d.decodeCall("executeNextTx", data)
}

func (d *DelayModifierDecoder) decodeCall(name string, data []byte) (*DelayModifierCall, error) {
	call, err := decodeAs[DelayModifierCall](d.Decoder, name, data)
	if err != nil {
		return nil, err
	}
	if err := checkOperation(name, call.Operation); err != nil {
		return nil, err
	}

	return call, nil
}

func (d *DelayModifierDecoder) EncodeExecuteNextTx(tx types.Transaction) ([]byte, error) {
	return d.EncodeFunctionData("executeNextTx", tx.Target(), tx.ValueOrZero(), []byte(tx.Data), uint8(tx.Operation))
}
