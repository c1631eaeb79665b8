package calldata

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	calldataerrors "github.com/smartcontractkit/calldata/errors"
)

const tokenABI = `[
	{"type":"function","name":"transfer","inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"transferFrom","inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"event","name":"Transfer","anonymous":false,"inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}]}
]`

func newObservedDecoder(t *testing.T) (*Decoder, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	d, err := NewDecoder("Token", tokenABI, WithLogger(zap.New(core).Sugar()))
	require.NoError(t, err)

	return d, logs
}

func TestDecoder_DecodeFunctionData(t *testing.T) {
	t.Parallel()

	d, _ := newObservedDecoder(t)
	to := common.HexToAddress("0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB")

	transferData, err := d.EncodeFunctionData("transfer", to, big.NewInt(100))
	require.NoError(t, err)

	tests := []struct {
		name       string
		give       []byte
		wantName   string
		wantArgs   []any
		wantErr    string
		wantErrAs  any
		wantReason string
	}{
		{
			name:     "success",
			give:     transferData,
			wantName: "transfer",
			wantArgs: []any{to, big.NewInt(100)},
		},
		{
			name:      "failure: unknown selector",
			give:      hexutil.MustDecode("0xdeadbeef0000"),
			wantErr:   "unknown function selector 0xdeadbeef for contract Token",
			wantErrAs: &calldataerrors.UnknownSelectorError{},
		},
		{
			name:      "failure: shorter than a selector",
			give:      []byte{0xa9, 0x05},
			wantErr:   "call data too short for a function selector: 2 bytes (contract Token)",
			wantErrAs: &calldataerrors.UnknownSelectorError{},
		},
		{
			name:      "failure: truncated arguments",
			give:      transferData[:40],
			wantErr:   "structural decode error in transfer: args: head needs 64 bytes, have 36",
			wantErrAs: &calldataerrors.StructuralDecodeError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := d.DecodeFunctionData(tt.give)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				switch tt.wantErrAs.(type) {
				case *calldataerrors.UnknownSelectorError:
					var target *calldataerrors.UnknownSelectorError
					require.ErrorAs(t, err, &target)
				case *calldataerrors.StructuralDecodeError:
					var target *calldataerrors.StructuralDecodeError
					require.ErrorAs(t, err, &target)
				}
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, got.FunctionName)
			assert.Equal(t, "0xa9059cbb", got.Selector.String())
			assert.Equal(t, tt.wantArgs, got.Args)
		})
	}
}

func TestDecoder_UnknownSelectorIsNeverStructural(t *testing.T) {
	t.Parallel()

	d, _ := newObservedDecoder(t)

	for _, data := range [][]byte{
		hexutil.MustDecode("0x12345678"),
		hexutil.MustDecode("0x095ea7b3" + "00"),
		{},
	} {
		_, err := d.DecodeFunctionData(data)

		var unknown *calldataerrors.UnknownSelectorError
		require.ErrorAs(t, err, &unknown)

		var structural *calldataerrors.StructuralDecodeError
		assert.NotErrorAs(t, err, &structural)
	}
}

func TestDecoder_IsCall(t *testing.T) {
	t.Parallel()

	d, logs := newObservedDecoder(t)

	transferData, err := d.EncodeFunctionData("transfer", common.HexToAddress("0x1"), big.NewInt(1))
	require.NoError(t, err)

	assert.True(t, d.IsCall(transferData))
	assert.False(t, d.IsCall(nil))
	assert.False(t, d.IsCall([]byte{0xa9}))
	assert.False(t, d.IsCall(hexutil.MustDecode("0xdeadbeef")))
	assert.False(t, d.IsCall(transferData[:20]))

	assert.True(t, d.IsFunction("transfer", transferData))
	assert.False(t, d.IsFunction("transferFrom", transferData))
	assert.False(t, d.IsFunction("missing", transferData))
	assert.True(t, d.HasSelector(transferData[:4]))

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0].Message, "structural decode error in transfer")
	assert.Contains(t, warnings[1].Message, "function missing not found in Token ABI")
}

func TestDecoder_DecodeFunction(t *testing.T) {
	t.Parallel()

	d, _ := newObservedDecoder(t)
	from := common.HexToAddress("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	to := common.HexToAddress("0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB")

	transferFromData, err := d.EncodeFunctionData("transferFrom", from, to, big.NewInt(5))
	require.NoError(t, err)

	call, err := d.DecodeFunction("transferFrom", transferFromData)
	require.NoError(t, err)
	assert.Equal(t, []any{from, to, big.NewInt(5)}, call.Args)

	_, err = d.DecodeFunction("transfer", transferFromData)
	var mismatch *calldataerrors.FunctionMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "transfer", mismatch.Expected)
	assert.Equal(t, "transferFrom", mismatch.Actual)

	_, err = d.DecodeFunction("approve", transferFromData)
	require.EqualError(t, err, "function approve not found in Token ABI")
}

func TestDecoder_DecodeFunction_Overloaded(t *testing.T) {
	t.Parallel()

	const overloadedABI = `[
		{"type":"function","name":"transfer","inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"outputs":[]},
		{"type":"function","name":"transfer","inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"},{"name":"memo","type":"bytes"}],"outputs":[]}
	]`
	d, err := NewDecoder("Overloaded", overloadedABI)
	require.NoError(t, err)
	to := common.HexToAddress("0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB")

	plain, err := d.EncodeFunctionData("transfer", to, big.NewInt(1))
	require.NoError(t, err)
	withMemo, err := d.EncodeFunctionData("transfer0", to, big.NewInt(1), []byte{0x01})
	require.NoError(t, err)

	call, err := d.DecodeFunction("transfer0", withMemo)
	require.NoError(t, err)
	assert.Equal(t, "transfer", call.FunctionName)
	assert.Equal(t, []any{to, big.NewInt(1), []byte{0x01}}, call.Args)

	call, err = d.DecodeFunction("transfer", plain)
	require.NoError(t, err)
	assert.Len(t, call.Args, 2)

	_, err = d.DecodeFunction("transfer", withMemo)
	var mismatch *calldataerrors.FunctionMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "transfer", mismatch.Expected)
	assert.Equal(t, "transfer0", mismatch.Actual)

	assert.True(t, d.IsFunction("transfer0", withMemo))
	assert.False(t, d.IsFunction("transfer", withMemo))
}

func TestDecoder_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	d, _ := newObservedDecoder(t)
	data, err := d.EncodeFunctionData("transfer", common.HexToAddress("0x1"), big.NewInt(1))
	require.NoError(t, err)
	original := common.CopyBytes(data)

	_, err = d.DecodeFunctionData(data)
	require.NoError(t, err)
	assert.Equal(t, original, data)
}

func TestNewDecoder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    string
		wantErr string
	}{
		{
			name: "success",
			give: tokenABI,
		},
		{
			name:    "failure: invalid JSON",
			give:    `[{`,
			wantErr: "failed to parse Token ABI",
		},
		{
			name: "failure: selector collision",
			give: `[
				{"type":"function","name":"burn","inputs":[{"name":"amount","type":"uint256"}],"outputs":[]},
				{"type":"function","name":"collate_propagate_storage","inputs":[{"name":"","type":"bytes16"}],"outputs":[]}
			]`,
			wantErr: "Token ABI: selector 0x42966c68 is shared by",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, err := NewDecoder("Token", tt.give)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				assert.Nil(t, d)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "Token", d.Name())
			}
		})
	}

	assert.Panics(t, func() { MustNewDecoder("Token", `[{`) })
}

func TestDecoder_DecodeEventLog(t *testing.T) {
	t.Parallel()

	d, logs := newObservedDecoder(t)
	from := common.HexToAddress("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	to := common.HexToAddress("0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB")
	transferTopic := crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

	log := &gethtypes.Log{
		Topics: []common.Hash{
			transferTopic,
			common.BytesToHash(from.Bytes()),
			common.BytesToHash(to.Bytes()),
		},
		Data: common.LeftPadBytes(big.NewInt(42).Bytes(), 32),
	}

	event, ok := d.DecodeLog(log)
	require.True(t, ok)
	assert.Equal(t, "Transfer", event.EventName)
	assert.Equal(t, []any{from, to, big.NewInt(42)}, event.Args)

	value, ok := event.Arg("value")
	require.True(t, ok)
	assert.Equal(t, big.NewInt(42), value)

	_, ok = d.DecodeEventLog([]common.Hash{common.HexToHash("0x01")}, nil)
	assert.False(t, ok)

	_, ok = d.DecodeEventLog(log.Topics[:2], log.Data)
	assert.False(t, ok)

	_, ok = d.DecodeEventLog(log.Topics, log.Data[:16])
	assert.False(t, ok)

	_, ok = d.DecodeEventLog(nil, nil)
	assert.False(t, ok)

	_, ok = d.DecodeLog(nil)
	assert.False(t, ok)

	assert.Len(t, logs.FilterLevelExact(zapcore.WarnLevel).All(), 4)
}
