package classify

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/calldata/contracts"
	"github.com/smartcontractkit/calldata/multisend"
	"github.com/smartcontractkit/calldata/types"
)

var (
	safeAddr      = common.HexToAddress("0x5AFE5AFE5AFE5AFE5AFE5AFE5AFE5AFE5AFE5AFE")
	tokenAddr     = common.HexToAddress("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	recipientAddr = common.HexToAddress("0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB")
	multiSendAddr = common.HexToAddress("0x9641d764fc13c8B624c04430C7356C1C7C8102e2")
)

type fixture struct {
	registry   *contracts.Registry
	classifier *Classifier
	batches    *multisend.Decoder
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	r := contracts.NewRegistry()
	c, err := New(r, contracts.Version130)
	require.NoError(t, err)
	ms, err := r.MultiSend(contracts.Version130)
	require.NoError(t, err)

	return fixture{registry: r, classifier: c, batches: multisend.NewDecoder(ms)}
}

// call returns a builder for a plain call to `to`, taking the result of an Encode helper.
func (f fixture) call(t *testing.T, to common.Address) func([]byte, error) types.Transaction {
	t.Helper()

	return func(data []byte, err error) types.Transaction {
		require.NoError(t, err)

		return types.NewTransaction(to, data, big.NewInt(0), types.OperationCall)
	}
}

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	erc20 := f.registry.ERC20()
	safe, err := f.registry.Safe(contracts.Version130)
	require.NoError(t, err)

	transfer := f.call(t, tokenAddr)(erc20.EncodeTransfer(recipientAddr, big.NewInt(100)))
	transferFrom := f.call(t, tokenAddr)(erc20.EncodeTransferFrom(safeAddr, recipientAddr, big.NewInt(1)))
	approve := f.call(t, tokenAddr)(erc20.EncodeApprove(recipientAddr, big.NewInt(1)))
	changeThreshold := f.call(t, safeAddr)(safe.EncodeFunctionData("changeThreshold", big.NewInt(2)))
	preSignature := f.call(t, recipientAddr)(f.registry.Settlement().EncodeSetPreSignature(make([]byte, contracts.OrderUIDLength), true))
	deposit := f.call(t, recipientAddr)(f.registry.Vault().EncodeDeposit(big.NewInt(5), safeAddr))

	tests := []struct {
		name         string
		give         types.Transaction
		wantKind     Kind
		wantContract contracts.Kind
		wantVersion  contracts.Version
	}{
		{
			name:     "native transfer",
			give:     types.NewTransaction(recipientAddr, nil, big.NewInt(1), types.OperationCall),
			wantKind: KindNativeTransfer,
		},
		{
			name:     "empty call without value",
			give:     types.NewTransaction(recipientAddr, nil, nil, types.OperationCall),
			wantKind: KindUnknown,
		},
		{name: "erc20 transfer", give: transfer, wantKind: KindERC20Transfer, wantContract: contracts.KindERC20},
		{name: "erc20 transferFrom", give: transferFrom, wantKind: KindERC20Transfer, wantContract: contracts.KindERC20},
		{name: "erc20 approve", give: approve, wantKind: KindContractCall, wantContract: contracts.KindERC20},
		{
			name:         "owner management resolves to the first registered release",
			give:         changeThreshold,
			wantKind:     KindOwnerManagement,
			wantContract: contracts.KindSafe,
			wantVersion:  contracts.Version141,
		},
		{name: "settlement", give: preSignature, wantKind: KindSettlement, wantContract: contracts.KindSettlement},
		{name: "vault", give: deposit, wantKind: KindVault, wantContract: contracts.KindVault},
		{name: "unknown selector", give: f.call(t, tokenAddr)(hexutil.MustDecode("0x12345678"), nil), wantKind: KindUnknown},
		{name: "malformed transfer", give: f.call(t, tokenAddr)(transfer.Data[:30], nil), wantKind: KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := f.classifier.Classify(tt.give)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantContract, got.Contract)
			assert.Equal(t, tt.wantVersion, got.Version)
			assert.Equal(t, tt.give, got.Transaction)
			assert.Empty(t, got.Entries)
		})
	}
}

func TestClassifier_Classify_Batch(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	safe, err := f.registry.Safe(contracts.Version130)
	require.NoError(t, err)

	transfer := f.call(t, tokenAddr)(f.registry.ERC20().EncodeTransfer(recipientAddr, big.NewInt(100)))
	native := types.NewTransaction(recipientAddr, []byte{}, big.NewInt(3), types.OperationCall)
	addOwner := f.call(t, safeAddr)(safe.EncodeFunctionData("addOwnerWithThreshold", recipientAddr, big.NewInt(1)))
	nested := f.call(t, multiSendAddr)(f.batches.EncodeCall([]types.Transaction{transfer}))

	batch := f.call(t, multiSendAddr)(f.batches.EncodeCall([]types.Transaction{transfer, native, addOwner, nested}))

	got := f.classifier.Classify(batch)
	assert.Equal(t, KindBatch, got.Kind)
	assert.Equal(t, contracts.KindMultiSend, got.Contract)
	require.Len(t, got.Entries, 4)

	kinds := make([]Kind, 0, len(got.Entries))
	for _, e := range got.Entries {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []Kind{KindERC20Transfer, KindNativeTransfer, KindOwnerManagement, KindBatch}, kinds)
	assert.Empty(t, got.Entries[3].Entries)

	found, err := f.classifier.Find(KindOwnerManagement, batch)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, safeAddr, found.Target())

	found, err = f.classifier.Find(KindVault, batch)
	require.NoError(t, err)
	assert.Nil(t, found)

	found, err = f.classifier.Find(KindBatch, batch)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, batch, *found)
}

func TestClassifier_Classify_MalformedBatch(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	transfer := f.call(t, tokenAddr)(f.registry.ERC20().EncodeTransfer(recipientAddr, big.NewInt(100)))

	packed, err := multisend.Encode([]types.Transaction{transfer})
	require.NoError(t, err)
	ms, err := f.registry.MultiSend(contracts.Version130)
	require.NoError(t, err)
	batch := f.call(t, multiSendAddr)(ms.EncodeMultiSend(packed[:len(packed)-2]))

	got := f.classifier.Classify(batch)
	assert.Equal(t, KindUnknown, got.Kind)
	assert.Empty(t, got.Entries)

	_, err = f.classifier.Find(KindERC20Transfer, batch)
	require.Error(t, err)
}

func TestNew_UnsupportedVersion(t *testing.T) {
	t.Parallel()

	_, err := New(contracts.NewRegistry(), "0.1.0")
	require.ErrorIs(t, err, contracts.ErrUnsupportedVersion)
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	for _, k := range Kinds {
		got, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	tests := []struct {
		name string
		give string
	}{
		{name: "contract kind", give: "erc20"},
		{name: "wrong case", give: "ERC20_TRANSFER"},
		{name: "empty", give: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseKind(tt.give)
			require.ErrorContains(t, err, fmt.Sprintf("unknown kind %q", tt.give))
		})
	}
}
