// Package classify labels transactions by what they do, using the bundled contract interfaces.
package classify

import (
	"fmt"

	"github.com/smartcontractkit/calldata/contracts"
	"github.com/smartcontractkit/calldata/finder"
	"github.com/smartcontractkit/calldata/multisend"
	"github.com/smartcontractkit/calldata/types"
)

type Kind string

const (
	KindNativeTransfer  Kind = "native_transfer"
	KindERC20Transfer   Kind = "erc20_transfer"
	KindOwnerManagement Kind = "owner_management"
	KindSettlement      Kind = "settlement"
	KindVault           Kind = "vault"
	KindBatch           Kind = "batch"
	// KindContractCall is a well formed call to a bundled interface that fits no other kind.
	KindContractCall Kind = "contract_call"
	KindUnknown      Kind = "unknown"
)

// Kinds lists every kind a transaction can be classified as.
var Kinds = []Kind{
	KindNativeTransfer,
	KindERC20Transfer,
	KindOwnerManagement,
	KindSettlement,
	KindVault,
	KindBatch,
	KindContractCall,
	KindUnknown,
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}

	return "", fmt.Errorf("unknown kind %q, expected one of %v", s, Kinds)
}

var ownerManagementFunctions = map[string]bool{
	"addOwnerWithThreshold": true,
	"removeOwner":           true,
	"swapOwner":             true,
	"changeThreshold":       true,
}

var erc20TransferFunctions = map[string]bool{
	"transfer":     true,
	"transferFrom": true,
}

// Classification describes one call.
type Classification struct {
	Kind        Kind               `json:"kind"`
	Transaction types.Transaction  `json:"transaction"`
	Contract    contracts.Kind     `json:"contract,omitempty"`
	Version     contracts.Version  `json:"version,omitempty"`
	Function    string             `json:"function,omitempty"`
	Call        *types.DecodedCall `json:"-"`
	Entries     []Classification   `json:"entries,omitempty"`
}

// Classifier classifies transactions against a registry. Batches are expanded one level deep.
type Classifier struct {
	registry *contracts.Registry
	batches  *multisend.Decoder
	finder   *finder.Finder
}

// New returns a classifier that unpacks batches with the MultiSend release given by version.
func New(registry *contracts.Registry, version contracts.Version) (*Classifier, error) {
	ms, err := registry.MultiSend(version)
	if err != nil {
		return nil, err
	}
	batches := multisend.NewDecoder(ms)

	return &Classifier{
		registry: registry,
		batches:  batches,
		finder:   finder.New(batches),
	}, nil
}

// Classify labels tx. A MultiSend call is labelled as a batch and each of its entries is
// classified in turn; a batch that cannot be decoded is logged and labelled unknown.
func (c *Classifier) Classify(tx types.Transaction) Classification {
	cl := c.classifyCall(tx)
	if cl.Kind != KindBatch {
		return cl
	}

	entries, ok := c.batches.TryDecodeCall(tx.Data)
	if !ok {
		cl.Kind = KindUnknown
		return cl
	}

	cl.Entries = make([]Classification, 0, len(entries))
	for _, entry := range entries {
		cl.Entries = append(cl.Entries, c.classifyCall(entry))
	}

	return cl
}

// Find returns the first call of the given kind in tx, looking through a MultiSend batch. It
// returns nil and no error when there is none.
func (c *Classifier) Find(kind Kind, tx types.Transaction) (*types.Transaction, error) {
	return c.finder.FindTransaction(c.Is(kind), tx)
}

// Is returns a predicate matching calls of the given kind. Batches are not expanded.
func (c *Classifier) Is(kind Kind) finder.Predicate {
	return func(tx types.Transaction) bool {
		return c.classifyCall(tx).Kind == kind
	}
}

// classifyCall labels a single call without expanding batches.
func (c *Classifier) classifyCall(tx types.Transaction) Classification {
	cl := Classification{Kind: KindUnknown, Transaction: tx}

	if len(tx.Data) == 0 {
		if tx.ValueOrZero().Sign() > 0 {
			cl.Kind = KindNativeTransfer
		}

		return cl
	}

	entry, call, ok := c.registry.Match(tx.Data)
	if !ok {
		return cl
	}
	cl.Contract = entry.Kind
	cl.Version = entry.Version
	cl.Function = call.FunctionName
	cl.Call = call

	switch {
	case entry.Kind == contracts.KindERC20 && erc20TransferFunctions[call.FunctionName]:
		cl.Kind = KindERC20Transfer
	case entry.Kind == contracts.KindSafe && ownerManagementFunctions[call.FunctionName]:
		cl.Kind = KindOwnerManagement
	case entry.Kind == contracts.KindSettlement:
		cl.Kind = KindSettlement
	case entry.Kind == contracts.KindVault:
		cl.Kind = KindVault
	case entry.Kind == contracts.KindMultiSend:
		cl.Kind = KindBatch
	default:
		cl.Kind = KindContractCall
	}

	return cl
}
