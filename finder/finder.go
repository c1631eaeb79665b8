// Package finder locates calls of interest inside a transaction, looking through MultiSend
// batches.
package finder

import (
	"github.com/smartcontractkit/calldata/multisend"
	"github.com/smartcontractkit/calldata/types"
)

// Predicate selects the calls a search is looking for.
type Predicate func(types.Transaction) bool

// Finder searches a transaction and, when it is a MultiSend call, the entries of its batch.
//
// The search is one level deep: entries of a batch that are themselves MultiSend calls are
// matched as a whole and never unpacked.
type Finder struct {
	batches *multisend.Decoder
}

func New(batches *multisend.Decoder) *Finder {
	return &Finder{batches: batches}
}

// FindTransaction returns tx itself when it matches, without looking at its data. Otherwise, if
// tx is a MultiSend call, it returns the first entry of the batch that matches, in execution
// order. It returns nil and no error when nothing matches, and an error when the batch cannot be
// decoded.
func (f *Finder) FindTransaction(predicate Predicate, tx types.Transaction) (*types.Transaction, error) {
	if predicate(tx) {
		return &tx, nil
	}

	entries, err := f.entries(tx)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if predicate(entries[i]) {
			return &entries[i], nil
		}
	}

	return nil, nil
}

// FindAll returns every match following the same rules as FindTransaction: tx alone when it
// matches, otherwise the matching batch entries in execution order.
func (f *Finder) FindAll(predicate Predicate, tx types.Transaction) ([]types.Transaction, error) {
	if predicate(tx) {
		return []types.Transaction{tx}, nil
	}

	entries, err := f.entries(tx)
	if err != nil {
		return nil, err
	}

	var matches []types.Transaction
	for _, entry := range entries {
		if predicate(entry) {
			matches = append(matches, entry)
		}
	}

	return matches, nil
}

func (f *Finder) entries(tx types.Transaction) ([]types.Transaction, error) {
	if !multisend.IsMultiSend(tx.Data) {
		return nil, nil
	}

	return f.batches.DecodeCall(tx.Data)
}
