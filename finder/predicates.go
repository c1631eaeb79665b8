package finder

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/smartcontractkit/calldata"
	"github.com/smartcontractkit/calldata/types"
)

// To matches calls to addr.
func To(addr common.Address) Predicate {
	return func(tx types.Transaction) bool {
		return tx.To != nil && *tx.To == addr
	}
}

// CallOf matches well formed calls to any function of d. Data that does not decode is logged by d.
func CallOf(d *calldata.Decoder) Predicate {
	return func(tx types.Transaction) bool {
		return d.IsCall(tx.Data)
	}
}

// FunctionOf matches well formed calls to the named function of d.
func FunctionOf(d *calldata.Decoder, name string) Predicate {
	return func(tx types.Transaction) bool {
		return d.IsFunction(name, tx.Data)
	}
}

// All matches calls that every predicate matches.
func All(predicates ...Predicate) Predicate {
	return func(tx types.Transaction) bool {
		for _, p := range predicates {
			if !p(tx) {
				return false
			}
		}

		return true
	}
}
