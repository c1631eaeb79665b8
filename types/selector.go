package types

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// SelectorLength is the size of a function selector in bytes.
const SelectorLength = 4

// Selector is the first 4 bytes of the Keccak-256 hash of a function's canonical signature.
type Selector [SelectorLength]byte

// SelectorOf returns the selector at the front of data. It reports false when data is too
// short to carry one.
func SelectorOf(data []byte) (Selector, bool) {
	var s Selector
	if len(data) < SelectorLength {
		return s, false
	}
	copy(s[:], data[:SelectorLength])

	return s, true
}

func (s Selector) String() string {
	return hexutil.Encode(s[:])
}
