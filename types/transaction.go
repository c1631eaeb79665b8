package types

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidValue is returned when a transaction value is negative or wider than 256 bits.
	ErrInvalidValue = errors.New("value must be an unsigned 256 bit integer")

	validate = validator.New(validator.WithRequiredStructEnabled())
)

// Transaction is a single call, either the top level call of a transaction or one entry of a
// MultiSend batch.
type Transaction struct {
	To        *common.Address `json:"to"`
	Data      hexutil.Bytes   `json:"data"`
	Value     *big.Int        `json:"value"`
	Operation OperationType   `json:"operation" validate:"lte=1"`
}

// NewTransaction returns a call to the given address.
func NewTransaction(to common.Address, data []byte, value *big.Int, op OperationType) Transaction {
	return Transaction{
		To:        &to,
		Data:      data,
		Value:     value,
		Operation: op,
	}
}

// Target returns the destination address, or the zero address when none is set.
func (t Transaction) Target() common.Address {
	if t.To == nil {
		return common.Address{}
	}

	return *t.To
}

// ValueOrZero returns the transferred value, treating a nil value as zero.
func (t Transaction) ValueOrZero() *big.Int {
	if t.Value == nil {
		return new(big.Int)
	}

	return t.Value
}

// Validate checks that the transaction can be represented on chain.
func (t Transaction) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}
	if t.Value != nil && (t.Value.Sign() < 0 || t.Value.BitLen() > 256) {
		return fmt.Errorf("invalid transaction: %w: %s", ErrInvalidValue, t.Value)
	}

	return nil
}
