package calldata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/smartcontractkit/calldata/types"
)

// parseHex decodes a hex string with or without the 0x prefix.
func parseHex(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	if s == "0x" {
		return []byte{}, nil
	}

	data, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex data: %w", err)
	}

	return data, nil
}

// parseTransaction builds the transaction described by the --to and --value flags around data.
func parseTransaction(data []byte, to, value string) (types.Transaction, error) {
	tx := types.Transaction{Data: data}

	if to != "" {
		if !common.IsHexAddress(to) {
			return types.Transaction{}, fmt.Errorf("invalid address %q", to)
		}
		addr := common.HexToAddress(to)
		tx.To = &addr
	}

	if value != "" {
		v, ok := math.ParseBig256(value)
		if !ok {
			return types.Transaction{}, fmt.Errorf("invalid value %q", value)
		}
		tx.Value = v
	} else {
		tx.Value = new(big.Int)
	}

	return tx, nil
}

func loadBatch(path string) ([]types.Transaction, error) {
	if path == "" {
		return nil, errors.New("a batch file is required")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var txs []types.Transaction
	if err := json.Unmarshal(raw, &txs); err != nil {
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}

	return txs, nil
}

func writeJSON(w io.Writer, indent int, v any) error {
	out, err := json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	_, err = fmt.Fprintln(w, string(out))

	return err
}
