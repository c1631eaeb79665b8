package calldata

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/smartcontractkit/calldata/multisend"
	"github.com/smartcontractkit/calldata/types"
)

func buildMultiSendCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "multisend",
		Short: "Pack and unpack MultiSend batches",
	}

	cmd.AddCommand(buildMultiSendDecodeCmd(a))
	cmd.AddCommand(buildMultiSendEncodeCmd(a))

	return cmd
}

func buildMultiSendDecodeCmd(a *app) *cobra.Command {
	var packed bool

	cmd := &cobra.Command{
		Use:   "decode <hex data>",
		Short: "Print the transactions of a multiSend call as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := parseHex(args[0])
			if err != nil {
				return err
			}

			var txs []types.Transaction
			if packed {
				txs, err = multisend.Decode(data)
			} else {
				txs, err = a.batches.DecodeCall(data)
			}
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), a.cfg.OutputIndent, txs)
		},
	}

	cmd.Flags().BoolVar(&packed, "packed", false, "The input is the packed transactions payload rather than a full multiSend call")

	return cmd
}

func buildMultiSendEncodeCmd(a *app) *cobra.Command {
	var (
		batchPath string
		packed    bool
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a JSON list of transactions as a multiSend call",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			txs, err := loadBatch(batchPath)
			if err != nil {
				return err
			}

			var data []byte
			if packed {
				data, err = multisend.Encode(txs)
			} else {
				data, err = a.batches.EncodeCall(txs)
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(data))

			return err
		},
	}

	cmd.Flags().StringVar(&batchPath, "batch", "", "Path of a JSON file holding the transactions")
	cmd.Flags().BoolVar(&packed, "packed", false, "Print only the packed transactions payload")
	_ = cmd.MarkFlagRequired("batch")

	return cmd
}
