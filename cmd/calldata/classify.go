package calldata

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartcontractkit/calldata/classify"
)

func buildClassifyCmd(a *app) *cobra.Command {
	var to, value string

	cmd := &cobra.Command{
		Use:   "classify <hex call data>",
		Short: "Describe what a transaction does, expanding MultiSend batches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := parseHex(args[0])
			if err != nil {
				return err
			}
			tx, err := parseTransaction(data, to, value)
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), a.cfg.OutputIndent, a.classifier.Classify(tx))
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Address the transaction is sent to")
	cmd.Flags().StringVar(&value, "value", "", "Native value sent with the transaction, in wei")

	return cmd
}

func buildFindCmd(a *app) *cobra.Command {
	var kind, to, value string

	cmd := &cobra.Command{
		Use:   "find <hex call data>",
		Short: "Find the first call of a kind in a transaction or its MultiSend batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := classify.ParseKind(kind)
			if err != nil {
				return err
			}
			data, err := parseHex(args[0])
			if err != nil {
				return err
			}
			tx, err := parseTransaction(data, to, value)
			if err != nil {
				return err
			}

			found, err := a.classifier.Find(k, tx)
			if err != nil {
				return err
			}
			if found == nil {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "no %s call found\n", kind)
				return err
			}

			return writeJSON(cmd.OutOrStdout(), a.cfg.OutputIndent, found)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Kind of call to look for, e.g. erc20_transfer or owner_management")
	cmd.Flags().StringVar(&to, "to", "", "Address the transaction is sent to")
	cmd.Flags().StringVar(&value, "value", "", "Native value sent with the transaction, in wei")
	_ = cmd.MarkFlagRequired("kind")

	return cmd
}
