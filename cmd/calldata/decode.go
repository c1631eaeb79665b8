package calldata

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/smartcontractkit/calldata/contracts"
	"github.com/smartcontractkit/calldata/types"
)

type decodedCall struct {
	Contract contracts.Kind    `json:"contract"`
	Version  contracts.Version `json:"version,omitempty"`
	Function string            `json:"function"`
	Selector string            `json:"selector"`
	Args     json.RawMessage   `json:"args"`
}

func buildDecodeCmd(a *app) *cobra.Command {
	var (
		kind    string
		version string
	)

	cmd := &cobra.Command{
		Use:   "decode <hex call data>",
		Short: "Decode call data against the bundled contract interfaces",
		Long:  `Without --contract the interfaces are tried in registration order and the first one the call data decodes with is used.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := parseHex(args[0])
			if err != nil {
				return err
			}

			var (
				entry contracts.Entry
				call  *types.DecodedCall
			)
			if kind != "" {
				d, err := a.registry.Lookup(contracts.Kind(kind), contracts.Version(version))
				if err != nil {
					return err
				}
				call, err = d.DecodeFunctionData(data)
				if err != nil {
					return err
				}
				entry = contracts.Entry{Kind: contracts.Kind(kind), Version: contracts.Version(version), Decoder: d}
			} else {
				var ok bool
				entry, call, ok = a.registry.Match(data)
				if !ok {
					return errors.New("call data does not decode with any bundled contract interface")
				}
			}

			_, argsJSON, err := call.String()
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), a.cfg.OutputIndent, decodedCall{
				Contract: entry.Kind,
				Version:  entry.Version,
				Function: call.FunctionName,
				Selector: call.Selector.String(),
				Args:     json.RawMessage(argsJSON),
			})
		},
	}

	cmd.Flags().StringVar(&kind, "contract", "", "Contract interface to decode with: erc20, safe, multisend, settlement, proxy_factory, delay_modifier or vault")
	cmd.Flags().StringVar(&version, "version", "", "Release of a versioned contract interface")

	return cmd
}
