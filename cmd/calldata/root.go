package calldata

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smartcontractkit/calldata"
	"github.com/smartcontractkit/calldata/classify"
	"github.com/smartcontractkit/calldata/contracts"
	"github.com/smartcontractkit/calldata/internal/config"
	"github.com/smartcontractkit/calldata/multisend"
)

// app holds what every subcommand needs. It is populated before any subcommand runs.
type app struct {
	cfg        config.Config
	lggr       *zap.SugaredLogger
	registry   *contracts.Registry
	batches    *multisend.Decoder
	classifier *classify.Classifier
}

func BuildCalldataCmd() *cobra.Command {
	var (
		envFile     string
		logLevel    string
		safeVersion string
		indent      int
	)
	a := &app{}

	cmd := cobra.Command{
		Use:          "calldata",
		Short:        "Decode EVM call data and Safe MultiSend batches",
		Long:         `Settings are read from the environment (CALLDATA_LOG_LEVEL, CALLDATA_SAFE_VERSION, CALLDATA_OUTPUT_INDENT) or a .env file. Flags take precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("safe-version") {
				cfg.SafeVersion = safeVersion
			}
			if flags.Changed("indent") {
				cfg.OutputIndent = indent
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return a.init(cfg)
		},
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path of an optional .env file")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&safeVersion, "safe-version", "", "MultiSend release used to unpack batches: 1.3.0 or 1.4.1")
	cmd.PersistentFlags().IntVar(&indent, "indent", 0, "Number of spaces used to indent JSON output")

	cmd.AddCommand(buildDecodeCmd(a))
	cmd.AddCommand(buildMultiSendCmd(a))
	cmd.AddCommand(buildClassifyCmd(a))
	cmd.AddCommand(buildFindCmd(a))

	return &cmd
}

func (a *app) init(cfg config.Config) error {
	lggr, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	version := contracts.Version(cfg.SafeVersion)
	registry := contracts.NewRegistry(calldata.WithLogger(lggr))
	ms, err := registry.MultiSend(version)
	if err != nil {
		return err
	}
	classifier, err := classify.New(registry, version)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.lggr = lggr
	a.registry = registry
	a.batches = multisend.NewDecoder(ms)
	a.classifier = classifier

	return nil
}

func newLogger(level string) (*zap.SugaredLogger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	lggr, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return lggr.Sugar(), nil
}
