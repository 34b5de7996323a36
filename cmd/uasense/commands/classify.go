package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/uasense/uasense/cmd/uasense/internal/bind"
	"github.com/uasense/uasense/cmd/uasense/internal/format"
	"github.com/uasense/uasense/pkg/appctx"
	"github.com/uasense/uasense/pkg/cache"
	"github.com/uasense/uasense/pkg/classify"
	"github.com/uasense/uasense/pkg/config"
	"github.com/uasense/uasense/pkg/policy"
	"github.com/uasense/uasense/pkg/workspace"
)

// NewClassifyCommand wires the classification entry point: read a host-probe
// signal bundle, run the engine, print the detection result.
func NewClassifyCommand() *cobra.Command {
	var (
		signalsPath    string
		outputMode     string
		quiet          bool
		noColor        bool
		fresh          bool
		applyPolicy    bool
		deviceOnly     bool
		resolveVersion string
	)

	cmd := &cobra.Command{
		Use:     "classify",
		Short:   "Classify the web client described by a host-probe signal bundle",
		GroupID: "core",
		Example: `  uasense classify --signals probe.yaml
  cat probe.json | uasense classify --output json
  uasense classify --signals probe.yaml --resolve-version Chrome`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := format.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), format.OutputMode(outputMode), quiet, !noColor)

			data, err := readSignalBundle(cmd, signalsPath)
			if err != nil {
				_ = f.PrintError(err)
				return err
			}

			signals, err := bind.Signals(data)
			if err != nil {
				_ = f.PrintError(err)
				return err
			}

			cfg := configFromContext(cmd)
			engine, cleanup, err := buildEngine(cmd, cfg, signals, fresh)
			if err != nil {
				_ = f.PrintError(err)
				return err
			}
			defer cleanup()

			if deviceOnly {
				return printScalar(f, "device", string(engine.DeviceClass()))
			}
			if resolveVersion != "" {
				label := classify.Label(resolveVersion)
				if !label.Valid() {
					err := fmt.Errorf("unknown browser label %q", resolveVersion)
					_ = f.PrintError(err)
					return err
				}
				return printScalar(f, "version", engine.ResolveVersion(label))
			}

			result := engine.Classify()

			if f.Mode() == format.ModeJSON {
				payload := map[string]any{"result": result}
				if applyPolicy {
					payload["assessment"] = policyEvaluator(cfg).Evaluate(result)
				}
				return f.PrintJSON(payload)
			}

			if err := f.PrintSummary(format.RenderDetection(result)); err != nil {
				return err
			}
			if applyPolicy {
				assessment := policyEvaluator(cfg).Evaluate(result)
				if err := f.PrintSummary(format.RenderAssessment(assessment)); err != nil {
					return err
				}
				if !assessment.Trusted {
					return fmt.Errorf("client not trusted by policy")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&signalsPath, "signals", "s", "", "Signal bundle file (YAML or JSON); '-' or empty reads stdin")
	cmd.Flags().StringVarP(&outputMode, "output", "o", string(format.ModeTable), "Output mode: table | json")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress summary output")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&fresh, "fresh", false, "Bypass the result cache and classify from scratch")
	cmd.Flags().BoolVar(&applyPolicy, "policy", false, "Evaluate the configured trust policy against the result")
	cmd.Flags().BoolVar(&deviceOnly, "device", false, "Print only the device class")
	cmd.Flags().StringVar(&resolveVersion, "resolve-version", "", "Print only the version for the given browser label")

	return cmd
}

func printScalar(f format.Formatter, key, value string) error {
	if f.Mode() == format.ModeJSON {
		return f.PrintJSON(map[string]string{key: value})
	}
	return f.PrintSummary(value)
}

func readSignalBundle(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read signal bundle from stdin: %w", err)
		}
		if len(data) == 0 {
			return nil, classify.NewSignalsRequiredError()
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read signal bundle: %w", err)
	}
	return data, nil
}

func configFromContext(cmd *cobra.Command) config.Config {
	if manager, ok := appctx.Config(cmd.Context()); ok {
		return manager.Get()
	}
	return config.DefaultConfig()
}

// buildEngine assembles the engine from configuration and workspace state:
// catalog (synced external when present, builtin otherwise), result cache,
// and telemetry. The returned cleanup closes the telemetry writer.
func buildEngine(cmd *cobra.Command, cfg config.Config, signals classify.Signals, fresh bool) (*classify.Engine, func(), error) {
	cacheDir := cfg.Rules.CacheDir
	if cacheDir == "" {
		if root, ok := workspace.FromContext(cmd.Context()); ok {
			cacheDir = workspace.CacheDir(root)
		}
	}

	catalog, err := classify.LoadCatalog(cacheDir)
	if err != nil {
		return nil, nil, fmt.Errorf("load rule catalog: %w", err)
	}

	opts := []classify.Option{classify.WithCatalog(catalog)}

	if fresh {
		opts = append(opts, classify.WithCache(cache.Noop[classify.DetectionResult]{}))
	}

	cleanup := func() {}
	if cfg.Telemetry.File != "" {
		telemetryPath := cfg.Telemetry.File
		if !filepath.IsAbs(telemetryPath) {
			if root, ok := workspace.FromContext(cmd.Context()); ok {
				telemetryPath = filepath.Join(workspace.TelemetryDir(root), telemetryPath)
			}
		}
		writer, err := classify.NewTelemetryWriter(telemetryPath)
		if err != nil {
			log.Warn().Err(err).Msg("telemetry disabled")
		} else {
			opts = append(opts, classify.WithTelemetry(writer))
			cleanup = func() { _ = writer.Close() }
		}
	}

	engine, err := classify.NewEngine(signals, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return engine, cleanup, nil
}

func policyEvaluator(cfg config.Config) policy.Evaluator {
	minVersions := make(map[classify.Label]string, len(cfg.Policy.MinVersions))
	for label, min := range cfg.Policy.MinVersions {
		minVersions[classify.Label(label)] = min
	}
	return policy.Evaluator{
		MinConfidence: cfg.Policy.MinConfidence,
		MinVersions:   minVersions,
	}
}
