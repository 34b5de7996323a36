package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/uasense/uasense/pkg/appctx"
	"github.com/uasense/uasense/pkg/config"
	"github.com/uasense/uasense/pkg/logging"
	"github.com/uasense/uasense/pkg/workspace"
)

const cliExecutable = "uasense"

// NewCommand constructs the top-level uasense CLI command, wiring global
// flags, the configuration manager, logging, and shared workspace
// preparation.
func NewCommand() *cobra.Command {
	var (
		configFile        string
		workspaceDir      string
		workspaceDisabled bool
		debug             bool
	)

	cmd := &cobra.Command{
		Use:   cliExecutable,
		Short: "uasense classifies the runtime web client from host-probe signals",
		Long: `uasense fuses independently gathered, individually unreliable host signals
(user-agent string, vendor string, capability hooks, feature probes) into a
single browser/OS/device classification with a confidence score.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			manager := config.NewManager()
			if err := manager.LoadDefaults(configFile, cmd.Flags(), debug); err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			cfg := manager.Get()
			if err := logging.ConfigureGlobalLogging(cfg.Log.Level, cfg.Log.Format, cfg.Log.File); err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			ctx := appctx.WithConfig(cmd.Context(), manager)

			if !workspaceDisabled {
				prepared, err := workspace.Prepare(workspaceDir)
				if err != nil {
					return fmt.Errorf("prepare workspace: %w", err)
				}
				ctx = workspace.WithContext(ctx, prepared)
				log.Debug().Str("workspace", prepared).Msg("workspace ready")
			} else {
				log.Debug().Msg("workspace disabled for this run")
			}

			cmd.SetContext(ctx)
			if root := cmd.Root(); root != nil && root != cmd {
				root.SetContext(ctx)
			}
			return nil
		},
	}

	cmd.SilenceUsage = true

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file path")
	cmd.PersistentFlags().StringVar(&workspaceDir, "workspace-dir", "", "Override workspace root directory")
	cmd.PersistentFlags().BoolVar(&workspaceDisabled, "no-workspace", false, "Disable workspace persistence for this run")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands"})

	cmd.AddCommand(NewClassifyCommand())
	cmd.AddCommand(NewRulesCommand())
	cmd.AddCommand(NewVersionCommand())

	return cmd
}
