package commands

import (
	"errors"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/uasense/uasense/cmd/uasense/internal/bind"
	"github.com/uasense/uasense/pkg/classify"
	"github.com/uasense/uasense/pkg/classify/rulesync"
	"github.com/uasense/uasense/pkg/workspace"
)

// NewRulesCommand wires CLI helpers for pattern catalog management.
func NewRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rules",
		Short:   "Manage the pattern rule catalog",
		GroupID: "core",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newRulesSyncCommand())
	cmd.AddCommand(newRulesWatchCommand())

	return cmd
}

func newRulesSyncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync the pattern catalog from a remote or local source",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromContext(cmd)

			opts, err := bind.BindRulesSyncOptions(cmd)
			if errors.Is(err, classify.ErrSourceRequired) && cfg.Rules.URL != "" {
				opts.URL = cfg.Rules.URL
			} else if err != nil {
				return err
			}

			destination, err := catalogDestination(cmd, opts.CacheDir)
			if err != nil {
				return err
			}

			svc := rulesync.Service{
				CacheDir: destination,
				Store:    rulesync.FileStore{Path: filepath.Join(destination, classify.CatalogFileName)},
			}
			if opts.FilePath != "" {
				svc.Source = rulesync.FileSource{Path: opts.FilePath}
			} else {
				svc.Source = rulesync.HTTPSource{URL: opts.URL}
			}

			catalog, err := svc.Sync(cmd.Context())
			if err != nil {
				return classify.WrapSyncError(err)
			}

			log.Info().
				Str("cache", destination).
				Int("version_rules", len(catalog.VersionRules)).
				Int("os_rules", len(catalog.OSRules)).
				Msg("pattern catalog synced")
			return nil
		},
	}

	cmd.Flags().String("file", "", "Load the rule catalog from a local file")
	cmd.Flags().String("url", "", "Download the rule catalog from a remote URL")
	cmd.Flags().String("cache-dir", "", "Override the catalog cache destination directory")

	return cmd
}

func newRulesWatchCommand() *cobra.Command {
	var cacheDir string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the synced catalog and validate it on every change",
		Long: `Watches the synced catalog file and reloads it on every write. A valid
catalog replaces the active rules; a corrupt one is rejected with a warning
and the previous rules stay in effect. Runs until interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			destination, err := catalogDestination(cmd, cacheDir)
			if err != nil {
				return err
			}

			engine, err := classify.NewEngine(classify.Signals{})
			if err != nil {
				return err
			}

			watcher, err := classify.NewCatalogWatcher(engine, destination, log.Logger)
			if err != nil {
				return err
			}

			log.Info().Str("cache", destination).Msg("watching rule catalog")
			return watcher.Start(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Override the catalog cache directory to watch")

	return cmd
}

// catalogDestination resolves the catalog cache directory: explicit flag,
// then configuration, then the prepared workspace.
func catalogDestination(cmd *cobra.Command, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if dir := configFromContext(cmd).Rules.CacheDir; dir != "" {
		return dir, nil
	}
	if root, ok := workspace.FromContext(cmd.Context()); ok {
		return workspace.CacheDir(root), nil
	}
	return "", errors.New("no catalog cache directory available; pass --cache-dir or enable the workspace")
}
