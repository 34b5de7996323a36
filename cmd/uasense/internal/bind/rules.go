package bind

import (
	"github.com/spf13/cobra"

	"github.com/uasense/uasense/pkg/classify"
)

// RulesSyncOptions holds configuration options for the rules sync command.
type RulesSyncOptions struct {
	FilePath string
	URL      string
	CacheDir string
}

// BindRulesSyncOptions extracts and validates rules sync command flags.
//
// Flags read:
//   - --file: load the rule catalog from a local file
//   - --url: download the rule catalog from a remote URL
//   - --cache-dir: override the catalog cache destination directory
func BindRulesSyncOptions(cmd *cobra.Command) (RulesSyncOptions, error) {
	filePath, _ := cmd.Flags().GetString("file")
	url, _ := cmd.Flags().GetString("url")
	cacheDir, _ := cmd.Flags().GetString("cache-dir")

	opts := RulesSyncOptions{
		FilePath: filePath,
		URL:      url,
		CacheDir: cacheDir,
	}

	if filePath == "" && url == "" {
		return opts, classify.NewSourceRequiredError()
	}
	if filePath != "" && url != "" {
		return opts, classify.NewSourceConflictError()
	}

	return opts, nil
}
