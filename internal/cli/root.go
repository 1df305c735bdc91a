package cli

import (
	"fmt"

	"github.com/embatbr/subtitler/internal/config"
	"github.com/embatbr/subtitler/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "subtitler",
	Short: "Shift and clean up SubRip subtitle files",
	Long: `Subtitler is a CLI tool that re-times SubRip (.srt) subtitle files.

It parses every caption, optionally removes hearing-impaired annotations,
shifts all (or selected) captions by a fixed offset and writes the file back
with regenerated sequence numbers.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded

		if cfg.Path() != "" {
			logger.Debugw("Loaded config", "path", cfg.Path())
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Config file (default ./"+config.DefaultFileName+" if present)")
}
