package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fragments/internal/adapters/clipboard"
	"fragments/internal/adapters/jsonfile"
	"fragments/internal/config"
	"fragments/internal/logging"
	"fragments/internal/ports"
)

// defaultLogLevel keeps routine store logs off the terminal
const defaultLogLevel = "warn"

var (
	dataPath string
	cfg      *config.Config
	logger   = zap.NewNop()
	store    ports.FragmentStore

	// newClipboard is swapped in tests
	newClipboard = clipboard.NewSystem
)

var rootCmd = &cobra.Command{
	Use:   "fragments-cli",
	Short: "CLI for managing code fragments",
	Long: `fragments-cli manages a personal library of code fragments and tags
stored in a single JSON file.

It provides commands to list, show, save, delete, copy and import
fragments, and to manage the tags attached to them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		level := cfg.LogLevel
		if level == "" {
			level = defaultLogLevel
		}
		logger, err = logging.New(logging.Options{
			Level:       level,
			File:        cfg.LogFile,
			Development: cfg.Development(),
		})
		if err != nil {
			return err
		}

		s, err := jsonfile.Open(cfg.DataFile(dataPath),
			jsonfile.WithLogger(logger),
			jsonfile.WithStrictUpdates(),
		)
		if err != nil {
			return err
		}
		store = s
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataPath, "db", "", "path to the fragments file (default $FRAGMENTS_DB, config data_path, or the user config dir)")
}

// GetStore returns the initialized store
func GetStore() ports.FragmentStore {
	return store
}
