package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fragments/internal/application/commands"
	"fragments/internal/domain"
)

var (
	importTitle string
	importTags  string
)

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import text files as fragments",
	Long: `Import one or more text files as new fragments titled with the
file name. Binary files and files over 1 MiB are rejected.

Examples:
  fragments-cli import debounce.js reset.css
  fragments-cli import query.sql --title "monthly report" --tags sql`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if importTitle != "" && len(args) > 1 {
			return fmt.Errorf("--title can only be used with a single file")
		}

		out := cmd.OutOrStdout()
		var failed int
		for _, path := range args {
			importCmd := commands.NewImportFileCommand(GetStore(), path)
			importCmd.Title = importTitle
			importCmd.TagNames = domain.SplitTagNames(importTags)

			result, err := importCmd.Execute(ctx)
			if err != nil {
				failed++
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
				continue
			}
			fmt.Fprintf(out, "%s (%s)\n", result.Message, result.Fragment.ID)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d file(s) failed to import", failed, len(args))
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importTitle, "title", "", "title for the fragment (default: file name)")
	importCmd.Flags().StringVar(&importTags, "tags", "", "comma separated tag names")
	rootCmd.AddCommand(importCmd)
}
