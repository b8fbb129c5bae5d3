package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fragments/internal/application/commands"
)

var pruneDryRun bool

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove references to deleted tags",
	Long: `Remove tag IDs that no longer match any tag from every fragment.

Examples:
  fragments-cli prune --dry-run
  fragments-cli prune`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		pruneCmd := commands.NewPruneTagsCommand(GetStore(), pruneDryRun)
		result, err := pruneCmd.Execute(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, result.Message)
		if len(result.StaleIDs) > 0 {
			fmt.Fprintf(out, "Stale IDs: %s\n", strings.Join(result.StaleIDs, ", "))
		}
		return nil
	},
}

func init() {
	pruneCmd.Flags().BoolVar(&pruneDryRun, "dry-run", false, "report without writing")
	rootCmd.AddCommand(pruneCmd)
}
