package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fragments/internal/application/commands"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a fragment",
	Long: `Delete a fragment by ID.

Deleting an ID that does not exist succeeds without changes.

Examples:
  fragments-cli delete 0191f6c2-...`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		deleteCmd := commands.NewDeleteFragmentCommand(GetStore(), args[0])
		result, err := deleteCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
