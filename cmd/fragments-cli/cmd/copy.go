package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fragments/internal/application/commands"
)

var copyCmd = &cobra.Command{
	Use:   "copy <id>",
	Short: "Copy a fragment's code to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		copyCmd := commands.NewCopyFragmentCommand(GetStore(), newClipboard(), args[0])
		result, err := copyCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(copyCmd)
}
