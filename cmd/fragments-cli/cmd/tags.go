package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fragments/internal/application/commands"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List and manage tags",
	Long: `List tags, or create, rename and delete them.

Deleting a tag leaves its ID on the fragments that used it; run
"fragments-cli prune" to remove those references.

Examples:
  fragments-cli tags
  fragments-cli tags save javascript
  fragments-cli tags save --id 0191f6c2-... js
  fragments-cli tags delete 0191f6c2-...`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		catalog, err := commands.NewLoadCatalogCommand(GetStore()).Execute(ctx)
		if err != nil {
			return err
		}

		usage := make(map[string]int)
		for _, f := range catalog.Fragments {
			for _, id := range f.Tags {
				usage[id]++
			}
		}

		out := cmd.OutOrStdout()
		if len(catalog.Tags) == 0 {
			fmt.Fprintln(out, "No tags.")
			return nil
		}
		for _, t := range catalog.Tags {
			fmt.Fprintf(out, "%s  %s (%d)\n", t.ID, t.Name, usage[t.ID])
		}
		return nil
	},
}

var tagSaveID string

var tagsSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Create a tag, or rename one with --id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		saveCmd := commands.NewSaveTagCommand(GetStore(), tagSaveID, args[0])
		result, err := saveCmd.Execute(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, result.Message)
		fmt.Fprintf(out, "ID: %s\n", result.Tag.ID)
		return nil
	},
}

var tagsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		deleteCmd := commands.NewDeleteTagCommand(GetStore(), args[0])
		result, err := deleteCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	tagsSaveCmd.Flags().StringVar(&tagSaveID, "id", "", "ID of the tag to rename")
	tagsCmd.AddCommand(tagsSaveCmd)
	tagsCmd.AddCommand(tagsDeleteCmd)
	rootCmd.AddCommand(tagsCmd)
}
