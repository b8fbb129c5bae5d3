package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fragments/internal/adapters/highlight"
	"fragments/internal/application/commands"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List fragments",
	Long: `List all fragments in saved order with their tags.

Tags that were deleted but are still referenced are shown by ID.

Examples:
  fragments-cli list
  fragments-cli list --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		catalog, err := commands.NewLoadCatalogCommand(GetStore()).Execute(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if listJSON {
			type row struct {
				ID       string   `json:"id"`
				Title    string   `json:"title"`
				Code     string   `json:"code"`
				Tags     []string `json:"tags"`
				TagNames []string `json:"tag_names"`
			}
			rows := make([]row, 0, len(catalog.Fragments))
			for _, f := range catalog.Fragments {
				rows = append(rows, row{f.ID, f.Title, f.Code, f.Tags, f.TagNames})
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		}

		if len(catalog.Fragments) == 0 {
			fmt.Fprintln(out, "No fragments.")
			return nil
		}
		for _, f := range catalog.Fragments {
			fmt.Fprintf(out, "%s  %s%s\n", f.ID, f.Title, formatTagNames(f.TagNames))
		}
		return nil
	},
}

var showColor bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a fragment's code",
	Long: `Print a fragment's title, tags and code.

Examples:
  fragments-cli show 0191f6c2-...
  fragments-cli show 0191f6c2-... --color`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		view, err := commands.NewGetFragmentCommand(GetStore(), args[0]).Execute(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s%s\n\n", view.Title, formatTagNames(view.TagNames))

		code := view.Code
		if showColor {
			h := highlight.New(cfg.HighlightStyle)
			if code, err = h.Code(view.Title, view.Code); err != nil {
				return err
			}
		}
		fmt.Fprint(out, code)
		if !strings.HasSuffix(code, "\n") {
			fmt.Fprintln(out)
		}
		return nil
	},
}

func formatTagNames(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return "  [" + strings.Join(names, ", ") + "]"
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print fragments as JSON")
	showCmd.Flags().BoolVar(&showColor, "color", false, "syntax highlight the code")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
}
