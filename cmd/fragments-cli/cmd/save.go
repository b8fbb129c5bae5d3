package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"fragments/internal/application"
	"fragments/internal/application/commands"
	"fragments/internal/domain"
)

var (
	saveID    string
	saveTitle string
	saveCode  string
	saveFile  string
	saveTags  string
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Create or update a fragment",
	Long: `Create a fragment, or update one with --id.

When updating, fields whose flags are not given keep their stored value.
Tags are comma separated names; unknown names create new tags.

Examples:
  fragments-cli save --title debounce.js --file ./debounce.js --tags js,utils
  pbpaste | fragments-cli save --title snippet.sql --file -
  fragments-cli save --id 0191f6c2-... --title renamed.js`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		flags := cmd.Flags()

		if flags.Changed("code") && flags.Changed("file") {
			return fmt.Errorf("--code and --file cannot be used together")
		}

		code := saveCode
		if flags.Changed("file") {
			data, err := readSource(cmd.InOrStdin(), saveFile)
			if err != nil {
				return err
			}
			code = data
		}

		title := saveTitle
		var tagIDs []string
		if saveID != "" {
			existing, err := commands.NewGetFragmentCommand(GetStore(), saveID).Execute(ctx)
			if err != nil {
				return err
			}
			if !flags.Changed("title") {
				title = existing.Title
			}
			if !flags.Changed("code") && !flags.Changed("file") {
				code = existing.Code
			}
			if !flags.Changed("tags") {
				tagIDs = existing.Tags
			}
		}

		saveCmd := commands.NewSaveFragmentCommand(GetStore(), saveID, title, code).
			WithTagIDs(tagIDs).
			WithTagNames(domain.SplitTagNames(saveTags))
		result, err := saveCmd.Execute(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, t := range result.CreatedTags {
			fmt.Fprintf(out, "Created tag: %s\n", t.Name)
		}
		fmt.Fprintln(out, result.Message)
		fmt.Fprintf(out, "ID: %s\n", result.Fragment.ID)
		return nil
	},
}

// readSource reads a file, or stdin when path is "-", up to
// commands.MaxImportSize bytes
func readSource(stdin io.Reader, path string) (string, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("failed to read code: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, commands.MaxImportSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read code: %w", err)
	}
	if len(data) > commands.MaxImportSize {
		return "", &application.ValidationError{
			Field:   "file",
			Message: fmt.Sprintf("code is too large (max %d bytes)", commands.MaxImportSize),
		}
	}
	return string(data), nil
}

func init() {
	saveCmd.Flags().StringVar(&saveID, "id", "", "ID of the fragment to update")
	saveCmd.Flags().StringVarP(&saveTitle, "title", "t", "", "fragment title")
	saveCmd.Flags().StringVarP(&saveCode, "code", "c", "", "fragment code")
	saveCmd.Flags().StringVarP(&saveFile, "file", "f", "", "read code from a file (- for stdin)")
	saveCmd.Flags().StringVar(&saveTags, "tags", "", "comma separated tag names")
	rootCmd.AddCommand(saveCmd)
}
