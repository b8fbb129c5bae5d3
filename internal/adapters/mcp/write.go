package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"fragments/internal/application/commands"
	"fragments/internal/domain"
	"fragments/internal/ports"
)

// RegisterWriteTools adds all mutating fragment tools to the MCP server.
// clipboard may be nil on hosts without one; copy_fragment then fails.
func RegisterWriteTools(s *server.MCPServer, store ports.FragmentStore, clipboard ports.Clipboard) {
	s.AddTool(saveFragmentTool(), saveFragmentHandler(store))
	s.AddTool(deleteFragmentTool(), deleteFragmentHandler(store))
	s.AddTool(saveTagTool(), saveTagHandler(store))
	s.AddTool(deleteTagTool(), deleteTagHandler(store))
	s.AddTool(copyFragmentTool(), copyFragmentHandler(store, clipboard))
	s.AddTool(pruneTagsTool(), pruneTagsHandler(store))
}

// --- save_fragment ---

func saveFragmentTool() mcp.Tool {
	return mcp.NewTool("save_fragment",
		mcp.WithDescription("Create a fragment (omit id) or replace an existing one (give its id). The whole record is replaced, so pass every field you want to keep."),
		mcp.WithString("id",
			mcp.Description("ID of the fragment to replace. Omit to create."),
		),
		mcp.WithString("title",
			mcp.Description("Fragment title, e.g. debounce.js"),
			mcp.Required(),
		),
		mcp.WithString("code",
			mcp.Description("Fragment source code"),
		),
		mcp.WithArray("tags",
			mcp.Description("Tag IDs to attach"),
			mcp.WithStringItems(),
		),
		mcp.WithArray("tag_names",
			mcp.Description("Tag names to attach; unknown names are created (case-insensitive match)"),
			mcp.WithStringItems(),
		),
	)
}

func saveFragmentHandler(store ports.FragmentStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewSaveFragmentCommand(store,
			req.GetString("id", ""),
			req.GetString("title", ""),
			req.GetString("code", ""),
		).
			WithTagIDs(req.GetStringSlice("tags", nil)).
			WithTagNames(req.GetStringSlice("tag_names", nil))

		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return jsonResult(struct {
			Message  string       `json:"message"`
			Created  bool         `json:"created"`
			Fragment fragmentJSON `json:"fragment"`
		}{
			Message: result.Message,
			Created: result.Created,
			Fragment: toFragmentJSON(commands.FragmentView{
				Fragment: result.Fragment,
				TagNames: tagNamesAfterSave(store, result.Fragment),
			}, true),
		})
	}
}

// tagNamesAfterSave resolves names for the response; a failed read only
// loses the names
func tagNamesAfterSave(store ports.FragmentStore, f domain.Fragment) []string {
	tags, _ := store.ListTags()
	return domain.TagNames(f.Tags, tags)
}

// --- delete_fragment ---

func deleteFragmentTool() mcp.Tool {
	return mcp.NewTool("delete_fragment",
		mcp.WithDescription("Delete a fragment by ID. Deleting an ID that does not exist is not an error."),
		mcp.WithString("id",
			mcp.Description("Fragment ID"),
			mcp.Required(),
		),
	)
}

func deleteFragmentHandler(store ports.FragmentStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewDeleteFragmentCommand(store, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- save_tag ---

func saveTagTool() mcp.Tool {
	return mcp.NewTool("save_tag",
		mcp.WithDescription("Create a tag (omit id) or rename an existing one."),
		mcp.WithString("id",
			mcp.Description("ID of the tag to rename. Omit to create."),
		),
		mcp.WithString("name",
			mcp.Description("Tag name"),
			mcp.Required(),
		),
	)
}

func saveTagHandler(store ports.FragmentStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewSaveTagCommand(store, req.GetString("id", ""), req.GetString("name", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return jsonResult(struct {
			Message string     `json:"message"`
			Created bool       `json:"created"`
			Tag     domain.Tag `json:"tag"`
		}{result.Message, result.Created, result.Tag})
	}
}

// --- delete_tag ---

func deleteTagTool() mcp.Tool {
	return mcp.NewTool("delete_tag",
		mcp.WithDescription("Delete a tag by ID. Fragments keep the ID until prune_tags is run."),
		mcp.WithString("id",
			mcp.Description("Tag ID"),
			mcp.Required(),
		),
	)
}

func deleteTagHandler(store ports.FragmentStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewDeleteTagCommand(store, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- copy_fragment ---

func copyFragmentTool() mcp.Tool {
	return mcp.NewTool("copy_fragment",
		mcp.WithDescription("Copy a fragment's code to the clipboard of the machine running this server."),
		mcp.WithString("id",
			mcp.Description("Fragment ID"),
			mcp.Required(),
		),
	)
}

func copyFragmentHandler(store ports.FragmentStore, clipboard ports.Clipboard) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewCopyFragmentCommand(store, clipboard, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- prune_tags ---

func pruneTagsTool() mcp.Tool {
	return mcp.NewTool("prune_tags",
		mcp.WithDescription("Remove references to deleted tags from every fragment."),
		mcp.WithBoolean("dry_run",
			mcp.Description("Report what would change without writing"),
		),
	)
}

func pruneTagsHandler(store ports.FragmentStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewPruneTagsCommand(store, req.GetBool("dry_run", false)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(result.StaleIDs) == 0 {
			return mcp.NewToolResultText(result.Message), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s\nstale: %v", result.Message, result.StaleIDs)), nil
	}
}
