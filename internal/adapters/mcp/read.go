package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"fragments/internal/application/commands"
	"fragments/internal/domain"
	"fragments/internal/ports"
)

// RegisterReadTools adds all read-only fragment tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, store ports.FragmentStore) {
	s.AddTool(listFragmentsTool(), listFragmentsHandler(store))
	s.AddTool(getFragmentTool(), getFragmentHandler(store))
	s.AddTool(listTagsTool(), listTagsHandler(store))
}

// fragmentJSON is the wire shape of a fragment returned by the tools
type fragmentJSON struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Code     string   `json:"code,omitempty"`
	Tags     []string `json:"tags"`
	TagNames []string `json:"tag_names"`
}

func toFragmentJSON(v commands.FragmentView, withCode bool) fragmentJSON {
	out := fragmentJSON{
		ID:       v.ID,
		Title:    v.Title,
		Tags:     v.Tags,
		TagNames: v.TagNames,
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if out.TagNames == nil {
		out.TagNames = []string{}
	}
	if withCode {
		out.Code = v.Code
	}
	return out
}

// --- list_fragments ---

func listFragmentsTool() mcp.Tool {
	return mcp.NewTool("list_fragments",
		mcp.WithDescription("List stored code fragments in saved order, with tag IDs resolved to names. Code is omitted unless include_code is true."),
		mcp.WithBoolean("include_code",
			mcp.Description("Include each fragment's code in the result"),
		),
	)
}

func listFragmentsHandler(store ports.FragmentStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		withCode := req.GetBool("include_code", false)

		catalog, err := commands.NewLoadCatalogCommand(store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		out := make([]fragmentJSON, 0, len(catalog.Fragments))
		for _, f := range catalog.Fragments {
			out = append(out, toFragmentJSON(f, withCode))
		}
		return jsonResult(out)
	}
}

// --- get_fragment ---

func getFragmentTool() mcp.Tool {
	return mcp.NewTool("get_fragment",
		mcp.WithDescription("Return one fragment, including its code."),
		mcp.WithString("id",
			mcp.Description("Fragment ID"),
			mcp.Required(),
		),
	)
}

func getFragmentHandler(store ports.FragmentStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")

		view, err := commands.NewGetFragmentCommand(store, id).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return jsonResult(toFragmentJSON(*view, true))
	}
}

// --- list_tags ---

func listTagsTool() mcp.Tool {
	return mcp.NewTool("list_tags",
		mcp.WithDescription("List all tags as {id, name} pairs in saved order."),
	)
}

func listTagsHandler(store ports.FragmentStore) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tags, err := commands.NewListTagsCommand(store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if tags == nil {
			tags = []domain.Tag{}
		}
		return jsonResult(tags)
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(fmt.Errorf("failed to encode result: %w", err))
	}
	return mcp.NewToolResultText(string(data)), nil
}
