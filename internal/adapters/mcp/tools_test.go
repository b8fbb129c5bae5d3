package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fragments/internal/adapters/jsonfile"
	"fragments/internal/domain"
)

type fakeClipboard struct {
	text string
}

func (c *fakeClipboard) WriteText(text string) error {
	c.text = text
	return nil
}

func newStore(t *testing.T) *jsonfile.Store {
	t.Helper()
	store, err := jsonfile.Open(filepath.Join(t.TempDir(), "fragments.json"), jsonfile.WithStrictUpdates())
	require.NoError(t, err)
	return store
}

func call(t *testing.T, handler server.ToolHandlerFunc, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	}
	t.Fatalf("unexpected content type %T", res.Content[0])
	return ""
}

func TestSaveFragment_CreatesTagsByName(t *testing.T) {
	store := newStore(t)

	res := call(t, saveFragmentHandler(store), map[string]any{
		"title":     "debounce.js",
		"code":      "function debounce() {}",
		"tag_names": []any{"js", "JS", "utils"},
	})
	require.False(t, res.IsError, text(t, res))

	var out struct {
		Message  string       `json:"message"`
		Created  bool         `json:"created"`
		Fragment fragmentJSON `json:"fragment"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
	assert.True(t, out.Created)
	assert.Equal(t, "Created fragment: debounce.js", out.Message)
	assert.NotEmpty(t, out.Fragment.ID)
	require.Len(t, out.Fragment.Tags, 3)
	assert.Equal(t, out.Fragment.Tags[0], out.Fragment.Tags[1])
	assert.Equal(t, []string{"js", "js", "utils"}, out.Fragment.TagNames)

	tags, err := store.ListTags()
	require.NoError(t, err)
	assert.Len(t, tags, 2)
}

func TestSaveFragment_UnknownIDIsToolError(t *testing.T) {
	store := newStore(t)

	res := call(t, saveFragmentHandler(store), map[string]any{
		"id":    "missing",
		"title": "x",
	})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "not found")
}

func TestSaveFragment_MissingTitle(t *testing.T) {
	res := call(t, saveFragmentHandler(newStore(t)), map[string]any{"code": "x"})
	assert.True(t, res.IsError)
}

func TestListFragments_OmitsCodeByDefault(t *testing.T) {
	store := newStore(t)
	_, err := store.SaveFragment(domain.Fragment{Title: "a", Code: "secret", Tags: []string{"gone"}})
	require.NoError(t, err)

	var list []fragmentJSON
	res := call(t, listFragmentsHandler(store), nil)
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &list))
	require.Len(t, list, 1)
	assert.Empty(t, list[0].Code)
	assert.Equal(t, []string{"gone"}, list[0].TagNames)

	res = call(t, listFragmentsHandler(store), map[string]any{"include_code": true})
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &list))
	assert.Equal(t, "secret", list[0].Code)
}

func TestListTags_EmptyIsArray(t *testing.T) {
	res := call(t, listTagsHandler(newStore(t)), nil)
	assert.JSONEq(t, "[]", text(t, res))
}

func TestGetFragment(t *testing.T) {
	store := newStore(t)
	saved, err := store.SaveFragment(domain.Fragment{Title: "a", Code: "x := 1"})
	require.NoError(t, err)

	var got fragmentJSON
	res := call(t, getFragmentHandler(store), map[string]any{"id": saved.ID})
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
	assert.Equal(t, "x := 1", got.Code)

	res = call(t, getFragmentHandler(store), map[string]any{"id": "nope"})
	assert.True(t, res.IsError)
}

func TestDeleteFragment_Idempotent(t *testing.T) {
	store := newStore(t)
	saved, err := store.SaveFragment(domain.Fragment{Title: "a"})
	require.NoError(t, err)

	res := call(t, deleteFragmentHandler(store), map[string]any{"id": saved.ID})
	assert.False(t, res.IsError)
	res = call(t, deleteFragmentHandler(store), map[string]any{"id": saved.ID})
	assert.False(t, res.IsError)

	list, err := store.ListFragments()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTagTools(t *testing.T) {
	store := newStore(t)

	res := call(t, saveTagHandler(store), map[string]any{"name": "go"})
	require.False(t, res.IsError, text(t, res))

	var out struct {
		Tag domain.Tag `json:"tag"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
	require.NotEmpty(t, out.Tag.ID)

	res = call(t, saveTagHandler(store), map[string]any{"id": out.Tag.ID, "name": "golang"})
	require.False(t, res.IsError, text(t, res))

	tags, err := store.ListTags()
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "golang", tags[0].Name)

	res = call(t, deleteTagHandler(store), map[string]any{"id": out.Tag.ID})
	assert.False(t, res.IsError)
}

func TestCopyFragment(t *testing.T) {
	store := newStore(t)
	saved, err := store.SaveFragment(domain.Fragment{Title: "a", Code: "echo hi"})
	require.NoError(t, err)

	clip := &fakeClipboard{}
	res := call(t, copyFragmentHandler(store, clip), map[string]any{"id": saved.ID})
	require.False(t, res.IsError, text(t, res))
	assert.Equal(t, "echo hi", clip.text)

	res = call(t, copyFragmentHandler(store, nil), map[string]any{"id": saved.ID})
	assert.True(t, res.IsError)
}

func TestPruneTags(t *testing.T) {
	store := newStore(t)
	_, err := store.SaveFragment(domain.Fragment{Title: "a", Tags: []string{"gone"}})
	require.NoError(t, err)

	res := call(t, pruneTagsHandler(store), map[string]any{"dry_run": true})
	assert.Contains(t, text(t, res), "gone")

	res = call(t, pruneTagsHandler(store), nil)
	require.False(t, res.IsError)

	list, err := store.ListFragments()
	require.NoError(t, err)
	assert.Empty(t, list[0].Tags)
}

func TestToolError(t *testing.T) {
	res, err := toolError(errors.New("boom"))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "boom", text(t, res))
}

func TestRegister(t *testing.T) {
	s := server.NewMCPServer("fragments-mcp-test", "0.0.0", server.WithToolCapabilities(true))
	store := newStore(t)

	assert.NotPanics(t, func() {
		RegisterReadTools(s, store)
		RegisterWriteTools(s, store, &fakeClipboard{})
	})
}
