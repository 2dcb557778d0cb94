package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/fsk/internal/noteservice"
	"github.com/starford/fsk/internal/storage"
	"github.com/starford/fsk/internal/testutil"
)

func testServer(t *testing.T) (*Server, storage.Vault) {
	t.Helper()
	_, vault := testutil.TestVault(t)
	svc := noteservice.New(vault, "true", nil)
	return New(svc), vault
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go doesn't expose a direct "call tool" test helper, so the
	// handler functions are exercised directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "read_note":
		result, err = srv.readNote(ctx, req)
	case "create_note":
		result, err = srv.createNote(ctx, req)
	case "list_notes":
		result, err = srv.listNotes(ctx, req)
	case "search_notes":
		result, err = srv.searchNotes(ctx, req)
	case "remove_note":
		result, err = srv.removeNote(ctx, req)
	case "move_note":
		result, err = srv.moveNote(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestCreateAndReadNote(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "create_note", map[string]interface{}{
		"title":   "test",
		"content": "# Test\nHello",
	})
	if text := resultText(r); text != "created: test" {
		t.Errorf("create result = %q", text)
	}

	r = callTool(t, srv, "read_note", map[string]interface{}{
		"title": "test",
	})
	if text := resultText(r); text != "# Test\nHello" {
		t.Errorf("read result = %q", text)
	}
}

func TestCreateNoteRefusesOverwrite(t *testing.T) {
	srv, vault := testServer(t)
	_ = vault.Write("dup", []byte("original"))

	r := callTool(t, srv, "create_note", map[string]interface{}{
		"title":   "dup",
		"content": "clobber",
	})
	if !r.IsError {
		t.Error("expected error for existing note")
	}
}

func TestListNotes(t *testing.T) {
	srv, vault := testServer(t)
	_ = vault.Write("b", []byte("b"))
	_ = vault.Write("a", []byte("a"))

	r := callTool(t, srv, "list_notes", map[string]interface{}{})
	if text := resultText(r); text != "a\nb" {
		t.Errorf("list result = %q, want sorted titles", text)
	}
}

func TestSearchNotes(t *testing.T) {
	srv, vault := testServer(t)
	_ = vault.Write("linux/kernel", []byte("scheduler internals"))

	r := callTool(t, srv, "search_notes", map[string]interface{}{"keyword": "kernel"})
	text := resultText(r)
	if !strings.Contains(text, "linux/kernel") || !strings.Contains(text, "title_match") {
		t.Errorf("search result = %q", text)
	}
}

func TestReadNoteMissing(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "read_note", map[string]interface{}{"title": "nope"})
	if !r.IsError {
		t.Error("expected error for missing note")
	}
}

func TestMoveAndRemove(t *testing.T) {
	srv, vault := testServer(t)
	_ = vault.Write("x", []byte("data"))

	r := callTool(t, srv, "move_note", map[string]interface{}{"from": "x", "to": "y/x"})
	if text := resultText(r); text != "moved: x -> y/x" {
		t.Errorf("move result = %q", text)
	}

	r = callTool(t, srv, "remove_note", map[string]interface{}{"title": "y/x"})
	if text := resultText(r); text != "removed: y/x" {
		t.Errorf("remove result = %q", text)
	}

	r = callTool(t, srv, "remove_note", map[string]interface{}{"title": "y/x"})
	if !r.IsError {
		t.Error("expected error removing missing note")
	}
}
