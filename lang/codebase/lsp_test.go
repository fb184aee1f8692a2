package codebase

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dhamidi/ilc/lang"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type notification struct {
	method string
	params any
}

func newTestServer(t *testing.T) (*LSPServer, *glsp.Context, *[]notification) {
	t.Helper()
	root := t.TempDir()
	var sent []notification
	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			sent = append(sent, notification{method, params})
		},
	}
	ls := NewLSPServer("test")
	if _, err := ls.initialize(ctx, &protocol.InitializeParams{RootPath: &root}); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return ls, ctx, &sent
}

func lastDiagnostics(t *testing.T, sent []notification) protocol.PublishDiagnosticsParams {
	t.Helper()
	if len(sent) == 0 {
		t.Fatal("no notification sent")
	}
	n := sent[len(sent)-1]
	if n.method != protocol.ServerTextDocumentPublishDiagnostics {
		t.Fatalf("method = %s, want publishDiagnostics", n.method)
	}
	return n.params.(protocol.PublishDiagnosticsParams)
}

func TestInitializeCapabilities(t *testing.T) {
	root := t.TempDir()
	ls := NewLSPServer("1.2.3")
	result, err := ls.initialize(&glsp.Context{}, &protocol.InitializeParams{RootPath: &root})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	res := result.(protocol.InitializeResult)
	if res.ServerInfo.Name != "ilc" || *res.ServerInfo.Version != "1.2.3" {
		t.Errorf("ServerInfo = %+v", res.ServerInfo)
	}
	if res.Capabilities.DocumentSymbolProvider != true {
		t.Error("document symbols not advertised")
	}
	if ls.codebase.RootDir() != root {
		t.Errorf("RootDir = %q, want %q", ls.codebase.RootDir(), root)
	}
}

func TestDidOpenPublishesDiagnostics(t *testing.T) {
	ls, ctx, sent := newTestServer(t)
	uri := "file:///tmp/x.il"

	err := ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "program x {\n}"},
	})
	if err != nil {
		t.Fatalf("didOpen: %v", err)
	}

	params := lastDiagnostics(t, *sent)
	if params.URI != uri {
		t.Errorf("URI = %q, want %q", params.URI, uri)
	}
	if len(params.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(params.Diagnostics))
	}
	d := params.Diagnostics[0]
	if d.Range.Start.Line != 0 || d.Range.Start.Character != 10 {
		t.Errorf("Range.Start = %+v, want 0:10", d.Range.Start)
	}
	if d.Message != `expected ";" but found "{"` {
		t.Errorf("Message = %q", d.Message)
	}
	if d.Code.Value != string(lang.CodeSyntax) {
		t.Errorf("Code = %v, want %s", d.Code.Value, lang.CodeSyntax)
	}

	err = ls.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "program x; { }"}},
	})
	if err != nil {
		t.Fatalf("didChange: %v", err)
	}
	params = lastDiagnostics(t, *sent)
	if params.Diagnostics == nil || len(params.Diagnostics) != 0 {
		t.Errorf("Diagnostics = %v, want empty non-nil list", params.Diagnostics)
	}
}

func TestDidSaveWithText(t *testing.T) {
	ls, ctx, sent := newTestServer(t)
	text := "program s; int a, a; { }"
	err := ls.textDocumentDidSave(ctx, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///tmp/s.il"},
		Text:         &text,
	})
	if err != nil {
		t.Fatalf("didSave: %v", err)
	}
	params := lastDiagnostics(t, *sent)
	if len(params.Diagnostics) != 1 || params.Diagnostics[0].Code.Value != string(lang.CodeDuplicate) {
		t.Errorf("Diagnostics = %+v", params.Diagnostics)
	}
}

func TestDidCloseReloadsFromDisk(t *testing.T) {
	ls, ctx, sent := newTestServer(t)
	onDisk := filepath.Join(ls.codebase.RootDir(), "d.il")
	if err := os.WriteFile(onDisk, []byte("program d; { }"), 0o644); err != nil {
		t.Fatal(err)
	}
	unsaved := filepath.Join(ls.codebase.RootDir(), "u.il")

	for _, path := range []string{onDisk, unsaved} {
		uri := pathToURI(path)
		err := ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
			TextDocument: protocol.TextDocumentItem{URI: uri, Text: "program d { }"},
		})
		if err != nil {
			t.Fatalf("didOpen: %v", err)
		}
		if got := len(lastDiagnostics(t, *sent).Diagnostics); got != 1 {
			t.Fatalf("%s: got %d diagnostics before close, want 1", path, got)
		}

		err = ls.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		})
		if err != nil {
			t.Fatalf("didClose: %v", err)
		}
		params := lastDiagnostics(t, *sent)
		if params.URI != uri || params.Diagnostics == nil || len(params.Diagnostics) != 0 {
			t.Errorf("%s: after close %s %v, want empty diagnostics", path, params.URI, params.Diagnostics)
		}
	}

	if f := ls.codebase.GetFile(onDisk); f == nil || string(f.Content) != "program d; { }" {
		t.Errorf("on-disk file not reloaded: %+v", f)
	}
	if ls.codebase.GetFile(unsaved) != nil {
		t.Error("unsaved buffer still in codebase after close")
	}
}

func TestInitializedScansRoot(t *testing.T) {
	ls, ctx, sent := newTestServer(t)
	writeFile(t, filepath.Join(ls.codebase.RootDir(), "r.il"), "program r; { }")

	if err := ls.initialized(ctx, &protocol.InitializedParams{}); err != nil {
		t.Fatalf("initialized: %v", err)
	}
	params := lastDiagnostics(t, *sent)
	if len(params.Diagnostics) != 0 {
		t.Errorf("Diagnostics = %v, want none", params.Diagnostics)
	}
}

func TestDocumentSymbols(t *testing.T) {
	ls, ctx, _ := newTestServer(t)
	uri := "file:///tmp/sym.il"
	src := `program sym;
int g;
function bool f(int a) {
    int b;
    return true;
}
{ }`
	ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: src},
	})

	result, err := ls.textDocumentDocumentSymbol(ctx, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	if err != nil {
		t.Fatalf("documentSymbol: %v", err)
	}
	symbols := result.([]protocol.DocumentSymbol)
	if len(symbols) != 2 {
		t.Fatalf("got %d top-level symbols, want 2", len(symbols))
	}
	if symbols[0].Name != "g" || symbols[0].Kind != protocol.SymbolKindVariable {
		t.Errorf("symbol 0 = %s/%v", symbols[0].Name, symbols[0].Kind)
	}
	f := symbols[1]
	if f.Name != "f" || f.Kind != protocol.SymbolKindFunction || *f.Detail != "bool function" {
		t.Errorf("symbol 1 = %s/%v/%s", f.Name, f.Kind, *f.Detail)
	}
	if len(f.Children) != 2 || f.Children[0].Name != "a" || f.Children[1].Name != "b" {
		t.Errorf("children of f = %+v", f.Children)
	}
	want := protocol.Range{
		Start: protocol.Position{Line: 2, Character: 14},
		End:   protocol.Position{Line: 2, Character: 15},
	}
	if f.Range != want {
		t.Errorf("Range = %+v, want %+v", f.Range, want)
	}
}

func TestURIConversion(t *testing.T) {
	path, err := uriToPath("file:///home/user/a%20b.il")
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Clean("/home/user/a b.il") {
		t.Errorf("uriToPath = %q", path)
	}
	if got := pathToURI("/home/user/a.il"); got != "file:///home/user/a.il" {
		t.Errorf("pathToURI = %q", got)
	}
}
