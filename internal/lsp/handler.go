package lsp

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/Cyfrin/aderyn-sub000/internal/config"
	"github.com/Cyfrin/aderyn-sub000/internal/project"
)

var log = commonlog.GetLogger("aderyn.lsp")

// Handler implements the LSP server handlers. Analysis works on compiled
// ASTs, so the project is re-analysed when a file is opened or saved rather
// than on every change.
type Handler struct {
	mu        sync.Mutex
	root      string
	published map[protocol.DocumentUri]bool
}

// NewHandler creates a handler for the project at root. Initialize replaces
// root when the client sends one.
func NewHandler(root string) *Handler {
	return &Handler{
		root:      root,
		published: make(map[protocol.DocumentUri]bool),
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("LSP Initialize called")

	h.mu.Lock()
	switch {
	case params.RootURI != nil:
		if path, err := uriToPath(*params.RootURI); err == nil {
			h.root = path
		}
	case params.RootPath != nil:
		h.root = *params.RootPath
	}
	h.mu.Unlock()

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindNone),
				Save:      &protocol.SaveOptions{IncludeText: ptrBool(false)},
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Infof("Aderyn LSP initialized for %s", h.Root())
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Info("Aderyn LSP shutdown")
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// Root returns the project directory being analysed.
func (h *Handler) Root() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.root
}

// TextDocumentDidOpen handles file open notifications from the editor
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Debugf("Opened file: %s", params.TextDocument.URI)
	return h.refresh(ctx)
}

// TextDocumentDidSave handles file save notifications from the editor
func (h *Handler) TextDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	log.Debugf("Saved file: %s", params.TextDocument.URI)
	return h.refresh(ctx)
}

// TextDocumentDidClose clears the diagnostics shown for the closed file.
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Debugf("Closed file: %s", params.TextDocument.URI)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.published[params.TextDocument.URI] {
		delete(h.published, params.TextDocument.URI)
		sendDiagnosticNotification(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	}
	return nil
}

// refresh analyses the project and publishes diagnostics for every file
// with findings. Files that had findings before and have none now get an
// empty list.
func (h *Handler) refresh(ctx *glsp.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	cfg, err := config.LoadOrDefault(h.root)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	result, err := project.Analyze(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to analyse %s: %w", h.root, err)
	}

	rep := result.Report.AtLeast(cfg.Severity())
	next := make(map[protocol.DocumentUri]bool)
	for path, diagnostics := range ConvertIssues(result.Workspace, rep) {
		uri := pathToURI(cfg.Resolve(path))
		next[uri] = true
		sendDiagnosticNotification(ctx, uri, diagnostics)
	}
	for uri := range h.published {
		if !next[uri] {
			sendDiagnosticNotification(ctx, uri, []protocol.Diagnostic{})
		}
	}
	h.published = next
	return nil
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) -> C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func pathToURI(path string) protocol.DocumentUri {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	slashed := filepath.ToSlash(path)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	return (&url.URL{Scheme: "file", Path: slashed}).String()
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	log.Debugf("Sending %d diagnostics for %s", len(diagnostics), uri)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
