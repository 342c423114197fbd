package codebase

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const (
	lsName           = "depfind"
	maxSymbolResults = 1000
)

var lspLog = commonlog.GetLogger("depfind.lsp")

// LSPServer answers workspace/symbol requests from the symbols gathered
// over the class files of a workspace.
type LSPServer struct {
	codebase     *Codebase
	watcher      *Watcher
	handler      protocol.Handler
	server       *server.Server
	version      string
	pollInterval time.Duration
}

// NewLSPServer serves c. When c has no roots, the workspace root sent by
// the client is used. A positive pollInterval reloads the codebase when
// class files change.
func NewLSPServer(c *Codebase, version string, pollInterval time.Duration) *LSPServer {
	ls := &LSPServer{
		codebase:     c,
		version:      version,
		pollInterval: pollInterval,
	}

	ls.handler = protocol.Handler{
		Initialize:                     ls.initialize,
		Initialized:                    ls.initialized,
		Shutdown:                       ls.shutdown,
		SetTrace:                       ls.setTrace,
		WorkspaceSymbol:                ls.workspaceSymbol,
		WorkspaceDidChangeWatchedFiles: ls.workspaceDidChangeWatchedFiles,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if len(ls.codebase.Roots()) == 0 {
		rootDir := "."
		if params.RootPath != nil && *params.RootPath != "" {
			rootDir = *params.RootPath
		} else if params.RootURI != nil && *params.RootURI != "" {
			if path, err := uriToPath(*params.RootURI); err == nil {
				rootDir = path
			}
		}
		ls.codebase.SetRoots(rootDir)
	}

	capabilities := ls.handler.CreateServerCapabilities()

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.codebase.Reload(context.Background()); err != nil {
		lspLog.Errorf("initial load failed: %s", err)
		return nil
	}
	lspLog.Infof("indexed %d symbols from %v", len(ls.codebase.Symbols()), ls.codebase.Roots())

	if ls.pollInterval > 0 {
		ls.watcher = NewWatcher(ls.codebase, ls.pollInterval)
		ls.watcher.Start()
	}
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
		ls.watcher = nil
	}
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) workspaceDidChangeWatchedFiles(ctx *glsp.Context, params *protocol.DidChangeWatchedFilesParams) error {
	if err := ls.codebase.Reload(context.Background()); err != nil {
		lspLog.Errorf("reload failed: %s", err)
	}
	return nil
}

func (ls *LSPServer) workspaceSymbol(ctx *glsp.Context, params *protocol.WorkspaceSymbolParams) ([]protocol.SymbolInformation, error) {
	symbols := ls.codebase.Search(params.Query, maxSymbolResults)

	items := make([]protocol.SymbolInformation, 0, len(symbols))
	for _, s := range symbols {
		container := s.Container
		items = append(items, protocol.SymbolInformation{
			Name:          s.Name,
			Kind:          toProtocolKind(s.Kind),
			ContainerName: &container,
			Location: protocol.Location{
				URI: sourceURI(s.Source),
			},
		})
	}
	return items, nil
}

func toProtocolKind(kind SymbolKind) protocol.SymbolKind {
	switch kind {
	case SymbolKindClass:
		return protocol.SymbolKindClass
	case SymbolKindField:
		return protocol.SymbolKindField
	case SymbolKindMethod:
		return protocol.SymbolKindMethod
	case SymbolKindConstructor:
		return protocol.SymbolKindConstructor
	case SymbolKindLocalVariable:
		return protocol.SymbolKindVariable
	default:
		return protocol.SymbolKindNull
	}
}

// sourceURI turns a loader source name into a URI. Jar entries use the
// "jar:file:///lib.jar!/com/example/Main.class" form.
func sourceURI(source string) protocol.DocumentUri {
	path, entry, inJar := strings.Cut(source, "!/")
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	if inJar {
		return protocol.DocumentUri("jar:" + u.String() + "!/" + entry)
	}
	return protocol.DocumentUri(u.String())
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}
