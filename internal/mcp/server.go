// Package mcp exposes the search pipeline as a Model Context Protocol tool
// served over stdio.
package mcp

import (
	"context"
	"path/filepath"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/standardbeagle/yoink/internal/search"
	"github.com/standardbeagle/yoink/internal/version"
)

// ServerName is reported to clients during initialization
const ServerName = "yoink-mcp-server"

// Server serves the search tool for one default root
type Server struct {
	server *mcp.Server
	engine *search.Engine
	root   string
	log    *logrus.Entry
}

// NewServer creates a server whose searches default to root
func NewServer(engine *search.Engine, root string, log *logrus.Entry) *Server {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	s := &Server{
		server: mcp.NewServer(&mcp.Implementation{
			Name:    ServerName,
			Version: version.Version,
		}, nil),
		engine: engine,
		root:   filepath.Clean(root),
		log:    log,
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "search",
		Description: "Find files and directories whose path or contents match a regular expression. Results are ranked shallowest first and tagged PATH, TEXT or BOTH.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"query": {
					Type:        "string",
					Description: "Regular expression matched against relative paths, file names and file contents. Empty lists every entry.",
				},
				"root": {
					Type:        "string",
					Description: "Directory to search. Relative paths resolve against the server's root.",
				},
				"occurrences": {
					Type:        "boolean",
					Description: "Include line-level matches for content hits",
				},
			},
			Required: []string{"query"},
		},
	}, s.handleSearch)
}

// Start serves requests on stdin/stdout until ctx is done or the client disconnects
func (s *Server) Start(ctx context.Context) error {
	s.log.WithField("root", s.root).Debug("starting MCP server with stdio transport")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// resolveRoot maps a request root onto the filesystem
func (s *Server) resolveRoot(root string) string {
	switch {
	case root == "":
		return s.root
	case filepath.IsAbs(root):
		return filepath.Clean(root)
	default:
		return filepath.Join(s.root, root)
	}
}
