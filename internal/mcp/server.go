// ABOUTME: MCP server exposing jot notes to AI agents.
// ABOUTME: Provides tools, resources, and prompts backed by the view controllers.

package mcp

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harper/jot/internal/app"
	"github.com/harper/jot/internal/persist"
)

const ResourceScheme = "jot://note/"

type Server struct {
	server *mcp.Server
	store  *persist.Adapter
	now    func() time.Time
	logger *log.Logger

	// Handlers run one at a time; each is a short-lived view over the store.
	mu sync.Mutex
}

// Option configures a Server.
type Option func(*Server)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithLogger sets the server's logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

func NewServer(store *persist.Adapter, version string, opts ...Option) *Server {
	s := &Server{
		store:  store,
		now:    time.Now,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "jot",
			Version: version,
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		},
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

func (s *Server) Serve(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) deps() app.Deps {
	return app.Deps{
		Store:  s.store,
		Now:    s.now,
		Logger: s.logger,
	}
}
