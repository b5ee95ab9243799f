package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/neboloop/nebo-contacts/internal/logging"
	"github.com/neboloop/nebo-contacts/internal/tools"
)

// Option configures the MCP server
type Option func(*Server)

// WithImplementation sets the name and version reported to clients.
func WithImplementation(name, version string) Option {
	return func(s *Server) {
		if name != "" {
			s.name = name
		}
		if version != "" {
			s.version = version
		}
	}
}

// Server exposes the dispatcher's catalog as MCP tools.
type Server struct {
	dispatcher *tools.Dispatcher
	server     *mcp.Server
	name       string
	version    string
}

// NewServer creates an MCP server with every catalog tool registered.
func NewServer(dispatcher *tools.Dispatcher, opts ...Option) *Server {
	s := &Server{
		dispatcher: dispatcher,
		name:       "nebo-contacts",
		version:    "1.0.0",
	}
	for _, opt := range opts {
		opt(s)
	}

	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    s.name,
		Version: s.version,
	}, nil)

	s.registerTools()
	return s
}

// registerTools registers the fixed catalog; it never changes afterwards.
func (s *Server) registerTools() {
	for _, d := range s.dispatcher.Tools() {
		s.server.AddTool(&mcp.Tool{
			Name:        d.Name,
			Title:       d.Title,
			Description: d.Description,
			InputSchema: tools.Schema(d),
			Annotations: annotations(d),
		}, s.createToolHandler(d.Name))
	}
}

func annotations(d tools.Descriptor) *mcp.ToolAnnotations {
	a := &mcp.ToolAnnotations{
		Title:        d.Title,
		ReadOnlyHint: d.ReadOnly,
	}
	if !d.ReadOnly {
		destructive := d.Destructive
		a.DestructiveHint = &destructive
	}
	openWorld := false
	a.OpenWorldHint = &openWorld
	return a
}

// createToolHandler creates an MCP tool handler that returns proper TextContent
func (s *Server) createToolHandler(toolName string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		requestID := uuid.NewString()
		log := logging.With("tool", toolName, "request_id", requestID)
		start := time.Now()

		args, err := decodeArguments(req.Params.Arguments)
		if err != nil {
			log.Warn("[MCP] bad arguments", "error", err)
			return textResult(tools.Result{Text: "Error: " + err.Error(), IsError: true}), nil
		}

		log.Debug("[MCP] tool call received", "input", truncate(string(req.Params.Arguments), 200))
		result := s.dispatcher.Call(ctx, toolName, args)
		log.Info("[MCP] tool call finished",
			"is_error", result.IsError,
			"content_len", len(result.Text),
			"duration", time.Since(start).Round(time.Millisecond))

		return textResult(result), nil
	}
}

func decodeArguments(raw json.RawMessage) (map[string]any, error) {
	args := map[string]any{}
	if len(raw) == 0 || string(raw) == "null" {
		return args, nil
	}
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("arguments must be a JSON object: %w", err)
	}
	return args, nil
}

func textResult(r tools.Result) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: r.Text}},
		IsError: r.IsError,
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Run serves the MCP protocol over stdin/stdout until the client
// disconnects or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	logging.Infof("[MCP] %s %s serving %d tools over stdio", s.name, s.version, len(s.dispatcher.Tools()))
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns an HTTP handler for the MCP server
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(
		func(r *http.Request) *mcp.Server {
			return s.server
		},
		nil,
	)
}

// GetServer returns the underlying MCP server
func (s *Server) GetServer() *mcp.Server {
	return s.server
}
