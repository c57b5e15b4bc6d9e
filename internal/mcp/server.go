package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Aman-CERP/optindex/internal/catalog"
	"github.com/Aman-CERP/optindex/internal/config"
	apperrors "github.com/Aman-CERP/optindex/internal/errors"
	"github.com/Aman-CERP/optindex/internal/telemetry"
	"github.com/Aman-CERP/optindex/pkg/indexer"
	"github.com/Aman-CERP/optindex/pkg/version"
)

// ServerName is reported to clients during initialization.
const ServerName = "optindex"

// Server is the MCP server for optindex. It answers grouping and jump
// queries against the catalogs in its registry.
type Server struct {
	mcp      *mcp.Server
	registry *catalog.Registry
	config   *config.Config
	metrics  *telemetry.QueryMetrics
	logger   *slog.Logger
}

// ToolInfo contains information about a registered tool.
type ToolInfo struct {
	Name        string
	Description string
}

// FilterAndGroupInput defines the input schema for the filter_and_group tool.
type FilterAndGroupInput struct {
	Catalog string `json:"catalog,omitempty" jsonschema:"catalog name such as brands or sizes; defaults to the configured catalog"`
	Query   string `json:"query,omitempty" jsonschema:"case-insensitive substring filter; empty keeps every option"`
}

// FilterAndGroupOutput defines the output schema for the filter_and_group tool.
type FilterAndGroupOutput struct {
	Catalog   string              `json:"catalog" jsonschema:"catalog that was queried"`
	Query     string              `json:"query" jsonschema:"query that was applied"`
	Total     int                 `json:"total" jsonschema:"number of matching options"`
	Sections  []indexer.Section   `json:"sections" jsonschema:"matching options grouped by heading in ascending order"`
	JumpIndex indexer.JumpIndex   `json:"jump_index" jsonschema:"heading to zero-based section position"`
	Rail      []indexer.RailEntry `json:"rail" jsonschema:"every rail letter with its section position when enabled"`
}

// ResolveJumpInput defines the input schema for the resolve_jump tool.
type ResolveJumpInput struct {
	Catalog string `json:"catalog,omitempty" jsonschema:"catalog name; defaults to the configured catalog"`
	Query   string `json:"query,omitempty" jsonschema:"filter applied before grouping"`
	Letter  string `json:"letter" jsonschema:"single rail letter; lower case is accepted"`
}

// ResolveJumpOutput defines the output schema for the resolve_jump tool.
type ResolveJumpOutput struct {
	Letter   string           `json:"letter" jsonschema:"normalized letter"`
	Found    bool             `json:"found" jsonschema:"false when no section carries the letter"`
	Position int              `json:"position" jsonschema:"section position, meaningful only when found"`
	Section  *indexer.Section `json:"section,omitempty" jsonschema:"the section jumped to"`
}

// ListCatalogsInput defines the (empty) input schema for list_catalogs.
type ListCatalogsInput struct{}

// CatalogInfo describes one available catalog.
type CatalogInfo struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Size  int    `json:"size"`
}

// ListCatalogsOutput defines the output schema for list_catalogs.
type ListCatalogsOutput struct {
	Catalogs []CatalogInfo `json:"catalogs"`
}

var tools = []ToolInfo{
	{
		Name:        "filter_and_group",
		Description: "Filter a catalog by a case-insensitive substring and group the matches alphabetically into sections with a jump index. Use this to show a searchable picker list.",
	},
	{
		Name:        "resolve_jump",
		Description: "Resolve a rail letter to the position of its section for a catalog and query. Reports found=false when no section carries the letter.",
	},
	{
		Name:        "list_catalogs",
		Description: "List the available option catalogs with their titles and sizes.",
	},
}

// NewServer creates a new MCP server over registry.
func NewServer(registry *catalog.Registry, cfg *config.Config) (*Server, error) {
	if registry == nil {
		return nil, errors.New("catalog registry is required")
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}

	s := &Server{
		registry: registry,
		config:   cfg,
		metrics:  telemetry.NewQueryMetrics(telemetry.DefaultConfig()),
		logger:   slog.Default(),
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    ServerName,
			Version: version.Version,
		},
		nil, // capabilities are inferred from registered tools/resources
	)

	s.registerTools()
	s.registerResources()

	return s, nil
}

// MCPServer returns the underlying SDK server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Metrics returns the query metrics collected since the server started.
func (s *Server) Metrics() *telemetry.QueryMetrics {
	return s.metrics
}

// Info returns the server name and version.
func (s *Server) Info() (name, ver string) {
	return ServerName, version.Version
}

// ListTools returns all registered tools.
func (s *Server) ListTools() []ToolInfo {
	return append([]ToolInfo(nil), tools...)
}

// CallTool invokes a tool by name with JSON-style arguments, bypassing
// the transport. The CLI and tests use it.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (any, error) {
	switch name {
	case "filter_and_group":
		var in FilterAndGroupInput
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return s.filterAndGroup(ctx, in)
	case "resolve_jump":
		var in ResolveJumpInput
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return s.resolveJump(ctx, in)
	case "list_catalogs":
		return s.listCatalogs(), nil
	default:
		return nil, NewMethodNotFoundError(name)
	}
}

func decodeArgs(args map[string]any, into any) error {
	data, err := json.Marshal(args)
	if err != nil {
		return NewInvalidParamsError(err.Error())
	}
	if err := json.Unmarshal(data, into); err != nil {
		return NewInvalidParamsError(err.Error())
	}
	return nil
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{Name: tools[0].Name, Description: tools[0].Description}, s.mcpFilterAndGroupHandler)
	mcp.AddTool(s.mcp, &mcp.Tool{Name: tools[1].Name, Description: tools[1].Description}, s.mcpResolveJumpHandler)
	mcp.AddTool(s.mcp, &mcp.Tool{Name: tools[2].Name, Description: tools[2].Description}, s.mcpListCatalogsHandler)
	s.logger.Debug("mcp_tools_registered", slog.Int("count", len(tools)))
}

func (s *Server) mcpFilterAndGroupHandler(ctx context.Context, _ *mcp.CallToolRequest, input FilterAndGroupInput) (
	*mcp.CallToolResult,
	FilterAndGroupOutput,
	error,
) {
	out, err := s.filterAndGroup(ctx, input)
	if err != nil {
		return nil, FilterAndGroupOutput{}, err
	}
	return nil, *out, nil
}

func (s *Server) mcpResolveJumpHandler(ctx context.Context, _ *mcp.CallToolRequest, input ResolveJumpInput) (
	*mcp.CallToolResult,
	ResolveJumpOutput,
	error,
) {
	out, err := s.resolveJump(ctx, input)
	if err != nil {
		return nil, ResolveJumpOutput{}, err
	}
	return nil, *out, nil
}

func (s *Server) mcpListCatalogsHandler(_ context.Context, _ *mcp.CallToolRequest, _ ListCatalogsInput) (
	*mcp.CallToolResult,
	ListCatalogsOutput,
	error,
) {
	return nil, s.listCatalogs(), nil
}

func (s *Server) filterAndGroup(ctx context.Context, in FilterAndGroupInput) (*FilterAndGroupOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, MapError(err)
	}
	cat, err := s.catalog(in.Catalog)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res := indexer.FilterAndGroup(cat.Options, in.Query)
	elapsed := time.Since(start)
	s.metrics.Record(telemetry.QueryEvent{
		Tool:        "filter_and_group",
		Catalog:     cat.Name,
		Query:       in.Query,
		ResultCount: res.Len(),
		Latency:     elapsed,
	})
	s.logger.Debug("group_complete",
		slog.String("catalog", cat.Name),
		slog.String("query", in.Query),
		slog.Int("matches", res.Len()),
		slog.Int("sections", len(res.Sections)),
		slog.Duration("duration", elapsed))

	return &FilterAndGroupOutput{
		Catalog:   cat.Name,
		Query:     in.Query,
		Total:     res.Len(),
		Sections:  res.Sections,
		JumpIndex: res.JumpIndex,
		Rail:      indexer.Rail(res, s.config.Picker.Alphabet),
	}, nil
}

func (s *Server) resolveJump(ctx context.Context, in ResolveJumpInput) (*ResolveJumpOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, MapError(err)
	}
	letter, ok := indexer.ParseLetter(in.Letter)
	if !ok {
		return nil, MapError(apperrors.New(apperrors.ErrCodeInvalidLetter,
			fmt.Sprintf("letter must be a single character, got %q", in.Letter), nil))
	}
	cat, err := s.catalog(in.Catalog)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res := indexer.FilterAndGroup(cat.Options, in.Query)
	out := &ResolveJumpOutput{Letter: letter}
	if pos, found := indexer.ResolveJump(res.JumpIndex, letter); found {
		out.Found = true
		out.Position = pos
		out.Section = &res.Sections[pos]
	}

	event := telemetry.QueryEvent{
		Tool:    "resolve_jump",
		Catalog: cat.Name,
		Query:   in.Query,
		Latency: time.Since(start),
	}
	if out.Found {
		event.ResultCount = len(out.Section.Members)
	}
	s.metrics.Record(event)
	s.logger.Debug("jump_resolved",
		slog.String("catalog", cat.Name),
		slog.String("letter", letter),
		slog.Bool("found", out.Found))
	return out, nil
}

func (s *Server) listCatalogs() ListCatalogsOutput {
	all := s.registry.All()
	out := ListCatalogsOutput{Catalogs: make([]CatalogInfo, 0, len(all))}
	for _, c := range all {
		out.Catalogs = append(out.Catalogs, CatalogInfo{Name: c.Name, Title: c.Title, Size: len(c.Options)})
	}
	return out
}

// catalog resolves name, falling back to the configured default.
func (s *Server) catalog(name string) (*catalog.Catalog, error) {
	if name == "" {
		name = s.config.Catalogs.Default
	}
	cat, err := s.registry.Get(name)
	if err != nil {
		return nil, MapError(err)
	}
	return cat, nil
}

// Serve runs the server on the given transport until ctx is done.
// Only stdio is supported.
func (s *Server) Serve(ctx context.Context, transport string) error {
	s.logger.Info("mcp_server_starting", slog.String("transport", transport))

	switch transport {
	case "stdio", "":
		return s.serveWithTransport(ctx, &mcp.StdioTransport{})
	default:
		return fmt.Errorf("unknown transport: %s (supported: stdio)", transport)
	}
}

func (s *Server) serveWithTransport(ctx context.Context, t mcp.Transport) error {
	err := s.mcp.Run(ctx, t)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		s.logger.Error("mcp_server_stopped", slog.String("error", err.Error()))
	} else {
		s.logger.Info("mcp_server_stopped")
	}
	return err
}
