package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Aman-CERP/optindex/internal/catalog"
	"github.com/Aman-CERP/optindex/internal/telemetry"
)

const (
	catalogURIPrefix = "catalog://"
	queryMetricsURI  = "optindex://query_metrics"
)

// QueryMetricsOutput is the JSON structure for the query_metrics resource.
type QueryMetricsOutput struct {
	Summary             QueryMetricsSummary    `json:"summary"`
	ToolCounts          map[string]int64       `json:"tool_counts"`
	CatalogCounts       map[string]int64       `json:"catalog_counts"`
	TopQueries          []telemetry.QueryCount `json:"top_queries"`
	ZeroResultQueries   []string               `json:"zero_result_queries"`
	LatencyDistribution map[string]int64       `json:"latency_distribution"`
}

// QueryMetricsSummary provides overview statistics.
type QueryMetricsSummary struct {
	TotalQueries  int64   `json:"total_queries"`
	RepeatCount   int64   `json:"repeat_count"`
	TimePeriod    string  `json:"time_period"`
	ZeroResultPct float64 `json:"zero_result_pct"`
}

// registerResources publishes every catalog as a JSON resource at
// catalog://<name>.
func (s *Server) registerResources() {
	for _, c := range s.registry.All() {
		s.PublishCatalog(c)
	}

	s.mcp.AddResource(
		&mcp.Resource{
			Name:        "query_metrics",
			URI:         queryMetricsURI,
			Description: "Query telemetry for this server session",
			MIMEType:    "application/json",
		},
		s.handleQueryMetrics,
	)
}

// PublishCatalog adds or replaces the catalog://<name> resource for c.
// Reads always go through the registry, so a reloaded catalog is served
// fresh even when its resource entry already existed.
func (s *Server) PublishCatalog(c *catalog.Catalog) {
	s.mcp.AddResource(
		&mcp.Resource{
			Name:        c.Name,
			URI:         catalogURIPrefix + c.Name,
			Description: fmt.Sprintf("%s options (%d)", c.Title, len(c.Options)),
			MIMEType:    "application/json",
		},
		s.handleReadResource,
	)
}

func (s *Server) handleQueryMetrics(_ context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return s.readQueryMetrics()
}

func (s *Server) readQueryMetrics() (*mcp.ReadResourceResult, error) {
	snapshot := s.metrics.Snapshot()

	out := QueryMetricsOutput{
		Summary: QueryMetricsSummary{
			TotalQueries:  snapshot.TotalQueries,
			RepeatCount:   snapshot.RepeatCount,
			TimePeriod:    "session",
			ZeroResultPct: snapshot.ZeroResultPercentage(),
		},
		ToolCounts:          snapshot.ToolCounts,
		CatalogCounts:       snapshot.CatalogCounts,
		TopQueries:          snapshot.TopQueries,
		ZeroResultQueries:   snapshot.ZeroResultQueries,
		LatencyDistribution: make(map[string]int64, len(snapshot.LatencyDistribution)),
	}
	for bucket, count := range snapshot.LatencyDistribution {
		out.LatencyDistribution[string(bucket)] = count
	}

	content, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, MapError(err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: queryMetricsURI, MIMEType: "application/json", Text: string(content)},
		},
	}, nil
}

func (s *Server) handleReadResource(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI
	return s.readCatalogResource(uri)
}

func (s *Server) readCatalogResource(uri string) (*mcp.ReadResourceResult, error) {
	name, ok := strings.CutPrefix(uri, catalogURIPrefix)
	if !ok || name == "" {
		return nil, NewResourceNotFoundError(uri)
	}
	cat, err := s.registry.Get(name)
	if err != nil {
		return nil, NewResourceNotFoundError(uri)
	}

	data, err := json.Marshal(cat)
	if err != nil {
		return nil, MapError(err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: uri, MIMEType: "application/json", Text: string(data)},
		},
	}, nil
}
