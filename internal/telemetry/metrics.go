// Package telemetry records how the option indexer is queried: which
// tools and catalogs are used, which queries come back empty and how long
// grouping takes. Everything is held in memory for the life of the process.
package telemetry

import (
	"cmp"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/cases"
)

// LatencyBucket represents a latency histogram bucket.
type LatencyBucket string

const (
	BucketP1   LatencyBucket = "p1"   // <1ms
	BucketP5   LatencyBucket = "p5"   // 1-5ms
	BucketP20  LatencyBucket = "p20"  // 5-20ms
	BucketP100 LatencyBucket = "p100" // >=20ms
)

// LatencyToBucket converts a duration to its histogram bucket.
func LatencyToBucket(d time.Duration) LatencyBucket {
	switch {
	case d < time.Millisecond:
		return BucketP1
	case d < 5*time.Millisecond:
		return BucketP5
	case d < 20*time.Millisecond:
		return BucketP20
	default:
		return BucketP100
	}
}

// QueryEvent is one grouping or jump request.
type QueryEvent struct {
	Tool        string
	Catalog     string
	Query       string
	ResultCount int
	Latency     time.Duration
}

// IsZeroResult returns true if this query returned no results.
func (e QueryEvent) IsZeroResult() bool {
	return e.ResultCount == 0
}

// QueryCount is a normalized query and how often it was seen.
type QueryCount struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// Snapshot is an immutable copy of the collected metrics.
type Snapshot struct {
	TotalQueries        int64                   `json:"total_queries"`
	ZeroResultCount     int64                   `json:"zero_result_count"`
	RepeatCount         int64                   `json:"repeat_count"`
	ToolCounts          map[string]int64        `json:"tool_counts"`
	CatalogCounts       map[string]int64        `json:"catalog_counts"`
	TopQueries          []QueryCount            `json:"top_queries"`
	ZeroResultQueries   []string                `json:"zero_result_queries"`
	LatencyDistribution map[LatencyBucket]int64 `json:"latency_distribution"`
	Since               time.Time               `json:"since"`
}

// ZeroResultPercentage returns the percentage of zero-result queries.
func (s *Snapshot) ZeroResultPercentage() float64 {
	if s.TotalQueries == 0 {
		return 0
	}
	return float64(s.ZeroResultCount) / float64(s.TotalQueries) * 100
}

// Config sizes the bounded collections.
type Config struct {
	TopQueriesCapacity  int // distinct queries counted (default: 100)
	ZeroResultsCapacity int // recent zero-result queries kept (default: 50)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{TopQueriesCapacity: 100, ZeroResultsCapacity: 50}
}

// QueryMetrics collects query telemetry. Safe for concurrent use.
type QueryMetrics struct {
	mu sync.Mutex

	total         int64
	zeroResults   int64
	repeats       int64
	tools         map[string]int64
	catalogs      map[string]int64
	latencies     map[LatencyBucket]int64
	topQueries    *lru.Cache[string, int64]
	recentEmpties *CircularBuffer[string]
	since         time.Time
}

// NewQueryMetrics creates a collector with cfg, filling in defaults.
func NewQueryMetrics(cfg Config) *QueryMetrics {
	def := DefaultConfig()
	if cfg.TopQueriesCapacity <= 0 {
		cfg.TopQueriesCapacity = def.TopQueriesCapacity
	}
	if cfg.ZeroResultsCapacity <= 0 {
		cfg.ZeroResultsCapacity = def.ZeroResultsCapacity
	}

	// lru.New only fails for a non-positive size.
	top, _ := lru.New[string, int64](cfg.TopQueriesCapacity)

	return &QueryMetrics{
		tools:         make(map[string]int64),
		catalogs:      make(map[string]int64),
		latencies:     make(map[LatencyBucket]int64),
		topQueries:    top,
		recentEmpties: NewCircularBuffer[string](cfg.ZeroResultsCapacity),
		since:         time.Now(),
	}
}

// Record captures one event.
func (m *QueryMetrics) Record(event QueryEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total++
	m.tools[event.Tool]++
	if event.Catalog != "" {
		m.catalogs[event.Catalog]++
	}
	m.latencies[LatencyToBucket(event.Latency)]++

	if q := normalize(event.Query); q != "" {
		count, seen := m.topQueries.Get(q)
		if seen {
			m.repeats++
		}
		m.topQueries.Add(q, count+1)
	}

	if event.IsZeroResult() {
		m.zeroResults++
		m.recentEmpties.Add(event.Query)
	}
}

// Snapshot returns current metrics for reporting. Top queries are ordered
// by count, most frequent first.
func (m *QueryMetrics) Snapshot() *Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	top := make([]QueryCount, 0, m.topQueries.Len())
	for _, q := range m.topQueries.Keys() {
		if n, ok := m.topQueries.Peek(q); ok {
			top = append(top, QueryCount{Query: q, Count: n})
		}
	}
	slices.SortStableFunc(top, func(a, b QueryCount) int {
		return cmp.Compare(b.Count, a.Count)
	})

	return &Snapshot{
		TotalQueries:        m.total,
		ZeroResultCount:     m.zeroResults,
		RepeatCount:         m.repeats,
		ToolCounts:          maps.Clone(m.tools),
		CatalogCounts:       maps.Clone(m.catalogs),
		TopQueries:          top,
		ZeroResultQueries:   m.recentEmpties.Items(),
		LatencyDistribution: maps.Clone(m.latencies),
		Since:               m.since,
	}
}

// normalize folds query the same way the indexer does, so queries that
// select the same options count as one.
func normalize(query string) string {
	return cases.Fold().String(strings.TrimSpace(query))
}
