// ABOUTME: This file implements metrics collection for the analysis engine
// ABOUTME: Tracks per-topic outcomes and serves JSON and Prometheus exports over HTTP
package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Config controls the collector and its HTTP endpoint.
type Config struct {
	Enabled        bool
	Port           int
	Path           string
	UpdateInterval time.Duration
}

// TopicMetrics tracks analysis outcomes for one topic category.
type TopicMetrics struct {
	Topic             string        `json:"topic"`
	TotalAnalyses     int64         `json:"total_analyses"`
	SuccessCount      int64         `json:"success_count"`
	DegradedCount     int64         `json:"degraded_count"`
	RelevantCount     int64         `json:"relevant_count"`
	SuccessRate       float64       `json:"success_rate"`
	AvgDuration       time.Duration `json:"avg_duration_ms"`
	MinDuration       time.Duration `json:"min_duration_ms"`
	MaxDuration       time.Duration `json:"max_duration_ms"`
	FirstAnalysisTime time.Time     `json:"first_analysis_time"`
	LastAnalysisTime  time.Time     `json:"last_analysis_time"`
	TotalDuration     time.Duration `json:"-"`
}

// AggregateMetrics provides engine-wide statistics.
type AggregateMetrics struct {
	TotalAnalyses  int64         `json:"total_analyses"`
	SuccessCount   int64         `json:"success_count"`
	DegradedCount  int64         `json:"degraded_count"`
	RelevantCount  int64         `json:"relevant_count"`
	SuccessRate    float64       `json:"success_rate"`
	AvgDuration    time.Duration `json:"avg_duration_ms"`
	ActiveTopics   int           `json:"active_topics"`
	CollectionTime time.Time     `json:"collection_time"`
}

// ExportData contains all metrics for export.
type ExportData struct {
	Aggregate    *AggregateMetrics        `json:"aggregate"`
	TopicMetrics map[string]*TopicMetrics `json:"topics"`
	ExportTime   time.Time                `json:"export_time"`
	ServiceName  string                   `json:"service_name"`
}

// Collector aggregates analysis outcomes by topic. All methods are
// no-ops when the collector is disabled.
type Collector struct {
	enabled bool
	port    int
	path    string
	logger  *slog.Logger
	clock   clockwork.Clock

	metrics map[string]*TopicMetrics
	mu      sync.RWMutex

	server   *http.Server
	serverMu sync.Mutex
}

// NewCollector creates a collector. A nil clock defaults to the real one.
func NewCollector(cfg Config, logger *slog.Logger, clock clockwork.Clock) (*Collector, error) {
	if cfg.Enabled {
		if cfg.Port < 0 || cfg.Port > 65535 {
			return nil, errors.New("invalid metrics port")
		}
		if cfg.UpdateInterval <= 0 {
			return nil, errors.New("invalid update interval")
		}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	collector := &Collector{
		enabled: cfg.Enabled,
		port:    cfg.Port,
		path:    cfg.Path,
		logger:  logger,
		clock:   clock,
		metrics: make(map[string]*TopicMetrics),
	}

	if cfg.Path == "" {
		collector.path = "/metrics"
	}

	logger.Info("metrics collector initialized",
		"enabled", cfg.Enabled,
		"port", cfg.Port,
		"path", collector.path)

	return collector, nil
}

// RecordAnalysis records one article analysis outcome under its primary
// topic.
func (c *Collector) RecordAnalysis(topic string, duration time.Duration, degraded, relevant bool) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()

	tm, exists := c.metrics[topic]
	if !exists {
		tm = &TopicMetrics{
			Topic:             topic,
			FirstAnalysisTime: now,
			MinDuration:       duration,
			MaxDuration:       duration,
		}
		c.metrics[topic] = tm
	}

	tm.TotalAnalyses++
	tm.LastAnalysisTime = now
	tm.TotalDuration += duration

	if degraded {
		tm.DegradedCount++
	} else {
		tm.SuccessCount++
	}
	if relevant {
		tm.RelevantCount++
	}

	if duration < tm.MinDuration {
		tm.MinDuration = duration
	}
	if duration > tm.MaxDuration {
		tm.MaxDuration = duration
	}

	tm.SuccessRate = float64(tm.SuccessCount) / float64(tm.TotalAnalyses)
	tm.AvgDuration = time.Duration(tm.TotalDuration.Nanoseconds() / tm.TotalAnalyses)

	c.logger.Debug("recorded analysis metric",
		"topic", topic,
		"duration", duration,
		"degraded", degraded,
		"total_analyses", tm.TotalAnalyses,
		"success_rate", tm.SuccessRate)
}

// GetTopicMetrics returns a copy of one topic's metrics, or nil when the
// topic has not been seen.
func (c *Collector) GetTopicMetrics(topic string) *TopicMetrics {
	if !c.enabled {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	tm, exists := c.metrics[topic]
	if !exists {
		return nil
	}

	out := *tm
	return &out
}

// GetAggregateMetrics returns engine-wide aggregate metrics, or a zero
// aggregate when the collector is disabled.
func (c *Collector) GetAggregateMetrics() *AggregateMetrics {
	if !c.enabled {
		return &AggregateMetrics{}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.aggregateLocked()
}

func (c *Collector) aggregateLocked() *AggregateMetrics {
	aggregate := &AggregateMetrics{
		CollectionTime: c.clock.Now(),
		ActiveTopics:   len(c.metrics),
	}

	var totalDuration time.Duration
	for _, tm := range c.metrics {
		aggregate.TotalAnalyses += tm.TotalAnalyses
		aggregate.SuccessCount += tm.SuccessCount
		aggregate.DegradedCount += tm.DegradedCount
		aggregate.RelevantCount += tm.RelevantCount
		totalDuration += tm.TotalDuration
	}

	if aggregate.TotalAnalyses > 0 {
		aggregate.SuccessRate = float64(aggregate.SuccessCount) / float64(aggregate.TotalAnalyses)
		aggregate.AvgDuration = time.Duration(totalDuration.Nanoseconds() / aggregate.TotalAnalyses)
	}

	return aggregate
}

// ExportJSON exports all metrics in JSON format.
func (c *Collector) ExportJSON() ([]byte, error) {
	if !c.enabled {
		return []byte("{}"), nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	exportData := &ExportData{
		Aggregate:    c.aggregateLocked(),
		TopicMetrics: make(map[string]*TopicMetrics, len(c.metrics)),
		ExportTime:   c.clock.Now(),
		ServiceName:  "news-analyzer",
	}

	for topic, tm := range c.metrics {
		out := *tm
		exportData.TopicMetrics[topic] = &out
	}

	return json.MarshalIndent(exportData, "", "  ")
}

// ExportPrometheus exports metrics in Prometheus text format.
func (c *Collector) ExportPrometheus() string {
	if !c.enabled {
		return ""
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var builder strings.Builder

	builder.WriteString("# HELP analyzer_analyses_total Total number of articles analyzed\n")
	builder.WriteString("# TYPE analyzer_analyses_total counter\n")

	builder.WriteString("# HELP analyzer_analyses_degraded_total Total number of degraded analyses\n")
	builder.WriteString("# TYPE analyzer_analyses_degraded_total counter\n")

	builder.WriteString("# HELP analyzer_analyses_relevant_total Total number of in-domain articles\n")
	builder.WriteString("# TYPE analyzer_analyses_relevant_total counter\n")

	builder.WriteString("# HELP analyzer_analysis_duration_seconds Average analysis duration in seconds\n")
	builder.WriteString("# TYPE analyzer_analysis_duration_seconds gauge\n")

	builder.WriteString("# HELP analyzer_success_rate Ratio of non-degraded analyses\n")
	builder.WriteString("# TYPE analyzer_success_rate gauge\n")

	topics := make([]string, 0, len(c.metrics))
	for topic := range c.metrics {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	for _, topic := range topics {
		tm := c.metrics[topic]

		builder.WriteString(fmt.Sprintf("analyzer_analyses_total{topic=%q} %d\n",
			topic, tm.TotalAnalyses))
		builder.WriteString(fmt.Sprintf("analyzer_analyses_degraded_total{topic=%q} %d\n",
			topic, tm.DegradedCount))
		builder.WriteString(fmt.Sprintf("analyzer_analyses_relevant_total{topic=%q} %d\n",
			topic, tm.RelevantCount))
		builder.WriteString(fmt.Sprintf("analyzer_analysis_duration_seconds{topic=%q} %.6f\n",
			topic, tm.AvgDuration.Seconds()))
		builder.WriteString(fmt.Sprintf("analyzer_success_rate{topic=%q} %.4f\n",
			topic, tm.SuccessRate))
	}

	aggregate := c.aggregateLocked()
	builder.WriteString(fmt.Sprintf("analyzer_analyses_total{topic=\"_aggregate\"} %d\n",
		aggregate.TotalAnalyses))
	builder.WriteString(fmt.Sprintf("analyzer_analyses_degraded_total{topic=\"_aggregate\"} %d\n",
		aggregate.DegradedCount))
	builder.WriteString(fmt.Sprintf("analyzer_analyses_relevant_total{topic=\"_aggregate\"} %d\n",
		aggregate.RelevantCount))
	builder.WriteString(fmt.Sprintf("analyzer_analysis_duration_seconds{topic=\"_aggregate\"} %.6f\n",
		aggregate.AvgDuration.Seconds()))
	builder.WriteString(fmt.Sprintf("analyzer_success_rate{topic=\"_aggregate\"} %.4f\n",
		aggregate.SuccessRate))

	return builder.String()
}

// ReportSummary logs the aggregate metrics. Wired as a periodic job so
// long-running batch workers leave a heartbeat in the logs.
func (c *Collector) ReportSummary(ctx context.Context) error {
	if !c.enabled {
		return nil
	}

	aggregate := c.GetAggregateMetrics()
	c.logger.InfoContext(ctx, "analysis metrics summary",
		"total_analyses", aggregate.TotalAnalyses,
		"success_count", aggregate.SuccessCount,
		"degraded_count", aggregate.DegradedCount,
		"relevant_count", aggregate.RelevantCount,
		"success_rate", aggregate.SuccessRate,
		"avg_duration", aggregate.AvgDuration,
		"active_topics", aggregate.ActiveTopics)
	return nil
}

// Reset clears all collected metrics.
func (c *Collector) Reset() {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.metrics = make(map[string]*TopicMetrics)
	c.logger.Info("metrics reset completed")
}

// Start starts the HTTP metrics server.
func (c *Collector) Start(ctx context.Context) error {
	if !c.enabled {
		return nil
	}

	c.serverMu.Lock()
	defer c.serverMu.Unlock()

	if c.server != nil {
		return errors.New("metrics server already running")
	}

	mux := http.NewServeMux()

	mux.HandleFunc(c.path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		jsonData, err := c.ExportJSON()
		if err != nil {
			c.logger.Error("failed to export JSON metrics", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Write(jsonData)
	})

	mux.HandleFunc(c.path+"/prometheus", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(c.ExportPrometheus()))
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"news-analyzer-metrics"}`))
	})

	c.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", c.port),
		Handler: mux,
	}

	go func() {
		c.logger.Info("starting metrics server",
			"port", c.port,
			"path", c.path)

		if err := c.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			c.logger.Error("metrics server failed", "error", err)
		}
	}()

	return nil
}

// Stop stops the HTTP metrics server.
func (c *Collector) Stop(ctx context.Context) error {
	if !c.enabled {
		return nil
	}

	c.serverMu.Lock()
	defer c.serverMu.Unlock()

	if c.server == nil {
		return nil
	}

	c.logger.Info("stopping metrics server")

	err := c.server.Shutdown(ctx)
	c.server = nil

	if err != nil {
		c.logger.Error("error stopping metrics server", "error", err)
		return err
	}

	c.logger.Info("metrics server stopped")
	return nil
}
