package metrics

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enabledConfig() Config {
	return Config{Enabled: true, Port: 9091, Path: "/metrics", UpdateInterval: time.Minute}
}

func newTestCollector(t *testing.T, cfg Config) (*Collector, *clockwork.FakeClock) {
	t.Helper()

	clock := clockwork.NewFakeClock()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	c, err := NewCollector(cfg, logger, clock)
	require.NoError(t, err)
	return c, clock
}

func TestNewCollector(t *testing.T) {
	t.Run("should reject invalid port when enabled", func(t *testing.T) {
		cfg := enabledConfig()
		cfg.Port = 70000
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		_, err := NewCollector(cfg, logger, nil)
		assert.Error(t, err)
	})

	t.Run("should reject non-positive update interval when enabled", func(t *testing.T) {
		cfg := enabledConfig()
		cfg.UpdateInterval = 0
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		_, err := NewCollector(cfg, logger, nil)
		assert.Error(t, err)
	})

	t.Run("should skip validation when disabled", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		_, err := NewCollector(Config{Enabled: false, Port: -1}, logger, nil)
		assert.NoError(t, err)
	})

	t.Run("should default the path", func(t *testing.T) {
		cfg := enabledConfig()
		cfg.Path = ""
		c, _ := newTestCollector(t, cfg)
		assert.Equal(t, "/metrics", c.path)
	})
}

func TestCollector_RecordAnalysis(t *testing.T) {
	t.Run("should aggregate per-topic counters", func(t *testing.T) {
		c, _ := newTestCollector(t, enabledConfig())

		c.RecordAnalysis("treatment", 10*time.Millisecond, false, true)
		c.RecordAnalysis("treatment", 30*time.Millisecond, false, true)
		c.RecordAnalysis("treatment", 20*time.Millisecond, true, false)

		tm := c.GetTopicMetrics("treatment")
		require.NotNil(t, tm)
		assert.Equal(t, int64(3), tm.TotalAnalyses)
		assert.Equal(t, int64(2), tm.SuccessCount)
		assert.Equal(t, int64(1), tm.DegradedCount)
		assert.Equal(t, int64(2), tm.RelevantCount)
		assert.InDelta(t, 2.0/3.0, tm.SuccessRate, 1e-9)
		assert.Equal(t, 10*time.Millisecond, tm.MinDuration)
		assert.Equal(t, 30*time.Millisecond, tm.MaxDuration)
		assert.Equal(t, 20*time.Millisecond, tm.AvgDuration)
	})

	t.Run("should track first and last analysis times", func(t *testing.T) {
		c, clock := newTestCollector(t, enabledConfig())

		c.RecordAnalysis("research", time.Millisecond, false, true)
		first := clock.Now()
		clock.Advance(time.Hour)
		c.RecordAnalysis("research", time.Millisecond, false, true)

		tm := c.GetTopicMetrics("research")
		require.NotNil(t, tm)
		assert.Equal(t, first, tm.FirstAnalysisTime)
		assert.Equal(t, first.Add(time.Hour), tm.LastAnalysisTime)
	})

	t.Run("should return nil for unseen topics", func(t *testing.T) {
		c, _ := newTestCollector(t, enabledConfig())
		assert.Nil(t, c.GetTopicMetrics("policy"))
	})

	t.Run("should be a no-op when disabled", func(t *testing.T) {
		c, _ := newTestCollector(t, Config{Enabled: false})
		c.RecordAnalysis("treatment", time.Millisecond, false, true)
		assert.Nil(t, c.GetTopicMetrics("treatment"))
	})
}

func TestCollector_GetAggregateMetrics(t *testing.T) {
	t.Run("should sum across topics", func(t *testing.T) {
		c, _ := newTestCollector(t, enabledConfig())

		c.RecordAnalysis("treatment", 10*time.Millisecond, false, true)
		c.RecordAnalysis("research", 20*time.Millisecond, true, false)
		c.RecordAnalysis("general", 30*time.Millisecond, false, false)

		agg := c.GetAggregateMetrics()
		assert.Equal(t, int64(3), agg.TotalAnalyses)
		assert.Equal(t, int64(2), agg.SuccessCount)
		assert.Equal(t, int64(1), agg.DegradedCount)
		assert.Equal(t, int64(1), agg.RelevantCount)
		assert.Equal(t, 3, agg.ActiveTopics)
		assert.Equal(t, 20*time.Millisecond, agg.AvgDuration)
	})

	t.Run("should return zero values with no data", func(t *testing.T) {
		c, _ := newTestCollector(t, enabledConfig())
		agg := c.GetAggregateMetrics()
		assert.Zero(t, agg.TotalAnalyses)
		assert.Zero(t, agg.SuccessRate)
	})

	t.Run("should return a zero aggregate when disabled", func(t *testing.T) {
		c, _ := newTestCollector(t, Config{Enabled: false})
		c.RecordAnalysis("treatment", time.Millisecond, false, true)

		agg := c.GetAggregateMetrics()
		require.NotNil(t, agg)
		assert.Zero(t, agg.TotalAnalyses)
		assert.Zero(t, agg.ActiveTopics)
		assert.True(t, agg.CollectionTime.IsZero())
	})
}

func TestCollector_Export(t *testing.T) {
	t.Run("should export JSON with aggregate and topics", func(t *testing.T) {
		c, _ := newTestCollector(t, enabledConfig())
		c.RecordAnalysis("surgery", 5*time.Millisecond, false, true)

		data, err := c.ExportJSON()
		require.NoError(t, err)

		var export ExportData
		require.NoError(t, json.Unmarshal(data, &export))
		assert.Equal(t, "news-analyzer", export.ServiceName)
		require.NotNil(t, export.Aggregate)
		assert.Equal(t, int64(1), export.Aggregate.TotalAnalyses)
		assert.Contains(t, export.TopicMetrics, "surgery")
	})

	t.Run("should export empty JSON object when disabled", func(t *testing.T) {
		c, _ := newTestCollector(t, Config{Enabled: false})
		data, err := c.ExportJSON()
		require.NoError(t, err)
		assert.Equal(t, "{}", string(data))
	})

	t.Run("should export Prometheus lines per topic and aggregate", func(t *testing.T) {
		c, _ := newTestCollector(t, enabledConfig())
		c.RecordAnalysis("genetics", 5*time.Millisecond, false, true)
		c.RecordAnalysis("lifestyle", 5*time.Millisecond, true, false)

		out := c.ExportPrometheus()
		assert.Contains(t, out, `analyzer_analyses_total{topic="genetics"} 1`)
		assert.Contains(t, out, `analyzer_analyses_degraded_total{topic="lifestyle"} 1`)
		assert.Contains(t, out, `analyzer_analyses_total{topic="_aggregate"} 2`)
		assert.Contains(t, out, "# TYPE analyzer_analyses_total counter")
	})

	t.Run("should sort topics for stable Prometheus output", func(t *testing.T) {
		c, _ := newTestCollector(t, enabledConfig())
		c.RecordAnalysis("screening", time.Millisecond, false, true)
		c.RecordAnalysis("diagnosis", time.Millisecond, false, true)

		out := c.ExportPrometheus()
		assert.Less(t, strings.Index(out, `topic="diagnosis"`), strings.Index(out, `topic="screening"`))
	})
}

func TestCollector_ReportSummary(t *testing.T) {
	t.Run("should log the aggregate summary", func(t *testing.T) {
		var buf strings.Builder
		logger := slog.New(slog.NewJSONHandler(&buf, nil))
		c, err := NewCollector(enabledConfig(), logger, clockwork.NewFakeClock())
		require.NoError(t, err)

		c.RecordAnalysis("support", time.Millisecond, false, true)
		require.NoError(t, c.ReportSummary(context.Background()))

		assert.Contains(t, buf.String(), "analysis metrics summary")
		assert.Contains(t, buf.String(), `"total_analyses":1`)
	})
}

func TestCollector_Reset(t *testing.T) {
	t.Run("should clear all topics", func(t *testing.T) {
		c, _ := newTestCollector(t, enabledConfig())
		c.RecordAnalysis("policy", time.Millisecond, false, true)

		c.Reset()

		assert.Nil(t, c.GetTopicMetrics("policy"))
		assert.Zero(t, c.GetAggregateMetrics().TotalAnalyses)
	})
}
