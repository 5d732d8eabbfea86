package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"news-analyzer/analyzer"
	"news-analyzer/config"
	"news-analyzer/domain"
	"news-analyzer/metrics"
	"news-analyzer/pipeline"
	"news-analyzer/utils/logger"
)

func main() {
	inputPath := flag.String("input", "-", "path to a JSON array of articles, or - for stdin")
	outputPath := flag.String("output", "-", "path for the JSON results, or - for stdout")
	flag.Parse()

	if err := run(*inputPath, *outputPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(inputPath, outputPath string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.NewUnifiedLogger(cfg.Logging.ServiceName)

	collector, err := metrics.NewCollector(metrics.Config{
		Enabled:        cfg.Metrics.Enabled,
		Port:           cfg.Metrics.Port,
		Path:           cfg.Metrics.Path,
		UpdateInterval: cfg.Metrics.UpdateInterval,
	}, log.Logger(), nil)
	if err != nil {
		return fmt.Errorf("failed to build metrics collector: %w", err)
	}

	engine, err := analyzer.New(cfg, log, collector, nil)
	if err != nil {
		return fmt.Errorf("failed to build analyzer: %w", err)
	}

	articles, err := readArticles(inputPath)
	if errors.Is(err, domain.ErrNoArticles) {
		log.Warn("input contained no articles, nothing to do")
		return nil
	}
	if err != nil {
		return err
	}
	assignMissingIDs(articles)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting batch analysis",
		"articles", len(articles),
		"chunk_size", cfg.Batch.ChunkSize,
		"concurrency", cfg.Batch.Concurrency,
		"timeout", cfg.Batch.Timeout)

	group, groupCtx := errgroup.WithContext(ctx)

	// The batch cancels serveCtx when it finishes, which winds down the
	// metrics server and the summary job.
	serveCtx, batchDone := context.WithCancel(groupCtx)
	defer batchDone()

	group.Go(func() error {
		if err := collector.Start(serveCtx); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		<-serveCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := collector.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop metrics server: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		reporter := pipeline.NewJobRunner(pipeline.JobConfig{
			Name:     "metrics-summary",
			Interval: cfg.Metrics.UpdateInterval,
		}, collector.ReportSummary, log.Logger(), nil)
		reporter.Start(serveCtx)
		<-serveCtx.Done()
		reporter.Stop()
		return nil
	})

	var results []domain.NLPResult
	group.Go(func() error {
		defer batchDone()
		results = engine.AnalyzeBatch(groupCtx, articles)
		return writeResults(outputPath, results)
	})

	if err := group.Wait(); err != nil {
		return err
	}

	logSummary(log, engine, results)
	return nil
}

func readArticles(path string) ([]domain.Article, error) {
	var reader io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		reader = f
	}

	var articles []domain.Article
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&articles); err != nil {
		return nil, fmt.Errorf("failed to decode articles: %w", err)
	}
	if len(articles) == 0 {
		return nil, domain.ErrNoArticles
	}
	return articles, nil
}

// assignMissingIDs gives input articles without an ID a generated one so
// every result can be correlated with its article.
func assignMissingIDs(articles []domain.Article) {
	for i := range articles {
		if articles[i].ID == "" {
			articles[i].ID = uuid.NewString()
		}
	}
}

func writeResults(path string, results []domain.NLPResult) error {
	var writer io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		writer = f
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}

func logSummary(log *logger.UnifiedLogger, engine *analyzer.Analyzer, results []domain.NLPResult) {
	var degraded, relevant int
	for _, r := range results {
		if r.Degraded {
			degraded++
		}
		if r.IsRelevant {
			relevant++
		}
	}

	distribution := engine.TopicDistribution(results)
	topics := make(map[string]int, len(distribution))
	for cat, count := range distribution {
		topics[string(cat)] = count
	}

	log.Info("batch analysis completed",
		"total", len(results),
		"degraded", degraded,
		"relevant", relevant,
		"topic_distribution", topics)
}
