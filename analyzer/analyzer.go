// Package analyzer composes the sentiment, relevance, and topic
// components into the per-article analysis operation and the chunked
// batch driver on top of it.
package analyzer

import (
	"context"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"news-analyzer/config"
	"news-analyzer/domain"
	"news-analyzer/lexicon"
	"news-analyzer/metrics"
	"news-analyzer/pipeline"
	"news-analyzer/relevance"
	"news-analyzer/sentiment"
	"news-analyzer/topic"
	apperrors "news-analyzer/utils/errors"
	"news-analyzer/utils/logger"
)

// Scorer produces the raw valence breakdown for a text.
type Scorer interface {
	Score(text, title string) domain.DetailedScores
}

// Interpreter maps a valence breakdown to a label with confidence.
type Interpreter interface {
	Interpret(scores domain.DetailedScores) (domain.SentimentLabel, float64)
}

// Extractor produces the domain relevance signal for a text.
type Extractor interface {
	Extract(text string) ([]string, float64)
	IsRelevant(score float64) bool
}

// Classifier assigns a topic category to an article's text.
type Classifier interface {
	Classify(title, body string) domain.TopicResult
}

// Analyzer runs the full analysis for single articles and batches.
// Construction validates every component config; a built Analyzer is
// immutable and safe for concurrent use.
type Analyzer struct {
	scorer      Scorer
	interpreter Interpreter
	extractor   Extractor
	classifier  Classifier
	logger      *logger.UnifiedLogger
	collector   *metrics.Collector
	clock       clockwork.Clock

	chunkSize    int
	concurrency  int
	batchTimeout time.Duration
}

// New builds an Analyzer from validated config. collector may be nil
// when metrics are not wanted; a nil clock defaults to the real one.
func New(cfg *config.Config, log *logger.UnifiedLogger, collector *metrics.Collector, clock clockwork.Clock) (*Analyzer, error) {
	if cfg == nil {
		return nil, apperrors.NewConfigurationError("config is required", "analyzer", nil)
	}
	if log == nil {
		return nil, apperrors.NewConfigurationError("logger is required", "analyzer", nil)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	lex, err := lexicon.Load()
	if err != nil {
		return nil, err
	}

	preparer, ok := sentiment.NewPreparer(cfg.Sentiment.Preparer)
	if !ok {
		return nil, apperrors.NewConfigurationError("unknown text preparer", "analyzer",
			map[string]interface{}{"preparer": cfg.Sentiment.Preparer})
	}

	scorer, err := sentiment.NewScorer(lex, preparer, cfg.Sentiment.TitleWeight)
	if err != nil {
		return nil, err
	}

	interpreter, err := sentiment.NewInterpreter(sentiment.Thresholds{
		Strong:         cfg.Sentiment.StrongThreshold,
		Moderate:       cfg.Sentiment.ModerateThreshold,
		ModerateFactor: cfg.Sentiment.ModerateFactor,
	})
	if err != nil {
		return nil, err
	}

	extractor, err := relevance.NewExtractor(cfg.Relevance.Keywords, cfg.Relevance.Saturation, cfg.Relevance.Threshold)
	if err != nil {
		return nil, err
	}

	classifier, err := topic.NewClassifier(cfg.Topics.Table, cfg.Topics.Weights,
		cfg.Topics.TitleWeight, cfg.Topics.PrecedenceCategories())
	if err != nil {
		return nil, err
	}

	return NewWithComponents(scorer, interpreter, extractor, classifier,
		cfg.Batch, log, collector, clock)
}

// NewWithComponents wires an Analyzer from prebuilt components. Used by
// New and by tests that substitute individual components.
func NewWithComponents(scorer Scorer, interpreter Interpreter, extractor Extractor, classifier Classifier,
	batch config.BatchConfig, log *logger.UnifiedLogger, collector *metrics.Collector, clock clockwork.Clock) (*Analyzer, error) {
	if scorer == nil || interpreter == nil || extractor == nil || classifier == nil {
		return nil, apperrors.NewConfigurationError("all analysis components are required", "analyzer", nil)
	}
	if log == nil {
		return nil, apperrors.NewConfigurationError("logger is required", "analyzer", nil)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if batch.ChunkSize <= 0 {
		return nil, apperrors.NewConfigurationError("batch chunk size must be positive", "analyzer",
			map[string]interface{}{"chunk_size": batch.ChunkSize})
	}
	if batch.Concurrency <= 0 {
		return nil, apperrors.NewConfigurationError("batch concurrency must be positive", "analyzer",
			map[string]interface{}{"concurrency": batch.Concurrency})
	}

	return &Analyzer{
		scorer:       scorer,
		interpreter:  interpreter,
		extractor:    extractor,
		classifier:   classifier,
		logger:       log,
		collector:    collector,
		clock:        clock,
		chunkSize:    batch.ChunkSize,
		concurrency:  batch.Concurrency,
		batchTimeout: batch.Timeout,
	}, nil
}

// AnalyzeArticle runs all sub-analyses for one article. A panic in one
// sub-analysis degrades only that portion; the remaining portions still
// run and the result is flagged degraded. The returned result is
// normalized to storage precision.
func (a *Analyzer) AnalyzeArticle(ctx context.Context, article domain.Article) domain.NLPResult {
	start := a.clock.Now()

	result := domain.NLPResult{
		ArticleID: article.ID,
		Status:    domain.StatusSuccess,
	}

	if err := ctx.Err(); err != nil {
		return a.cancelledResult(article.ID)
	}

	body := joinText(article.Summary, article.Content)
	combined := joinText(article.Title, body)

	degraded := false

	if ok := a.guard(ctx, "relevance", article.ID, func() {
		matched, score := a.extractor.Extract(combined)
		result.MatchedKeywords = matched
		result.RelevanceScore = score
		result.IsRelevant = a.extractor.IsRelevant(score)
	}); !ok {
		degraded = true
		result.MatchedKeywords = nil
		result.RelevanceScore = 0
		result.IsRelevant = false
	}

	if ok := a.guard(ctx, "sentiment", article.ID, func() {
		scores := a.scorer.Score(body, article.Title)
		label, confidence := a.interpreter.Interpret(scores)
		if combined == "" {
			// Text-free input carries no sentiment signal, so it reads
			// neutral with zero confidence instead of the interpreter's
			// neutral-band confidence.
			label, confidence = domain.SentimentNeutral, 0
		}
		result.Sentiment = &domain.SentimentResult{
			Label:      label,
			Confidence: confidence,
			Scores:     scores,
		}
	}); !ok {
		degraded = true
		result.Sentiment = &domain.SentimentResult{
			Label:      domain.SentimentNeutral,
			Confidence: 0,
		}
	}

	if ok := a.guard(ctx, "topic", article.ID, func() {
		topicResult := a.classifier.Classify(article.Title, body)
		result.Topic = &topicResult
	}); !ok {
		degraded = true
		result.Topic = fallbackTopic()
	}

	if degraded {
		result.Status = domain.StatusDegraded
		result.Degraded = true
	}

	a.record(result, a.clock.Since(start))

	return result.Normalized()
}

// AnalyzeBatch analyzes articles in input order with bounded
// concurrency, chunk by chunk. Cancellation (or the configured
// wall-clock budget running out) stops scheduling at the next chunk
// boundary; completed results are kept and unprocessed articles come
// back as degraded placeholders. The result slice always has one entry
// per input article, in input order.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, articles []domain.Article) []domain.NLPResult {
	if len(articles) == 0 {
		return nil
	}

	if a.batchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		defer cancel()

		stop := make(chan struct{})
		defer close(stop)
		go func() {
			select {
			case <-a.clock.After(a.batchTimeout):
				a.logger.Warn("batch wall-clock budget exhausted", "budget", a.batchTimeout)
				cancel()
			case <-stop:
			}
		}()
	}

	stage := pipeline.Stage[domain.Article, domain.NLPResult]{
		Name:        "analyze-article",
		Concurrency: a.concurrency,
		Process: func(ctx context.Context, article domain.Article) (domain.NLPResult, error) {
			return a.AnalyzeArticle(ctx, article), nil
		},
	}

	stageResults := pipeline.RunChunked(ctx, stage, articles, a.chunkSize)

	results := make([]domain.NLPResult, len(stageResults))
	skipped := 0
	for i, r := range stageResults {
		if r.Err != nil {
			results[i] = a.cancelledResult(articles[i].ID)
			skipped++
			continue
		}
		results[i] = r.Value
	}

	if skipped > 0 {
		a.logger.Warn("batch finished with unprocessed articles",
			"total", len(articles), "skipped", skipped)
	}

	return results
}

// TopicDistribution counts primary topics across results. Every defined
// category appears in the map, including zero counts. Results without a
// topic portion count under general.
func (a *Analyzer) TopicDistribution(results []domain.NLPResult) map[domain.Category]int {
	distribution := make(map[domain.Category]int, len(domain.Categories()))
	for _, cat := range domain.Categories() {
		distribution[cat] = 0
	}

	for _, r := range results {
		if r.Topic == nil {
			distribution[domain.CategoryGeneral]++
			continue
		}
		distribution[r.Topic.PrimaryTopic]++
	}

	return distribution
}

// guard runs one sub-analysis with panic isolation. It reports false
// when the sub-analysis panicked, after logging the recovered error.
func (a *Analyzer) guard(ctx context.Context, operation, articleID string, fn func()) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			appErr := apperrors.FromPanic(rec, "analyzer", operation,
				map[string]interface{}{"article_id": articleID})
			a.logger.WithContext(ctx).Error("sub-analysis panicked",
				"operation", operation,
				"article_id", articleID,
				"error", appErr)
		}
	}()

	fn()
	return true
}

func (a *Analyzer) record(result domain.NLPResult, duration time.Duration) {
	if a.collector == nil {
		return
	}

	topicLabel := string(domain.CategoryGeneral)
	if result.Topic != nil {
		topicLabel = string(result.Topic.PrimaryTopic)
	}
	a.collector.RecordAnalysis(topicLabel, duration, result.Degraded, result.IsRelevant)
}

// cancelledResult is the placeholder for an article the batch never
// analyzed. It carries no sub-results and is flagged degraded.
func (a *Analyzer) cancelledResult(articleID string) domain.NLPResult {
	return domain.NLPResult{
		ArticleID: articleID,
		Status:    domain.StatusDegraded,
		Degraded:  true,
	}
}

func fallbackTopic() *domain.TopicResult {
	scores := make(map[domain.Category]float64, len(domain.Categories()))
	for _, cat := range domain.Categories() {
		scores[cat] = 0
	}
	return &domain.TopicResult{
		PrimaryTopic: domain.CategoryGeneral,
		Confidence:   0,
		TopicScores:  scores,
	}
}

func joinText(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "\n\n")
}
