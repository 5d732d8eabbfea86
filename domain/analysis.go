package domain

import (
	"math"
	"sort"
)

// SentimentLabel is the three-way sentiment classification.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// Category is one of the ten fixed medical topic labels.
type Category string

const (
	CategoryTreatment Category = "treatment"
	CategoryResearch  Category = "research"
	CategorySurgery   Category = "surgery"
	CategoryDiagnosis Category = "diagnosis"
	CategoryScreening Category = "screening"
	CategoryGenetics  Category = "genetics"
	CategoryLifestyle Category = "lifestyle"
	CategorySupport   Category = "support"
	CategoryPolicy    Category = "policy"
	CategoryGeneral   Category = "general"
)

// Categories returns all ten categories in fixed precedence order.
// The order doubles as the tie-break order when two categories reach
// the same top score: the earlier category wins.
func Categories() []Category {
	return []Category{
		CategoryTreatment,
		CategoryResearch,
		CategorySurgery,
		CategoryDiagnosis,
		CategoryScreening,
		CategoryGenetics,
		CategoryLifestyle,
		CategorySupport,
		CategoryPolicy,
		CategoryGeneral,
	}
}

// IsValidCategory reports whether s names a defined category.
func IsValidCategory(s Category) bool {
	for _, c := range Categories() {
		if c == s {
			return true
		}
	}
	return false
}

// DetailedScores carries the raw valence breakdown of a text.
// Positive+Negative+Neutral sum to ~1.0 under the scorer's own
// normalization; Compound is an independent scalar in [-1, 1].
type DetailedScores struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// SentimentResult is the interpreted sentiment for one article.
type SentimentResult struct {
	Label      SentimentLabel `json:"label"`
	Confidence float64        `json:"confidence"`
	Scores     DetailedScores `json:"detailed_scores"`
}

// TopicResult is the topic classification for one article.
// TopicScores always contains an entry for every defined category.
type TopicResult struct {
	PrimaryTopic    Category             `json:"primary_topic"`
	Confidence      float64              `json:"confidence"`
	MatchedKeywords []string             `json:"matched_keywords"`
	TopicScores     map[Category]float64 `json:"topic_scores"`
}

// AnalysisStatus marks whether a result is genuine or a failure fallback.
type AnalysisStatus string

const (
	StatusSuccess  AnalysisStatus = "success"
	StatusDegraded AnalysisStatus = "degraded"
)

// NLPResult is the assembled per-article analysis output. It is created
// once, handed to the persistence collaborator, and never mutated.
type NLPResult struct {
	ArticleID       string           `json:"article_id"`
	IsRelevant      bool             `json:"is_relevant"`
	MatchedKeywords []string         `json:"matched_keywords"`
	RelevanceScore  float64          `json:"relevance_score"`
	Sentiment       *SentimentResult `json:"sentiment,omitempty"`
	Topic           *TopicResult     `json:"topic,omitempty"`
	Status          AnalysisStatus   `json:"status"`
	Degraded        bool             `json:"degraded"`
}

// RoundScore rounds a raw score to the storage precision (3 decimals).
func RoundScore(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// RoundConfidence rounds a confidence to the storage precision (2 decimals).
func RoundConfidence(v float64) float64 {
	return math.Round(v*100) / 100
}

// Normalized returns a copy of the result with numeric fields rounded to
// storage precision and keyword sets sorted, so that a store/load
// round-trip reproduces the result byte for byte.
func (r NLPResult) Normalized() NLPResult {
	out := r
	out.RelevanceScore = RoundScore(r.RelevanceScore)
	out.MatchedKeywords = sortedCopy(r.MatchedKeywords)

	if r.Sentiment != nil {
		s := *r.Sentiment
		s.Confidence = RoundConfidence(s.Confidence)
		s.Scores.Compound = RoundScore(s.Scores.Compound)
		s.Scores.Positive = RoundScore(s.Scores.Positive)
		s.Scores.Negative = RoundScore(s.Scores.Negative)
		s.Scores.Neutral = RoundScore(s.Scores.Neutral)
		out.Sentiment = &s
	}

	if r.Topic != nil {
		t := *r.Topic
		t.Confidence = RoundConfidence(t.Confidence)
		t.MatchedKeywords = sortedCopy(t.MatchedKeywords)
		scores := make(map[Category]float64, len(t.TopicScores))
		for c, v := range t.TopicScores {
			scores[c] = RoundScore(v)
		}
		t.TopicScores = scores
		out.Topic = &t
	}

	return out
}

func sortedCopy(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	sort.Strings(out)
	return out
}
