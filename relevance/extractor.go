// Package relevance matches article text against the curated domain
// keyword set and produces the relevance signal. Filtering decisions on
// that signal belong to the calling pipeline stage, not to this package.
package relevance

import (
	"regexp"
	"sort"
	"strings"

	apperrors "news-analyzer/utils/errors"
)

// DefaultKeywords is the curated medical-domain keyword set used when no
// override is configured.
func DefaultKeywords() []string {
	return []string{
		"biopsy", "cancer", "chemotherapy", "clinical trial", "diagnosis",
		"disease", "drug", "epidemiology", "fda", "genetic", "healthcare",
		"health", "hospital", "immunotherapy", "infection", "medical",
		"medication", "medicine", "metastasis", "mortality", "mutation",
		"oncology", "outbreak", "pathology", "patient", "physician",
		"prevention", "prognosis", "public health", "radiology",
		"remission", "risk factor", "screening", "side effect", "surgery",
		"symptom", "therapy", "treatment", "tumor", "vaccine",
	}
}

// DefaultSaturation is the number of distinct matches at which the
// relevance score reaches 1.0.
const DefaultSaturation = 10

// DefaultThreshold is the relevance score at or above which an article
// counts as in-domain.
const DefaultThreshold = 0.1

type keywordPattern struct {
	keyword string
	re      *regexp.Regexp
}

// Extractor matches text against the configured keyword set.
// Patterns are compiled once at construction; the extractor is
// immutable and safe for concurrent use.
type Extractor struct {
	patterns   []keywordPattern
	saturation int
	threshold  float64
}

// NewExtractor compiles the keyword set. saturation is the distinct
// match count that saturates the score at 1.0; threshold is the
// relevance cutoff reported by IsRelevant.
func NewExtractor(keywords []string, saturation int, threshold float64) (*Extractor, error) {
	if len(keywords) == 0 {
		return nil, apperrors.NewConfigurationError("keyword set cannot be empty", "relevance", nil)
	}
	if saturation <= 0 {
		return nil, apperrors.NewConfigurationError("saturation count must be positive", "relevance",
			map[string]interface{}{"saturation": saturation})
	}
	if threshold < 0 || threshold > 1 {
		return nil, apperrors.NewConfigurationError("relevance threshold must be in [0, 1]", "relevance",
			map[string]interface{}{"threshold": threshold})
	}

	patterns := make([]keywordPattern, 0, len(keywords))
	seen := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			return nil, apperrors.NewConfigurationError("keyword cannot be blank", "relevance", nil)
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}

		re, err := CompileKeyword(kw)
		if err != nil {
			return nil, apperrors.NewConfigurationError("keyword does not compile", "relevance",
				map[string]interface{}{"keyword": kw, "cause": err.Error()})
		}
		patterns = append(patterns, keywordPattern{keyword: kw, re: re})
	}

	return &Extractor{patterns: patterns, saturation: saturation, threshold: threshold}, nil
}

// CompileKeyword builds the case-insensitive word-boundary pattern for a
// keyword. Spaces inside phrases tolerate arbitrary whitespace runs.
func CompileKeyword(kw string) (*regexp.Regexp, error) {
	escaped := regexp.QuoteMeta(kw)
	escaped = strings.ReplaceAll(escaped, ` `, `\s+`)
	return regexp.Compile(`(?i)\b` + escaped + `\b`)
}

// Extract returns the distinct matched keywords (sorted) and the
// relevance score. Empty text yields no matches and a zero score.
func (e *Extractor) Extract(text string) ([]string, float64) {
	if strings.TrimSpace(text) == "" {
		return nil, 0
	}

	var matched []string
	for _, p := range e.patterns {
		if p.re.MatchString(text) {
			matched = append(matched, p.keyword)
		}
	}
	if matched == nil {
		return nil, 0
	}
	sort.Strings(matched)

	score := float64(len(matched)) / float64(e.saturation)
	if score > 1 {
		score = 1
	}
	return matched, score
}

// IsRelevant applies the configured threshold to a relevance score.
func (e *Extractor) IsRelevant(score float64) bool {
	return score >= e.threshold
}

// Threshold returns the configured relevance cutoff.
func (e *Extractor) Threshold() float64 {
	return e.threshold
}
