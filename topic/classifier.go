// Package topic classifies articles into the fixed set of medical topic
// categories using tiered keyword matching.
package topic

import (
	"regexp"
	"sort"

	"news-analyzer/domain"
	"news-analyzer/relevance"
	apperrors "news-analyzer/utils/errors"
)

// Validate rejects tier weightings that break the high > medium > low
// ordering the scoring model assumes.
func (w Weights) Validate() error {
	if w.Low <= 0 || w.Medium <= w.Low || w.High <= w.Medium {
		return apperrors.NewConfigurationError("tier weights must satisfy high > medium > low > 0", "topic",
			map[string]interface{}{"high": w.High, "medium": w.Medium, "low": w.Low})
	}
	return nil
}

type tierPattern struct {
	keyword string
	weight  float64
	re      *regexp.Regexp
}

// Classifier scores article text against per-category keyword tiers.
// All patterns are compiled at construction; the classifier is immutable
// and safe for concurrent use.
type Classifier struct {
	precedence  []domain.Category
	patterns    map[domain.Category][]tierPattern
	titleWeight float64
}

// NewClassifier compiles the keyword table. precedence must be a
// permutation of all defined categories; its order breaks score ties,
// earlier wins. titleWeight scales the contribution of keywords that
// appear in the title; 1.0 weights title and body equally.
func NewClassifier(table map[string]Keywords, weights Weights, titleWeight float64, precedence []domain.Category) (*Classifier, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if titleWeight <= 0 {
		return nil, apperrors.NewConfigurationError("title weight must be positive", "topic",
			map[string]interface{}{"title_weight": titleWeight})
	}
	if err := validatePrecedence(precedence); err != nil {
		return nil, err
	}

	patterns := make(map[domain.Category][]tierPattern, len(precedence))
	for name, kws := range table {
		cat := domain.Category(name)
		if !domain.IsValidCategory(cat) {
			return nil, apperrors.NewConfigurationError("unknown topic category", "topic",
				map[string]interface{}{"category": name})
		}

		tiers := []struct {
			words  []string
			weight float64
		}{
			{kws.High, weights.High},
			{kws.Medium, weights.Medium},
			{kws.Low, weights.Low},
		}
		for _, tier := range tiers {
			for _, kw := range tier.words {
				re, err := relevance.CompileKeyword(kw)
				if err != nil {
					return nil, apperrors.NewConfigurationError("topic keyword does not compile", "topic",
						map[string]interface{}{"category": name, "keyword": kw, "cause": err.Error()})
				}
				patterns[cat] = append(patterns[cat], tierPattern{keyword: kw, weight: tier.weight, re: re})
			}
		}
	}

	return &Classifier{precedence: precedence, patterns: patterns, titleWeight: titleWeight}, nil
}

func validatePrecedence(precedence []domain.Category) error {
	all := domain.Categories()
	if len(precedence) != len(all) {
		return apperrors.NewConfigurationError("precedence must list every category exactly once", "topic",
			map[string]interface{}{"got": len(precedence), "want": len(all)})
	}
	seen := make(map[domain.Category]struct{}, len(precedence))
	for _, c := range precedence {
		if !domain.IsValidCategory(c) {
			return apperrors.NewConfigurationError("unknown category in precedence", "topic",
				map[string]interface{}{"category": string(c)})
		}
		if _, dup := seen[c]; dup {
			return apperrors.NewConfigurationError("duplicate category in precedence", "topic",
				map[string]interface{}{"category": string(c)})
		}
		seen[c] = struct{}{}
	}
	return nil
}

// Classify scores title and body against every category and returns the
// winner. Text with no keyword hits at all falls back to the general
// category at zero confidence.
func (c *Classifier) Classify(title, body string) domain.TopicResult {
	scores := make(map[domain.Category]float64, len(c.precedence))
	for _, cat := range c.precedence {
		scores[cat] = 0
	}

	matchedSet := make(map[string]struct{})
	var sum float64

	for cat, pats := range c.patterns {
		for _, p := range pats {
			var w float64
			if p.re.MatchString(body) {
				w = p.weight
			}
			if p.re.MatchString(title) {
				if tw := p.weight * c.titleWeight; tw > w {
					w = tw
				}
			}
			if w == 0 {
				continue
			}
			scores[cat] += w
			sum += w
			matchedSet[p.keyword] = struct{}{}
		}
	}

	if sum == 0 {
		return domain.TopicResult{
			PrimaryTopic: domain.CategoryGeneral,
			Confidence:   0,
			TopicScores:  scores,
		}
	}

	primary := c.precedence[0]
	for _, cat := range c.precedence {
		if scores[cat] > scores[primary] {
			primary = cat
		}
	}

	matched := make([]string, 0, len(matchedSet))
	for kw := range matchedSet {
		matched = append(matched, kw)
	}
	sort.Strings(matched)

	return domain.TopicResult{
		PrimaryTopic:    primary,
		Confidence:      scores[primary] / sum,
		MatchedKeywords: matched,
		TopicScores:     scores,
	}
}
