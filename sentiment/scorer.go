// Package sentiment implements lexicon-based valence scoring and the
// medically conservative threshold interpretation on top of it.
package sentiment

import (
	"math"
	"strings"
	"unicode"

	"news-analyzer/domain"
	"news-analyzer/lexicon"
	apperrors "news-analyzer/utils/errors"
)

const (
	// normalizationAlpha tames the raw valence sum into the [-1, 1]
	// compound score; larger values flatten the curve.
	normalizationAlpha = 15.0

	// negationFactor is applied to a rated term's valence when a
	// negator appears within the lookback window before it.
	negationFactor = -0.74

	// negationLookback is how many preceding tokens are scanned for
	// negators and boosters.
	negationLookback = 3

	// Booster influence decays with distance from the rated term.
	boosterDecayTwo   = 0.95
	boosterDecayThree = 0.9
)

// Scorer computes raw polarity signals from text. It is a pure
// function over its inputs: no state, no randomness, no clock.
type Scorer struct {
	lex         *lexicon.Lexicon
	preparer    TextPreparer
	titleWeight float64
}

// NewScorer constructs a scorer. titleWeight scales the valence
// contribution of title tokens relative to body tokens; 1.0 weights
// them equally.
func NewScorer(lex *lexicon.Lexicon, preparer TextPreparer, titleWeight float64) (*Scorer, error) {
	if lex == nil {
		return nil, apperrors.NewConfigurationError("valence lexicon is required", "scorer", nil)
	}
	if preparer == nil {
		return nil, apperrors.NewConfigurationError("text preparer is required", "scorer", nil)
	}
	if titleWeight <= 0 {
		return nil, apperrors.NewConfigurationError("title weight must be positive", "scorer",
			map[string]interface{}{"title_weight": titleWeight})
	}
	return &Scorer{lex: lex, preparer: preparer, titleWeight: titleWeight}, nil
}

// Score evaluates the combined title and body text and returns the
// detailed valence breakdown. Empty or whitespace-only input yields the
// pure-neutral result (compound 0, neutral 1).
func (s *Scorer) Score(text, title string) domain.DetailedScores {
	titleTokens := tokenize(s.preparer.Prepare(title))
	bodyTokens := tokenize(s.preparer.Prepare(text))

	if len(titleTokens) == 0 && len(bodyTokens) == 0 {
		return domain.DetailedScores{Neutral: 1.0}
	}

	var valences []float64
	valences = appendSegmentValences(valences, titleTokens, s.lex, s.titleWeight)
	valences = appendSegmentValences(valences, bodyTokens, s.lex, 1.0)

	return aggregate(valences)
}

// appendSegmentValences rates one text segment token by token. Each
// token contributes exactly one entry: its (possibly boosted, negated,
// weighted) valence, or zero when unrated.
func appendSegmentValences(out []float64, tokens []string, lex *lexicon.Lexicon, weight float64) []float64 {
	for i, tok := range tokens {
		v, ok := lex.Valence(tok)
		if !ok {
			out = append(out, 0)
			continue
		}

		for dist := 1; dist <= negationLookback && i-dist >= 0; dist++ {
			prev := tokens[i-dist]

			if b, isBooster := lex.Booster(prev); isBooster {
				switch dist {
				case 2:
					b *= boosterDecayTwo
				case 3:
					b *= boosterDecayThree
				}
				if v < 0 {
					b = -b
				}
				v += b
			}

			if lex.IsNegator(prev) {
				v *= negationFactor
			}
		}

		out = append(out, v*weight)
	}
	return out
}

// aggregate folds per-token valences into the detailed score breakdown.
// Positive and negative intensities get the +1/-1 emphasis offset of
// lexicon scoring so that a single strong term outweighs a sea of
// neutral tokens only gradually.
func aggregate(valences []float64) domain.DetailedScores {
	var sum, posSum, negSum float64
	var neuCount int

	for _, v := range valences {
		sum += v
		switch {
		case v > 0:
			posSum += v + 1
		case v < 0:
			negSum += v - 1
		default:
			neuCount++
		}
	}

	total := posSum + math.Abs(negSum) + float64(neuCount)
	if total == 0 {
		return domain.DetailedScores{Neutral: 1.0}
	}

	return domain.DetailedScores{
		Compound: normalizeCompound(sum),
		Positive: posSum / total,
		Negative: math.Abs(negSum) / total,
		Neutral:  float64(neuCount) / total,
	}
}

// normalizeCompound maps an unbounded valence sum into [-1, 1].
func normalizeCompound(sum float64) float64 {
	c := sum / math.Sqrt(sum*sum+normalizationAlpha)
	if c > 1 {
		return 1
	}
	if c < -1 {
		return -1
	}
	return c
}

// tokenize splits prepared text into lowercase tokens with surrounding
// punctuation stripped. Inner apostrophes and hyphens survive so
// contractions ("doesn't") and compounds ("side-effect") stay intact.
func tokenize(text string) []string {
	if text == "" {
		return nil
	}

	fields := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if tok == "" {
			continue
		}
		tokens = append(tokens, strings.ToLower(tok))
	}
	return tokens
}
