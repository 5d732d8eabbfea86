package sentiment

import (
	"math"

	"news-analyzer/domain"
	apperrors "news-analyzer/utils/errors"
)

// Thresholds is the interpretation policy mapping a compound score to a
// label. Medical prose skews neutral and clinical, so the defaults sit
// narrower than general-purpose sentiment cutoffs.
type Thresholds struct {
	// Strong is the |compound| bound above which a label carries full
	// confidence.
	Strong float64
	// Moderate is the |compound| bound above which a label is still
	// assigned, at reduced confidence.
	Moderate float64
	// ModerateFactor scales confidence inside the moderate band.
	ModerateFactor float64
}

// DefaultThresholds returns the medically conservative policy.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Strong:         0.3,
		Moderate:       0.1,
		ModerateFactor: 0.7,
	}
}

// Validate rejects inverted or out-of-range bands. Called at engine
// construction; a failure here is fatal.
func (t Thresholds) Validate() error {
	if t.Strong <= 0 || t.Strong > 1 {
		return apperrors.NewConfigurationError("strong threshold must be in (0, 1]", "interpreter",
			map[string]interface{}{"strong": t.Strong})
	}
	if t.Moderate <= 0 || t.Moderate >= t.Strong {
		return apperrors.NewConfigurationError("moderate threshold must be in (0, strong)", "interpreter",
			map[string]interface{}{"moderate": t.Moderate, "strong": t.Strong})
	}
	if t.ModerateFactor <= 0 || t.ModerateFactor > 1 {
		return apperrors.NewConfigurationError("moderate confidence factor must be in (0, 1]", "interpreter",
			map[string]interface{}{"moderate_factor": t.ModerateFactor})
	}
	return nil
}

// Interpreter maps detailed scores to a three-way label with confidence.
type Interpreter struct {
	thresholds Thresholds
}

// NewInterpreter validates the policy and constructs the interpreter.
func NewInterpreter(t Thresholds) (*Interpreter, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &Interpreter{thresholds: t}, nil
}

// Interpret applies the threshold policy:
//
//	compound >= strong             -> positive, confidence |compound|
//	moderate <= compound < strong  -> positive, confidence |compound| * factor
//	compound <= -strong            -> negative, confidence |compound|
//	-strong < compound <= -moderate -> negative, confidence |compound| * factor
//	otherwise                      -> neutral, confidence 1 - |compound|
func (in *Interpreter) Interpret(scores domain.DetailedScores) (domain.SentimentLabel, float64) {
	c := scores.Compound
	abs := math.Abs(c)
	t := in.thresholds

	switch {
	case c >= t.Strong:
		return domain.SentimentPositive, abs
	case c >= t.Moderate:
		return domain.SentimentPositive, abs * t.ModerateFactor
	case c <= -t.Strong:
		return domain.SentimentNegative, abs
	case c <= -t.Moderate:
		return domain.SentimentNegative, abs * t.ModerateFactor
	default:
		return domain.SentimentNeutral, 1 - abs
	}
}
