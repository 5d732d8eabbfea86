// Package lexicon holds the read-only valence tables used by the
// sentiment scorer. Tables are parsed once at construction and never
// mutated afterward, so a single Lexicon is safe for concurrent use.
package lexicon

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
)

//go:embed data/valence.tsv
var rawValence string

// maxValence bounds individual term valences; values outside the bound
// indicate a corrupted table and fail loading.
const maxValence = 4.0

// boosterIncrement is the absolute valence shift contributed by an
// intensifying or dampening modifier directly before a rated term.
const boosterIncrement = 0.293

// boosters maps intensifiers (positive increment) and dampeners
// (negative increment) to their valence shift.
var boosters = map[string]float64{
	"absolutely":    boosterIncrement,
	"completely":    boosterIncrement,
	"considerably":  boosterIncrement,
	"dramatically":  boosterIncrement,
	"especially":    boosterIncrement,
	"exceptionally": boosterIncrement,
	"extremely":     boosterIncrement,
	"greatly":       boosterIncrement,
	"highly":        boosterIncrement,
	"hugely":        boosterIncrement,
	"incredibly":    boosterIncrement,
	"markedly":      boosterIncrement,
	"notably":       boosterIncrement,
	"particularly":  boosterIncrement,
	"remarkably":    boosterIncrement,
	"substantially": boosterIncrement,
	"very":          boosterIncrement,

	"barely":     -boosterIncrement,
	"hardly":     -boosterIncrement,
	"marginally": -boosterIncrement,
	"mildly":     -boosterIncrement,
	"moderately": -boosterIncrement,
	"partially":  -boosterIncrement,
	"slightly":   -boosterIncrement,
	"somewhat":   -boosterIncrement,
}

// negators flip the valence of a following rated term.
var negators = map[string]struct{}{
	"not":     {},
	"no":      {},
	"never":   {},
	"neither": {},
	"nor":     {},
	"none":    {},
	"cannot":  {},
	"can't":   {},
	"won't":   {},
	"don't":   {},
	"doesn't": {},
	"didn't":  {},
	"isn't":   {},
	"wasn't":  {},
	"aren't":  {},
	"without": {},
	"lack":    {},
	"lacking": {},
}

// Lexicon is the immutable valence table set.
type Lexicon struct {
	valence map[string]float64
}

// Load parses the embedded valence table. It returns an error if the
// table is malformed, which is fatal at engine construction time.
func Load() (*Lexicon, error) {
	valence, err := parseValence(rawValence)
	if err != nil {
		return nil, err
	}
	return &Lexicon{valence: valence}, nil
}

// parseValence parses tab-separated "term\tvalence" lines. Lines
// starting with # and empty lines are ignored.
func parseValence(raw string) (map[string]float64, error) {
	m := make(map[string]float64, 256)
	for lineNum, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("valence table line %d: expected term<TAB>valence, got %q", lineNum+1, line)
		}
		term := strings.ToLower(strings.TrimSpace(parts[0]))
		score, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("valence table line %d: bad valence %q: %w", lineNum+1, parts[1], err)
		}
		if score < -maxValence || score > maxValence {
			return nil, fmt.Errorf("valence table line %d: valence %.2f outside [%.1f, %.1f]", lineNum+1, score, -maxValence, maxValence)
		}
		m[term] = score
	}
	if len(m) == 0 {
		return nil, fmt.Errorf("valence table is empty")
	}
	return m, nil
}

// Valence returns the valence of a term and whether the term is rated.
func (l *Lexicon) Valence(term string) (float64, bool) {
	v, ok := l.valence[term]
	return v, ok
}

// Booster returns the valence shift of a modifier term and whether the
// term is a known booster.
func (l *Lexicon) Booster(term string) (float64, bool) {
	v, ok := boosters[term]
	return v, ok
}

// IsNegator reports whether the term negates a following rated term.
func (l *Lexicon) IsNegator(term string) bool {
	_, ok := negators[term]
	return ok
}

// Size returns the number of rated terms.
func (l *Lexicon) Size() int {
	return len(l.valence)
}
