package sentiment

import (
	"strings"
	"unicode"
)

// TextPreparer is the linguistic preprocessing strategy applied to text
// before scoring. The implementation is chosen once at construction via
// configuration; scoring code never branches on it.
type TextPreparer interface {
	// Prepare transforms raw text into the form handed to tokenization.
	Prepare(text string) string
	// Name identifies the strategy in config and logs.
	Name() string
}

// PreparerName values accepted by NewPreparer.
const (
	PreparerRaw        = "raw"
	PreparerNormalized = "normalized"
)

// NewPreparer returns the strategy registered under name, or false when
// the name is unknown.
func NewPreparer(name string) (TextPreparer, bool) {
	switch name {
	case PreparerRaw:
		return rawPreparer{}, true
	case PreparerNormalized:
		return normalizingPreparer{}, true
	default:
		return nil, false
	}
}

// rawPreparer passes text through untouched apart from trimming. The
// fast path: tokenization handles case folding on its own.
type rawPreparer struct{}

func (rawPreparer) Prepare(text string) string { return strings.TrimSpace(text) }
func (rawPreparer) Name() string               { return PreparerRaw }

// normalizingPreparer collapses whitespace runs and strips control
// characters, trading a pass over the text for cleaner tokens on
// messy scraped input.
type normalizingPreparer struct{}

func (normalizingPreparer) Name() string { return PreparerNormalized }

func (normalizingPreparer) Prepare(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	lastSpace := true
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		case unicode.IsControl(r):
			// dropped
		default:
			b.WriteRune(r)
			lastSpace = false
		}
	}

	return strings.TrimRight(b.String(), " ")
}
