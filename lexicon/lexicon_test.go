package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("should load embedded valence table", func(t *testing.T) {
		lex, err := Load()
		require.NoError(t, err)
		assert.Greater(t, lex.Size(), 100, "embedded table should carry a substantial term set")
	})

	t.Run("should rate known domain terms with bounded valences", func(t *testing.T) {
		lex, err := Load()
		require.NoError(t, err)

		for term, wantPositive := range map[string]bool{
			"breakthrough": true,
			"cure":         true,
			"promising":    true,
			"mortality":    false,
			"fatal":        false,
			"relapse":      false,
		} {
			v, ok := lex.Valence(term)
			require.True(t, ok, "term %q should be rated", term)
			assert.GreaterOrEqual(t, v, -maxValence)
			assert.LessOrEqual(t, v, maxValence)
			if wantPositive {
				assert.Positive(t, v, "term %q", term)
			} else {
				assert.Negative(t, v, "term %q", term)
			}
		}
	})

	t.Run("should not rate unknown terms", func(t *testing.T) {
		lex, err := Load()
		require.NoError(t, err)

		_, ok := lex.Valence("zzz-not-a-word")
		assert.False(t, ok)
	})
}

func TestParseValence(t *testing.T) {
	t.Run("should skip comments and blank lines", func(t *testing.T) {
		m, err := parseValence("# comment\n\ngood\t1.9\nbad\t-2.5\n")
		require.NoError(t, err)
		assert.Len(t, m, 2)
		assert.Equal(t, 1.9, m["good"])
	})

	t.Run("should reject lines without a tab separator", func(t *testing.T) {
		_, err := parseValence("good 1.9\n")
		assert.Error(t, err)
	})

	t.Run("should reject non-numeric valences", func(t *testing.T) {
		_, err := parseValence("good\thigh\n")
		assert.Error(t, err)
	})

	t.Run("should reject valences outside the bound", func(t *testing.T) {
		_, err := parseValence("good\t4.5\n")
		assert.Error(t, err)
	})

	t.Run("should reject an empty table", func(t *testing.T) {
		_, err := parseValence("# only comments\n")
		assert.Error(t, err)
	})

	t.Run("should lowercase terms", func(t *testing.T) {
		m, err := parseValence("Good\t1.9\n")
		require.NoError(t, err)
		_, ok := m["good"]
		assert.True(t, ok)
	})
}

func TestBoostersAndNegators(t *testing.T) {
	lex, err := Load()
	require.NoError(t, err)

	t.Run("should classify intensifiers and dampeners", func(t *testing.T) {
		v, ok := lex.Booster("very")
		require.True(t, ok)
		assert.Positive(t, v)

		v, ok = lex.Booster("slightly")
		require.True(t, ok)
		assert.Negative(t, v)

		_, ok = lex.Booster("patient")
		assert.False(t, ok)
	})

	t.Run("should recognize negators", func(t *testing.T) {
		assert.True(t, lex.IsNegator("not"))
		assert.True(t, lex.IsNegator("without"))
		assert.False(t, lex.IsNegator("with"))
	})
}
