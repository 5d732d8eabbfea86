package topic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-analyzer/domain"
	apperrors "news-analyzer/utils/errors"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := NewClassifier(DefaultKeywordTable(), DefaultWeights(), 1.0, domain.Categories())
	require.NoError(t, err)
	return c
}

func TestWeights_Validate(t *testing.T) {
	t.Run("should accept the default weighting", func(t *testing.T) {
		assert.NoError(t, DefaultWeights().Validate())
	})

	tests := []struct {
		name string
		w    Weights
	}{
		{"low zero", Weights{High: 3, Medium: 2, Low: 0}},
		{"medium not above low", Weights{High: 3, Medium: 1, Low: 1}},
		{"high not above medium", Weights{High: 2, Medium: 2, Low: 1}},
	}
	for _, tt := range tests {
		t.Run("should reject "+tt.name, func(t *testing.T) {
			err := tt.w.Validate()
			require.Error(t, err)
			assert.True(t, apperrors.IsConfiguration(err))
		})
	}
}

func TestNewClassifier(t *testing.T) {
	t.Run("should reject unknown categories in the table", func(t *testing.T) {
		table := map[string]Keywords{"astrology": {High: []string{"zodiac"}}}
		_, err := NewClassifier(table, DefaultWeights(), 1.0, domain.Categories())
		require.Error(t, err)
		assert.True(t, apperrors.IsConfiguration(err))
	})

	t.Run("should reject non-positive title weight", func(t *testing.T) {
		_, err := NewClassifier(DefaultKeywordTable(), DefaultWeights(), 0, domain.Categories())
		assert.Error(t, err)
	})

	t.Run("should reject incomplete precedence", func(t *testing.T) {
		_, err := NewClassifier(DefaultKeywordTable(), DefaultWeights(), 1.0,
			[]domain.Category{domain.CategoryTreatment})
		assert.Error(t, err)
	})

	t.Run("should reject duplicate precedence entries", func(t *testing.T) {
		prec := domain.Categories()
		prec[1] = prec[0]
		_, err := NewClassifier(DefaultKeywordTable(), DefaultWeights(), 1.0, prec)
		assert.Error(t, err)
	})

	t.Run("should reject unknown precedence entries", func(t *testing.T) {
		prec := domain.Categories()
		prec[0] = "astrology"
		_, err := NewClassifier(DefaultKeywordTable(), DefaultWeights(), 1.0, prec)
		assert.Error(t, err)
	})
}

func TestClassifier_Classify(t *testing.T) {
	c := newTestClassifier(t)

	t.Run("should pick treatment for a chemotherapy trial report", func(t *testing.T) {
		title := "New Chemotherapy Protocol Shows Promise"
		body := "Clinical trial demonstrates improved outcomes. " +
			"Researchers tested combination therapy in patients."

		result := c.Classify(title, body)

		assert.Equal(t, domain.CategoryTreatment, result.PrimaryTopic)
		assert.Contains(t, result.MatchedKeywords, "chemotherapy")
		assert.Contains(t, result.MatchedKeywords, "clinical trial")
		assert.Contains(t, result.MatchedKeywords, "therapy")
		assert.Greater(t, result.TopicScores[domain.CategoryTreatment],
			result.TopicScores[domain.CategoryResearch])
		assert.InDelta(t, 0.5, result.Confidence, 1e-9)
	})

	t.Run("should fall back to general at zero confidence", func(t *testing.T) {
		result := c.Classify("Quarterly Earnings Beat Expectations",
			"The company raised its full-year revenue guidance.")

		assert.Equal(t, domain.CategoryGeneral, result.PrimaryTopic)
		assert.Zero(t, result.Confidence)
		assert.Empty(t, result.MatchedKeywords)
		require.Len(t, result.TopicScores, len(domain.Categories()))
		for cat, score := range result.TopicScores {
			assert.Zerof(t, score, "category %s", cat)
		}
	})

	t.Run("should report a score entry for every category", func(t *testing.T) {
		result := c.Classify("Gene therapy update", "")
		assert.Len(t, result.TopicScores, len(domain.Categories()))
	})

	t.Run("should match keywords case-insensitively", func(t *testing.T) {
		result := c.Classify("", "SCREENING programs expanded statewide.")
		assert.Equal(t, domain.CategoryScreening, result.PrimaryTopic)
	})

	t.Run("should keep confidence within (0, 1] when anything matches", func(t *testing.T) {
		result := c.Classify("Diet and exercise after surgery", "")
		assert.Greater(t, result.Confidence, 0.0)
		assert.LessOrEqual(t, result.Confidence, 1.0)
	})

	t.Run("should be deterministic", func(t *testing.T) {
		title := "Insurance coverage for genetic screening"
		body := "Lawmakers debated new legislation on medicare funding."
		assert.Equal(t, c.Classify(title, body), c.Classify(title, body))
	})
}

func TestClassifier_TieBreak(t *testing.T) {
	table := map[string]Keywords{
		"treatment": {High: []string{"alpha"}},
		"research":  {High: []string{"alpha"}},
	}

	t.Run("should prefer the earlier precedence entry on ties", func(t *testing.T) {
		c, err := NewClassifier(table, DefaultWeights(), 1.0, domain.Categories())
		require.NoError(t, err)

		result := c.Classify("", "alpha")
		assert.Equal(t, domain.CategoryTreatment, result.PrimaryTopic)
	})

	t.Run("should follow a reordered precedence", func(t *testing.T) {
		prec := domain.Categories()
		prec[0], prec[1] = prec[1], prec[0]
		c, err := NewClassifier(table, DefaultWeights(), 1.0, prec)
		require.NoError(t, err)

		result := c.Classify("", "alpha")
		assert.Equal(t, domain.CategoryResearch, result.PrimaryTopic)
	})
}

func TestClassifier_TitleWeight(t *testing.T) {
	t.Run("should amplify title matches above weight one", func(t *testing.T) {
		table := map[string]Keywords{
			"surgery":  {High: []string{"surgery"}},
			"genetics": {High: []string{"mutation"}},
		}
		c, err := NewClassifier(table, DefaultWeights(), 2.0, domain.Categories())
		require.NoError(t, err)

		result := c.Classify("Surgery outcomes", "mutation mutation data")
		assert.Equal(t, domain.CategorySurgery, result.PrimaryTopic)
		assert.Equal(t, 6.0, result.TopicScores[domain.CategorySurgery])
		assert.Equal(t, 3.0, result.TopicScores[domain.CategoryGenetics])
	})
}
