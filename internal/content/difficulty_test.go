package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/lesson-forge/internal/content"
)

func TestCalculateDifficulty(t *testing.T) {
	scorer := content.NewDifficultyScorer(nil)

	testCases := []struct {
		name     string
		text     string
		expected int
	}{
		{name: "no keywords", text: "counting apples", expected: 1},
		{name: "basic", text: "Basic addition", expected: 1},
		{name: "intermediate", text: "multiplication tables", expected: 2},
		{name: "max wins over first match", text: "simple steps toward algebra", expected: 3},
		{name: "max is not a sum", text: "division and multiplication", expected: 2},
		{name: "case insensitive", text: "ADVANCED", expected: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, scorer.Calculate(tc.text))
		})
	}
}

func TestCalculateDifficultyIsIdempotentAndMonotonic(t *testing.T) {
	scorer := content.NewDifficultyScorer(nil)

	text := "addition word problems"
	first := scorer.Calculate(text)
	assert.Equal(t, first, scorer.Calculate(text))

	previous := first
	for _, kw := range []string{" intermediate", " basic", " calculus", " simple"} {
		text += kw
		got := scorer.Calculate(text)
		assert.GreaterOrEqual(t, got, previous, "adding %q lowered the score", kw)
		previous = got
	}
	assert.Equal(t, 3, previous)
}

func TestCustomKeywordTable(t *testing.T) {
	scorer := content.NewDifficultyScorer([]content.KeywordLevel{{Keyword: "fractions", Level: 2}})

	assert.Equal(t, 2, scorer.Calculate("fractions"))
	assert.Equal(t, 1, scorer.Calculate("advanced"))
}

func TestExtractTopics(t *testing.T) {
	text := `
local a = { topic = "addition" }
local b = { topics = {"subtraction", 'addition', "division"} }
local c = { topic = 'subtraction' }
`
	assert.Equal(t, []string{"addition", "subtraction", "division"}, content.ExtractTopics(text, "basic_math"))
	assert.Equal(t, []string{"basic_math"}, content.ExtractTopics("no topics", "basic_math"))
	assert.Empty(t, content.ExtractTopics("no topics", ""))
}
