package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/lesson-forge/internal/content"
)

// fixedRoller always rolls the same face, clamped to the die size
type fixedRoller struct {
	face int
}

func (r *fixedRoller) Roll(size int) (int, error) {
	if r.face > size {
		return size, nil
	}
	return r.face, nil
}

func (r *fixedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i], _ = r.Roll(size)
	}
	return out, nil
}

func TestRenderSample(t *testing.T) {
	testCases := []struct {
		name     string
		item     content.Item
		face     int
		expected string
	}{
		{
			name:     "addition draws from range",
			item:     content.MathProblem{Type: "addition", Template: "{a} + {b} = ?", Range: content.NumberRange{Min: 10, Max: 50}},
			face:     3,
			expected: "12 + 12 = ?",
		},
		{
			name:     "missing addend uses the sum",
			item:     content.MathProblem{Type: "addition", Template: "? + {b} = {result}", Range: content.NumberRange{Min: 1, Max: 10}},
			face:     4,
			expected: "? + 4 = 8",
		},
		{
			name:     "division result is a multiple",
			item:     content.MathProblem{Type: "division", Template: "{result} ÷ {b} = ?", Range: content.NumberRange{Min: 5, Max: 12}},
			face:     2,
			expected: "36 ÷ 6 = ?",
		},
		{
			name:     "multiply then add",
			item:     content.MathProblem{Type: "multiplication", Template: "{a} × ? + {c} = {result}", Range: content.NumberRange{Min: 10, Max: 20}},
			face:     2,
			expected: "11 × ? + 11 = 132",
		},
		{
			name:     "missing divisor shows quotient plus offset",
			item:     content.MathProblem{Type: "division", Template: "{result} ÷ ? + {c} = {a}", Range: content.NumberRange{Min: 10, Max: 20}},
			face:     1,
			expected: "100 ÷ ? + 10 = 20",
		},
		{
			name:     "word problem names a student",
			item:     content.MathProblem{Type: "addition_word", Template: "{name} has {a} marbles.", Range: content.NumberRange{Min: 1, Max: 10}},
			face:     1,
			expected: "Alex has 1 marbles.",
		},
		{
			name:     "items without a range use one to ten",
			item:     content.Experiment{Type: "observation", Template: "Observe {a} leaves and {specimen}"},
			face:     20,
			expected: "Observe 10 leaves and {specimen}",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := content.RenderSample(tc.item, &fixedRoller{face: tc.face})
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestRenderSampleRequiresRoller(t *testing.T) {
	_, err := content.RenderSample(content.MathProblem{Template: "{a}"}, nil)
	assert.Error(t, err)
}
