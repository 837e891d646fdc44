package bullet

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/scry-docgen/internal/domain"
)

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		points   []domain.BulletPoint
		expected string
	}{
		{
			name:     "empty",
			points:   nil,
			expected: "",
		},
		{
			name:     "single leaf",
			points:   []domain.BulletPoint{{Content: "Axit", Level: 1}},
			expected: "• Axit",
		},
		{
			name: "flat siblings",
			points: []domain.BulletPoint{
				{Content: "Axit", Level: 1},
				{Content: "Bazơ", Level: 1},
			},
			expected: "• Axit\n• Bazơ",
		},
		{
			name: "nested with following sibling",
			points: []domain.BulletPoint{
				{Content: "Axit", Level: 1, Children: []domain.BulletPoint{
					{Content: "HCl", Level: 2},
					{Content: "H2SO4", Level: 2},
				}},
				{Content: "Bazơ", Level: 1},
			},
			expected: "• Axit\n    ◦ HCl\n    ◦ H2SO4\n• Bazơ",
		},
		{
			name: "nested last sibling has no trailing newline",
			points: []domain.BulletPoint{
				{Content: "Axit", Level: 1, Children: []domain.BulletPoint{
					{Content: "HCl", Level: 2},
				}},
			},
			expected: "• Axit\n    ◦ HCl",
		},
		{
			name: "deep levels use dash marker",
			points: []domain.BulletPoint{
				{Content: "a", Level: 1, Children: []domain.BulletPoint{
					{Content: "b", Level: 2, Children: []domain.BulletPoint{
						{Content: "c", Level: 3, Children: []domain.BulletPoint{
							{Content: "d", Level: 4},
							{Content: "e", Level: 5},
						}},
					}},
				}},
			},
			expected: "• a\n    ◦ b\n        ▪ c\n            - d\n                - e",
		},
		{
			name: "levels are absolute not relative",
			points: []domain.BulletPoint{
				{Content: "a", Level: 1, Children: []domain.BulletPoint{
					{Content: "skip", Level: 3},
				}},
			},
			expected: "• a\n        ▪ skip",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Render(tc.points))
		})
	}
}

func TestRender_Deterministic(t *testing.T) {
	t.Parallel()

	points := []domain.BulletPoint{
		{Content: "x", Level: 1, Children: []domain.BulletPoint{{Content: "y", Level: 2}}},
		{Content: "z", Level: 1},
	}
	assert.Equal(t, Render(points), Render(points))
}

func TestMarker(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "•", Marker(1))
	assert.Equal(t, "◦", Marker(2))
	assert.Equal(t, "▪", Marker(3))
	assert.Equal(t, "-", Marker(4))
	assert.Equal(t, "-", Marker(9))
}

func TestList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "• Mở đầu\n• Axit\n• Tổng kết", List([]string{"Mở đầu", "Axit", "Tổng kết"}))
	assert.Equal(t, "", List(nil))
}
