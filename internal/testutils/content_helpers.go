package testutils

import (
	"fmt"
	"testing"

	"github.com/phrazzld/scry-docgen/internal/domain"
	"github.com/stretchr/testify/require"
)

// ContentOption customizes a test content tree.
type ContentOption func(*domain.ContentTree)

// WithContentSlides replaces the content slides with n generated slides.
func WithContentSlides(n int) ContentOption {
	return func(tree *domain.ContentTree) {
		tree.ContentSlides = make([]domain.ContentSlide, n)
		for i := range tree.ContentSlides {
			tree.ContentSlides[i] = CreateTestContentSlide(i + 1)
		}
	}
}

// WithSlides sets the content slides.
func WithSlides(slides ...domain.ContentSlide) ContentOption {
	return func(tree *domain.ContentTree) {
		tree.ContentSlides = slides
	}
}

// WithTitle sets the first slide title.
func WithTitle(title string) ContentOption {
	return func(tree *domain.ContentTree) {
		tree.FirstSlide.Title = title
	}
}

// MustCreateContentTree returns a valid content tree with two content slides
// unless options say otherwise. It fails the test if the result is invalid.
func MustCreateContentTree(t testing.TB, opts ...ContentOption) domain.ContentTree {
	t.Helper()

	tree := domain.ContentTree{
		FirstSlide: domain.FirstSlide{
			Title:    "Phản ứng oxi hóa khử",
			Subtitle: "Hóa học 10",
			Owner:    "Tổ Hóa",
		},
		TableOfContents: domain.TableOfContents{
			Topics: []string{"Khái niệm", "Cân bằng phản ứng"},
		},
	}
	WithContentSlides(2)(&tree)
	for _, opt := range opts {
		opt(&tree)
	}

	require.NoError(t, tree.Validate(), "Test content tree should be valid")
	return tree
}

// CreateTestContentSlide returns a content slide whose heading carries n.
func CreateTestContentSlide(n int) domain.ContentSlide {
	return domain.ContentSlide{
		Heading: fmt.Sprintf("Phần %d", n),
		BulletPoints: []domain.BulletPoint{
			{Content: "Fe(+3) nhận electron", Level: 1, Children: []domain.BulletPoint{
				{Content: "Fe(+3) + 1e -> Fe(+2)", Level: 2},
			}},
			{Content: "Ví dụ CaCl2", Level: 1},
		},
	}
}

// CreateTestExam returns an exam with n questions. Question i has four
// options; the correct one sorts into position (i-1) mod 4.
func CreateTestExam(n int) domain.Exam {
	questions := make([]domain.Question, n)
	for i := range questions {
		correct := i % 4
		options := make([]domain.Option, 4)
		for j := range options {
			options[j] = domain.Option{
				Answer:    fmt.Sprintf("%c) đáp án %d", 'a'+j, j+1),
				IsCorrect: j == correct,
			}
		}
		// Reverse so sorting has work to do.
		for l, r := 0, len(options)-1; l < r; l, r = l+1, r-1 {
			options[l], options[r] = options[r], options[l]
		}
		questions[i] = domain.Question{
			Text:    fmt.Sprintf("Cân bằng phương trình số %d: H2 + O2 -> H2O", i+1),
			Options: options,
		}
	}

	limit := 45
	return domain.Exam{
		Title:            "Kiểm tra 45 phút",
		MatrixName:       "Ma trận HK1",
		Questions:        questions,
		TotalCount:       n,
		TimeLimitMinutes: &limit,
	}
}
