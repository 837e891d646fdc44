package api

import (
	"github.com/phrazzld/scry-docgen/internal/domain"
)

// Common request/response structures

// ExamRequest defines the payload for the exam export endpoint.
type ExamRequest struct {
	Title      string            `json:"title"       validate:"required"`
	MatrixName string            `json:"matrix_name"`
	Questions  []QuestionRequest `json:"questions"   validate:"dive"`

	// TotalCount is printed in the header. Omitted means the number of questions.
	TotalCount *int `json:"total_count,omitempty" validate:"omitempty,gte=0"`

	// TimeLimitMinutes is printed in the header when present.
	TimeLimitMinutes *int `json:"time_limit_minutes,omitempty" validate:"omitempty,gt=0"`
}

// QuestionRequest is one multiple-choice question of an ExamRequest.
type QuestionRequest struct {
	Text    string          `json:"text"    validate:"required"`
	Options []OptionRequest `json:"options" validate:"dive"`
}

// OptionRequest is one answer choice of a QuestionRequest.
type OptionRequest struct {
	Answer    string `json:"answer"     validate:"required"`
	IsCorrect bool   `json:"is_correct"`
}

// ToDomain converts the request into the exporter's input.
func (r ExamRequest) ToDomain() domain.Exam {
	questions := make([]domain.Question, len(r.Questions))
	for i, q := range r.Questions {
		options := make([]domain.Option, len(q.Options))
		for j, o := range q.Options {
			options[j] = domain.Option{Answer: o.Answer, IsCorrect: o.IsCorrect}
		}
		questions[i] = domain.Question{Text: q.Text, Options: options}
	}

	total := len(questions)
	if r.TotalCount != nil {
		total = *r.TotalCount
	}

	return domain.Exam{
		Title:            r.Title,
		MatrixName:       r.MatrixName,
		Questions:        questions,
		TotalCount:       total,
		TimeLimitMinutes: r.TimeLimitMinutes,
	}
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}
