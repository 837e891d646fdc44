package domain

// Question is a multiple-choice exam question as handed over by the question bank.
type Question struct {
	Text    string   `json:"text"`
	Options []Option `json:"options"`
}

// Option is one answer choice of a Question.
type Option struct {
	Answer    string `json:"answer"`
	IsCorrect bool   `json:"is_correct"`
}

// Exam describes one exam export: a header plus the ordered questions.
// TimeLimitMinutes is optional; nil means no time limit is printed.
type Exam struct {
	Title            string     `json:"title"`
	MatrixName       string     `json:"matrix_name"`
	Questions        []Question `json:"questions"`
	TotalCount       int        `json:"total_count"`
	TimeLimitMinutes *int       `json:"time_limit_minutes,omitempty"`
}

// Validate checks the fields the exporter cannot do without.
func (e Exam) Validate() error {
	if isBlank(e.Title) {
		return NewValidationError("title", "is required", ErrEmptyContent)
	}
	if e.TotalCount < 0 {
		return NewValidationError("total_count", "must not be negative", nil)
	}
	if e.TimeLimitMinutes != nil && *e.TimeLimitMinutes <= 0 {
		return NewValidationError("time_limit_minutes", "must be positive", nil)
	}
	return nil
}
