// Package exam renders multiple-choice exams and their answer keys.
package exam

import (
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/phrazzld/scry-docgen/internal/domain"
	"github.com/phrazzld/scry-docgen/internal/notation"
)

const (
	// MaxOptions is the number of options printed per question.
	MaxOptions = 4
	// KeyRowSize is the number of questions per answer-key row.
	KeyRowSize = 5
	// UnknownLabel marks a question without a printable correct option.
	UnknownLabel = "?"
)

var optionLabels = [MaxOptions]string{"A", "B", "C", "D"}

// Layout is the format-neutral content of an exam document. The DOCX and
// XLSX writers only decide how it looks.
type Layout struct {
	Header    []string
	Questions []QuestionBlock
	AnswerKey [][]KeyEntry
}

// QuestionBlock is one numbered question with its labeled options.
type QuestionBlock struct {
	Number  int
	Stem    string
	Options []string
}

// KeyEntry is the correct label for one question.
type KeyEntry struct {
	Number int
	Label  string
}

// String formats an entry as "{n}. {label}".
func (k KeyEntry) String() string {
	return strconv.Itoa(k.Number) + ". " + k.Label
}

// BuildLayout lays out e. Options are ordered by answer text and only the
// first MaxOptions are kept, in both the questions and the answer key.
func BuildLayout(e domain.Exam) Layout {
	l := Layout{Header: header(e)}

	var row []KeyEntry
	for i, q := range e.Questions {
		n := i + 1
		options := SortedOptions(q.Options)

		block := QuestionBlock{
			Number:  n,
			Stem:    fmt.Sprintf("Câu %d: %s", n, notation.Beautify(q.Text)),
			Options: make([]string, len(options)),
		}
		for j, opt := range options {
			block.Options[j] = optionLabels[j] + ". " + notation.Beautify(opt.Answer)
		}
		l.Questions = append(l.Questions, block)

		row = append(row, KeyEntry{Number: n, Label: answerLabel(options)})
		if len(row) == KeyRowSize {
			l.AnswerKey = append(l.AnswerKey, row)
			row = nil
		}
	}
	if len(row) > 0 {
		l.AnswerKey = append(l.AnswerKey, row)
	}
	return l
}

func header(e domain.Exam) []string {
	lines := []string{
		e.Title,
		"Ma trận: " + e.MatrixName,
		fmt.Sprintf("Tổng số câu: %d", e.TotalCount),
	}
	if e.TimeLimitMinutes != nil {
		lines = append(lines, fmt.Sprintf("Thời gian làm bài: %d phút", *e.TimeLimitMinutes))
	}
	return lines
}

// SortedOptions returns at most MaxOptions options ordered by answer text
// under Vietnamese collation, so case and diacritics do not push an answer
// past every plain ASCII one. Options with equal text keep their original
// order.
func SortedOptions(options []domain.Option) []domain.Option {
	sorted := make([]domain.Option, len(options))
	copy(sorted, options)
	// A Collator keeps per-call buffers and cannot be shared between goroutines.
	c := collate.New(language.Vietnamese)
	sort.SliceStable(sorted, func(i, j int) bool {
		return c.CompareString(sorted[i].Answer, sorted[j].Answer) < 0
	})
	if len(sorted) > MaxOptions {
		sorted = sorted[:MaxOptions]
	}
	return sorted
}

// AnswerLabel returns the label of q's correct option as printed, or
// UnknownLabel when no printed option is marked correct.
func AnswerLabel(q domain.Question) string {
	return answerLabel(SortedOptions(q.Options))
}

func answerLabel(printed []domain.Option) string {
	for i, opt := range printed {
		if opt.IsCorrect {
			return optionLabels[i]
		}
	}
	return UnknownLabel
}
