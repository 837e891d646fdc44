package exam

import (
	"fmt"
	"log/slog"
	"strings"

	goword "github.com/VantageDataChat/GoWord"
	"github.com/VantageDataChat/GoWord/style"
	"github.com/xuri/excelize/v2"

	"github.com/phrazzld/scry-docgen/internal/domain"
)

const (
	documentCreator = "scry-docgen"
	keySheetName    = "Đáp án"

	// Table widths are in twentieths of a point.
	keyCellWidth = 1800
)

// Exporter writes exam layouts as Word documents and answer-key spreadsheets.
type Exporter struct {
	logger *slog.Logger
}

// NewExporter creates an Exporter. A nil logger falls back to slog.Default.
func NewExporter(logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{logger: logger.With("component", "exam_exporter")}
}

// DOCX renders the exam followed by its answer key.
func (x *Exporter) DOCX(e domain.Exam) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	layout := BuildLayout(e)

	doc := goword.New()
	doc.Properties.Title = e.Title
	doc.Properties.Creator = documentCreator
	doc.Properties.Description = "Ma trận: " + e.MatrixName

	sec := doc.AddSection()

	// Header block
	for i, line := range layout.Header {
		font := &style.FontStyle{Size: 12}
		if i == 0 {
			font = &style.FontStyle{Bold: true, Size: 16}
		}
		sec.AddText(line, font, &style.ParagraphStyle{Alignment: style.AlignCenter})
	}
	sec.AddTextBreak(1)

	// Questions
	for _, q := range layout.Questions {
		sec.AddText(q.Stem,
			&style.FontStyle{Bold: true, Size: 12},
			&style.ParagraphStyle{SpaceAfter: 60})
		for _, opt := range q.Options {
			sec.AddText(opt,
				&style.FontStyle{Size: 12},
				&style.ParagraphStyle{Indent: 360})
		}
		sec.AddTextBreak(1)
	}

	// Answer key, KeyRowSize questions per table row
	if len(layout.AnswerKey) > 0 {
		sec.AddText("ĐÁP ÁN",
			&style.FontStyle{Bold: true, Size: 14},
			&style.ParagraphStyle{Alignment: style.AlignCenter, SpaceAfter: 120})

		ts := &style.TableStyle{Width: keyCellWidth * KeyRowSize, Alignment: "center"}
		ts.SetAllBorders("single", 4, "D9D9D9")
		tbl := sec.AddTable(ts)
		tbl.Grid = make([]int, KeyRowSize)
		for i := range tbl.Grid {
			tbl.Grid[i] = keyCellWidth
		}

		for _, entries := range layout.AnswerKey {
			row := tbl.AddRow(0, nil)
			for i := 0; i < KeyRowSize; i++ {
				text := ""
				if i < len(entries) {
					text = entries[i].String()
				}
				row.AddCell(keyCellWidth, nil).AddText(text, &style.FontStyle{Size: 11}, nil)
			}
		}
	}

	out, err := doc.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to write Word file: %w", err)
	}

	x.logger.Info("exam document rendered",
		"questions", len(layout.Questions),
		"bytes", len(out))
	return out, nil
}

// AnswerKeyXLSX renders the answer key as a spreadsheet with one row per
// question.
func (x *Exporter) AnswerKeyXLSX(e domain.Exam) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	layout := BuildLayout(e)

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(keySheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    cellBorders("FFFFFF"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	dataStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    cellBorders("D9D9D9"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create data style: %w", err)
	}

	headers := []string{"Câu", "Đáp án"}
	for i, title := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(keySheetName, cell, title); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		if err := f.SetCellStyle(keySheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to style header: %w", err)
		}
	}
	if err := f.SetColWidth(keySheetName, "A", "B", 12); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	row := 2
	for _, entries := range layout.AnswerKey {
		for _, entry := range entries {
			numberCell, _ := excelize.CoordinatesToCellName(1, row)
			labelCell, _ := excelize.CoordinatesToCellName(2, row)
			if err := f.SetCellValue(keySheetName, numberCell, entry.Number); err != nil {
				return nil, fmt.Errorf("failed to write question number: %w", err)
			}
			if err := f.SetCellValue(keySheetName, labelCell, entry.Label); err != nil {
				return nil, fmt.Errorf("failed to write answer label: %w", err)
			}
			if err := f.SetCellStyle(keySheetName, numberCell, labelCell, dataStyle); err != nil {
				return nil, fmt.Errorf("failed to style answer row: %w", err)
			}
			row++
		}
	}

	if err := f.SetPanes(keySheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze header row: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Creator:     documentCreator,
		Title:       e.Title,
		Description: strings.Join(layout.Header, " | "),
		Language:    "vi-VN",
	}); err != nil {
		return nil, fmt.Errorf("failed to set document properties: %w", err)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	x.logger.Info("answer key rendered",
		"questions", row-2,
		"bytes", buffer.Len())
	return buffer.Bytes(), nil
}

func cellBorders(color string) []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: color, Style: 1},
		{Type: "top", Color: color, Style: 1},
		{Type: "bottom", Color: color, Style: 1},
		{Type: "right", Color: color, Style: 1},
	}
}
