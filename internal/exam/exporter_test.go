package exam

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/phrazzld/scry-docgen/internal/domain"
	"github.com/phrazzld/scry-docgen/internal/testutils"
)

func readZipPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err, "Output should be a zip package")
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer func() { _ = rc.Close() }()
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(body)
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func TestExporter_DOCX(t *testing.T) {
	t.Parallel()

	out, err := NewExporter(nil).DOCX(testutils.CreateTestExam(6))
	require.NoError(t, err)
	require.NotEmpty(t, out)

	body := readZipPart(t, out, "word/document.xml")
	assert.Contains(t, body, "Kiểm tra 45 phút")
	assert.Contains(t, body, "Thời gian làm bài: 45 phút")
	assert.Contains(t, body, "Câu 1: Cân bằng phương trình số 1: H₂ + O₂ → H₂O")
	assert.Contains(t, body, "B. b) đáp án 2")
	assert.Contains(t, body, "ĐÁP ÁN")
	assert.Contains(t, body, "2. B")
	assert.Contains(t, body, "6. B")
}

func TestExporter_DOCX_RejectsInvalidExam(t *testing.T) {
	t.Parallel()

	out, err := NewExporter(nil).DOCX(domain.Exam{})
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestExporter_AnswerKeyXLSX(t *testing.T) {
	t.Parallel()

	e := testutils.CreateTestExam(3)
	e.Questions = append(e.Questions, domain.Question{
		Text:    "Câu không có đáp án đúng",
		Options: []domain.Option{{Answer: "x"}, {Answer: "y"}},
	})

	out, err := NewExporter(nil).AnswerKeyXLSX(e)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{keySheetName}, f.GetSheetList())

	rows, err := f.GetRows(keySheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Câu", "Đáp án"},
		{"1", "A"},
		{"2", "B"},
		{"3", "C"},
		{"4", "?"},
	}, rows)
}

func TestExporter_AnswerKeyXLSX_RejectsInvalidExam(t *testing.T) {
	t.Parallel()

	limit := -5
	out, err := NewExporter(nil).AnswerKeyXLSX(domain.Exam{Title: "x", TimeLimitMinutes: &limit})
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}
