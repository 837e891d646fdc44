package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/scry-docgen/internal/domain"
	"github.com/phrazzld/scry-docgen/internal/presentation"
	"github.com/phrazzld/scry-docgen/internal/service"
	"github.com/phrazzld/scry-docgen/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDocumentService mocks the service.DocumentService interface
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) BuildPresentation(
	ctx context.Context,
	tree domain.ContentTree,
	template []byte,
) (*service.Document, error) {
	args := m.Called(ctx, tree, template)
	doc, _ := args.Get(0).(*service.Document)
	return doc, args.Error(1)
}

func (m *MockDocumentService) ExportExam(
	ctx context.Context,
	exam domain.Exam,
	format service.Format,
) (*service.Document, error) {
	args := m.Called(ctx, exam, format)
	doc, _ := args.Get(0).(*service.Document)
	return doc, args.Error(1)
}

const testUploadLimit = 1 << 20

func newTestRouter(svc service.DocumentService, limit int64) http.Handler {
	h := NewDocumentHandler(svc, limit, nil)
	r := chi.NewRouter()
	r.Get("/health", h.Health)
	r.Post("/api/presentations", h.CreatePresentation)
	r.Post("/api/exams", h.ExportExam)
	return r
}

func multipartRequest(t *testing.T, fields map[string]string, files map[string][]byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, mw.WriteField(name, value))
	}
	for name, data := range files {
		fw, err := mw.CreateFormFile(name, name+".bin")
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/presentations", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func testDocument(filename, contentType string, data []byte) *service.Document {
	return &service.Document{
		ID:          uuid.New(),
		Filename:    filename,
		ContentType: contentType,
		Data:        data,
	}
}

func sameTitle(title string) interface{} {
	return mock.MatchedBy(func(tree domain.ContentTree) bool {
		return tree.FirstSlide.Title == title
	})
}

func TestCreatePresentation(t *testing.T) {
	tree := testutils.MustCreateContentTree(t)
	content, err := json.Marshal(tree)
	require.NoError(t, err)

	t.Run("uploaded template", func(t *testing.T) {
		svc := &MockDocumentService{}
		template := []byte("template bytes")
		doc := testDocument("presentation-1.pptx", service.ContentTypePPTX, []byte("deck"))
		svc.On("BuildPresentation", mock.Anything, sameTitle(tree.FirstSlide.Title), template).
			Return(doc, nil).Once()

		rr := httptest.NewRecorder()
		req := multipartRequest(t,
			map[string]string{FieldContent: string(content)},
			map[string][]byte{FieldTemplate: template})
		newTestRouter(svc, testUploadLimit).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "deck", rr.Body.String())
		assert.Equal(t, service.ContentTypePPTX, rr.Header().Get("Content-Type"))
		assert.Equal(t, doc.ID.String(), rr.Header().Get(DocumentIDHeader))
		assert.Contains(t, rr.Header().Get("Content-Disposition"), "presentation-1.pptx")
		svc.AssertExpectations(t)
	})

	t.Run("content as file part and no template", func(t *testing.T) {
		svc := &MockDocumentService{}
		noTemplate := mock.MatchedBy(func(b []byte) bool { return len(b) == 0 })
		svc.On("BuildPresentation", mock.Anything, sameTitle(tree.FirstSlide.Title), noTemplate).
			Return(testDocument("p.pptx", service.ContentTypePPTX, []byte("deck")), nil).Once()

		rr := httptest.NewRecorder()
		req := multipartRequest(t, nil, map[string][]byte{FieldContent: content})
		newTestRouter(svc, testUploadLimit).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		svc.AssertExpectations(t)
	})

	t.Run("missing content", func(t *testing.T) {
		svc := &MockDocumentService{}

		rr := httptest.NewRecorder()
		req := multipartRequest(t, nil, map[string][]byte{FieldTemplate: []byte("t")})
		newTestRouter(svc, testUploadLimit).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid content: is required", decodeError(t, rr))
		svc.AssertNotCalled(t, "BuildPresentation", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed content", func(t *testing.T) {
		svc := &MockDocumentService{}

		rr := httptest.NewRecorder()
		req := multipartRequest(t, map[string]string{FieldContent: `{"first_slide": `}, nil)
		newTestRouter(svc, testUploadLimit).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid JSON document", decodeError(t, rr))
	})

	t.Run("not multipart", func(t *testing.T) {
		svc := &MockDocumentService{}

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/presentations", bytes.NewReader(content))
		req.Header.Set("Content-Type", "application/json")
		newTestRouter(svc, testUploadLimit).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Validation failed: body must be multipart/form-data", decodeError(t, rr))
	})

	t.Run("body over the upload limit", func(t *testing.T) {
		svc := &MockDocumentService{}

		rr := httptest.NewRecorder()
		req := multipartRequest(t,
			map[string]string{FieldContent: string(content)},
			map[string][]byte{FieldTemplate: bytes.Repeat([]byte("x"), 4096)})
		newTestRouter(svc, 256).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
		assert.Equal(t, "Request body too large", decodeError(t, rr))
	})

	t.Run("template with too few slides", func(t *testing.T) {
		svc := &MockDocumentService{}
		shapeErr := domain.NewConfigurationError("template has 3 slides", presentation.ErrTemplateShape)
		svc.On("BuildPresentation", mock.Anything, mock.Anything, mock.Anything).Return(nil, shapeErr).Once()

		rr := httptest.NewRecorder()
		req := multipartRequest(t,
			map[string]string{FieldContent: string(content)},
			map[string][]byte{FieldTemplate: []byte("t")})
		newTestRouter(svc, testUploadLimit).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Equal(t, "Template must contain at least 4 slides", decodeError(t, rr))
	})

	t.Run("bullet level violation", func(t *testing.T) {
		svc := &MockDocumentService{}
		levelErr := domain.NewValidationError(
			"content_slides[0].bullet_points[0].children[0].level",
			"is 1 but its parent is at level 1",
			domain.ErrLevelOrder)
		svc.On("BuildPresentation", mock.Anything, mock.Anything, mock.Anything).Return(nil, levelErr).Once()

		rr := httptest.NewRecorder()
		req := multipartRequest(t, map[string]string{FieldContent: string(content)}, nil)
		newTestRouter(svc, testUploadLimit).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeError(t, rr), "children[0].level")
	})
}

func examBody(t *testing.T, req ExamRequest) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func TestExportExam(t *testing.T) {
	limit := 45
	examReq := ExamRequest{
		Title:      "Kiểm tra 45 phút",
		MatrixName: "Ma trận HK1",
		Questions: []QuestionRequest{
			{
				Text: "Chất nào là muối?",
				Options: []OptionRequest{
					{Answer: "NaOH"},
					{Answer: "NaCl", IsCorrect: true},
				},
			},
		},
		TimeLimitMinutes: &limit,
	}

	t.Run("zip format", func(t *testing.T) {
		svc := &MockDocumentService{}
		expected := examReq.ToDomain()
		svc.On("ExportExam", mock.Anything, expected, service.FormatZIP).
			Return(testDocument("exam-1.zip", service.ContentTypeZIP, []byte("zip")), nil).Once()

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/exams?format=zip", examBody(t, examReq))
		newTestRouter(svc, testUploadLimit).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, service.ContentTypeZIP, rr.Header().Get("Content-Type"))
		assert.Equal(t, "zip", rr.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("default format is docx", func(t *testing.T) {
		svc := &MockDocumentService{}
		svc.On("ExportExam", mock.Anything, mock.Anything, service.FormatDOCX).
			Return(testDocument("exam-1.docx", service.ContentTypeDOCX, []byte("docx")), nil).Once()

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/exams", examBody(t, examReq))
		newTestRouter(svc, testUploadLimit).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		svc.AssertExpectations(t)
	})

	t.Run("unknown format", func(t *testing.T) {
		svc := &MockDocumentService{}

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/exams?format=pdf", examBody(t, examReq))
		newTestRouter(svc, testUploadLimit).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeError(t, rr), "Invalid format")
	})

	t.Run("missing title", func(t *testing.T) {
		svc := &MockDocumentService{}
		invalid := examReq
		invalid.Title = ""

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/exams", examBody(t, invalid))
		newTestRouter(svc, testUploadLimit).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid Title: required field", decodeError(t, rr))
		svc.AssertNotCalled(t, "ExportExam", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty body", func(t *testing.T) {
		svc := &MockDocumentService{}

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/exams", strings.NewReader(""))
		newTestRouter(svc, testUploadLimit).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Request body is empty", decodeError(t, rr))
	})

	t.Run("body over the upload limit", func(t *testing.T) {
		svc := &MockDocumentService{}
		big := examReq
		big.MatrixName = strings.Repeat("x", 1024)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/exams", examBody(t, big))
		newTestRouter(svc, 128).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	})

	t.Run("unexpected service error", func(t *testing.T) {
		svc := &MockDocumentService{}
		svc.On("ExportExam", mock.Anything, mock.Anything, service.FormatXLSX).
			Return(nil, &service.DocumentServiceError{Operation: "export_exam", Message: "boom"}).Once()

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/exams?format=xlsx", examBody(t, examReq))
		newTestRouter(svc, testUploadLimit).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "Failed to export exam", decodeError(t, rr))
	})
}

func TestExamRequestToDomain(t *testing.T) {
	req := ExamRequest{
		Title:     "Kiểm tra",
		Questions: []QuestionRequest{{Text: "a"}, {Text: "b"}},
	}
	assert.Equal(t, 2, req.ToDomain().TotalCount, "omitted total count defaults to the question count")

	total := 40
	req.TotalCount = &total
	exam := req.ToDomain()
	assert.Equal(t, 40, exam.TotalCount)
	assert.Nil(t, exam.TimeLimitMinutes)
	assert.Len(t, exam.Questions, 2)
}

func TestHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(&MockDocumentService{}, testUploadLimit).
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}
