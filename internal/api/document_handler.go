package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-docgen/internal/api/shared"
	"github.com/phrazzld/scry-docgen/internal/domain"
	"github.com/phrazzld/scry-docgen/internal/platform/logger"
	"github.com/phrazzld/scry-docgen/internal/service"
)

// Multipart field names of the presentation endpoint.
const (
	FieldContent  = "content"
	FieldTemplate = "template"
)

// DocumentIDHeader carries the id of the generated document.
const DocumentIDHeader = "X-Document-ID"

// DocumentHandler handles the document generation endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
	maxUploadBytes  int64
	logger          *slog.Logger
}

// NewDocumentHandler creates a new DocumentHandler.
// maxUploadBytes bounds every request body.
func NewDocumentHandler(
	documentService service.DocumentService,
	maxUploadBytes int64,
	logger *slog.Logger,
) *DocumentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentHandler{
		documentService: documentService,
		maxUploadBytes:  maxUploadBytes,
		logger:          logger.With("component", "document_handler"),
	}
}

// CreatePresentation handles POST /api/presentations requests.
// The body is multipart/form-data with a "content" field holding the content
// tree JSON and an optional "template" file.
func (h *DocumentHandler) CreatePresentation(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	// 1. Parse the multipart body within the upload limit
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		if isTooLarge(err) {
			HandleAPIError(w, r, fmt.Errorf("%w: %w", ErrRequestTooLarge, err), "")
			return
		}
		HandleValidationError(w, r, domain.NewValidationError("", "body must be multipart/form-data", nil))
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			log.Warn("failed to remove multipart temp files", "error", err)
		}
	}()

	// 2. Decode the content tree
	content, err := formPart(r, FieldContent)
	if err != nil {
		HandleValidationError(w, r, err)
		return
	}
	if content == nil {
		HandleValidationError(w, r, domain.NewValidationError(FieldContent, "is required", domain.ErrEmptyContent))
		return
	}
	var tree domain.ContentTree
	if err := shared.DecodeJSONString(string(content), &tree); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	// 3. Read the optional template upload
	template, err := formFile(r, FieldTemplate)
	if err != nil {
		HandleValidationError(w, r, err)
		return
	}

	// 4. Build the deck
	doc, err := h.documentService.BuildPresentation(r.Context(), tree, template)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build presentation")
		return
	}

	log.Debug("sending presentation", "document_id", doc.ID, "bytes", len(doc.Data))
	w.Header().Set(DocumentIDHeader, doc.ID.String())
	shared.RespondWithFile(w, r, doc.Filename, doc.ContentType, doc.Data)
}

// ExportExam handles POST /api/exams requests.
// The format query parameter selects docx (default), xlsx or zip.
func (h *DocumentHandler) ExportExam(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	// 1. Resolve the output format
	format, err := service.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		HandleValidationError(w, r, err)
		return
	}

	// 2. Decode and validate the request body
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	var req ExamRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		if isTooLarge(err) {
			HandleAPIError(w, r, fmt.Errorf("%w: %w", ErrRequestTooLarge, err), "")
			return
		}
		HandleValidationError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	// 3. Export
	doc, err := h.documentService.ExportExam(r.Context(), req.ToDomain(), format)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to export exam")
		return
	}

	log.Debug("sending exam export", "document_id", doc.ID, "format", format, "bytes", len(doc.Data))
	w.Header().Set(DocumentIDHeader, doc.ID.String())
	shared.RespondWithFile(w, r, doc.Filename, doc.ContentType, doc.Data)
}

// Health handles GET /health requests.
func (h *DocumentHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}

// formPart returns a multipart field given either as a form value or as a
// file part, or nil when it is absent.
func formPart(r *http.Request, name string) ([]byte, error) {
	if values, ok := r.MultipartForm.Value[name]; ok && len(values) > 0 {
		return []byte(values[0]), nil
	}
	return formFile(r, name)
}

// formFile reads an uploaded file, or returns nil when it is absent.
func formFile(r *http.Request, name string) ([]byte, error) {
	file, _, err := r.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewValidationError(name, "could not be read", err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, domain.NewValidationError(name, "could not be read", err)
	}
	return data, nil
}

func isTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr)
}
