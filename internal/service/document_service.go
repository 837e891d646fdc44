package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-docgen/internal/domain"
	"github.com/phrazzld/scry-docgen/internal/pptx"
)

// Content types of the generated documents.
const (
	ContentTypePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeZIP  = "application/zip"
)

// Format selects what an exam export produces.
type Format string

const (
	// FormatDOCX is the exam document with its answer-key table.
	FormatDOCX Format = "docx"
	// FormatXLSX is the answer-key spreadsheet alone.
	FormatXLSX Format = "xlsx"
	// FormatZIP bundles the exam document and the answer-key spreadsheet.
	FormatZIP Format = "zip"
)

// ParseFormat validates an export format name. An empty name means docx.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatDOCX, nil
	case FormatDOCX, FormatXLSX, FormatZIP:
		return f, nil
	default:
		return "", unsupportedFormat(s)
	}
}

func unsupportedFormat(name string) error {
	return domain.NewValidationError(
		"format", fmt.Sprintf("must be one of docx, xlsx, zip; got %q", name), ErrUnsupportedFormat)
}

// PresentationAssembler renders a content tree into a template package.
type PresentationAssembler interface {
	Assemble(ctx context.Context, tree domain.ContentTree, template []byte) ([]byte, error)
}

// ExamExporter renders exam documents.
type ExamExporter interface {
	DOCX(e domain.Exam) ([]byte, error)
	AnswerKeyXLSX(e domain.Exam) ([]byte, error)
}

// Document is a generated file ready to be handed to the caller.
type Document struct {
	ID          uuid.UUID
	Filename    string
	ContentType string
	Data        []byte
}

// Limits bounds the size of a single request.
type Limits struct {
	MaxContentSlides int
	MaxQuestions     int
}

// DocumentService provides the document generation operations.
type DocumentService interface {
	// BuildPresentation assembles a deck from tree. A nil or empty template
	// selects the default template.
	BuildPresentation(ctx context.Context, tree domain.ContentTree, template []byte) (*Document, error)

	// ExportExam renders exam in the requested format.
	ExportExam(ctx context.Context, exam domain.Exam, format Format) (*Document, error)
}

// documentServiceImpl implements the DocumentService interface
type documentServiceImpl struct {
	assembler       PresentationAssembler
	exporter        ExamExporter
	defaultTemplate []byte
	limits          Limits
	logger          *slog.Logger
}

// NewDocumentService creates a new DocumentService.
// It returns an error if a required dependency is nil or if defaultTemplate
// is set but cannot be opened as a presentation.
func NewDocumentService(
	assembler PresentationAssembler,
	exporter ExamExporter,
	defaultTemplate []byte,
	limits Limits,
	logger *slog.Logger,
) (DocumentService, error) {
	if assembler == nil {
		return nil, &DocumentServiceError{
			Operation: "create_service",
			Message:   "assembler cannot be nil",
		}
	}
	if exporter == nil {
		return nil, &DocumentServiceError{
			Operation: "create_service",
			Message:   "exporter cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "document_service")

	if len(defaultTemplate) > 0 {
		if err := describeTemplate(logger, defaultTemplate); err != nil {
			return nil, err
		}
	}

	return &documentServiceImpl{
		assembler:       assembler,
		exporter:        exporter,
		defaultTemplate: defaultTemplate,
		limits:          limits,
		logger:          logger,
	}, nil
}

// describeTemplate logs the slide layout of the default template so a
// misconfigured deck shows up at startup.
func describeTemplate(logger *slog.Logger, template []byte) error {
	pkg, err := pptx.Open(template)
	if err != nil {
		return domain.NewConfigurationError("default template is unreadable", err)
	}

	slides := pkg.Slides()
	logger.Info("default template loaded", "slides", len(slides))

	for i, s := range slides {
		lines, err := pkg.SlideText(s)
		if err != nil {
			return domain.NewConfigurationError(fmt.Sprintf("default template slide %d is unreadable", i+1), err)
		}
		logger.Debug("template slide",
			"index", i+1,
			"part", s.PartName,
			"text", strings.Join(lines, " | "))
	}
	return nil
}

// BuildPresentation assembles a presentation deck.
func (s *documentServiceImpl) BuildPresentation(
	ctx context.Context,
	tree domain.ContentTree,
	template []byte,
) (*Document, error) {
	// 1. Enforce limits before touching the template
	if s.limits.MaxContentSlides > 0 && len(tree.ContentSlides) > s.limits.MaxContentSlides {
		return nil, domain.NewValidationError(
			"content_slides",
			fmt.Sprintf("has %d slides, at most %d are allowed", len(tree.ContentSlides), s.limits.MaxContentSlides),
			ErrLimitExceeded,
		)
	}

	// 2. Resolve the template
	source := "upload"
	if len(template) == 0 {
		if len(s.defaultTemplate) == 0 {
			return nil, domain.NewConfigurationError("template is required", ErrNoTemplate)
		}
		template = s.defaultTemplate
		source = "default"
	}

	// 3. Assemble
	data, err := s.assembler.Assemble(ctx, tree, template)
	if err != nil {
		s.logger.Error("failed to assemble presentation",
			"error", err,
			"template_source", source)
		return nil, NewDocumentServiceError("build_presentation", "failed to assemble presentation", err)
	}

	doc := newDocument("presentation", "pptx", ContentTypePPTX, data)
	s.logger.Info("presentation built",
		"document_id", doc.ID,
		"template_source", source,
		"content_slides", len(tree.ContentSlides),
		"bytes", len(data))

	return doc, nil
}

// ExportExam renders an exam document, its answer key, or both.
func (s *documentServiceImpl) ExportExam(
	ctx context.Context,
	exam domain.Exam,
	format Format,
) (*Document, error) {
	// 1. Enforce limits
	if s.limits.MaxQuestions > 0 && len(exam.Questions) > s.limits.MaxQuestions {
		return nil, domain.NewValidationError(
			"questions",
			fmt.Sprintf("has %d questions, at most %d are allowed", len(exam.Questions), s.limits.MaxQuestions),
			ErrLimitExceeded,
		)
	}

	// 2. Render in the requested format
	var (
		doc *Document
		err error
	)
	switch format {
	case FormatDOCX:
		var data []byte
		if data, err = s.exporter.DOCX(exam); err == nil {
			doc = newDocument("exam", "docx", ContentTypeDOCX, data)
		}
	case FormatXLSX:
		var data []byte
		if data, err = s.exporter.AnswerKeyXLSX(exam); err == nil {
			doc = newDocument("answer-key", "xlsx", ContentTypeXLSX, data)
		}
	case FormatZIP:
		doc, err = s.exportBundle(ctx, exam)
	default:
		err = unsupportedFormat(string(format))
	}
	if err != nil {
		s.logger.Error("failed to export exam",
			"error", err,
			"format", format)
		return nil, NewDocumentServiceError("export_exam", "failed to export exam", err)
	}

	s.logger.Info("exam exported",
		"document_id", doc.ID,
		"format", format,
		"questions", len(exam.Questions),
		"bytes", len(doc.Data))

	return doc, nil
}

func newDocument(kind, ext, contentType string, data []byte) *Document {
	id := uuid.New()
	return &Document{
		ID:          id,
		Filename:    fmt.Sprintf("%s-%s.%s", kind, id, ext),
		ContentType: contentType,
		Data:        data,
	}
}
