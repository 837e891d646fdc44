package service

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"

	"github.com/phrazzld/scry-docgen/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Entry names inside an exam bundle.
const (
	BundleExamEntry      = "exam.docx"
	BundleAnswerKeyEntry = "answer-key.xlsx"
)

// exportBundle renders the exam document and the answer-key spreadsheet
// concurrently and zips them together.
func (s *documentServiceImpl) exportBundle(ctx context.Context, exam domain.Exam) (*Document, error) {
	var docx, xlsx []byte

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		data, err := s.exporter.DOCX(exam)
		if err != nil {
			return fmt.Errorf("failed to render exam document: %w", err)
		}
		docx = data
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		data, err := s.exporter.AnswerKeyXLSX(exam)
		if err != nil {
			return fmt.Errorf("failed to render answer key: %w", err)
		}
		xlsx = data
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	archive, err := zipEntries([]zipEntry{
		{name: BundleExamEntry, data: docx},
		{name: BundleAnswerKeyEntry, data: xlsx},
	})
	if err != nil {
		return nil, err
	}

	return newDocument("exam", "zip", ContentTypeZIP, archive), nil
}

type zipEntry struct {
	name string
	data []byte
}

func zipEntries(entries []zipEntry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			return nil, fmt.Errorf("failed to create bundle entry %s: %w", e.name, err)
		}
		if _, err := w.Write(e.data); err != nil {
			return nil, fmt.Errorf("failed to write bundle entry %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize bundle: %w", err)
	}
	return buf.Bytes(), nil
}
