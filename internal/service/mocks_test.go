package service

import (
	"context"

	"github.com/phrazzld/scry-docgen/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockAssembler mocks the PresentationAssembler interface
type MockAssembler struct {
	mock.Mock
}

func (m *MockAssembler) Assemble(ctx context.Context, tree domain.ContentTree, template []byte) ([]byte, error) {
	args := m.Called(ctx, tree, template)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

// MockExporter mocks the ExamExporter interface
type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) DOCX(e domain.Exam) ([]byte, error) {
	args := m.Called(e)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockExporter) AnswerKeyXLSX(e domain.Exam) ([]byte, error) {
	args := m.Called(e)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}
