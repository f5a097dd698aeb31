package mock

import (
	"context"

	"github.com/fwojciec/wikicorpus"
)

var _ wikicorpus.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of wikicorpus.DocumentService.
type DocumentService struct {
	CreateDocumentFn          func(ctx context.Context, doc *wikicorpus.Document) error
	FindDocumentByIDFn        func(ctx context.Context, id string) (*wikicorpus.Document, error)
	FindDocumentsFn           func(ctx context.Context, filter wikicorpus.DocumentFilter) ([]*wikicorpus.Document, error)
	DeleteDocumentFn          func(ctx context.Context, id string) error
	DeleteDocumentsByCorpusFn func(ctx context.Context, corpusID string) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *wikicorpus.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*wikicorpus.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter wikicorpus.DocumentFilter) ([]*wikicorpus.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}

func (s *DocumentService) DeleteDocumentsByCorpus(ctx context.Context, corpusID string) error {
	return s.DeleteDocumentsByCorpusFn(ctx, corpusID)
}

var _ wikicorpus.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of wikicorpus.DocumentWriter.
type DocumentWriter struct {
	CreateDocumentFn func(ctx context.Context, doc *wikicorpus.Document) error
}

func (w *DocumentWriter) CreateDocument(ctx context.Context, doc *wikicorpus.Document) error {
	return w.CreateDocumentFn(ctx, doc)
}
