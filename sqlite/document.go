package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/wikicorpus"
	"github.com/google/uuid"
)

// Ensure service implements interfaces.
var (
	_ wikicorpus.DocumentService = (*DocumentService)(nil)
	_ wikicorpus.DocumentWriter  = (*DocumentService)(nil)
)

// DocumentService implements wikicorpus.DocumentService backed by SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// CreateDocument creates a new document. The content hash is computed from
// the document content if not already set.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *wikicorpus.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.ContentHash == "" {
		doc.ContentHash = hashContent(doc.Content)
	}
	if doc.FetchedAt.IsZero() {
		doc.FetchedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, corpus_id, page_id, title, author, content, content_hash, position, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		doc.ID,
		doc.CorpusID,
		doc.PageID,
		doc.Title,
		doc.Author,
		doc.Content,
		doc.ContentHash,
		doc.Position,
		doc.FetchedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*wikicorpus.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, corpus_id, page_id, title, author, content, content_hash, position, fetched_at
		FROM documents
		WHERE id = ?
	`, id)

	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, wikicorpus.Errorf(wikicorpus.ENOTFOUND, "document not found: %s", id)
	} else if err != nil {
		return nil, fmt.Errorf("failed to find document: %w", err)
	}

	return doc, nil
}

// FindDocuments retrieves documents matching the filter.
func (s *DocumentService) FindDocuments(ctx context.Context, filter wikicorpus.DocumentFilter) ([]*wikicorpus.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT id, corpus_id, page_id, title, author, content, content_hash, position, fetched_at
		FROM documents
		WHERE 1=1
	`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.CorpusID != nil {
		query.WriteString(" AND corpus_id = ?")
		args = append(args, *filter.CorpusID)
	}
	if filter.PageID != nil {
		query.WriteString(" AND page_id = ?")
		args = append(args, *filter.PageID)
	}
	if filter.Title != nil {
		query.WriteString(" AND title = ?")
		args = append(args, *filter.Title)
	}

	switch filter.SortBy {
	case wikicorpus.SortByFetchedAt:
		query.WriteString(" ORDER BY fetched_at")
	default:
		query.WriteString(" ORDER BY position")
	}
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []*wikicorpus.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	return docs, nil
}

// DeleteDocument permanently removes a document.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return wikicorpus.Errorf(wikicorpus.ENOTFOUND, "document not found: %s", id)
	}

	return nil
}

// DeleteDocumentsByCorpus removes all documents for a corpus. Deleting
// documents of an unknown corpus is not an error.
func (s *DocumentService) DeleteDocumentsByCorpus(ctx context.Context, corpusID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE corpus_id = ?`, corpusID)
	if err != nil {
		return fmt.Errorf("failed to delete documents: %w", err)
	}
	return nil
}

// hashContent returns an xxhash digest of the content as a hex string.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

func scanDocument(row scanner) (*wikicorpus.Document, error) {
	var doc wikicorpus.Document
	var fetchedAt string

	err := row.Scan(
		&doc.ID,
		&doc.CorpusID,
		&doc.PageID,
		&doc.Title,
		&doc.Author,
		&doc.Content,
		&doc.ContentHash,
		&doc.Position,
		&fetchedAt,
	)
	if err != nil {
		return nil, err
	}

	if doc.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}

	return &doc, nil
}
