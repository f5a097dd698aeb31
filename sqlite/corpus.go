package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/wikicorpus"
	"github.com/google/uuid"
)

// Ensure service implements interface.
var _ wikicorpus.CorpusService = (*CorpusService)(nil)

// CorpusService implements wikicorpus.CorpusService backed by SQLite.
type CorpusService struct {
	db *DB
}

// NewCorpusService creates a new CorpusService.
func NewCorpusService(db *DB) *CorpusService {
	return &CorpusService{db: db}
}

// CreateCorpus creates a new corpus.
func (s *CorpusService) CreateCorpus(ctx context.Context, corpus *wikicorpus.Corpus) error {
	if err := corpus.Validate(); err != nil {
		return err
	}

	if corpus.ID == "" {
		corpus.ID = uuid.New().String()
	}
	if corpus.Language == "" {
		corpus.Language = "en"
	}

	now := time.Now().UTC()
	corpus.CreatedAt = now
	corpus.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO corpora (id, name, root_category, language, page_threshold, max_depth, keywords, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		corpus.ID,
		corpus.Name,
		corpus.RootCategory,
		corpus.Language,
		corpus.PageThreshold,
		corpus.MaxDepth,
		corpus.Keywords,
		corpus.CreatedAt.Format(time.RFC3339),
		corpus.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to create corpus: %w", err)
	}

	return nil
}

// FindCorpusByID retrieves a corpus by ID.
func (s *CorpusService) FindCorpusByID(ctx context.Context, id string) (*wikicorpus.Corpus, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, root_category, language, page_threshold, max_depth, keywords, created_at, updated_at
		FROM corpora
		WHERE id = ?
	`, id)

	corpus, err := scanCorpus(row)
	if err == sql.ErrNoRows {
		return nil, wikicorpus.Errorf(wikicorpus.ENOTFOUND, "corpus not found: %s", id)
	} else if err != nil {
		return nil, fmt.Errorf("failed to find corpus: %w", err)
	}

	return corpus, nil
}

// FindCorpora retrieves corpora matching the filter, ordered by creation time.
func (s *CorpusService) FindCorpora(ctx context.Context, filter wikicorpus.CorpusFilter) ([]*wikicorpus.Corpus, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT id, name, root_category, language, page_threshold, max_depth, keywords, created_at, updated_at
		FROM corpora
		WHERE 1=1
	`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY created_at")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query corpora: %w", err)
	}
	defer rows.Close()

	var corpora []*wikicorpus.Corpus
	for rows.Next() {
		corpus, err := scanCorpus(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan corpus: %w", err)
		}
		corpora = append(corpora, corpus)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate corpora: %w", err)
	}

	return corpora, nil
}

// UpdateCorpus updates an existing corpus.
func (s *CorpusService) UpdateCorpus(ctx context.Context, id string, upd wikicorpus.CorpusUpdate) (*wikicorpus.Corpus, error) {
	corpus, err := s.FindCorpusByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		corpus.Name = *upd.Name
	}
	if upd.RootCategory != nil {
		corpus.RootCategory = *upd.RootCategory
	}
	if upd.PageThreshold != nil {
		corpus.PageThreshold = *upd.PageThreshold
	}
	if upd.MaxDepth != nil {
		corpus.MaxDepth = *upd.MaxDepth
	}
	if upd.Keywords != nil {
		corpus.Keywords = *upd.Keywords
	}

	if err := corpus.Validate(); err != nil {
		return nil, err
	}

	corpus.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE corpora
		SET name = ?, root_category = ?, page_threshold = ?, max_depth = ?, keywords = ?, updated_at = ?
		WHERE id = ?
	`,
		corpus.Name,
		corpus.RootCategory,
		corpus.PageThreshold,
		corpus.MaxDepth,
		corpus.Keywords,
		corpus.UpdatedAt.Format(time.RFC3339),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update corpus: %w", err)
	}

	return corpus, nil
}

// DeleteCorpus permanently removes a corpus. Documents belonging to the
// corpus are removed by the foreign key cascade.
func (s *CorpusService) DeleteCorpus(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM corpora WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete corpus: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return wikicorpus.Errorf(wikicorpus.ENOTFOUND, "corpus not found: %s", id)
	}

	return nil
}

// scanner abstracts sql.Row and sql.Rows for scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanCorpus(row scanner) (*wikicorpus.Corpus, error) {
	var corpus wikicorpus.Corpus
	var createdAt, updatedAt string

	err := row.Scan(
		&corpus.ID,
		&corpus.Name,
		&corpus.RootCategory,
		&corpus.Language,
		&corpus.PageThreshold,
		&corpus.MaxDepth,
		&corpus.Keywords,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if corpus.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if corpus.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &corpus, nil
}
