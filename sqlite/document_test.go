package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/wikicorpus"
	"github.com/fwojciec/wikicorpus/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustCreateCorpus creates a corpus for documents to reference.
func mustCreateCorpus(t *testing.T, db *sqlite.DB) *wikicorpus.Corpus {
	t.Helper()

	corpus := &wikicorpus.Corpus{Name: "norse", RootCategory: "Category:Norse mythology"}
	require.NoError(t, sqlite.NewCorpusService(db).CreateCorpus(context.Background(), corpus))
	return corpus
}

func TestDocumentService_CreateDocument(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID, hash, and timestamp", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		corpus := mustCreateCorpus(t, db)
		s := sqlite.NewDocumentService(db)

		doc := &wikicorpus.Document{
			CorpusID: corpus.ID,
			PageID:   1,
			Title:    "Ragnarok",
			Content:  "B1\n\nB2",
		}
		err := s.CreateDocument(context.Background(), doc)

		require.NoError(t, err)
		assert.NotEmpty(t, doc.ID)
		assert.NotEmpty(t, doc.ContentHash)
		assert.False(t, doc.FetchedAt.IsZero())

		got, err := s.FindDocumentByID(context.Background(), doc.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ragnarok", got.Title)
		assert.Equal(t, "B1\n\nB2", got.Content)
		assert.Equal(t, doc.ContentHash, got.ContentHash)
	})

	t.Run("identical content hashes identically", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		corpus := mustCreateCorpus(t, db)
		s := sqlite.NewDocumentService(db)

		a := &wikicorpus.Document{CorpusID: corpus.ID, Title: "A", Content: "same"}
		b := &wikicorpus.Document{CorpusID: corpus.ID, Title: "B", Content: "same"}
		require.NoError(t, s.CreateDocument(context.Background(), a))
		require.NoError(t, s.CreateDocument(context.Background(), b))

		assert.Equal(t, a.ContentHash, b.ContentHash)
	})

	t.Run("rejects invalid document", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewDocumentService(db)

		err := s.CreateDocument(context.Background(), &wikicorpus.Document{Title: "no corpus"})

		require.Error(t, err)
		assert.Equal(t, wikicorpus.EINVALID, wikicorpus.ErrorCode(err))
	})

	t.Run("rejects unknown corpus", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewDocumentService(db)

		err := s.CreateDocument(context.Background(), &wikicorpus.Document{
			CorpusID: "missing",
			Title:    "Ragnarok",
		})

		require.Error(t, err)
	})
}

func TestDocumentService_FindDocuments(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	corpus := mustCreateCorpus(t, db)
	s := sqlite.NewDocumentService(db)

	titles := []string{"Myth", "Deity", "Odin", "Thor", "Ragnarok"}
	for i, title := range titles {
		err := s.CreateDocument(context.Background(), &wikicorpus.Document{
			CorpusID: corpus.ID,
			PageID:   int64(i + 1),
			Title:    title,
			Position: i,
		})
		require.NoError(t, err)
	}

	t.Run("by corpus in position order", func(t *testing.T) {
		docs, err := s.FindDocuments(context.Background(), wikicorpus.DocumentFilter{
			CorpusID: &corpus.ID,
			SortBy:   wikicorpus.SortByPosition,
		})

		require.NoError(t, err)
		require.Len(t, docs, 5)
		for i, doc := range docs {
			assert.Equal(t, titles[i], doc.Title)
		}
	})

	t.Run("by page ID", func(t *testing.T) {
		pageID := int64(3)
		docs, err := s.FindDocuments(context.Background(), wikicorpus.DocumentFilter{PageID: &pageID})

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "Odin", docs[0].Title)
	})

	t.Run("by title", func(t *testing.T) {
		title := "Thor"
		docs, err := s.FindDocuments(context.Background(), wikicorpus.DocumentFilter{Title: &title})

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, int64(4), docs[0].PageID)
	})

	t.Run("pagination", func(t *testing.T) {
		docs, err := s.FindDocuments(context.Background(), wikicorpus.DocumentFilter{
			CorpusID: &corpus.ID,
			Limit:    2,
			Offset:   2,
		})

		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "Odin", docs[0].Title)
		assert.Equal(t, "Thor", docs[1].Title)
	})
}

func TestDocumentService_DeleteDocument(t *testing.T) {
	t.Parallel()

	t.Run("deletes", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		corpus := mustCreateCorpus(t, db)
		s := sqlite.NewDocumentService(db)

		doc := &wikicorpus.Document{CorpusID: corpus.ID, Title: "Ragnarok"}
		require.NoError(t, s.CreateDocument(context.Background(), doc))

		require.NoError(t, s.DeleteDocument(context.Background(), doc.ID))

		_, err := s.FindDocumentByID(context.Background(), doc.ID)
		assert.Equal(t, wikicorpus.ENOTFOUND, wikicorpus.ErrorCode(err))
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewDocumentService(db)

		err := s.DeleteDocument(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, wikicorpus.ENOTFOUND, wikicorpus.ErrorCode(err))
	})
}

func TestDocumentService_DeleteDocumentsByCorpus(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	corpus := mustCreateCorpus(t, db)
	s := sqlite.NewDocumentService(db)

	for _, title := range []string{"Odin", "Thor"} {
		require.NoError(t, s.CreateDocument(context.Background(), &wikicorpus.Document{
			CorpusID: corpus.ID,
			Title:    title,
		}))
	}

	require.NoError(t, s.DeleteDocumentsByCorpus(context.Background(), corpus.ID))

	docs, err := s.FindDocuments(context.Background(), wikicorpus.DocumentFilter{CorpusID: &corpus.ID})
	require.NoError(t, err)
	assert.Empty(t, docs)

	// Unknown corpus is a no-op, not an error.
	require.NoError(t, s.DeleteDocumentsByCorpus(context.Background(), "missing"))
}
