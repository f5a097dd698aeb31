// Package fs provides file-based storage for corpus documents.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/wikicorpus"
)

// TitleToPath converts an article title to a relative file path.
// Example: Norse mythology → norse_mythology.md
func TitleToPath(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '_' || r == '-' || r == '/':
			b.WriteRune('_')
		}
	}
	path := strings.Trim(b.String(), "_")
	if path == "" {
		path = "untitled"
	}
	return path + ".md"
}

// FormatDocument formats a document with YAML frontmatter.
func FormatDocument(doc *wikicorpus.Document) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("title: ")
	b.WriteString(doc.Title)
	if doc.PageID != 0 {
		b.WriteString(fmt.Sprintf("\npageid: %d", doc.PageID))
	}
	if doc.Author != "" {
		b.WriteString("\nauthor: ")
		b.WriteString(doc.Author)
	}
	b.WriteString("\nfetched: ")
	b.WriteString(doc.FetchedAt.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(doc.Content)
	return b.String()
}

// Ensure Writer implements wikicorpus.DocumentWriter at compile time.
var _ wikicorpus.DocumentWriter = (*Writer)(nil)

// Writer writes documents as markdown files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// CreateDocument writes a document to disk as a markdown file. Duplicate
// titles within a corpus overwrite earlier files, mirroring how repeated
// category members carry the same content.
func (w *Writer) CreateDocument(ctx context.Context, doc *wikicorpus.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, TitleToPath(doc.Title))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content := FormatDocument(doc)
	return os.WriteFile(fullPath, []byte(content), 0644)
}
