package wikicorpus

import (
	"strconv"
	"strings"
)

// FormatDocuments formats documents for display or LLM context.
// Uses the article title if available, falls back to the page ID.
// Documents are separated by blank lines.
func FormatDocuments(docs []*Document) string {
	if len(docs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		header := doc.Title
		if header == "" {
			header = "page " + strconv.FormatInt(doc.PageID, 10)
		}
		parts = append(parts, "## "+header+"\n"+doc.Content)
	}

	return strings.Join(parts, "\n\n")
}
