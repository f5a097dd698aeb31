package wikicorpus

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment into Markdown. The input should
	// already be free of site chrome; for wiki content that means parser
	// output with edit links and reference markers stripped.
	Convert(html string) (string, error)
}
