package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/wikicorpus"
	"github.com/fwojciec/wikicorpus/corpus"
	"github.com/fwojciec/wikicorpus/traverse"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	// Preview mode: list articles without saving anything
	if c.Preview {
		return c.runPreview(deps)
	}

	// Full fetch mode
	return c.runFetch(deps)
}

// corpusDefinition assembles the corpus from command arguments.
func (c *FetchCmd) corpusDefinition() *wikicorpus.Corpus {
	return &wikicorpus.Corpus{
		Name:          c.Name,
		RootCategory:  c.Category,
		Language:      c.Language,
		PageThreshold: c.Threshold,
		MaxDepth:      c.Depth,
		Keywords:      strings.Join(c.Keywords, "\n"),
	}
}

func (c *FetchCmd) runPreview(deps *Dependencies) error {
	traverser := &traverse.Traverser{
		Categories:    deps.Categories,
		PageThreshold: traverse.Limit(c.Threshold),
		MaxDepth:      traverse.Limit(c.Depth),
		CycleGuard:    c.CycleGuard,
	}

	category := c.Category
	if !strings.HasPrefix(category, "Category:") {
		category = "Category:" + category
	}
	root := wikicorpus.Page{Title: category, Namespace: wikicorpus.NamespaceCategory}

	pages, err := traverser.Traverse(deps.Ctx, root)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikicorpus.ErrorMessage(err))
		return err
	}

	for _, page := range pages {
		fmt.Fprintln(deps.Stdout, page.Title)
	}
	fmt.Fprintf(deps.Stdout, "%d articles\n", len(pages))

	return nil
}

func (c *FetchCmd) runFetch(deps *Dependencies) error {
	def := c.corpusDefinition()

	// Persist the corpus definition when a corpus store is configured;
	// otherwise documents reference the corpus by name only.
	if deps.Corpora != nil {
		if err := deps.Corpora.CreateCorpus(deps.Ctx, def); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", wikicorpus.ErrorMessage(err))
			return err
		}
	} else {
		def.ID = def.Name
	}

	builder := &corpus.Builder{
		Categories:      deps.Categories,
		Pages:           deps.Pages,
		Authors:         deps.Authors,
		Documents:       deps.Documents,
		TokenCounter:    deps.TokenCounter,
		Concurrency:     c.Concurrency,
		CycleGuard:      c.CycleGuard,
		SummaryFallback: c.SummaryFallback,
		FetchAuthors:    c.Authors && deps.Authors != nil,
	}

	progress := func(event corpus.ProgressEvent) {
		switch event.Type {
		case corpus.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Found %d articles\n", event.Total)
		case corpus.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "skip %s: %v\n", event.Title, event.Error)
		case corpus.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "\r[%d/%d] %s", event.Completed, event.Total, corpus.TruncateTitle(event.Title, 40))
		case corpus.ProgressFinished:
			// Clear progress line
			fmt.Fprintf(deps.Stdout, "\r%80s\r", "")
		}
	}

	result, err := builder.Build(deps.Ctx, def, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikicorpus.ErrorMessage(err))
		return err
	}

	if result.Saved == 0 {
		fmt.Fprintln(deps.Stdout, "No documents saved")
		return nil
	}

	summary := fmt.Sprintf("Saved %d documents (%s", result.Saved, corpus.FormatBytes(result.Bytes))
	if result.Tokens > 0 {
		summary += ", " + corpus.FormatTokens(result.Tokens)
	}
	summary += ")"
	fmt.Fprintln(deps.Stdout, summary)

	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "%d pages failed\n", result.Failed)
	}

	return nil
}
