// Package corpus provides corpus build orchestration.
// It coordinates category traversal, section fetching, text extraction,
// and storage of corpus documents.
package corpus

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/fwojciec/wikicorpus"
	"github.com/fwojciec/wikicorpus/traverse"
	"golang.org/x/sync/errgroup"
)

// Builder orchestrates building a corpus from a category tree.
type Builder struct {
	Categories   wikicorpus.CategoryService
	Pages        wikicorpus.PageService
	Authors      wikicorpus.AuthorService
	Documents    wikicorpus.DocumentWriter
	TokenCounter wikicorpus.TokenCounter
	Concurrency  int

	// CycleGuard enables bloom-filter cycle detection during traversal.
	CycleGuard bool

	// SummaryFallback substitutes the page summary when section extraction
	// yields no text.
	SummaryFallback bool

	// FetchAuthors looks up page authors in batches when an AuthorService
	// is configured.
	FetchAuthors bool
}

// Result holds the outcome of a build operation.
type Result struct {
	Pages  int
	Saved  int
	Failed int
	Bytes  int
	Tokens int
}

// ProgressEvent reports progress during a build operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Title     string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting build progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single page.
type pageResult struct {
	position int
	page     wikicorpus.Page
	content  string
	err      error
}

// Build traverses the corpus's category tree, extracts text from every
// article found, and saves the results as documents. The progress callback,
// if provided, receives events as pages are processed.
func (b *Builder) Build(ctx context.Context, corpus *wikicorpus.Corpus, progress ProgressFunc) (*Result, error) {
	if err := corpus.Validate(); err != nil {
		return nil, err
	}

	// Compile the section filter from the corpus's stored keyword patterns.
	var filter *wikicorpus.SectionFilter
	if keywords := corpus.KeywordList(); len(keywords) > 0 {
		var err error
		filter, err = wikicorpus.NewSectionFilter(keywords...)
		if err != nil {
			return nil, err
		}
	}

	// Traverse the category tree to collect pages.
	traverser := &traverse.Traverser{
		Categories:    b.Categories,
		PageThreshold: traverse.Limit(corpus.PageThreshold),
		MaxDepth:      traverse.Limit(corpus.MaxDepth),
		CycleGuard:    b.CycleGuard,
	}

	root := wikicorpus.Page{
		Title:     normalizeCategory(corpus.RootCategory),
		Namespace: wikicorpus.NamespaceCategory,
	}
	pages, err := traverser.Traverse(ctx, root)
	if err != nil {
		return nil, err
	}

	if len(pages) == 0 {
		if progress != nil {
			progress(ProgressEvent{Type: ProgressFinished})
		}
		return &Result{}, nil
	}

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	resultCh := make(chan pageResult, len(pages))

	var completed atomic.Int64
	total := len(pages)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, page := range pages {
			i, page := i, page
			g.Go(func() error {
				result := b.processPage(gctx, i, page, filter)
				resultCh <- result
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in traversal order.
	results := make([]pageResult, len(pages))
	var failedCount int
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		if result.err != nil {
			failedCount++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					Title:     result.page.Title,
					Error:     result.err,
				})
			}
		} else if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				Title:     result.page.Title,
			})
		}
	}

	// Look up authors in one batched pass over the traversal order.
	var authors []string
	if b.FetchAuthors && b.Authors != nil {
		authors, err = b.Authors.Authors(ctx, pages)
		if err != nil {
			return nil, err
		}
	}

	// Save documents and accumulate stats.
	var savedCount int
	var totalBytes int
	var totalTokens int

	for _, result := range results {
		if result.err != nil {
			continue
		}

		doc := &wikicorpus.Document{
			CorpusID: corpus.ID,
			PageID:   result.page.ID,
			Title:    result.page.Title,
			Content:  result.content,
			Position: result.position,
		}
		if authors != nil {
			doc.Author = authors[result.position]
		}

		if err := b.Documents.CreateDocument(ctx, doc); err != nil {
			failedCount++
			continue
		}

		savedCount++
		totalBytes += len(result.content)
		if b.TokenCounter != nil {
			if tokens, err := b.TokenCounter.CountTokens(ctx, result.content); err == nil {
				totalTokens += tokens
			}
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return &Result{
		Pages:  total,
		Saved:  savedCount,
		Failed: failedCount,
		Bytes:  totalBytes,
		Tokens: totalTokens,
	}, nil
}

// processPage fetches and extracts text from a single page. The summary is
// only fetched when section extraction comes up empty, so pages with
// matching sections cost a single request.
func (b *Builder) processPage(ctx context.Context, position int, page wikicorpus.Page, filter *wikicorpus.SectionFilter) pageResult {
	result := pageResult{
		position: position,
		page:     page,
	}

	sections, err := b.Pages.Sections(ctx, page.Title)
	if err != nil {
		result.err = err
		return result
	}

	content := &wikicorpus.PageContent{Page: page, Sections: sections}
	texts := wikicorpus.ExtractText(content, filter, false)

	if len(texts) == 0 && b.SummaryFallback {
		summary, err := b.Pages.Summary(ctx, page.Title)
		if err != nil {
			result.err = err
			return result
		}
		content.Summary = summary
		texts = wikicorpus.ExtractText(content, filter, true)
	}

	result.content = strings.Join(texts, "\n\n")
	return result
}

// normalizeCategory ensures the category title carries its namespace prefix.
func normalizeCategory(category string) string {
	if strings.HasPrefix(category, "Category:") {
		return category
	}
	return "Category:" + category
}
