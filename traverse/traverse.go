// Package traverse implements bounded recursive traversal of a category
// graph, collecting the articles reachable from a root category.
package traverse

import (
	"context"

	"github.com/fwojciec/wikicorpus"
	"github.com/fwojciec/wikicorpus/bloom"
)

// Limit bounds one dimension of the traversal. Non-negative values are
// hard limits; Unbounded disables the check entirely.
type Limit int

// Unbounded disables a limit.
const Unbounded Limit = -1

// Visited set sizing when the cycle guard is enabled.
const (
	visitedExpectedCategories = 10000
	visitedFalsePositiveRate  = 0.01
)

// Traverser walks a category graph depth-first and accumulates every
// article found within its bounds. Traversal is sequential and synchronous:
// one category listing is in flight at a time and the call blocks until the
// whole subtree under the pruning bounds has been resolved.
type Traverser struct {
	Categories wikicorpus.CategoryService

	// PageThreshold prunes descent below a category whose direct article
	// count is at or above the threshold. A threshold of 0 never descends.
	PageThreshold Limit

	// MaxDepth prunes descent below the given level. The root category is
	// at depth 0, so MaxDepth 0 returns only its direct articles.
	MaxDepth Limit

	// CycleGuard enables a probabilistic visited set over category titles.
	// Without it, termination is guaranteed only by the bounds above: a
	// cyclic graph traversed with both limits Unbounded will not terminate.
	// With it, a category reached through multiple paths is expanded once,
	// so duplicate articles from repeated subtrees are no longer produced.
	CycleGuard bool
}

// Traverse returns every article reachable from the category within the
// traverser's bounds, in pre-order: the direct articles of a category
// first, in listing order, then the full subtree of each subcategory, in
// subcategory listing order. Duplicates are not removed.
//
// Returns EINVALID if the page is not a category. A listing failure
// propagates unmodified with no partial result.
func (t *Traverser) Traverse(ctx context.Context, category wikicorpus.Page) ([]wikicorpus.Page, error) {
	if !category.IsCategory() {
		return nil, wikicorpus.Errorf(wikicorpus.EINVALID, "page %q is not a category", category.Title)
	}

	var visited *bloom.Filter
	if t.CycleGuard {
		visited = bloom.NewFilter(visitedExpectedCategories, visitedFalsePositiveRate)
		visited.Add(category.Title)
	}

	pages := []wikicorpus.Page{}
	if err := t.walk(ctx, category, 0, visited, &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

// walk appends the articles of one category and recurses into its
// subcategories when the bounds allow. The accumulator is shared down the
// call stack; child calls append, never replace.
func (t *Traverser) walk(ctx context.Context, category wikicorpus.Page, depth int, visited *bloom.Filter, out *[]wikicorpus.Page) error {
	members, err := t.Categories.CategoryMembers(ctx, category.Title)
	if err != nil {
		return err
	}

	var subcategories []wikicorpus.Page
	articles := 0
	for _, m := range members {
		switch m.Namespace {
		case wikicorpus.NamespaceMain:
			articles++
			*out = append(*out, m)
		case wikicorpus.NamespaceCategory:
			subcategories = append(subcategories, m)
		}
	}

	// Subcategories at a pruned level are dropped entirely. This is the
	// cost-control policy, not an error.
	if !t.descend(articles, depth) {
		return nil
	}

	for _, sub := range subcategories {
		if visited != nil {
			if visited.Test(sub.Title) {
				continue
			}
			visited.Add(sub.Title)
		}
		if err := t.walk(ctx, sub, depth+1, visited, out); err != nil {
			return err
		}
	}
	return nil
}

// descend reports whether the traversal may expand subcategories at a
// level with the given direct article count and depth.
func (t *Traverser) descend(articles, depth int) bool {
	if t.PageThreshold != Unbounded && articles >= int(t.PageThreshold) {
		return false
	}
	if t.MaxDepth != Unbounded && depth >= int(t.MaxDepth) {
		return false
	}
	return true
}
