package traverse_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/wikicorpus"
	"github.com/fwojciec/wikicorpus/mock"
	"github.com/fwojciec/wikicorpus/traverse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// graphService builds a CategoryService from a static adjacency map keyed
// by category title.
func graphService(graph map[string][]wikicorpus.Page) *mock.CategoryService {
	return &mock.CategoryService{
		CategoryMembersFn: func(_ context.Context, category string) ([]wikicorpus.Page, error) {
			return graph[category], nil
		},
	}
}

func article(id int64, title string) wikicorpus.Page {
	return wikicorpus.Page{ID: id, Title: title, Namespace: wikicorpus.NamespaceMain}
}

func category(title string) wikicorpus.Page {
	return wikicorpus.Page{Title: title, Namespace: wikicorpus.NamespaceCategory}
}

func titles(pages []wikicorpus.Page) []string {
	out := make([]string, 0, len(pages))
	for _, p := range pages {
		out = append(out, p.Title)
	}
	return out
}

func TestTraverser_Traverse(t *testing.T) {
	t.Parallel()

	t.Run("returns articles before subcategory subtrees", func(t *testing.T) {
		t.Parallel()

		// The scenario from the mythology catalog: 2 direct articles plus
		// one subcategory holding 3 more.
		graph := map[string][]wikicorpus.Page{
			"Category:Mythology": {
				article(1, "Myth"),
				category("Category:Norse mythology"),
				article(2, "Deity"),
			},
			"Category:Norse mythology": {
				article(3, "Odin"),
				article(4, "Thor"),
				article(5, "Ragnarok"),
			},
		}

		tr := &traverse.Traverser{
			Categories:    graphService(graph),
			PageThreshold: traverse.Unbounded,
			MaxDepth:      traverse.Unbounded,
		}

		pages, err := tr.Traverse(context.Background(), category("Category:Mythology"))

		require.NoError(t, err)
		assert.Equal(t, []string{"Myth", "Deity", "Odin", "Thor", "Ragnarok"}, titles(pages))
	})

	t.Run("max depth zero returns only direct articles", func(t *testing.T) {
		t.Parallel()

		graph := map[string][]wikicorpus.Page{
			"Category:Mythology": {
				article(1, "Myth"),
				category("Category:Norse mythology"),
			},
			"Category:Norse mythology": {article(3, "Odin")},
		}

		for _, threshold := range []traverse.Limit{0, 1, 100, traverse.Unbounded} {
			tr := &traverse.Traverser{
				Categories:    graphService(graph),
				PageThreshold: threshold,
				MaxDepth:      0,
			}

			pages, err := tr.Traverse(context.Background(), category("Category:Mythology"))

			require.NoError(t, err)
			assert.Equal(t, []string{"Myth"}, titles(pages))
		}
	})

	t.Run("threshold zero never descends", func(t *testing.T) {
		t.Parallel()

		// 0 < 0 is false even for a category with no direct articles.
		graph := map[string][]wikicorpus.Page{
			"Category:Mythology": {
				category("Category:Norse mythology"),
			},
			"Category:Norse mythology": {article(3, "Odin")},
		}

		tr := &traverse.Traverser{
			Categories:    graphService(graph),
			PageThreshold: 0,
			MaxDepth:      traverse.Unbounded,
		}

		pages, err := tr.Traverse(context.Background(), category("Category:Mythology"))

		require.NoError(t, err)
		assert.Empty(t, pages)
	})

	t.Run("threshold prunes levels at or above the direct article count", func(t *testing.T) {
		t.Parallel()

		graph := map[string][]wikicorpus.Page{
			"Category:Mythology": {
				article(1, "Myth"),
				article(2, "Deity"),
				category("Category:Norse mythology"),
			},
			"Category:Norse mythology": {article(3, "Odin")},
		}

		// Two direct articles meet a threshold of 2: no descent.
		tr := &traverse.Traverser{
			Categories:    graphService(graph),
			PageThreshold: 2,
			MaxDepth:      traverse.Unbounded,
		}
		pages, err := tr.Traverse(context.Background(), category("Category:Mythology"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Myth", "Deity"}, titles(pages))

		// A threshold of 3 allows it.
		tr.PageThreshold = 3
		pages, err = tr.Traverse(context.Background(), category("Category:Mythology"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Myth", "Deity", "Odin"}, titles(pages))
	})

	t.Run("pruning applies per level", func(t *testing.T) {
		t.Parallel()

		// The root is under the threshold and descends; the subcategory is
		// at the threshold and keeps its own subcategory unexpanded.
		graph := map[string][]wikicorpus.Page{
			"Category:A": {
				article(1, "a1"),
				category("Category:B"),
			},
			"Category:B": {
				article(2, "b1"),
				article(3, "b2"),
				category("Category:C"),
			},
			"Category:C": {article(4, "c1")},
		}

		tr := &traverse.Traverser{
			Categories:    graphService(graph),
			PageThreshold: 2,
			MaxDepth:      traverse.Unbounded,
		}

		pages, err := tr.Traverse(context.Background(), category("Category:A"))

		require.NoError(t, err)
		assert.Equal(t, []string{"a1", "b1", "b2"}, titles(pages))
	})

	t.Run("duplicates are preserved", func(t *testing.T) {
		t.Parallel()

		// The same article is reachable through two subcategories.
		graph := map[string][]wikicorpus.Page{
			"Category:A": {
				category("Category:B"),
				category("Category:C"),
			},
			"Category:B": {article(1, "shared")},
			"Category:C": {article(1, "shared")},
		}

		tr := &traverse.Traverser{
			Categories:    graphService(graph),
			PageThreshold: traverse.Unbounded,
			MaxDepth:      traverse.Unbounded,
		}

		pages, err := tr.Traverse(context.Background(), category("Category:A"))

		require.NoError(t, err)
		assert.Equal(t, []string{"shared", "shared"}, titles(pages))
	})

	t.Run("repeated traversal is idempotent", func(t *testing.T) {
		t.Parallel()

		graph := map[string][]wikicorpus.Page{
			"Category:A": {
				article(1, "a1"),
				category("Category:B"),
			},
			"Category:B": {article(2, "b1"), article(1, "a1")},
		}

		tr := &traverse.Traverser{
			Categories:    graphService(graph),
			PageThreshold: traverse.Unbounded,
			MaxDepth:      traverse.Unbounded,
		}

		first, err := tr.Traverse(context.Background(), category("Category:A"))
		require.NoError(t, err)
		second, err := tr.Traverse(context.Background(), category("Category:A"))
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("cycle guard terminates on a cyclic graph", func(t *testing.T) {
		t.Parallel()

		graph := map[string][]wikicorpus.Page{
			"Category:A": {
				article(1, "a1"),
				category("Category:B"),
			},
			"Category:B": {
				article(2, "b1"),
				category("Category:A"),
			},
		}

		tr := &traverse.Traverser{
			Categories:    graphService(graph),
			PageThreshold: traverse.Unbounded,
			MaxDepth:      traverse.Unbounded,
			CycleGuard:    true,
		}

		pages, err := tr.Traverse(context.Background(), category("Category:A"))

		require.NoError(t, err)
		assert.Equal(t, []string{"a1", "b1"}, titles(pages))
	})

	t.Run("cycle guard visits a shared subcategory once", func(t *testing.T) {
		t.Parallel()

		graph := map[string][]wikicorpus.Page{
			"Category:A": {
				category("Category:B"),
				category("Category:C"),
			},
			"Category:B": {category("Category:D")},
			"Category:C": {category("Category:D")},
			"Category:D": {article(1, "d1")},
		}

		tr := &traverse.Traverser{
			Categories:    graphService(graph),
			PageThreshold: traverse.Unbounded,
			MaxDepth:      traverse.Unbounded,
			CycleGuard:    true,
		}

		pages, err := tr.Traverse(context.Background(), category("Category:A"))

		require.NoError(t, err)
		assert.Equal(t, []string{"d1"}, titles(pages))
	})

	t.Run("rejects a non-category root", func(t *testing.T) {
		t.Parallel()

		tr := &traverse.Traverser{
			Categories:    graphService(nil),
			PageThreshold: traverse.Unbounded,
			MaxDepth:      traverse.Unbounded,
		}

		_, err := tr.Traverse(context.Background(), article(1, "Odin"))

		require.Error(t, err)
		assert.Equal(t, wikicorpus.EINVALID, wikicorpus.ErrorCode(err))
	})

	t.Run("propagates listing failures without partial results", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("service unavailable")
		svc := &mock.CategoryService{
			CategoryMembersFn: func(_ context.Context, category string) ([]wikicorpus.Page, error) {
				if category == "Category:B" {
					return nil, boom
				}
				return []wikicorpus.Page{
					article(1, "a1"),
					{Title: "Category:B", Namespace: wikicorpus.NamespaceCategory},
				}, nil
			},
		}

		tr := &traverse.Traverser{
			Categories:    svc,
			PageThreshold: traverse.Unbounded,
			MaxDepth:      traverse.Unbounded,
		}

		pages, err := tr.Traverse(context.Background(), category("Category:A"))

		require.ErrorIs(t, err, boom)
		assert.Nil(t, pages)
	})

	t.Run("non-article non-category members are ignored", func(t *testing.T) {
		t.Parallel()

		graph := map[string][]wikicorpus.Page{
			"Category:A": {
				article(1, "a1"),
				{ID: 9, Title: "File:Odin.jpg", Namespace: 6},
			},
		}

		tr := &traverse.Traverser{
			Categories:    graphService(graph),
			PageThreshold: traverse.Unbounded,
			MaxDepth:      traverse.Unbounded,
		}

		pages, err := tr.Traverse(context.Background(), category("Category:A"))

		require.NoError(t, err)
		assert.Equal(t, []string{"a1"}, titles(pages))
	})
}
