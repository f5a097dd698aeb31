package wikicorpus

import "context"

// Namespace discriminates the kind of a wiki page. Wikipedia keeps articles
// and categories in separate numeric namespaces; the two below are the only
// ones this module cares about.
type Namespace int

// MediaWiki namespace numbers.
const (
	NamespaceMain     Namespace = 0
	NamespaceCategory Namespace = 14
)

// Page identifies a single wiki page, either an article or a category.
// Pages are transient: they are fetched per traversal and never cached
// across calls.
type Page struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Namespace Namespace `json:"namespace"`
}

// IsCategory reports whether the page lives in the category namespace.
func (p Page) IsCategory() bool {
	return p.Namespace == NamespaceCategory
}

// PageContent holds the readable content of a single article: its summary
// and its ordered tree of top-level sections. Read-only to this module.
type PageContent struct {
	Page     Page
	Summary  string
	Sections []Section
}

// CategoryService enumerates the direct members of a category.
type CategoryService interface {
	// CategoryMembers returns the direct members of the named category in
	// listing order. Members include both articles (NamespaceMain) and
	// subcategories (NamespaceCategory); callers partition by namespace.
	CategoryMembers(ctx context.Context, category string) ([]Page, error)
}

// PageService retrieves the content of individual articles.
type PageService interface {
	// Sections returns the ordered top-level sections of an article,
	// each with its nested subsections.
	Sections(ctx context.Context, title string) ([]Section, error)

	// Summary returns the article's lead text (the content before the
	// first section heading).
	Summary(ctx context.Context, title string) (string, error)
}

// AuthorService looks up the author of each page, typically by scraping
// the page's infobox. Pages without an author yield "NA".
type AuthorService interface {
	// Authors returns one author per input page, in input order.
	Authors(ctx context.Context, pages []Page) ([]string, error)
}
