// Package dump provides an offline content-service binding backed by a
// MediaWiki XML export (Special:Export). Category membership is recovered
// from [[Category:...]] links in the wikitext, and section trees from
// wikitext headings, so corpora can be built without network access.
package dump

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/wikicorpus"
)

// Compile-time interface verification.
var (
	_ wikicorpus.CategoryService = (*Index)(nil)
	_ wikicorpus.PageService     = (*Index)(nil)
)

// Index holds the parsed contents of one XML export.
type Index struct {
	entries map[string]*entry
	members map[string][]wikicorpus.Page
}

// entry is one exported page with its current revision's wikitext.
type entry struct {
	page     wikicorpus.Page
	wikitext string
}

// Open reads and indexes an export file.
func Open(path string) (*Index, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, wikicorpus.Errorf(wikicorpus.EINVALID, "reading export %s: %v", path, err)
	}
	return index(doc)
}

// Read reads and indexes an export stream.
func Read(r io.Reader) (*Index, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, wikicorpus.Errorf(wikicorpus.EINVALID, "reading export: %v", err)
	}
	return index(doc)
}

// index walks the export document and records articles and categories.
// Members of a category are listed in export document order.
func index(doc *etree.Document) (*Index, error) {
	root := doc.SelectElement("mediawiki")
	if root == nil {
		return nil, wikicorpus.Errorf(wikicorpus.EINVALID, "not a MediaWiki export: missing mediawiki element")
	}

	idx := &Index{
		entries: make(map[string]*entry),
		members: make(map[string][]wikicorpus.Page),
	}

	for _, el := range root.SelectElements("page") {
		e, err := parsePage(el)
		if err != nil {
			return nil, err
		}
		if e == nil {
			continue
		}

		idx.entries[e.page.Title] = e
		for _, parent := range categoryLinks(e.wikitext) {
			idx.members[parent] = append(idx.members[parent], e.page)
		}
	}

	return idx, nil
}

// parsePage extracts one page element. Pages outside the article and
// category namespaces are skipped.
func parsePage(el *etree.Element) (*entry, error) {
	title := elementText(el, "title")
	if title == "" {
		return nil, wikicorpus.Errorf(wikicorpus.EINVALID, "export page without title")
	}

	ns, err := strconv.Atoi(elementText(el, "ns"))
	if err != nil {
		return nil, wikicorpus.Errorf(wikicorpus.EINVALID, "export page %q: bad namespace", title)
	}
	namespace := wikicorpus.Namespace(ns)
	if namespace != wikicorpus.NamespaceMain && namespace != wikicorpus.NamespaceCategory {
		return nil, nil
	}

	id, _ := strconv.ParseInt(elementText(el, "id"), 10, 64)

	wikitext := ""
	if rev := el.SelectElement("revision"); rev != nil {
		wikitext = elementText(rev, "text")
	}

	return &entry{
		page:     wikicorpus.Page{ID: id, Title: title, Namespace: namespace},
		wikitext: wikitext,
	}, nil
}

func elementText(el *etree.Element, name string) string {
	child := el.SelectElement(name)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

// CategoryMembers returns the indexed members of a category in export
// document order. Unknown categories are empty, matching the live API's
// behavior for categories without members.
func (idx *Index) CategoryMembers(_ context.Context, category string) ([]wikicorpus.Page, error) {
	title := category
	if !strings.HasPrefix(title, "Category:") {
		title = "Category:" + title
	}
	return idx.members[title], nil
}

// Sections returns the article's section tree parsed from wikitext
// headings. Returns ENOTFOUND if the page is not in the export.
func (idx *Index) Sections(_ context.Context, title string) ([]wikicorpus.Section, error) {
	e, ok := idx.entries[title]
	if !ok {
		return nil, wikicorpus.Errorf(wikicorpus.ENOTFOUND, "page %q not in export", title)
	}
	_, sections := parseWikitext(e.wikitext)
	return sections, nil
}

// Summary returns the article's lead text (before the first heading).
// Returns ENOTFOUND if the page is not in the export.
func (idx *Index) Summary(_ context.Context, title string) (string, error) {
	e, ok := idx.entries[title]
	if !ok {
		return "", wikicorpus.Errorf(wikicorpus.ENOTFOUND, "page %q not in export", title)
	}
	lead, _ := parseWikitext(e.wikitext)
	return lead, nil
}
