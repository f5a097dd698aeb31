package dump

import (
	"regexp"
	"strings"

	"github.com/fwojciec/wikicorpus"
)

var (
	// headingRe matches wikitext headings; == through ====== map to
	// section levels 1 through 5.
	headingRe = regexp.MustCompile(`(?m)^(={2,6})\s*(.+?)\s*=+[ \t]*$`)

	// categoryLinkRe matches category membership links, with or without a
	// sort key.
	categoryLinkRe = regexp.MustCompile(`\[\[Category:([^\]|]+)(?:\|[^\]]*)?\]\]`)

	// wikiLinkRe matches internal links, capturing the display text when a
	// pipe is present and the target otherwise.
	wikiLinkRe = regexp.MustCompile(`\[\[(?:[^\]|]*\|)?([^\]|]*)\]\]`)

	// fileLinkRe matches file and image embeds, which carry no prose.
	fileLinkRe = regexp.MustCompile(`\[\[(?:File|Image):[^\[\]]*\]\]`)

	// refRe matches inline citation footnotes.
	refRe = regexp.MustCompile(`(?s)<ref[^>/]*/>|<ref[^>]*>.*?</ref>`)

	// blankRunsRe collapses blank-line runs left behind by stripping.
	blankRunsRe = regexp.MustCompile(`\n{3,}`)
)

// categoryLinks returns the categories a page belongs to, as prefixed
// titles in order of appearance.
func categoryLinks(wikitext string) []string {
	var parents []string
	for _, m := range categoryLinkRe.FindAllStringSubmatch(wikitext, -1) {
		parents = append(parents, "Category:"+strings.TrimSpace(m[1]))
	}
	return parents
}

// sectionNode accumulates one section while headings are scanned.
type sectionNode struct {
	level    int
	title    string
	body     string
	children []*sectionNode
}

// parseWikitext splits wikitext into the cleaned lead text and the section
// tree built from heading markers.
func parseWikitext(wikitext string) (lead string, sections []wikicorpus.Section) {
	matches := headingRe.FindAllStringSubmatchIndex(wikitext, -1)

	if len(matches) == 0 {
		return cleanWikitext(wikitext), nil
	}

	lead = cleanWikitext(wikitext[:matches[0][0]])

	var top []*sectionNode
	var stack []*sectionNode

	for i, m := range matches {
		level := m[3] - m[2] - 1 // marker length minus one: == is level 1
		title := strings.TrimSpace(wikitext[m[4]:m[5]])

		bodyEnd := len(wikitext)
		if i+1 < len(matches) {
			bodyEnd = matches[i+1][0]
		}
		body := cleanWikitext(wikitext[m[1]:bodyEnd])

		node := &sectionNode{level: level, title: title, body: body}
		for len(stack) > 0 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			top = append(top, node)
		} else {
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, node)
		}
		stack = append(stack, node)
	}

	sections = make([]wikicorpus.Section, 0, len(top))
	for _, node := range top {
		sections = append(sections, buildSection(node))
	}
	return lead, sections
}

// buildSection converts an accumulated node into a Section.
func buildSection(node *sectionNode) wikicorpus.Section {
	section := wikicorpus.Section{Title: node.title, Text: node.body}
	for _, child := range node.children {
		section.Sections = append(section.Sections, buildSection(child))
	}
	return section
}

// cleanWikitext strips templates, links, citations, and quote markup,
// leaving plain prose.
func cleanWikitext(wikitext string) string {
	text := stripTemplates(wikitext)
	text = refRe.ReplaceAllString(text, "")
	text = fileLinkRe.ReplaceAllString(text, "")
	text = categoryLinkRe.ReplaceAllString(text, "")
	text = wikiLinkRe.ReplaceAllString(text, "$1")
	text = strings.ReplaceAll(text, "'''", "")
	text = strings.ReplaceAll(text, "''", "")
	text = blankRunsRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// stripTemplates removes {{...}} blocks, tracking nesting depth so that
// templates inside templates are removed with their parent.
func stripTemplates(text string) string {
	var b strings.Builder
	depth := 0
	for i := 0; i < len(text); i++ {
		if i+1 < len(text) && text[i] == '{' && text[i+1] == '{' {
			depth++
			i++
			continue
		}
		if i+1 < len(text) && text[i] == '}' && text[i+1] == '}' && depth > 0 {
			depth--
			i++
			continue
		}
		if depth == 0 {
			b.WriteByte(text[i])
		}
	}
	return b.String()
}
