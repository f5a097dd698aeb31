package mediawiki

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wikicorpus"
)

// boilerplateSelector matches parser-output elements that carry no corpus
// text: edit links, citation markers, infoboxes, navboxes, and reference
// lists.
const boilerplateSelector = ".mw-editsection, sup.reference, .shortdescription, table.infobox, table.navbox, table.sidebar, .reflist, .mw-empty-elt, style"

type parseResponse struct {
	Error *apiError `json:"error"`
	Parse struct {
		Title  string `json:"title"`
		PageID int64  `json:"pageid"`
		Text   string `json:"text"`
	} `json:"parse"`
}

// Sections returns the article's top-level sections with their nested
// subsections. The parser-output HTML is walked heading by heading; the
// body of each section is rendered to markdown by the client's converter.
func (c *Client) Sections(ctx context.Context, title string) ([]wikicorpus.Section, error) {
	params := url.Values{}
	params.Set("action", "parse")
	params.Set("page", title)
	params.Set("prop", "text")
	params.Set("disableeditsection", "1")
	params.Set("redirects", "1")

	var resp parseResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error.toError()
	}

	return c.parseSections(resp.Parse.Text)
}

// sectionNode accumulates one section's heading and body HTML while the
// parser output is walked.
type sectionNode struct {
	level    int
	title    string
	body     strings.Builder
	children []*sectionNode
}

// parseSections builds the section tree from parser-output HTML.
// Content before the first heading is the lead, which is served by Summary
// and skipped here.
func (c *Client) parseSections(html string) ([]wikicorpus.Section, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, wikicorpus.Errorf(wikicorpus.EINVALID, "parsing page HTML: %v", err)
	}

	doc.Find(boilerplateSelector).Remove()

	content := doc.Find("div.mw-parser-output").First()
	if content.Length() == 0 {
		content = doc.Find("body").First()
	}

	var top []*sectionNode
	var stack []*sectionNode

	content.Children().Each(func(_ int, s *goquery.Selection) {
		if level, title, ok := headingOf(s); ok {
			node := &sectionNode{level: level, title: title}
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
			return
		}

		// Lead content has no enclosing section.
		if len(stack) == 0 {
			return
		}
		if h, err := goquery.OuterHtml(s); err == nil {
			stack[len(stack)-1].body.WriteString(h)
		}
	})

	sections := make([]wikicorpus.Section, 0, len(top))
	for _, node := range top {
		section, err := c.buildSection(node)
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	return sections, nil
}

// buildSection renders a node and its children into a Section.
func (c *Client) buildSection(node *sectionNode) (wikicorpus.Section, error) {
	section := wikicorpus.Section{Title: node.title}

	if strings.TrimSpace(node.body.String()) != "" {
		text, err := c.converter.Convert(node.body.String())
		if err != nil {
			return wikicorpus.Section{}, err
		}
		section.Text = strings.TrimSpace(text)
	}

	for _, child := range node.children {
		sub, err := c.buildSection(child)
		if err != nil {
			return wikicorpus.Section{}, err
		}
		section.Sections = append(section.Sections, sub)
	}
	return section, nil
}

// headingOf recognizes a section heading element. MediaWiki emits either a
// bare h2-h6 or, in newer parser output, a div.mw-heading wrapper around
// one. Heading levels are normalized so that h2 is level 1.
func headingOf(s *goquery.Selection) (level int, title string, ok bool) {
	name := goquery.NodeName(s)

	if name == "div" && s.HasClass("mw-heading") {
		inner := s.Find("h2, h3, h4, h5, h6").First()
		if inner.Length() == 0 {
			return 0, "", false
		}
		name = goquery.NodeName(inner)
		s = inner
	}

	if len(name) != 2 || name[0] != 'h' || name[1] < '2' || name[1] > '6' {
		return 0, "", false
	}

	title = s.Find(".mw-headline").First().Text()
	if title == "" {
		title = s.Text()
	}
	return int(name[1]-'0') - 1, strings.TrimSpace(title), true
}
