package wikicorpus

import (
	"regexp"
	"strings"
)

// Section is one node in an article's section tree. A section with empty
// text may still contribute content through its subsections.
type Section struct {
	Title    string    `json:"title"`
	Text     string    `json:"text"`
	Sections []Section `json:"sections,omitempty"`
}

// SectionFilter selects top-level sections by title. The patterns are
// OR-joined into a single case-insensitive regular expression which is
// matched against the lower-cased section title, so plain substrings and
// regex fragments both work.
type SectionFilter struct {
	re *regexp.Regexp
}

// NewSectionFilter compiles a filter from one or more keyword patterns.
// Returns EINVALID if no patterns are given or the joined expression does
// not compile.
func NewSectionFilter(keywords ...string) (*SectionFilter, error) {
	if len(keywords) == 0 {
		return nil, Errorf(EINVALID, "section filter requires at least one keyword")
	}
	re, err := regexp.Compile(strings.Join(keywords, "|"))
	if err != nil {
		return nil, Errorf(EINVALID, "invalid section filter pattern: %v", err)
	}
	return &SectionFilter{re: re}, nil
}

// Match reports whether a section title passes the filter. A nil filter
// accepts every title.
func (f *SectionFilter) Match(title string) bool {
	if f == nil {
		return true
	}
	return f.re.MatchString(strings.ToLower(title))
}

// ExtractText collects the text of an article's sections.
//
// Each top-level section is included when the filter is nil or its title
// matches; included sections are walked depth-first in pre-order and every
// non-empty section body is appended in visitation order. The filter is
// applied only at the top level: once a top-level section is accepted, all
// of its subsections are collected unconditionally.
//
// If nothing was collected and useSummaryFallback is set, the result is the
// article summary as a single element, even when the summary itself is
// empty. Otherwise an empty result is returned as-is.
func ExtractText(content *PageContent, filter *SectionFilter, useSummaryFallback bool) []string {
	var texts []string
	for _, s := range content.Sections {
		if filter.Match(s.Title) {
			texts = appendSectionText(texts, s)
		}
	}
	if useSummaryFallback && len(texts) == 0 {
		texts = append(texts, content.Summary)
	}
	return texts
}

// appendSectionText appends the section's own text and then its
// subsections' text, recursively.
func appendSectionText(texts []string, s Section) []string {
	if s.Text != "" {
		texts = append(texts, s.Text)
	}
	for _, sub := range s.Sections {
		texts = appendSectionText(texts, sub)
	}
	return texts
}

// CountSections returns the number of sections at all depths.
func CountSections(sections []Section) int {
	n := 0
	for _, s := range sections {
		n += 1 + CountSections(s.Sections)
	}
	return n
}
