// Package htmltomarkdown renders HTML fragments as Markdown text for
// corpus storage.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/wikicorpus"
)

// Ensure Converter implements wikicorpus.Converter at compile time.
var _ wikicorpus.Converter = (*Converter)(nil)

// blankRunsRe collapses runs of blank lines left behind by stripped wiki
// markup.
var blankRunsRe = regexp.MustCompile(`\n{3,}`)

// Converter wraps html-to-markdown to convert parser-output HTML fragments
// to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms an HTML fragment into Markdown. Returns EINVALID for
// empty input.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", wikicorpus.Errorf(wikicorpus.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return blankRunsRe.ReplaceAllString(result, "\n\n"), nil
}
