package mediawiki

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/wikicorpus"
)

// authorBatchSize is the pageids-per-request cap; the API allows up to 50
// IDs in one query for anonymous clients.
const authorBatchSize = 50

// noAuthor is returned for pages whose infobox has no usable author field.
const noAuthor = "NA"

var (
	// authorFieldRe finds the infobox author assignment in wikitext.
	authorFieldRe = regexp.MustCompile(`author *=.*\n`)

	// authorValueRe keeps the first run of characters free of wiki link,
	// template, and markup punctuation.
	authorValueRe = regexp.MustCompile(`[^\[\]<>()|+&"']+`)
)

type revisionsResponse struct {
	Error *apiError `json:"error"`
	Query struct {
		Pages []struct {
			PageID    int64 `json:"pageid"`
			Missing   bool  `json:"missing"`
			Revisions []struct {
				Slots struct {
					Main struct {
						Content string `json:"content"`
					} `json:"main"`
				} `json:"slots"`
			} `json:"revisions"`
		} `json:"pages"`
	} `json:"query"`
}

// Authors scrapes the infobox author of each page from the wikitext of its
// lead section, one batch request per authorBatchSize pages. Pages without
// an author field yield "NA". Results are in input order.
func (c *Client) Authors(ctx context.Context, pages []wikicorpus.Page) ([]string, error) {
	if len(pages) == 0 {
		return nil, nil
	}

	contents := make(map[int64]string, len(pages))
	for start := 0; start < len(pages); start += authorBatchSize {
		end := min(start+authorBatchSize, len(pages))
		if err := c.fetchLeadWikitext(ctx, pages[start:end], contents); err != nil {
			return nil, err
		}
	}

	authors := make([]string, 0, len(pages))
	for _, p := range pages {
		authors = append(authors, scrapeAuthor(contents[p.ID]))
	}
	return authors, nil
}

// fetchLeadWikitext fetches the lead-section wikitext of one batch of pages
// into contents, keyed by page ID.
func (c *Client) fetchLeadWikitext(ctx context.Context, pages []wikicorpus.Page, contents map[int64]string) error {
	ids := make([]string, 0, len(pages))
	for _, p := range pages {
		ids = append(ids, strconv.FormatInt(p.ID, 10))
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "revisions")
	params.Set("rvprop", "content")
	params.Set("rvslots", "main")
	params.Set("rvsection", "0")
	params.Set("pageids", strings.Join(ids, "|"))

	var resp revisionsResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return err
	}
	if resp.Error != nil {
		return resp.Error.toError()
	}

	for _, p := range resp.Query.Pages {
		if p.Missing || len(p.Revisions) == 0 {
			continue
		}
		contents[p.PageID] = p.Revisions[0].Slots.Main.Content
	}
	return nil
}

// scrapeAuthor extracts the author value from lead-section wikitext.
func scrapeAuthor(wikitext string) string {
	field := authorFieldRe.FindString(wikitext)
	if field == "" {
		return noAuthor
	}

	value := strings.TrimSpace(strings.SplitN(field, "=", 2)[1])
	author := authorValueRe.FindString(value)
	if author == "" {
		return noAuthor
	}
	return strings.TrimSpace(author)
}
