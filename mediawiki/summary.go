package mediawiki

import (
	"context"
	"net/url"
	"strings"

	"github.com/fwojciec/wikicorpus"
)

type extractsResponse struct {
	Error *apiError `json:"error"`
	Query struct {
		Pages []struct {
			PageID  int64  `json:"pageid"`
			Title   string `json:"title"`
			Missing bool   `json:"missing"`
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

// Summary returns the article's lead text as plain text, via the
// TextExtracts API.
func (c *Client) Summary(ctx context.Context, title string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "extracts")
	params.Set("exintro", "1")
	params.Set("explaintext", "1")
	params.Set("redirects", "1")
	params.Set("titles", title)

	var resp extractsResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", resp.Error.toError()
	}

	if len(resp.Query.Pages) == 0 || resp.Query.Pages[0].Missing {
		return "", wikicorpus.Errorf(wikicorpus.ENOTFOUND, "page %q not found", title)
	}

	return strings.TrimSpace(resp.Query.Pages[0].Extract), nil
}
