package mediawiki

import (
	"context"
	"net/url"
	"strings"

	"github.com/fwojciec/wikicorpus"
)

// categoryMembersLimit is the per-request member cap; the API allows up to
// 500 for anonymous clients.
const categoryMembersLimit = "500"

type categoryMembersResponse struct {
	Error    *apiError `json:"error"`
	Continue *struct {
		CMContinue string `json:"cmcontinue"`
	} `json:"continue"`
	Query struct {
		CategoryMembers []struct {
			PageID int64  `json:"pageid"`
			NS     int    `json:"ns"`
			Title  string `json:"title"`
		} `json:"categorymembers"`
	} `json:"query"`
}

// CategoryMembers returns the direct members of a category in listing
// order, following API continuation until the listing is complete. The
// category may be given with or without its "Category:" prefix.
func (c *Client) CategoryMembers(ctx context.Context, category string) ([]wikicorpus.Page, error) {
	title := category
	if !strings.HasPrefix(title, "Category:") {
		title = "Category:" + title
	}

	var pages []wikicorpus.Page
	cont := ""
	for {
		params := url.Values{}
		params.Set("action", "query")
		params.Set("list", "categorymembers")
		params.Set("cmtitle", title)
		params.Set("cmprop", "ids|title|ns")
		params.Set("cmlimit", categoryMembersLimit)
		if cont != "" {
			params.Set("cmcontinue", cont)
		}

		var resp categoryMembersResponse
		if err := c.get(ctx, params, &resp); err != nil {
			return nil, err
		}
		if resp.Error != nil {
			return nil, resp.Error.toError()
		}

		for _, m := range resp.Query.CategoryMembers {
			pages = append(pages, wikicorpus.Page{
				ID:        m.PageID,
				Title:     m.Title,
				Namespace: wikicorpus.Namespace(m.NS),
			})
		}

		if resp.Continue == nil || resp.Continue.CMContinue == "" {
			return pages, nil
		}
		cont = resp.Continue.CMContinue
	}
}
