package mediawiki_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/wikicorpus"
	"github.com/fwojciec/wikicorpus/mediawiki"
	"github.com/fwojciec/wikicorpus/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passthroughConverter returns the HTML input unchanged.
func passthroughConverter() *mock.Converter {
	return &mock.Converter{
		ConvertFn: func(html string) (string, error) {
			return html, nil
		},
	}
}

func TestClient_SendsUserAgent(t *testing.T) {
	t.Parallel()

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`{"query":{"categorymembers":[]}}`))
	}))
	defer srv.Close()

	c := mediawiki.NewClient(passthroughConverter(),
		mediawiki.WithAPIURL(srv.URL),
		mediawiki.WithUserAgent("test-agent/1.0"),
	)

	_, err := c.CategoryMembers(context.Background(), "Category:Empty")

	require.NoError(t, err)
	assert.Equal(t, "test-agent/1.0", gotUA)
}

func TestClient_HTTPErrorIsUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := mediawiki.NewClient(passthroughConverter(), mediawiki.WithAPIURL(srv.URL))

	_, err := c.CategoryMembers(context.Background(), "Category:Mythology")

	require.Error(t, err)
	assert.Equal(t, wikicorpus.EUNAVAILABLE, wikicorpus.ErrorCode(err))
}

func TestClient_MalformedJSONIsInternal(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := mediawiki.NewClient(passthroughConverter(), mediawiki.WithAPIURL(srv.URL))

	_, err := c.Summary(context.Background(), "Ragnarok")

	require.Error(t, err)
	assert.Equal(t, wikicorpus.EINTERNAL, wikicorpus.ErrorCode(err))
}

func TestClient_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"query":{"categorymembers":[]}}`))
	}))
	defer srv.Close()

	c := mediawiki.NewClient(passthroughConverter(), mediawiki.WithAPIURL(srv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.CategoryMembers(ctx, "Category:Mythology")

	require.Error(t, err)
}
