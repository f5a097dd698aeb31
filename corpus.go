package wikicorpus

import (
	"context"
	"strings"
	"time"
)

// Unbounded disables a traversal bound when stored on a Corpus.
const Unbounded = -1

// Corpus represents one corpus definition: a root category plus the bounds
// and extraction settings used to build it. Documents created by a build
// reference their corpus.
type Corpus struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	RootCategory string `json:"rootCategory"`
	Language     string `json:"language"`

	// PageThreshold stops descent below a category whose direct article
	// count reaches it; MaxDepth stops descent below the given level.
	// Either may be Unbounded.
	PageThreshold int `json:"pageThreshold"`
	MaxDepth      int `json:"maxDepth"`

	// Keywords holds newline-separated section title patterns. Empty means
	// every top-level section is extracted.
	Keywords string `json:"keywords"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the corpus contains invalid fields.
func (c *Corpus) Validate() error {
	if c.Name == "" {
		return Errorf(EINVALID, "corpus name required")
	}
	if c.RootCategory == "" {
		return Errorf(EINVALID, "corpus root category required")
	}
	if c.PageThreshold < Unbounded {
		return Errorf(EINVALID, "corpus page threshold must be non-negative or unbounded")
	}
	if c.MaxDepth < Unbounded {
		return Errorf(EINVALID, "corpus max depth must be non-negative or unbounded")
	}
	return nil
}

// KeywordList splits the stored keyword patterns, dropping empty lines.
func (c *Corpus) KeywordList() []string {
	var keywords []string
	for _, line := range strings.Split(c.Keywords, "\n") {
		if line != "" {
			keywords = append(keywords, line)
		}
	}
	return keywords
}

// CorpusService represents a service for managing corpus definitions.
type CorpusService interface {
	// CreateCorpus creates a new corpus.
	CreateCorpus(ctx context.Context, corpus *Corpus) error

	// FindCorpusByID retrieves a corpus by ID.
	// Returns ENOTFOUND if the corpus does not exist.
	FindCorpusByID(ctx context.Context, id string) (*Corpus, error)

	// FindCorpora retrieves corpora matching the filter.
	FindCorpora(ctx context.Context, filter CorpusFilter) ([]*Corpus, error)

	// UpdateCorpus updates an existing corpus.
	// Returns ENOTFOUND if the corpus does not exist.
	UpdateCorpus(ctx context.Context, id string, upd CorpusUpdate) (*Corpus, error)

	// DeleteCorpus permanently removes a corpus and all associated documents.
	// Returns ENOTFOUND if the corpus does not exist.
	DeleteCorpus(ctx context.Context, id string) error
}

// CorpusFilter represents a filter for FindCorpora.
type CorpusFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// CorpusUpdate represents fields that can be updated on a corpus.
type CorpusUpdate struct {
	Name          *string `json:"name"`
	RootCategory  *string `json:"rootCategory"`
	PageThreshold *int    `json:"pageThreshold"`
	MaxDepth      *int    `json:"maxDepth"`
	Keywords      *string `json:"keywords"`
}
