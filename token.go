package wikicorpus

import "context"

// TokenCounter counts model tokens in text. Tokenization itself is an
// opaque capability provided by implementations; this module only consumes
// the counts for corpus statistics.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
