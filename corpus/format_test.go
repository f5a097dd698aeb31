package corpus_test

import (
	"testing"

	"github.com/fwojciec/wikicorpus/corpus"
	"github.com/stretchr/testify/assert"
)

func TestTruncateTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Ragnarok", corpus.TruncateTitle("Ragnarok", 20))
	assert.Equal(t, "Norse mythology a...", corpus.TruncateTitle("Norse mythology and religion", 20))
	assert.Equal(t, "", corpus.TruncateTitle("Ragnarok", 0))
	assert.Equal(t, "Rag", corpus.TruncateTitle("Ragnarok", 3))
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", corpus.FormatBytes(512))
	assert.Equal(t, "1.5 KB", corpus.FormatBytes(1536))
	assert.Equal(t, "2.0 MB", corpus.FormatBytes(2*1024*1024))
}

func TestFormatTokens(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "~999 tokens", corpus.FormatTokens(999))
	assert.Equal(t, "~2k tokens", corpus.FormatTokens(1500))
}
