package explode

import (
	"fmt"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"github.com/ppiankov/tactica/internal/cache"
)

// Segmenter splits text into sentences with the Punkt English model, which
// knows common abbreviations ("Mr.", "e.g.") and does not break on them
type Segmenter struct {
	mu        sync.Mutex
	tokenizer *sentences.DefaultSentenceTokenizer
	cache     cache.SentenceCache
}

// NewSegmenter loads the English model. A nil cache disables memoization.
func NewSegmenter(c cache.SentenceCache) (*Segmenter, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load sentence model: %w", err)
	}
	if c == nil {
		c = cache.Noop{}
	}
	return &Segmenter{tokenizer: tokenizer, cache: c}, nil
}

// Split returns the trimmed, non-empty sentences of text in order
func (s *Segmenter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if cached, ok := s.cache.Get(text); ok {
		return cached
	}

	s.mu.Lock()
	tokens := s.tokenizer.Tokenize(text)
	s.mu.Unlock()

	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if sentence := strings.TrimSpace(tok.Text); sentence != "" {
			out = append(out, sentence)
		}
	}

	s.cache.Set(text, out)
	return out
}

// CacheStats reports memoization counters
func (s *Segmenter) CacheStats() cache.Stats {
	return s.cache.Stats()
}
