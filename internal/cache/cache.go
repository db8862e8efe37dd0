package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// SentenceCache memoizes the segmentation of a text into sentences
type SentenceCache interface {
	Get(text string) ([]string, bool)
	Set(text string, sentences []string)
	Stats() Stats
}

// Stats counts cache lookups
type Stats struct {
	Hits   uint64
	Misses uint64
	Items  int
}

// Key generates a cache key from a text
func Key(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "tactica:v1:" + hex.EncodeToString(hash[:])
}

// Noop never stores anything
type Noop struct{}

func (Noop) Get(string) ([]string, bool) { return nil, false }
func (Noop) Set(string, []string)        {}
func (Noop) Stats() Stats                { return Stats{} }
