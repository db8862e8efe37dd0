// Package match classifies text against trigger-phrase dictionaries.
//
// Matching is literal substring containment over the lowercased text, so
// "vip" matches inside "service".
package match

import (
	"strings"

	"github.com/ppiankov/tactica/internal/dictionary"
	"github.com/ppiankov/tactica/internal/model"
)

// Flag is the outcome for one category
type Flag struct {
	Category string
	Detected bool
}

// Result is the classification of one text value
type Result struct {
	Flags   []Flag   // One per category, in dictionary order
	Matched []string // Every matched phrase, in dictionary order, not deduplicated across categories
}

// Detected reports whether category was detected
func (r Result) Detected(category string) bool {
	for _, f := range r.Flags {
		if f.Category == category {
			return f.Detected
		}
	}
	return false
}

// Tactics returns the names of detected categories
func (r Result) Tactics() []string {
	var out []string
	for _, f := range r.Flags {
		if f.Detected {
			out = append(out, f.Category)
		}
	}
	return out
}

// Any reports whether at least one category was detected
func (r Result) Any() bool {
	for _, f := range r.Flags {
		if f.Detected {
			return true
		}
	}
	return false
}

// Classify matches a cell against every category of d. Only text cells are
// scanned; missing and scalar cells produce all-false flags.
func Classify(v model.Value, d *dictionary.Dictionary) Result {
	text, ok := v.AsText()
	if ok {
		return ClassifyText(text, d)
	}

	result := Result{Flags: make([]Flag, 0, d.Len())}
	d.Each(func(name string, _ []string) {
		result.Flags = append(result.Flags, Flag{Category: name})
	})
	return result
}

// ClassifyText matches a plain string against every category of d
func ClassifyText(text string, d *dictionary.Dictionary) Result {
	result := Result{Flags: make([]Flag, 0, d.Len())}
	lower := strings.ToLower(text)

	d.Each(func(name string, phrases []string) {
		flag := Flag{Category: name}
		for _, phrase := range phrases {
			if strings.Contains(lower, phrase) {
				flag.Detected = true
				result.Matched = append(result.Matched, phrase)
			}
		}
		result.Flags = append(result.Flags, flag)
	})

	return result
}
