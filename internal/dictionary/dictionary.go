// Package dictionary holds trigger-phrase dictionaries: ordered categories of
// lowercased phrases matched as substrings.
//
// A Dictionary is immutable. WithCategory and Merge return new values, so a
// dictionary handed to a classification run can never change under it.
package dictionary

import (
	"slices"
	"strings"
)

// Category is a named phrase set
type Category struct {
	Name    string
	Phrases []string // Normalized: trimmed, lowercased, deduplicated, non-empty
}

// Dictionary is an ordered mapping from category name to phrases
type Dictionary struct {
	categories []Category
}

// New builds a dictionary from categories, normalizing every phrase.
// A repeated category name replaces the earlier one in place.
func New(categories ...Category) *Dictionary {
	d := &Dictionary{}
	for _, c := range categories {
		d = d.WithCategory(c.Name, c.Phrases)
	}
	return d
}

// Default returns the built-in urgency/exclusivity dictionary
func Default() *Dictionary {
	return New(
		Category{
			Name: "urgency_marketing",
			Phrases: []string{
				"limited", "limited time", "limited run", "limited edition",
				"order now", "last chance", "hurry", "while supplies last",
				"before they're gone", "selling out", "selling fast", "act now",
				"don't wait", "today only", "expires soon", "final hours", "almost gone",
			},
		},
		Category{
			Name: "exclusive_marketing",
			Phrases: []string{
				"exclusive", "exclusively", "exclusive offer", "exclusive deal",
				"members only", "vip", "special access", "invitation only",
				"premium", "privileged", "limited access", "select customers",
				"insider", "private sale", "early access",
			},
		},
	)
}

// Categories returns the categories in order. The slices are copies.
func (d *Dictionary) Categories() []Category {
	out := make([]Category, len(d.categories))
	for i, c := range d.categories {
		out[i] = Category{Name: c.Name, Phrases: slices.Clone(c.Phrases)}
	}
	return out
}

// Names returns the category names in order
func (d *Dictionary) Names() []string {
	names := make([]string, len(d.categories))
	for i, c := range d.categories {
		names[i] = c.Name
	}
	return names
}

// Len returns the number of categories
func (d *Dictionary) Len() int {
	return len(d.categories)
}

// Phrases returns a copy of the phrases of one category
func (d *Dictionary) Phrases(name string) ([]string, bool) {
	for _, c := range d.categories {
		if c.Name == name {
			return slices.Clone(c.Phrases), true
		}
	}
	return nil, false
}

// Each calls fn for every category in order without copying.
// fn must not modify phrases.
func (d *Dictionary) Each(fn func(name string, phrases []string)) {
	for _, c := range d.categories {
		fn(c.Name, c.Phrases)
	}
}

// WithCategory returns a new dictionary where name holds phrases.
// An existing category keeps its position; a new one is appended.
func (d *Dictionary) WithCategory(name string, phrases []string) *Dictionary {
	next := &Dictionary{categories: make([]Category, 0, len(d.categories)+1)}
	replaced := false
	for _, c := range d.categories {
		if c.Name == name {
			next.categories = append(next.categories, Category{Name: name, Phrases: normalizePhrases(phrases)})
			replaced = true
			continue
		}
		next.categories = append(next.categories, c)
	}
	if !replaced {
		next.categories = append(next.categories, Category{Name: name, Phrases: normalizePhrases(phrases)})
	}
	return next
}

// Merge returns a new dictionary with every category of other applied on
// top of d via WithCategory
func (d *Dictionary) Merge(other *Dictionary) *Dictionary {
	next := d
	for _, c := range other.categories {
		next = next.WithCategory(c.Name, c.Phrases)
	}
	return next
}

// Equal reports whether both dictionaries hold the same categories and
// phrases in the same order
func (d *Dictionary) Equal(other *Dictionary) bool {
	if len(d.categories) != len(other.categories) {
		return false
	}
	for i, c := range d.categories {
		o := other.categories[i]
		if c.Name != o.Name || !slices.Equal(c.Phrases, o.Phrases) {
			return false
		}
	}
	return true
}

// normalizePhrases trims, lowercases and deduplicates, keeping first
// occurrence order and dropping empty phrases
func normalizePhrases(phrases []string) []string {
	seen := make(map[string]bool, len(phrases))
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
