// Sample program showing sentence splitting and tactic detection on a few
// captions with the built-in dictionary
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/tactica/internal/dictionary"
	"github.com/ppiankov/tactica/internal/explode"
	"github.com/ppiankov/tactica/internal/match"
	"github.com/ppiankov/tactica/internal/model"
)

func main() {
	fmt.Println("=== Tactic Detection Sample ===")
	fmt.Println()

	captions := []struct {
		id   string
		text string
	}{
		{"p1", "New drop is here! Limited edition, only 50 pieces. Don’t wait 🔥"},
		{"p2", "VIP members get early access tonight. Mr. Lee will host the stream."},
		{"p3", "Thanks for 10k followers, love you all"},
	}

	in, err := model.NewTable([]string{explode.IDColumn, explode.ContextColumn})
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(1)
	}
	for _, c := range captions {
		_ = in.Append(model.Text(c.id), model.Text(c.text))
	}

	sentences, err := explode.Explode(in, explode.Options{StripEmoji: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ explode: %v\n", err)
		os.Exit(1)
	}

	d := dictionary.Default()
	for i := 0; i < sentences.Len(); i++ {
		id := sentences.Get(i, explode.IDColumn).String()
		n := sentences.Get(i, explode.SentenceIDColumn).String()
		text := sentences.Get(i, explode.SentenceColumn).String()

		result := match.ClassifyText(text, d)
		if result.Any() {
			fmt.Printf("  ⚠️  %s.%s %s\n", id, n, text)
			fmt.Printf("     - tactics: %s\n", strings.Join(result.Tactics(), ", "))
			fmt.Printf("     - terms:   %s\n", strings.Join(result.Matched, ", "))
		} else {
			fmt.Printf("  ✓ %s.%s %s\n", id, n, text)
		}
	}

	fmt.Println()
	fmt.Println("=== Sample Complete ===")
	fmt.Println()
	fmt.Println("Note: matching is substring based, so \"vip\" also fires inside longer words.")
}
