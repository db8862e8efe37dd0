package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const banner = "═══════════════════════════════════════════════════════════"

// maxListedIDs caps the empty-row IDs printed in a summary
const maxListedIDs = 10

// RenderClassifySummary writes a human-readable summary of a classify run
func RenderClassifySummary(w io.Writer, s *ClassifySummary) {
	header(w, "Classification Complete")

	fmt.Fprintf(w, "  Run:          %s\n", s.RunID)
	fmt.Fprintf(w, "  Input:        %s\n", s.Input)
	fmt.Fprintf(w, "  Output:       %s\n", s.Output)
	fmt.Fprintf(w, "  Text column:  %s\n", s.TextColumn)
	fmt.Fprintf(w, "  Rows:         %d\n", s.Rows)
	fmt.Fprintf(w, "  Flagged:      %d\n", s.Flagged)
	fmt.Fprintf(w, "  Duration:     %v\n", s.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "\n")

	if len(s.Categories) == 0 {
		fmt.Fprintf(w, "  (dictionary has no categories)\n")
	}
	for _, name := range s.Categories {
		fmt.Fprintf(w, "  %-28s %d\n", name, s.Detected[name])
	}

	if s.Fallback {
		fmt.Fprintf(w, "\n")
		fmt.Fprintf(w, "✗ Dictionary failed to parse; classified with the last known-good dictionary\n")
	}
	fmt.Fprintf(w, "\n")
}

// RenderExplodeSummary writes a human-readable summary of an explode run
func RenderExplodeSummary(w io.Writer, s *ExplodeSummary) {
	header(w, "Explode Complete")

	fmt.Fprintf(w, "  Run:          %s\n", s.RunID)
	fmt.Fprintf(w, "  Input:        %s\n", s.Input)
	fmt.Fprintf(w, "  Output:       %s\n", s.Output)
	fmt.Fprintf(w, "  Source rows:  %d\n", s.SourceRows)
	fmt.Fprintf(w, "  Sentences:    %d\n", s.Sentences)
	fmt.Fprintf(w, "  Cache:        %d hits, %d misses\n", s.Cache.Hits, s.Cache.Misses)
	fmt.Fprintf(w, "  Duration:     %v\n", s.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "\n")

	if len(s.Empty) > 0 {
		ids := s.Empty
		more := ""
		if len(ids) > maxListedIDs {
			more = fmt.Sprintf(" (+%d more)", len(ids)-maxListedIDs)
			ids = ids[:maxListedIDs]
		}
		fmt.Fprintf(w, "✗ %d row(s) produced no sentences: %s%s\n", len(s.Empty), strings.Join(ids, ", "), more)
		fmt.Fprintf(w, "\n")
	}
}

func header(w io.Writer, title string) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "%s\n", banner)
	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintf(w, "%s\n", banner)
	fmt.Fprintf(w, "\n")
}
