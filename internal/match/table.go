package match

import (
	"fmt"
	"strings"

	"github.com/ppiankov/tactica/internal/dictionary"
	"github.com/ppiankov/tactica/internal/model"
	"github.com/ppiankov/tactica/internal/worker"
)

const (
	// MatchedTermsColumn holds every matched phrase of a row
	MatchedTermsColumn = "matched_terms"
	// TacticsColumn holds the detected category names of a row
	TacticsColumn = "tactics"
)

// FlagFormat selects how category flags are written
type FlagFormat string

const (
	FlagBool FlagFormat = "bool" // true / false
	FlagInt  FlagFormat = "int"  // 1 / 0
)

// Options controls ClassifyTable
type Options struct {
	FlagFormat FlagFormat
	Separator  string // Joins matched terms and tactics
	Workers    int    // >1 classifies chunks in parallel
	ChunkSize  int
	Progress   func(rows int) // Called after each chunk; may run concurrently
}

// DefaultOptions returns single-threaded options with bool flags
func DefaultOptions() Options {
	return Options{
		FlagFormat: FlagBool,
		Separator:  "; ",
		Workers:    1,
		ChunkSize:  500,
	}
}

// ResolveTextColumn returns requested when set, otherwise the first of
// Statement, Context present in the table, otherwise the first column
func ResolveTextColumn(t *model.Table, requested string) (string, error) {
	if requested != "" {
		if !t.Has(requested) {
			return "", &model.ConfigurationError{
				Missing: []string{requested},
				Reason:  "text column not found; available: " + strings.Join(t.Columns(), ", "),
			}
		}
		return requested, nil
	}

	for _, candidate := range []string{"Statement", "Context"} {
		if t.Has(candidate) {
			return candidate, nil
		}
	}

	columns := t.Columns()
	if len(columns) == 0 {
		return "", &model.ConfigurationError{Reason: "table has no columns"}
	}
	return columns[0], nil
}

// ClassifyTable returns a copy of t with one flag column per category plus
// matched_terms and tactics columns. Columns that already exist are
// overwritten. Row order and count are preserved.
func ClassifyTable(t *model.Table, textColumn string, d *dictionary.Dictionary, opts Options) (*model.Table, error) {
	textIdx, ok := t.Index(textColumn)
	if !ok {
		return nil, &model.ConfigurationError{
			Missing: []string{textColumn},
			Reason:  "text column not found; available: " + strings.Join(t.Columns(), ", "),
		}
	}
	if opts.Separator == "" {
		opts.Separator = "; "
	}
	switch opts.FlagFormat {
	case "":
		opts.FlagFormat = FlagBool
	case FlagBool, FlagInt:
	default:
		return nil, &model.ConfigurationError{Reason: fmt.Sprintf("unknown flag format %q", opts.FlagFormat)}
	}

	out := t.Clone()

	names := d.Names()
	flagCols := make([]int, len(names))
	for i, name := range names {
		flagCols[i] = out.EnsureColumn(name)
	}
	termsCol := out.EnsureColumn(MatchedTermsColumn)
	tacticsCol := out.EnsureColumn(TacticsColumn)

	err := worker.ForEachChunk(out.Len(), opts.ChunkSize, opts.Workers, func(c worker.Chunk) error {
		for i := c.Start; i < c.End; i++ {
			result := Classify(out.At(i, textIdx), d)
			for j, f := range result.Flags {
				out.Set(i, flagCols[j], opts.FlagFormat.render(f.Detected))
			}
			out.Set(i, termsCol, model.Text(strings.Join(result.Matched, opts.Separator)))
			out.Set(i, tacticsCol, model.Text(strings.Join(result.Tactics(), opts.Separator)))
		}
		if opts.Progress != nil {
			opts.Progress(c.End - c.Start)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("classify rows: %w", err)
	}

	return out, nil
}

func (f FlagFormat) render(detected bool) model.Value {
	if f == FlagInt {
		if detected {
			return model.Scalar("1")
		}
		return model.Scalar("0")
	}
	if detected {
		return model.Scalar("true")
	}
	return model.Scalar("false")
}
