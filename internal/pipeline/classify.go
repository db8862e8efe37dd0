package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ppiankov/tactica/internal/match"
	"github.com/ppiankov/tactica/internal/model"
	"github.com/ppiankov/tactica/internal/table"
)

// ClassifySummary describes one classify run
type ClassifySummary struct {
	RunID      string
	Input      string
	Output     string
	TextColumn string
	Rows       int
	Categories []string
	Detected   map[string]int // Rows flagged per category
	Flagged    int            // Rows with at least one detected category
	Fallback   bool           // Last known-good dictionary was used
	Duration   time.Duration
}

// ClassifyTable flags every row of t against the configured dictionary.
// Configuration problems surface before any row is processed.
func (p *Pipeline) ClassifyTable(ctx context.Context, t *model.Table) (*model.Table, *ClassifySummary, error) {
	start := time.Now()
	runID, log := p.newRun("classify")

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	cfg := p.config.Classify
	column, err := match.ResolveTextColumn(t, cfg.TextColumn)
	if err != nil {
		return nil, nil, err
	}

	d, fellBack, err := p.Dictionary()
	if err != nil {
		return nil, nil, fmt.Errorf("load dictionary: %w", err)
	}

	log.Debug("classifying", "rows", t.Len(), "column", column, "categories", d.Len())

	opts := match.Options{
		FlagFormat: match.FlagFormat(cfg.FlagFormat),
		Separator:  cfg.TermSeparator,
		Workers:    p.config.Concurrency.Workers,
		ChunkSize:  p.config.Concurrency.ChunkSize,
	}
	var done atomic.Int64
	report := progress(log, t.Len())
	opts.Progress = func(rows int) {
		report(int(done.Add(int64(rows))))
	}

	out, err := match.ClassifyTable(t, column, d, opts)
	if err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	summary := &ClassifySummary{
		RunID:      runID,
		TextColumn: column,
		Rows:       out.Len(),
		Categories: d.Names(),
		Detected:   make(map[string]int, d.Len()),
		Fallback:   fellBack,
	}
	countDetections(out, summary)
	summary.Duration = time.Since(start)

	log.Info("classified", "rows", summary.Rows, "flagged", summary.Flagged, "fallback", fellBack,
		"duration", summary.Duration)

	return out, summary, nil
}

// ClassifyFile reads input, classifies it and writes the result to output
func (p *Pipeline) ClassifyFile(ctx context.Context, input, output string) (*ClassifySummary, error) {
	t, err := table.ReadFile(input, p.format)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	out, summary, err := p.ClassifyTable(ctx, t)
	if err != nil {
		return nil, err
	}

	if err := table.WriteFile(output, out, p.format); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}

	summary.Input = input
	summary.Output = output
	return summary, nil
}

func countDetections(out *model.Table, s *ClassifySummary) {
	cols := make([]int, len(s.Categories))
	for i, name := range s.Categories {
		cols[i], _ = out.Index(name)
	}

	for row := 0; row < out.Len(); row++ {
		hit := false
		for i, name := range s.Categories {
			if flagged(out.At(row, cols[i])) {
				s.Detected[name]++
				hit = true
			}
		}
		if hit {
			s.Flagged++
		}
	}
}

func flagged(v model.Value) bool {
	switch v.String() {
	case "true", "1":
		return true
	default:
		return false
	}
}
