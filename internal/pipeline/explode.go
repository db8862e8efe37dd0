package pipeline

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/ppiankov/tactica/internal/cache"
	"github.com/ppiankov/tactica/internal/explode"
	"github.com/ppiankov/tactica/internal/model"
	"github.com/ppiankov/tactica/internal/table"
)

// ExplodeSummary describes one explode run
type ExplodeSummary struct {
	RunID      string
	Input      string
	Output     string
	SourceRows int
	Sentences  int
	Empty      []string // IDs of rows that produced no sentence
	Cache      cache.Stats
	Duration   time.Duration
}

// RenameMapping merges the configured rename map with the rename file;
// file entries win
func (p *Pipeline) RenameMapping() (explode.Mapping, error) {
	cfg := p.config.Explode

	m := explode.Mapping{}
	maps.Copy(m, cfg.Rename)

	if cfg.RenameFile != "" {
		fromFile, err := explode.LoadMapping(cfg.RenameFile)
		if err != nil {
			return nil, err
		}
		maps.Copy(m, fromFile)
	}

	return m, nil
}

// ExplodeTable renames columns then emits one row per sentence
func (p *Pipeline) ExplodeTable(ctx context.Context, t *model.Table) (*model.Table, *ExplodeSummary, error) {
	start := time.Now()
	runID, log := p.newRun("explode")

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	mapping, err := p.RenameMapping()
	if err != nil {
		return nil, nil, fmt.Errorf("load rename mapping: %w", err)
	}

	renamed, err := explode.ApplyRename(t, mapping)
	if err != nil {
		return nil, nil, err
	}

	seg, err := p.segment()
	if err != nil {
		return nil, nil, err
	}

	report := progress(log, renamed.Len())
	opts := explode.Options{
		StripEmoji:  p.config.Explode.StripEmoji,
		StripMarkup: p.config.Explode.StripMarkup,
		Progress:    report,
	}

	log.Debug("exploding", "rows", renamed.Len(), "strip_emoji", opts.StripEmoji, "strip_markup", opts.StripMarkup)

	result, err := explode.New(seg).Explode(renamed, opts)
	if err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	summary := &ExplodeSummary{
		RunID:      runID,
		SourceRows: result.SourceRows,
		Sentences:  result.Sentences,
		Empty:      result.Empty,
		Cache:      seg.CacheStats(),
		Duration:   time.Since(start),
	}

	if len(result.Empty) > 0 {
		log.Warn("rows produced no sentences", "count", len(result.Empty), "ids", result.Empty)
	}
	log.Info("exploded", "rows", summary.SourceRows, "sentences", summary.Sentences,
		"cache_hits", summary.Cache.Hits, "duration", summary.Duration)

	return result.Table, summary, nil
}

// ExplodeFile reads input, explodes it and writes the result to output
func (p *Pipeline) ExplodeFile(ctx context.Context, input, output string) (*ExplodeSummary, error) {
	t, err := table.ReadFile(input, p.format)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	out, summary, err := p.ExplodeTable(ctx, t)
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
