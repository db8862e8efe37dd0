package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/tactica/internal/cache"
	"github.com/ppiankov/tactica/internal/dictionary"
	"github.com/ppiankov/tactica/internal/explode"
	"github.com/ppiankov/tactica/internal/logger"
	"github.com/ppiankov/tactica/internal/model"
	"github.com/ppiankov/tactica/internal/table"
	"golang.org/x/time/rate"
)

const progressInterval = 2 * time.Second

// Pipeline orchestrates classify and explode runs over CSV tables
type Pipeline struct {
	config *model.Config
	logger *slog.Logger
	format table.Format

	mu       sync.Mutex
	lastGood *dictionary.Dictionary // Used when a dictionary fails to parse under the fallback policy

	segOnce   sync.Once
	segmenter *explode.Segmenter
	segErr    error
}

// NewPipeline creates a pipeline for the given configuration
func NewPipeline(cfg *model.Config, log *slog.Logger) (*Pipeline, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if log == nil {
		log = logger.Discard()
	}

	format, err := table.FormatFromConfig(cfg.CSV)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		config:   cfg,
		logger:   log,
		format:   format,
		lastGood: dictionary.Default(),
	}, nil
}

// Config returns the configuration the pipeline runs with
func (p *Pipeline) Config() *model.Config {
	return p.config
}

// newRun returns a logger tagged with a fresh run id
func (p *Pipeline) newRun(op string) (string, *slog.Logger) {
	id := uuid.NewString()
	return id, p.logger.With("run", id, "op", op)
}

// progress returns a callback that logs the running row count at most once
// per interval
func progress(log *slog.Logger, total int) func(done int) {
	every := rate.Sometimes{Interval: progressInterval}
	return func(done int) {
		every.Do(func() {
			log.Info("progress", "rows", done, "total", total)
		})
	}
}

// Dictionary resolves the dictionary from configuration: the dictionary file
// (or the built-in default), then per-category line files replacing or
// adding categories. A ParseError halts unless the policy is fallback, in
// which case the last dictionary that loaded successfully is returned.
func (p *Pipeline) Dictionary() (d *dictionary.Dictionary, fellBack bool, err error) {
	d, err = p.loadDictionary()
	if err == nil {
		p.mu.Lock()
		p.lastGood = d
		p.mu.Unlock()
		return d, false, nil
	}

	var parseErr *model.ParseError
	if !errors.As(err, &parseErr) || p.config.Classify.OnParseError != "fallback" {
		return nil, false, err
	}

	p.logger.Warn("dictionary failed to parse, using last known-good dictionary",
		"source", parseErr.Source, "reason", parseErr.Reason)

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastGood, true, nil
}

func (p *Pipeline) loadDictionary() (*dictionary.Dictionary, error) {
	cfg := p.config.Classify

	d := dictionary.Default()
	if cfg.DictionaryFile != "" {
		loaded, err := dictionary.Load(cfg.DictionaryFile)
		if err != nil {
			return nil, err
		}
		d = loaded
	}

	for _, name := range slices.Sorted(maps.Keys(cfg.CategoryFiles)) {
		override, err := dictionary.LoadCategory(name, cfg.CategoryFiles[name])
		if err != nil {
			return nil, err
		}
		d = d.Merge(override)
	}

	return d, nil
}

// segment returns the shared segmenter, built once so its cache lives as
// long as the pipeline
func (p *Pipeline) segment() (*explode.Segmenter, error) {
	p.segOnce.Do(func() {
		var c cache.SentenceCache = cache.Noop{}
		if size := p.config.Explode.CacheSize; size > 0 {
			c = cache.NewMemoryCache(size)
		}
		p.segmenter, p.segErr = explode.NewSegmenter(c)
	})
	if p.segErr != nil {
		return nil, fmt.Errorf("create segmenter: %w", p.segErr)
	}
	return p.segmenter, nil
}
