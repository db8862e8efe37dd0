// Package explode splits multi-sentence text fields into one row per
// sentence and normalizes each sentence for downstream analysis.
package explode

import (
	"strconv"
	"sync"

	"github.com/ppiankov/tactica/internal/model"
)

// Column names of the exploded table. ID and Context are also the columns
// a source table must have after renaming.
const (
	IDColumn         = "ID"
	SentenceIDColumn = "Sentence_ID"
	ContextColumn    = "Context"
	SentenceColumn   = "Sentence"
)

// Options controls Explode
type Options struct {
	StripEmoji  bool
	StripMarkup bool // Extract visible text from HTML before segmenting
	Progress    func(row int)
}

// Result is an exploded table plus per-run counts
type Result struct {
	Table      *model.Table
	SourceRows int
	Sentences  int
	Empty      []string // IDs of source rows that produced no sentence
}

// Exploder applies segmentation and cleanup to tables
type Exploder struct {
	segmenter *Segmenter
}

// New creates an exploder around a segmenter
func New(segmenter *Segmenter) *Exploder {
	return &Exploder{segmenter: segmenter}
}

// Explode emits one row per sentence of each row's Context, numbered from 1
// within that row. Missing text produces no rows; scalar text is segmented
// in its textual form. Fails before processing if ID or Context is absent.
func (e *Exploder) Explode(t *model.Table, opts Options) (*Result, error) {
	if err := checkRequired(t); err != nil {
		return nil, err
	}
	idIdx, _ := t.Index(IDColumn)
	ctxIdx, _ := t.Index(ContextColumn)

	out, err := model.NewTable([]string{IDColumn, SentenceIDColumn, ContextColumn, SentenceColumn})
	if err != nil {
		return nil, err
	}

	result := &Result{Table: out, SourceRows: t.Len()}

	for i := 0; i < t.Len(); i++ {
		id := t.At(i, idIdx)
		source := t.At(i, ctxIdx)

		text := source.String()
		if opts.StripMarkup {
			text = VisibleText(text)
		}

		n := 0
		for _, raw := range e.segmenter.Split(text) {
			sentence := CleanSentence(raw, opts.StripEmoji)
			if sentence == "" {
				continue
			}
			n++
			if err := out.Append(id, model.Scalar(strconv.Itoa(n)), source, model.Text(sentence)); err != nil {
				return nil, err
			}
		}

		result.Sentences += n
		if n == 0 {
			result.Empty = append(result.Empty, id.String())
		}
		if opts.Progress != nil {
			opts.Progress(i + 1)
		}
	}

	return result, nil
}

var defaultSegmenter = sync.OnceValues(func() (*Segmenter, error) {
	return NewSegmenter(nil)
})

// Explode runs a one-off explode with an uncached segmenter
func Explode(t *model.Table, opts Options) (*model.Table, error) {
	seg, err := defaultSegmenter()
	if err != nil {
		return nil, err
	}
	result, err := New(seg).Explode(t, opts)
	if err != nil {
		return nil, err
	}
	return result.Table, nil
}
