package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FileFunc processes one input file into one output file
type FileFunc[S any] func(ctx context.Context, input, output string) (S, error)

// FileJob represents one file of a batch
type FileJob[S any] struct {
	Index  int
	Input  string
	Output string
	Fn     FileFunc[S]
}

// Execute executes the file job
func (j *FileJob[S]) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &FileResult[S]{Index: j.Index, Input: j.Input, Output: j.Output, Error: err}
	}
	summary, err := j.Fn(ctx, j.Input, j.Output)
	return &FileResult[S]{
		Index:   j.Index,
		Input:   j.Input,
		Output:  j.Output,
		Summary: summary,
		Error:   err,
	}
}

// FileResult represents the result of a file job
type FileResult[S any] struct {
	Index   int
	Input   string
	Output  string
	Summary S
	Error   error
}

// GetError returns the error from the file result
func (r *FileResult[S]) GetError() error {
	return r.Error
}

// BatchProcessor processes multiple files concurrently
type BatchProcessor[S any] struct {
	fn          FileFunc[S]
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor[S any](fn func(ctx context.Context, input, output string) (S, error), concurrency int) *BatchProcessor[S] {
	return &BatchProcessor[S]{
		fn:          fn,
		concurrency: concurrency,
	}
}

// ProcessFiles runs every input and returns results in input order.
// Outputs are written to outputDir as <stem><suffix>.csv. Cancelling ctx
// stops the batch; files that never ran report the context error.
func (b *BatchProcessor[S]) ProcessFiles(ctx context.Context, inputs []string, outputDir, suffix string) []*FileResult[S] {
	if len(inputs) == 0 {
		return []*FileResult[S]{}
	}

	outputs := OutputPaths(inputs, outputDir, suffix)

	ordered := make([]*FileResult[S], len(inputs))
	if err := ctx.Err(); err != nil {
		for i, input := range inputs {
			ordered[i] = &FileResult[S]{Index: i, Input: input, Output: outputs[i], Error: err}
		}
		return ordered
	}

	jobs := make([]Job, len(inputs))
	for i, input := range inputs {
		jobs[i] = &FileJob[S]{Index: i, Input: input, Output: outputs[i], Fn: b.fn}
	}

	pool := NewPool(b.concurrency)
	stop := context.AfterFunc(ctx, pool.Shutdown)
	defer stop()

	for _, r := range pool.Run(jobs) {
		fr := r.(*FileResult[S])
		ordered[fr.Index] = fr
	}

	for i, fr := range ordered {
		if fr == nil {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			ordered[i] = &FileResult[S]{Index: i, Input: inputs[i], Output: outputs[i], Error: err}
		}
	}

	return ordered
}

// OutputPaths maps each input to outputDir/<stem><suffix>.csv, numbering
// repeated stems so no two inputs share an output
func OutputPaths(inputs []string, outputDir, suffix string) []string {
	used := make(map[string]int, len(inputs))
	out := make([]string, len(inputs))

	for i, input := range inputs {
		base := filepath.Base(input)
		stem := strings.TrimSuffix(base, filepath.Ext(base))

		name := stem + suffix
		used[name]++
		if n := used[name]; n > 1 {
			name += "-" + strconv.Itoa(n)
		}
		out[i] = filepath.Join(outputDir, name+".csv")
	}

	return out
}

// ReadPathsFromFile reads input paths from a file (one per line)
func ReadPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Deduplicate paths
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
