package worker

import (
	"context"
	"errors"
)

// Chunk is the half-open row range [Start, End)
type Chunk struct {
	Start int
	End   int
}

// Split divides n rows into consecutive chunks of at most size rows
func Split(n, size int) []Chunk {
	if size <= 0 {
		size = n
	}
	var chunks []Chunk
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		chunks = append(chunks, Chunk{Start: start, End: end})
	}
	return chunks
}

// ChunkJob applies fn to one chunk
type ChunkJob struct {
	Chunk Chunk
	Fn    func(Chunk) error
}

// Execute runs the chunk function unless the pool is shutting down
func (j *ChunkJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &ChunkResult{Chunk: j.Chunk, Error: err}
	}
	return &ChunkResult{Chunk: j.Chunk, Error: j.Fn(j.Chunk)}
}

// ChunkResult is the outcome of one ChunkJob
type ChunkResult struct {
	Chunk Chunk
	Error error
}

// GetError returns the error from the chunk
func (r *ChunkResult) GetError() error {
	return r.Error
}

// ForEachChunk runs fn over [0, n) in chunks of size on the given number of
// workers. fn must only touch rows inside its chunk; callers write into
// preallocated slots so output order never depends on scheduling.
// With one worker, chunks run sequentially on the calling goroutine.
func ForEachChunk(n, size, workers int, fn func(Chunk) error) error {
	chunks := Split(n, size)
	if len(chunks) == 0 {
		return nil
	}

	if workers <= 1 || len(chunks) == 1 {
		for _, c := range chunks {
			if err := fn(c); err != nil {
				return err
			}
		}
		return nil
	}

	if workers > len(chunks) {
		workers = len(chunks)
	}

	jobs := make([]Job, len(chunks))
	for i, c := range chunks {
		jobs[i] = &ChunkJob{Chunk: c, Fn: fn}
	}

	var errs []error
	for _, r := range NewPool(workers).Run(jobs) {
		if err := r.GetError(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
