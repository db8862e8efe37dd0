package worker

import (
	"context"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

// Pool manages a pool of workers that execute jobs concurrently.
// A Pool is single use: call Run once.
type Pool struct {
	workers    int
	jobQueue   chan Job
	results    chan Result
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
}

// NewPool creates a new worker pool with the specified number of workers
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan Job, workers*2),
		results:    make(chan Result, workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Workers returns the number of worker goroutines
func (p *Pool) Workers() int {
	return p.workers
}

// Run executes every job and returns the results in completion order.
// Jobs are fed and results drained concurrently, so any number of jobs
// fits through the bounded queues.
func (p *Pool) Run(jobs []Job) []Result {
	defer p.cancelFunc()

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	go func() {
		defer close(p.jobQueue)
		for _, job := range jobs {
			select {
			case <-p.ctx.Done():
				return
			case p.jobQueue <- job:
			}
		}
	}()

	go func() {
		p.wg.Wait()
		p.closeResults()
	}()

	results := make([]Result, 0, len(jobs))
	for result := range p.results {
		results = append(results, result)
	}

	return results
}

// worker is the worker goroutine that processes jobs
func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Shutdown cancels outstanding work; Run returns what finished so far
func (p *Pool) Shutdown() {
	p.cancelFunc()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
