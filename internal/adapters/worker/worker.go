// Package worker runs independent tasks on a fixed number of goroutines and
// collects their results by input position.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/swingsheet/pkg/logger"
)

const defaultPoolSize = 5

// Task computes the result for slot i.
type Task[T any] func(ctx context.Context, i int) (T, error)

// Result is the outcome of one slot. Err is set when the task failed, timed
// out, panicked, or never ran because ctx was done.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the slot holds a value.
func (r Result[T]) OK() bool { return r.Err == nil }

// Pool is a fixed-size worker pool.
type Pool struct {
	name        string
	size        int
	taskTimeout time.Duration
	logger      logger.Logger
}

// NewPool creates a new pool with configuration options.
func NewPool(opts ...Option) *Pool {
	p := &Pool{
		name:   "pool",
		size:   defaultPoolSize,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Size returns the configured concurrency.
func (p *Pool) Size() int { return p.size }

// Map runs task for every slot in [0, n) and returns n results in slot
// order. Each worker writes only the slots it took, so no locking is needed
// on the result buffer. A failing slot never affects the others.
func Map[T any](ctx context.Context, p *Pool, n int, task Task[T]) []Result[T] {
	results := make([]Result[T], n)
	if n == 0 {
		return results
	}

	jobs := make(chan int, n)
	for i := range n {
		jobs <- i
	}
	close(jobs)

	workers := min(p.size, n)
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = runTask(ctx, p, i, task)
			}
		}()
	}
	wg.Wait()
	return results
}

func runTask[T any](ctx context.Context, p *Pool, i int, task Task[T]) (res Result[T]) {
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	tctx := ctx
	if p.taskTimeout > 0 {
		var cancel context.CancelFunc
		tctx, cancel = context.WithTimeout(ctx, p.taskTimeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			res = Result[T]{Err: fmt.Errorf("%w: %v", ErrTaskPanicked, r)}
		}
		if res.Err != nil {
			p.logger.Debug(ctx, "task failed",
				logger.String("pool", p.name), logger.Int("slot", i), logger.Error(res.Err))
		}
	}()

	v, err := task(tctx, i)
	if err != nil {
		return Result[T]{Err: err}
	}
	return Result[T]{Value: v}
}
