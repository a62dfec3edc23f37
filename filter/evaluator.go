package filter

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/evbrite/eventbrite"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of concurrent chunk evaluations
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if workers > 0 {
			e.workers = workers
		}
	}
}

// WithBatchSize sets the minimum chunk size; smaller inputs run sequentially
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// ConcurrentEvaluator applies a filter to events, splitting large inputs
// into chunks evaluated on an errgroup. Output keeps input order.
type ConcurrentEvaluator struct {
	workers   int
	batchSize int
}

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workers:   runtime.GOMAXPROCS(0),
		batchSize: 100,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate returns the events the filter matches
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, filter CompiledFilter, events []eventbrite.Event) ([]eventbrite.Event, error) {
	if len(events) == 0 {
		return []eventbrite.Event{}, nil
	}

	if len(events) < e.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return matchAll(filter, events), nil
	}

	chunkSize := max(len(events)/e.workers, e.batchSize)
	chunks := make([][]eventbrite.Event, (len(events)+chunkSize-1)/chunkSize)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i := range chunks {
		start := i * chunkSize
		end := min(start+chunkSize, len(events))

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// Each goroutine owns its own slot
			chunks[i] = matchAll(filter, events[start:end])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	matches := make([]eventbrite.Event, 0, len(events)/4)
	for _, chunk := range chunks {
		matches = append(matches, chunk...)
	}
	return matches, nil
}

func matchAll(filter CompiledFilter, events []eventbrite.Event) []eventbrite.Event {
	matches := make([]eventbrite.Event, 0, len(events)/4)
	for _, event := range events {
		if filter.Evaluate(event) {
			matches = append(matches, event)
		}
	}
	return matches
}
