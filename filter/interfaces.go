package filter

import (
	"context"

	"github.com/s0up4200/evbrite/eventbrite"
)

// Filter defines the basic interface for event filters
type Filter interface {
	// Evaluate checks if an event matches the filter criteria
	Evaluate(event eventbrite.Event) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Match is Evaluate with the runtime error surfaced
	Match(event eventbrite.Event) (bool, error)

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

// Evaluator applies a filter to a slice of events
type Evaluator interface {
	Evaluate(ctx context.Context, filter CompiledFilter, events []eventbrite.Event) ([]eventbrite.Event, error)
}
