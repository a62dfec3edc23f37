package filter

import (
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/evbrite/eventbrite"
)

// dateLayouts are tried in order by parseDate
var dateLayouts = []string{"2006-01-02", "2006-01-02T15:04:05", time.RFC3339}

var defaultCompiler = NewExprCompiler(WithCache(256))

// CompileFilter compiles an expression with the shared caching compiler
func CompileFilter(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	custom     map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[CompiledFilter](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.custom, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		custom: make(map[string]any),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements CachingCompiler for expr-based filters
type exprCompiler struct {
	custom map[string]any
	cache  *lruCache[CompiledFilter]
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Type-check against the env of a zero event; unknown names are errors
	program, err := expr.Compile(expression,
		expr.Env(eventEnv(eventbrite.Event{}, c.custom)),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		custom:     c.custom,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Evaluate reports whether the event matches; runtime errors count as no match
func (f *exprFilter) Evaluate(event eventbrite.Event) bool {
	ok, err := f.Match(event)
	return err == nil && ok
}

// Match runs the filter against an event
func (f *exprFilter) Match(event eventbrite.Event) (bool, error) {
	result, err := expr.Run(f.program, eventEnv(event, f.custom))
	if err != nil {
		return false, &EvaluationError{Expression: f.expression, EventID: event.ID, Err: err}
	}

	// AsBool guarantees the type
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// addHelperFunctions adds the event-independent helpers to env
func addHelperFunctions(env map[string]any) {
	// Date helpers
	env["daysUntil"] = func(t time.Time) int {
		return int(time.Until(t).Hours() / 24)
	}
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["daysFromNow"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, days)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["parseDate"] = parseDate
	// String helpers
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	// Current time
	env["now"] = time.Now
}

// parseDate parses a date or naive datetime as UTC; invalid input yields the zero time
func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// eventEnv builds the evaluation environment for one event
func eventEnv(event eventbrite.Event, custom map[string]any) map[string]any {
	env := make(map[string]any, 48)

	addHelperFunctions(env)
	maps.Copy(env, custom)

	start := instant(event.Start)
	end := instant(event.End)

	env["Event"] = event

	// Event-specific helpers
	env["isPublic"] = func() bool {
		return event.Status.IsPublic()
	}
	env["startsBefore"] = func(t time.Time) bool {
		return !start.IsZero() && start.Before(t)
	}
	env["startsAfter"] = func(t time.Time) bool {
		return !start.IsZero() && start.After(t)
	}
	env["startsWithin"] = func(days int) bool {
		return !start.IsZero() && start.After(time.Now()) && start.Before(time.Now().AddDate(0, 0, days))
	}

	// Direct event properties for convenience
	env["ID"] = event.ID
	env["Name"] = event.Title()
	env["Summary"] = event.Summary
	env["Status"] = string(event.Status)
	env["Start"] = start
	env["End"] = end
	env["Timezone"] = timezone(event.Start)
	env["IsFree"] = event.IsFree
	env["Capacity"] = event.Capacity
	env["OnlineEvent"] = event.OnlineEvent
	env["Listed"] = event.Listed
	env["InviteOnly"] = event.InviteOnly
	env["Currency"] = event.Currency
	env["OrganizerID"] = event.OrganizerID
	env["VenueID"] = event.VenueID
	env["CategoryID"] = event.CategoryID
	env["URL"] = event.URL

	return env
}

func instant(d *eventbrite.DateTimeTZ) time.Time {
	if d.IsZero() {
		return time.Time{}
	}
	return d.UTC
}

func timezone(d *eventbrite.DateTimeTZ) string {
	if d == nil {
		return ""
	}
	return d.Timezone
}
