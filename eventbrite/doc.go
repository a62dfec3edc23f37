// Package eventbrite provides a typed client for the Eventbrite v3 API.
//
// The package maps remote resources (events, venues, organizers, attendees,
// ticket classes, access codes, categories, media and users) onto plain Go
// structs and offers one handler per resource type.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Client: the entry point holding the token and the handler registry
//   - Handler: per-resource Get/List/Create/Update, plus resource-specific calls
//   - Request: a resource-relative request description and RequestOptions
//   - Page: the pagination wrapper returned by every list call
//   - Errors: structured error types for better error handling
//
// # Usage
//
// Create a new client with your OAuth token:
//
//	logger := zerolog.New(os.Stderr)
//	client, err := eventbrite.NewClient(
//		"your-oauth-token",
//		logger,
//		eventbrite.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Typed accessors
//	event, err := client.Events().Get(ctx, "123", nil)
//
//	// Generic dispatch by type
//	venue, err := eventbrite.Get[eventbrite.Venue](ctx, client, "456", nil)
//
//	// Event-scoped resources take the event in the options
//	codes, err := client.AccessCodes().List(ctx, &eventbrite.RequestOptions{EventID: "123"})
//
// # Pagination
//
// List calls return a single *Page. The caller drives paging by passing
// RequestOptions.Page:
//
//	opts := &eventbrite.RequestOptions{Page: 1}
//	for {
//		page, err := client.Events().List(ctx, opts)
//		if err != nil {
//			return err
//		}
//		// use page.Items
//		next, err := page.Pagination.NextPage()
//		if err != nil {
//			break
//		}
//		opts.Page = next
//	}
//
// # Error Handling
//
// The package defines several error types:
//
//   - APIError: non-2xx responses with status code and server message
//   - UnsupportedTypeError: no handler is registered for the requested type
//   - UnsupportedOperationError: the resource does not support the operation
//   - InvalidArgumentError: a required value such as the token was empty
//
// API errors can be classified with errors.Is:
//
//	if errors.Is(err, eventbrite.ErrNotFound) {
//		// Handle missing resource
//	}
//
// Nothing is retried; every error surfaces to the caller.
package eventbrite
