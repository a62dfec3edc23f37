package eventbrite

import (
	"context"
	"reflect"
)

// Handler translates the generic operations for one resource type into
// API calls. Operations a resource does not support return an
// *UnsupportedOperationError.
type Handler[T any] interface {
	// Get fetches a single resource by id
	Get(ctx context.Context, id string, opts *RequestOptions) (*T, error)

	// List fetches one page of resources
	List(ctx context.Context, opts *RequestOptions) (*Page[T], error)

	// Create creates entity remotely and returns the server's copy
	Create(ctx context.Context, entity *T, opts *RequestOptions) (*T, error)

	// Update pushes entity and returns the server's copy
	Update(ctx context.Context, entity *T, opts *RequestOptions) (*T, error)
}

// Compile-time checks that every registered handler satisfies Handler.
var (
	_ Handler[Event]       = (*EventHandler)(nil)
	_ Handler[Venue]       = (*VenueHandler)(nil)
	_ Handler[Organizer]   = (*OrganizerHandler)(nil)
	_ Handler[Attendee]    = (*AttendeeHandler)(nil)
	_ Handler[TicketClass] = (*TicketClassHandler)(nil)
	_ Handler[AccessCode]  = (*AccessCodeHandler)(nil)
	_ Handler[Category]    = (*CategoryHandler)(nil)
	_ Handler[Image]       = (*MediaHandler)(nil)
	_ Handler[User]        = (*UserHandler)(nil)
)

// HandlerFor returns the handler registered for T, or an
// *UnsupportedTypeError when there is none.
func HandlerFor[T any](c *Client) (Handler[T], error) {
	var h any
	switch any((*T)(nil)).(type) {
	case *Event:
		h = c.events
	case *Venue:
		h = c.venues
	case *Organizer:
		h = c.organizers
	case *Attendee:
		h = c.attendees
	case *TicketClass:
		h = c.ticketClasses
	case *AccessCode:
		h = c.accessCodes
	case *Category:
		h = c.categories
	case *Image:
		h = c.media
	case *User:
		h = c.users
	default:
		return nil, &UnsupportedTypeError{Type: reflect.TypeFor[T]().String()}
	}
	return h.(Handler[T]), nil
}

// Get fetches the resource of type T with the given id
func Get[T any](ctx context.Context, c *Client, id string, opts *RequestOptions) (*T, error) {
	h, err := HandlerFor[T](c)
	if err != nil {
		return nil, err
	}
	return h.Get(ctx, id, opts)
}

// List fetches one page of resources of type T
func List[T any](ctx context.Context, c *Client, opts *RequestOptions) (*Page[T], error) {
	h, err := HandlerFor[T](c)
	if err != nil {
		return nil, err
	}
	return h.List(ctx, opts)
}

// Create creates entity through the handler registered for T
func Create[T any](ctx context.Context, c *Client, entity *T, opts *RequestOptions) (*T, error) {
	h, err := HandlerFor[T](c)
	if err != nil {
		return nil, err
	}
	return h.Create(ctx, entity, opts)
}

// Update pushes entity through the handler registered for T
func Update[T any](ctx context.Context, c *Client, entity *T, opts *RequestOptions) (*T, error) {
	h, err := HandlerFor[T](c)
	if err != nil {
		return nil, err
	}
	return h.Update(ctx, entity, opts)
}

// resource holds the request plumbing shared by all handlers
type resource[T any] struct {
	client *Client
	// name is the singular wire name, used as the request body envelope key
	name string
	// listKey is the key list responses carry their items under
	listKey string
}

func (r *resource[T]) fetch(ctx context.Context, req *Request) (*T, error) {
	var out T
	if err := r.client.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *resource[T]) fetchPage(ctx context.Context, req *Request) (*Page[T], error) {
	body, err := r.client.doRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	page, err := decodePage[T](body, r.listKey)
	if err != nil {
		return nil, err
	}

	r.client.logger.Debug().
		Str("resource", r.name).
		Int("page", page.Pagination.PageNumber).
		Int("pages", page.Pagination.PageCount).
		Int("count", len(page.Items)).
		Msg("Retrieved page")

	return page, nil
}

// push sends entity wrapped in its envelope, e.g. {"event": {...}}
func (r *resource[T]) push(ctx context.Context, req *Request, entity *T) (*T, error) {
	if entity == nil {
		return nil, required(r.name)
	}
	return r.fetch(ctx, req.WithBody(map[string]any{r.name: entity}))
}

func (r *resource[T]) unsupported(operation string) error {
	return unsupported(r.name, operation)
}

// eventScope resolves the parent event id of an event-scoped resource
func eventScope(opts *RequestOptions, fallback string) (string, error) {
	if id := opts.eventID(); id != "" {
		return id, nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", &InvalidArgumentError{Argument: "event_id", Reason: "resource is scoped to an event"}
}

func requireID(id string) error {
	if id == "" {
		return required("id")
	}
	return nil
}
