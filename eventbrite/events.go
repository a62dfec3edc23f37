package eventbrite

import (
	"context"
	"fmt"
	"net/url"
)

// EventHandler manages events, including the event-only operations:
// publish, unpublish, search, owned events and full descriptions.
type EventHandler struct {
	resource[Event]
}

// Get fetches an event by id
func (h *EventHandler) Get(ctx context.Context, id string, opts *RequestOptions) (*Event, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return h.fetch(ctx, getRequest("events/%s/", url.PathEscape(id)).WithOptions(opts))
}

// List fetches the events of opts.OrganizerID, or the events owned by the
// user when no organizer is given.
func (h *EventHandler) List(ctx context.Context, opts *RequestOptions) (*Page[Event], error) {
	if organizerID := opts.organizerID(); organizerID != "" {
		return h.fetchPage(ctx, getRequest("organizers/%s/events/", url.PathEscape(organizerID)).WithOptions(opts))
	}
	return h.Owned(ctx, opts)
}

// Create creates a new event. When opts.OrganizerID is set the event is
// created under that organization.
func (h *EventHandler) Create(ctx context.Context, event *Event, opts *RequestOptions) (*Event, error) {
	req := postRequest("events/")
	if organizerID := opts.organizerID(); organizerID != "" {
		req = postRequest("organizations/%s/events/", url.PathEscape(organizerID))
	}
	return h.push(ctx, req.WithOptions(opts), event)
}

// Update pushes the event's fields
func (h *EventHandler) Update(ctx context.Context, event *Event, opts *RequestOptions) (*Event, error) {
	if event == nil {
		return nil, required("event")
	}
	if err := requireID(event.ID); err != nil {
		return nil, err
	}
	return h.push(ctx, postRequest("events/%s/", url.PathEscape(event.ID)).WithOptions(opts), event)
}

// Owned lists the events owned by opts.UserID, or the token's user
func (h *EventHandler) Owned(ctx context.Context, opts *RequestOptions) (*Page[Event], error) {
	return h.fetchPage(ctx, getRequest("users/%s/owned_events/", url.PathEscape(opts.userID())).WithOptions(opts))
}

// Search searches public events
func (h *EventHandler) Search(ctx context.Context, params SearchParams) (*Page[Event], error) {
	return h.fetchPage(ctx, params.request())
}

// Description fetches the full HTML description of an event
func (h *EventHandler) Description(ctx context.Context, id string) (*EventDescription, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	var desc EventDescription
	if err := h.client.Do(ctx, getRequest("events/%s/description/", url.PathEscape(id)), &desc); err != nil {
		return nil, err
	}
	return &desc, nil
}

// Publish makes a draft event live
func (h *EventHandler) Publish(ctx context.Context, id string) error {
	return h.transition(ctx, id, "publish", "published")
}

// Unpublish takes a live event back to draft
func (h *EventHandler) Unpublish(ctx context.Context, id string) error {
	return h.transition(ctx, id, "unpublish", "unpublished")
}

// transition posts a state change and checks the {"<field>": true} reply
func (h *EventHandler) transition(ctx context.Context, id, action, field string) error {
	if err := requireID(id); err != nil {
		return err
	}

	var result map[string]any
	if err := h.client.Do(ctx, postRequest("events/%s/%s/", url.PathEscape(id), action), &result); err != nil {
		return fmt.Errorf("failed to %s event %s: %w", action, id, err)
	}
	if ok, isBool := result[field].(bool); isBool && !ok {
		return fmt.Errorf("failed to %s event %s: server reported %s=false", action, id, field)
	}

	h.client.logger.Debug().Str("event_id", id).Str("action", action).Msg("Event state changed")
	return nil
}
