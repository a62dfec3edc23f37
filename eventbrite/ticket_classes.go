package eventbrite

import (
	"context"
	"net/url"
)

// TicketClassHandler manages the ticket classes of an event
type TicketClassHandler struct {
	resource[TicketClass]
}

// Get fetches one ticket class of an event
func (h *TicketClassHandler) Get(ctx context.Context, id string, opts *RequestOptions) (*TicketClass, error) {
	eventID, err := eventScope(opts, "")
	if err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	return h.fetch(ctx, getRequest("events/%s/ticket_classes/%s/", url.PathEscape(eventID), url.PathEscape(id)).WithOptions(opts))
}

// List fetches one page of an event's ticket classes
func (h *TicketClassHandler) List(ctx context.Context, opts *RequestOptions) (*Page[TicketClass], error) {
	eventID, err := eventScope(opts, "")
	if err != nil {
		return nil, err
	}
	return h.fetchPage(ctx, getRequest("events/%s/ticket_classes/", url.PathEscape(eventID)).WithOptions(opts))
}

// Create adds a ticket class to an event
func (h *TicketClassHandler) Create(ctx context.Context, tc *TicketClass, opts *RequestOptions) (*TicketClass, error) {
	if tc == nil {
		return nil, required("ticket_class")
	}
	eventID, err := eventScope(opts, tc.EventID)
	if err != nil {
		return nil, err
	}
	return h.push(ctx, postRequest("events/%s/ticket_classes/", url.PathEscape(eventID)).WithOptions(opts), tc)
}

// Update pushes the ticket class's fields
func (h *TicketClassHandler) Update(ctx context.Context, tc *TicketClass, opts *RequestOptions) (*TicketClass, error) {
	if tc == nil {
		return nil, required("ticket_class")
	}
	if err := requireID(tc.ID); err != nil {
		return nil, err
	}
	eventID, err := eventScope(opts, tc.EventID)
	if err != nil {
		return nil, err
	}
	return h.push(ctx, postRequest("events/%s/ticket_classes/%s/", url.PathEscape(eventID), url.PathEscape(tc.ID)).WithOptions(opts), tc)
}
