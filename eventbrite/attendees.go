package eventbrite

import (
	"context"
	"net/url"
)

// AttendeeHandler reads the attendees of an event. Attendees are created
// by orders, so Create and Update are unsupported.
type AttendeeHandler struct {
	resource[Attendee]
}

// Get fetches one attendee of an event
func (h *AttendeeHandler) Get(ctx context.Context, id string, opts *RequestOptions) (*Attendee, error) {
	eventID, err := eventScope(opts, "")
	if err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	return h.fetch(ctx, getRequest("events/%s/attendees/%s/", url.PathEscape(eventID), url.PathEscape(id)).WithOptions(opts))
}

// List fetches one page of an event's attendees
func (h *AttendeeHandler) List(ctx context.Context, opts *RequestOptions) (*Page[Attendee], error) {
	eventID, err := eventScope(opts, "")
	if err != nil {
		return nil, err
	}
	return h.fetchPage(ctx, getRequest("events/%s/attendees/", url.PathEscape(eventID)).WithOptions(opts))
}

func (h *AttendeeHandler) Create(context.Context, *Attendee, *RequestOptions) (*Attendee, error) {
	return nil, h.unsupported("create")
}

func (h *AttendeeHandler) Update(context.Context, *Attendee, *RequestOptions) (*Attendee, error) {
	return nil, h.unsupported("update")
}
