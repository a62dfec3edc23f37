package eventbrite

import (
	"context"
	"net/url"
)

// AccessCodeHandler manages the access codes of an event. Every call is
// scoped to RequestOptions.EventID; Create and Update fall back to the
// code's own EventID.
type AccessCodeHandler struct {
	resource[AccessCode]
}

// Get fetches one access code of an event
func (h *AccessCodeHandler) Get(ctx context.Context, id string, opts *RequestOptions) (*AccessCode, error) {
	eventID, err := eventScope(opts, "")
	if err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	return h.fetch(ctx, getRequest("events/%s/access_codes/%s/", url.PathEscape(eventID), url.PathEscape(id)).WithOptions(opts))
}

// List fetches one page of an event's access codes
func (h *AccessCodeHandler) List(ctx context.Context, opts *RequestOptions) (*Page[AccessCode], error) {
	eventID, err := eventScope(opts, "")
	if err != nil {
		return nil, err
	}
	return h.fetchPage(ctx, getRequest("events/%s/access_codes/", url.PathEscape(eventID)).WithOptions(opts))
}

// Create creates an access code with its full field set: every ticket id
// and the optional validity window.
func (h *AccessCodeHandler) Create(ctx context.Context, code *AccessCode, opts *RequestOptions) (*AccessCode, error) {
	if code == nil {
		return nil, required("access_code")
	}
	if code.Code == "" {
		return nil, required("code")
	}
	eventID, err := eventScope(opts, code.EventID)
	if err != nil {
		return nil, err
	}
	return h.push(ctx, postRequest("events/%s/access_codes/", url.PathEscape(eventID)).WithOptions(opts), code)
}

// Update pushes the access code's fields
func (h *AccessCodeHandler) Update(ctx context.Context, code *AccessCode, opts *RequestOptions) (*AccessCode, error) {
	if code == nil {
		return nil, required("access_code")
	}
	if err := requireID(code.ID); err != nil {
		return nil, err
	}
	eventID, err := eventScope(opts, code.EventID)
	if err != nil {
		return nil, err
	}
	return h.push(ctx, postRequest("events/%s/access_codes/%s/", url.PathEscape(eventID), url.PathEscape(code.ID)).WithOptions(opts), code)
}
