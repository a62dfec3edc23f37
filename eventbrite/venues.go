package eventbrite

import (
	"context"
	"net/url"
)

// VenueHandler manages venues
type VenueHandler struct {
	resource[Venue]
}

// Get fetches a venue by id
func (h *VenueHandler) Get(ctx context.Context, id string, opts *RequestOptions) (*Venue, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return h.fetch(ctx, getRequest("venues/%s/", url.PathEscape(id)).WithOptions(opts))
}

// List fetches one page of the venues of opts.UserID, or the token's user
func (h *VenueHandler) List(ctx context.Context, opts *RequestOptions) (*Page[Venue], error) {
	return h.fetchPage(ctx, getRequest("users/%s/venues/", url.PathEscape(opts.userID())).WithOptions(opts))
}

// Create creates a new venue
func (h *VenueHandler) Create(ctx context.Context, venue *Venue, opts *RequestOptions) (*Venue, error) {
	return h.push(ctx, postRequest("venues/").WithOptions(opts), venue)
}

// Update pushes the venue's fields
func (h *VenueHandler) Update(ctx context.Context, venue *Venue, opts *RequestOptions) (*Venue, error) {
	if venue == nil {
		return nil, required("venue")
	}
	if err := requireID(venue.ID); err != nil {
		return nil, err
	}
	return h.push(ctx, postRequest("venues/%s/", url.PathEscape(venue.ID)).WithOptions(opts), venue)
}
