package eventbrite

import (
	"context"
	"net/url"
)

// OrganizerHandler manages organizer profiles
type OrganizerHandler struct {
	resource[Organizer]
}

// Get fetches an organizer by id
func (h *OrganizerHandler) Get(ctx context.Context, id string, opts *RequestOptions) (*Organizer, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return h.fetch(ctx, getRequest("organizers/%s/", url.PathEscape(id)).WithOptions(opts))
}

// List fetches one page of the organizers of opts.UserID, or the token's user
func (h *OrganizerHandler) List(ctx context.Context, opts *RequestOptions) (*Page[Organizer], error) {
	return h.fetchPage(ctx, getRequest("users/%s/organizers/", url.PathEscape(opts.userID())).WithOptions(opts))
}

// Create creates a new organizer profile
func (h *OrganizerHandler) Create(ctx context.Context, organizer *Organizer, opts *RequestOptions) (*Organizer, error) {
	return h.push(ctx, postRequest("organizers/").WithOptions(opts), organizer)
}

// Update pushes the organizer's fields
func (h *OrganizerHandler) Update(ctx context.Context, organizer *Organizer, opts *RequestOptions) (*Organizer, error) {
	if organizer == nil {
		return nil, required("organizer")
	}
	if err := requireID(organizer.ID); err != nil {
		return nil, err
	}
	return h.push(ctx, postRequest("organizers/%s/", url.PathEscape(organizer.ID)).WithOptions(opts), organizer)
}

// Events lists an organizer's events, filtered by params
func (h *OrganizerHandler) Events(ctx context.Context, organizerID string, params OrganizerEventsParams) (*Page[Event], error) {
	if organizerID == "" {
		return nil, required("organizer_id")
	}
	return h.client.events.fetchPage(ctx, params.request(organizerID))
}
