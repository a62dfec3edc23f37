package eventbrite

import (
	"context"
	"net/url"
)

// UserHandler reads user accounts
type UserHandler struct {
	resource[User]
}

// Get fetches a user by id; "me" is the token's user
func (h *UserHandler) Get(ctx context.Context, id string, opts *RequestOptions) (*User, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return h.fetch(ctx, getRequest("users/%s/", url.PathEscape(id)).WithOptions(opts))
}

// Me fetches the user the token belongs to
func (h *UserHandler) Me(ctx context.Context) (*User, error) {
	return h.Get(ctx, "me", nil)
}

func (h *UserHandler) List(context.Context, *RequestOptions) (*Page[User], error) {
	return nil, h.unsupported("list")
}

func (h *UserHandler) Create(context.Context, *User, *RequestOptions) (*User, error) {
	return nil, h.unsupported("create")
}

func (h *UserHandler) Update(context.Context, *User, *RequestOptions) (*User, error) {
	return nil, h.unsupported("update")
}
