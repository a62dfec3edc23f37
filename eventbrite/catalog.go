package eventbrite

import (
	"context"
	"net/url"
)

// CategoryHandler reads the read-only category catalog
type CategoryHandler struct {
	resource[Category]
}

// Get fetches a category with its subcategories
func (h *CategoryHandler) Get(ctx context.Context, id string, opts *RequestOptions) (*Category, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return h.fetch(ctx, getRequest("categories/%s/", url.PathEscape(id)).WithOptions(opts))
}

// List fetches one page of categories
func (h *CategoryHandler) List(ctx context.Context, opts *RequestOptions) (*Page[Category], error) {
	return h.fetchPage(ctx, getRequest("categories/").WithOptions(opts))
}

func (h *CategoryHandler) Create(context.Context, *Category, *RequestOptions) (*Category, error) {
	return nil, h.unsupported("create")
}

func (h *CategoryHandler) Update(context.Context, *Category, *RequestOptions) (*Category, error) {
	return nil, h.unsupported("update")
}

// MediaHandler reads uploaded images. Uploads go through a separate
// signed-upload flow and are not supported.
type MediaHandler struct {
	resource[Image]
}

// Get fetches an image by id
func (h *MediaHandler) Get(ctx context.Context, id string, opts *RequestOptions) (*Image, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return h.fetch(ctx, getRequest("media/%s/", url.PathEscape(id)).WithOptions(opts))
}

func (h *MediaHandler) List(context.Context, *RequestOptions) (*Page[Image], error) {
	return nil, h.unsupported("list")
}

func (h *MediaHandler) Create(context.Context, *Image, *RequestOptions) (*Image, error) {
	return nil, h.unsupported("create")
}

func (h *MediaHandler) Update(context.Context, *Image, *RequestOptions) (*Image, error) {
	return nil, h.unsupported("update")
}
