package eventbrite

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Pagination contains the position of a page within the full result set.
// ObjectCount is the total number of items and PageCount the total number
// of pages.
type Pagination struct {
	ObjectCount  int    `json:"object_count"`
	PageNumber   int    `json:"page_number"`
	PageSize     int    `json:"page_size"`
	PageCount    int    `json:"page_count"`
	HasMoreItems bool   `json:"has_more_items"`
	Continuation string `json:"continuation,omitempty"`
}

// HasMorePages checks if there are more pages to fetch
func (p *Pagination) HasMorePages() bool {
	return p.HasMoreItems || p.PageNumber < p.PageCount
}

// NextPage returns the next page number, or ErrNoMorePages on the last page
func (p *Pagination) NextPage() (int, error) {
	if !p.HasMorePages() {
		return 0, ErrNoMorePages
	}
	return p.PageNumber + 1, nil
}

// Page is one page of a list endpoint together with its pagination metadata
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// HasMorePages checks if there are more pages to fetch
func (p *Page[T]) HasMorePages() bool {
	return p.Pagination.HasMorePages()
}

// decodePage decodes a list response whose items live under key
func decodePage[T any](body []byte, key string) (*Page[T], error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	page := &Page[T]{Items: []T{}}
	if p, ok := raw["pagination"]; ok {
		if err := json.Unmarshal(p, &page.Pagination); err != nil {
			return nil, fmt.Errorf("failed to parse pagination: %w", err)
		}
	}
	if items, ok := raw[key]; ok && string(items) != "null" {
		if err := json.Unmarshal(items, &page.Items); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", key, err)
		}
	}

	return page, nil
}
