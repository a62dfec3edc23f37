package eventbrite

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// dateLayout is the naive local/UTC layout Eventbrite uses for date filters
const dateLayout = "2006-01-02T15:04:05"

// Request describes a single API call relative to the v3 root
type Request struct {
	Method string
	// Path is resource-relative, e.g. "events/123/access_codes/"
	Path  string
	Query url.Values
	// Body is JSON-encoded when non-nil
	Body        any
	SuccessCode int
}

// NewRequest creates a request for method and a resource-relative path
func NewRequest(method, path string) *Request {
	return &Request{
		Method: method,
		Path:   strings.TrimPrefix(path, "/"),
		Query:  url.Values{},
	}
}

// getRequest creates a GET request for a formatted path
func getRequest(path string, args ...any) *Request {
	return NewRequest(http.MethodGet, fmt.Sprintf(path, args...))
}

// postRequest creates a POST request for a formatted path
func postRequest(path string, args ...any) *Request {
	return NewRequest(http.MethodPost, fmt.Sprintf(path, args...))
}

// WithQuery sets a query parameter, skipping empty values
func (r *Request) WithQuery(key, value string) *Request {
	if value != "" {
		r.Query.Set(key, value)
	}
	return r
}

// WithBody sets the JSON request body
func (r *Request) WithBody(body any) *Request {
	r.Body = body
	return r
}

// WithOptions applies per-call options such as page and expansions
func (r *Request) WithOptions(opts *RequestOptions) *Request {
	opts.apply(r.Query)
	return r
}

// RequestOptions carries the per-call selectors that scope a request.
// A nil *RequestOptions is valid and means "no options".
type RequestOptions struct {
	// Page is the 1-based page to fetch on list endpoints
	Page        int
	EventID     string
	OrganizerID string
	// UserID defaults to "me" where a user scope is needed
	UserID string
	Expand []string
	// Continuation is the token from a previous page's Pagination, used
	// by endpoints that page with continuation tokens
	Continuation string
}

func (o *RequestOptions) apply(q url.Values) {
	if o == nil {
		return
	}
	if o.Page > 1 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if len(o.Expand) > 0 {
		q.Set("expand", strings.Join(o.Expand, ","))
	}
	if o.Continuation != "" {
		q.Set("continuation", o.Continuation)
	}
}

func (o *RequestOptions) eventID() string {
	if o == nil {
		return ""
	}
	return o.EventID
}

func (o *RequestOptions) organizerID() string {
	if o == nil {
		return ""
	}
	return o.OrganizerID
}

func (o *RequestOptions) userID() string {
	if o == nil || o.UserID == "" {
		return "me"
	}
	return o.UserID
}

// SortOrder controls the ordering of search results
type SortOrder string

const (
	SortByDate         SortOrder = "date"
	SortByDistance     SortOrder = "distance"
	SortByBest         SortOrder = "best"
	SortByDateDesc     SortOrder = "-date"
	SortByDistanceDesc SortOrder = "-distance"
)

// SearchParams filters an event search
type SearchParams struct {
	Query           string
	LocationAddress string
	// LocationWithin is a distance such as "10km" or "5mi"
	LocationWithin string
	StartAfter     time.Time
	StartBefore    time.Time
	Categories     []string
	Price          string
	SortBy         SortOrder
	Page           int
	Expand         []string
}

func (p SearchParams) request() *Request {
	req := getRequest("events/search/").
		WithQuery("q", p.Query).
		WithQuery("location.address", p.LocationAddress).
		WithQuery("location.within", p.LocationWithin).
		WithQuery("price", p.Price).
		WithQuery("sort_by", string(p.SortBy)).
		WithQuery("categories", strings.Join(p.Categories, ","))
	if !p.StartAfter.IsZero() {
		req.WithQuery("start_date.range_start", p.StartAfter.UTC().Format(dateLayout))
	}
	if !p.StartBefore.IsZero() {
		req.WithQuery("start_date.range_end", p.StartBefore.UTC().Format(dateLayout))
	}
	return req.WithOptions(&RequestOptions{Page: p.Page, Expand: p.Expand})
}

// OrganizerEventStatus filters organizer events by state
type OrganizerEventStatus string

const (
	StatusAll      OrganizerEventStatus = "all"
	StatusDraft    OrganizerEventStatus = "draft"
	StatusLive     OrganizerEventStatus = "live"
	StatusCanceled OrganizerEventStatus = "canceled"
	StatusStarted  OrganizerEventStatus = "started"
	StatusEnded    OrganizerEventStatus = "ended"
)

// OrganizerEventOrder controls the ordering of organizer events
type OrganizerEventOrder string

const (
	OrderStartAsc    OrganizerEventOrder = "start_asc"
	OrderStartDesc   OrganizerEventOrder = "start_desc"
	OrderCreatedAsc  OrganizerEventOrder = "created_asc"
	OrderCreatedDesc OrganizerEventOrder = "created_desc"
)

// OrganizerEventsParams filters the events listed for an organizer
type OrganizerEventsParams struct {
	Status      []OrganizerEventStatus
	OrderBy     OrganizerEventOrder
	StartAfter  time.Time
	StartBefore time.Time
	// OnlyPublic hides private events even when viewing your own; nil leaves it unset
	OnlyPublic *bool
	Expand     []string
	Page       int
}

func (p OrganizerEventsParams) request(organizerID string) *Request {
	statuses := make([]string, 0, len(p.Status))
	for _, s := range p.Status {
		statuses = append(statuses, string(s))
	}

	req := getRequest("organizers/%s/events/", url.PathEscape(organizerID)).
		WithQuery("status", strings.Join(statuses, ",")).
		WithQuery("order_by", string(p.OrderBy))
	if !p.StartAfter.IsZero() {
		req.WithQuery("start_date.range_start", p.StartAfter.UTC().Format(dateLayout))
	}
	if !p.StartBefore.IsZero() {
		req.WithQuery("start_date.range_end", p.StartBefore.UTC().Format(dateLayout))
	}
	if p.OnlyPublic != nil {
		req.WithQuery("only_public", strconv.FormatBool(*p.OnlyPublic))
	}
	return req.WithOptions(&RequestOptions{Page: p.Page, Expand: p.Expand})
}
