package eventbrite

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

const (
	// DefaultHost is the public Eventbrite API host
	DefaultHost = "https://www.eventbriteapi.com/"

	apiVersion       = "v3"
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "evbrite"
)

// Client is the single entry point to the Eventbrite API. It holds the
// token and one handler per resource type.
//
// A Client carries no per-call state, so it is safe for concurrent use as
// long as the configured *http.Client is.
type Client struct {
	baseURL    string
	token      string
	bearer     bool
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger

	events        *EventHandler
	venues        *VenueHandler
	organizers    *OrganizerHandler
	attendees     *AttendeeHandler
	ticketClasses *TicketClassHandler
	accessCodes   *AccessCodeHandler
	categories    *CategoryHandler
	media         *MediaHandler
	users         *UserHandler
}

// NewClient creates a new Eventbrite client authenticated with token
func NewClient(token string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, &InvalidArgumentError{Argument: "token", Reason: "an OAuth token is required"}
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	host := strings.TrimRight(o.host, "/")
	host = strings.TrimSuffix(host, "/"+apiVersion)
	if host == "" {
		return nil, &InvalidArgumentError{Argument: "host"}
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}
	if o.bearer {
		// copy so the caller's client keeps its own transport
		hc := *httpClient
		hc.Transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{
				AccessToken: token,
				TokenType:   "Bearer",
			}),
			Base: httpClient.Transport,
		}
		httpClient = &hc
	}

	c := &Client{
		baseURL:    fmt.Sprintf("%s/%s/", host, apiVersion),
		token:      token,
		bearer:     o.bearer,
		userAgent:  o.userAgent,
		httpClient: httpClient,
		logger:     logger,
	}
	c.registerHandlers()

	return c, nil
}

func (c *Client) registerHandlers() {
	c.events = &EventHandler{resource[Event]{client: c, name: "event", listKey: "events"}}
	c.venues = &VenueHandler{resource[Venue]{client: c, name: "venue", listKey: "venues"}}
	c.organizers = &OrganizerHandler{resource[Organizer]{client: c, name: "organizer", listKey: "organizers"}}
	c.attendees = &AttendeeHandler{resource[Attendee]{client: c, name: "attendee", listKey: "attendees"}}
	c.ticketClasses = &TicketClassHandler{resource[TicketClass]{client: c, name: "ticket_class", listKey: "ticket_classes"}}
	c.accessCodes = &AccessCodeHandler{resource[AccessCode]{client: c, name: "access_code", listKey: "access_codes"}}
	c.categories = &CategoryHandler{resource[Category]{client: c, name: "category", listKey: "categories"}}
	c.media = &MediaHandler{resource[Image]{client: c, name: "media"}}
	c.users = &UserHandler{resource[User]{client: c, name: "user"}}
}

// BaseURL returns the versioned API root requests are resolved against
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do executes req and decodes the JSON response into out, if non-nil
func (c *Client) Do(ctx context.Context, req *Request, out any) error {
	body, err := c.doRequest(ctx, req)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// doRequest performs an HTTP request with authentication and returns the raw body
func (c *Client) doRequest(ctx context.Context, r *Request) ([]byte, error) {
	query := r.Query
	if !c.bearer {
		query = cloneValues(r.Query)
		query.Set("token", c.token)
	}

	endpoint := c.baseURL + r.Path
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var reqBody io.Reader
	if r.Body != nil {
		payload, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", requestID)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug().
		Str("request_id", requestID).
		Str("method", r.Method).
		Str("path", r.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Eventbrite API request")

	if !r.succeeded(resp.StatusCode) {
		return nil, newAPIError(resp.StatusCode, body)
	}

	return body, nil
}

func (r *Request) succeeded(status int) bool {
	if r.SuccessCode != 0 {
		return status == r.SuccessCode
	}
	return status >= 200 && status < 300
}

// errorBody is the error envelope Eventbrite returns on failures
type errorBody struct {
	StatusCode       int    `json:"status_code"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Body:       string(body),
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		apiErr.ErrorCode = eb.Error
		apiErr.Message = eb.ErrorDescription
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}

	return apiErr
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v)+1)
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}

// Events returns the event handler
func (c *Client) Events() *EventHandler { return c.events }

// Venues returns the venue handler
func (c *Client) Venues() *VenueHandler { return c.venues }

// Organizers returns the organizer handler
func (c *Client) Organizers() *OrganizerHandler { return c.organizers }

// Attendees returns the attendee handler
func (c *Client) Attendees() *AttendeeHandler { return c.attendees }

// TicketClasses returns the ticket class handler
func (c *Client) TicketClasses() *TicketClassHandler { return c.ticketClasses }

// AccessCodes returns the access code handler
func (c *Client) AccessCodes() *AccessCodeHandler { return c.accessCodes }

// Categories returns the category handler
func (c *Client) Categories() *CategoryHandler { return c.categories }

// Media returns the media handler
func (c *Client) Media() *MediaHandler { return c.media }

// Users returns the user handler
func (c *Client) Users() *UserHandler { return c.users }

// Publish publishes an existing event
func (c *Client) Publish(ctx context.Context, eventID string) error {
	return c.events.Publish(ctx, eventID)
}

// Unpublish unpublishes an existing event
func (c *Client) Unpublish(ctx context.Context, eventID string) error {
	return c.events.Unpublish(ctx, eventID)
}

// SearchEvents searches public events
func (c *Client) SearchEvents(ctx context.Context, params SearchParams) (*Page[Event], error) {
	return c.events.Search(ctx, params)
}

// OwnedEvents lists the events owned by opts.UserID, or the token's user
func (c *Client) OwnedEvents(ctx context.Context, opts *RequestOptions) (*Page[Event], error) {
	return c.events.Owned(ctx, opts)
}

// FullDescription fetches the full HTML description of an event
func (c *Client) FullDescription(ctx context.Context, eventID string) (*EventDescription, error) {
	return c.events.Description(ctx, eventID)
}

// OrganizerEvents lists the events of an organizer
func (c *Client) OrganizerEvents(ctx context.Context, organizerID string, params OrganizerEventsParams) (*Page[Event], error) {
	return c.organizers.Events(ctx, organizerID, params)
}

// Me returns the user the token belongs to
func (c *Client) Me(ctx context.Context) (*User, error) {
	return c.users.Me(ctx)
}
