package eventbrite

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// webhook has no registered handler
type webhook struct {
	ID string `json:"id"`
}

func TestHandlerFor(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	})

	t.Run("registered types resolve to the typed handlers", func(t *testing.T) {
		events, err := HandlerFor[Event](client)
		require.NoError(t, err)
		assert.Same(t, client.Events(), events)

		codes, err := HandlerFor[AccessCode](client)
		require.NoError(t, err)
		assert.Same(t, client.AccessCodes(), codes)

		media, err := HandlerFor[Image](client)
		require.NoError(t, err)
		assert.Same(t, client.Media(), media)

		users, err := HandlerFor[User](client)
		require.NoError(t, err)
		assert.Same(t, client.Users(), users)
	})

	t.Run("unregistered type", func(t *testing.T) {
		_, err := HandlerFor[webhook](client)
		var typeErr *UnsupportedTypeError
		require.ErrorAs(t, err, &typeErr)
		assert.Equal(t, "eventbrite.webhook", typeErr.Type)
		assert.Equal(t, `type "eventbrite.webhook" is not currently supported`, err.Error())
	})

	t.Run("generic operations fail before any request", func(t *testing.T) {
		ctx := context.Background()
		var typeErr *UnsupportedTypeError

		_, err := Get[webhook](ctx, client, "1", nil)
		assert.ErrorAs(t, err, &typeErr)

		_, err = List[webhook](ctx, client, nil)
		assert.ErrorAs(t, err, &typeErr)

		_, err = Create(ctx, client, &webhook{ID: "1"}, nil)
		assert.ErrorAs(t, err, &typeErr)

		_, err = Update(ctx, client, &webhook{ID: "1"}, nil)
		assert.ErrorAs(t, err, &typeErr)
	})
}

func TestAccessCodeGet(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v3/events/123/access_codes/456", strings.TrimSuffix(r.URL.Path, "/"))
		assert.Equal(t, testToken, r.URL.Query().Get("token"))
		assert.False(t, r.URL.Query().Has("page"))

		_, _ = io.WriteString(w, `{
			"id": "456",
			"code": "SAVE10",
			"ticket_ids": ["11", "12"],
			"quantity_available": 50,
			"quantity_sold": 3,
			"event_id": "123"
		}`)
	})

	code, err := Get[AccessCode](context.Background(), client, "456", &RequestOptions{EventID: "123"})
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", code.Code)
	assert.Equal(t, 50, code.QuantityAvailable)
	assert.Equal(t, 3, code.QuantitySold)
	assert.Equal(t, []string{"11", "12"}, code.TicketIDs)
	assert.Equal(t, "123", code.EventID)
}

func TestAccessCodeList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/events/123/access_codes/", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))

		_, _ = io.WriteString(w, `{
			"pagination": {"object_count": 120, "page_number": 2, "page_size": 50, "page_count": 3},
			"access_codes": [{"id": "1", "code": "A"}, {"id": "2", "code": "B"}]
		}`)
	})

	page, err := List[AccessCode](context.Background(), client, &RequestOptions{EventID: "123", Page: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "A", page.Items[0].Code)
	assert.Equal(t, 2, page.Pagination.PageNumber)
	assert.Equal(t, 3, page.Pagination.PageCount)
	assert.Equal(t, 120, page.Pagination.ObjectCount)
	assert.True(t, page.HasMorePages())

	next, err := page.Pagination.NextPage()
	require.NoError(t, err)
	assert.Equal(t, 3, next)
}

func TestAttendeeListContinuation(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/events/123/attendees/", r.URL.Path)
		if calls.Add(1) == 1 {
			assert.False(t, r.URL.Query().Has("continuation"))
			_, _ = io.WriteString(w, `{
				"pagination": {"object_count": 60, "page_number": 1, "page_size": 50, "page_count": 2,
					"has_more_items": true, "continuation": "dGhpcyBpcyBwYWdlIDE"},
				"attendees": [{"id": "a1"}]
			}`)
			return
		}
		assert.Equal(t, "dGhpcyBpcyBwYWdlIDE", r.URL.Query().Get("continuation"))
		_, _ = io.WriteString(w, `{
			"pagination": {"object_count": 60, "page_number": 2, "page_size": 50, "page_count": 2},
			"attendees": [{"id": "a51"}]
		}`)
	})

	opts := &RequestOptions{EventID: "123"}
	first, err := client.Attendees().List(context.Background(), opts)
	require.NoError(t, err)
	require.True(t, first.HasMorePages())

	opts.Continuation = first.Pagination.Continuation
	second, err := client.Attendees().List(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Equal(t, "a51", second.Items[0].ID)
	assert.False(t, second.HasMorePages())
	assert.Equal(t, int32(2), calls.Load())
}

func TestAccessCodeCreateSendsAllFields(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	code := NewAccessCodeStub().
		WithEventID("").
		WithTicketIDs("11", "12", "13").
		Get()
	code.ID = ""
	code.StartDate = NewDateTimeTZ(start)
	code.EndDate = NewDateTimeTZ(start.Add(48 * time.Hour))

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3/events/123/access_codes/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			AccessCode struct {
				Code              string     `json:"code"`
				TicketIDs         []string   `json:"ticket_ids"`
				QuantityAvailable int        `json:"quantity_available"`
				StartDate         DateTimeTZ `json:"start_date"`
				EndDate           DateTimeTZ `json:"end_date"`
			} `json:"access_code"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		assert.Equal(t, code.Code, body.AccessCode.Code)
		assert.Equal(t, []string{"11", "12", "13"}, body.AccessCode.TicketIDs)
		assert.Equal(t, code.QuantityAvailable, body.AccessCode.QuantityAvailable)
		assert.Equal(t, "2025-03-01T09:00:00", body.AccessCode.StartDate.Local)
		assert.True(t, start.Equal(body.AccessCode.StartDate.UTC))
		assert.True(t, start.Add(48*time.Hour).Equal(body.AccessCode.EndDate.UTC))

		writeJSON(t, w, map[string]any{"id": "789", "code": body.AccessCode.Code, "event_id": "123"})
	})

	created, err := client.AccessCodes().Create(context.Background(), &code, &RequestOptions{EventID: "123"})
	require.NoError(t, err)
	assert.Equal(t, "789", created.ID)
	assert.Equal(t, code.Code, created.Code)
}

func TestEventScopedHandlersRequireEvent(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"access code get", func() error { _, err := client.AccessCodes().Get(ctx, "1", nil); return err }},
		{"access code list", func() error { _, err := client.AccessCodes().List(ctx, nil); return err }},
		{"access code create", func() error {
			_, err := client.AccessCodes().Create(ctx, &AccessCode{Code: "X"}, nil)
			return err
		}},
		{"ticket class list", func() error { _, err := client.TicketClasses().List(ctx, &RequestOptions{}); return err }},
		{"attendee list", func() error { _, err := client.Attendees().List(ctx, nil); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var argErr *InvalidArgumentError
			require.ErrorAs(t, tt.call(), &argErr)
			assert.Equal(t, "event_id", argErr.Argument)
		})
	}

	assert.Zero(t, calls.Load())
}

func TestRequiredArguments(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	})
	ctx := context.Background()

	tests := []struct {
		name string
		arg  string
		call func() error
	}{
		{"empty id", "id", func() error { _, err := client.Events().Get(ctx, "", nil); return err }},
		{"nil event", "event", func() error { _, err := client.Events().Create(ctx, nil, nil); return err }},
		{"update without id", "id", func() error { _, err := client.Venues().Update(ctx, &Venue{}, nil); return err }},
		{"access code without code", "code", func() error {
			_, err := client.AccessCodes().Create(ctx, &AccessCode{EventID: "1"}, nil)
			return err
		}},
		{"organizer events without organizer", "organizer_id", func() error {
			_, err := client.OrganizerEvents(ctx, "", OrganizerEventsParams{})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var argErr *InvalidArgumentError
			require.ErrorAs(t, tt.call(), &argErr)
			assert.Equal(t, tt.arg, argErr.Argument)
		})
	}
}

func TestUnsupportedOperations(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	})
	ctx := context.Background()
	opts := &RequestOptions{EventID: "1"}

	tests := []struct {
		resource  string
		operation string
		call      func() error
	}{
		{"attendee", "create", func() error { _, err := client.Attendees().Create(ctx, &Attendee{}, opts); return err }},
		{"attendee", "update", func() error { _, err := client.Attendees().Update(ctx, &Attendee{}, opts); return err }},
		{"category", "create", func() error { _, err := Create(ctx, client, &Category{}, nil); return err }},
		{"category", "update", func() error { _, err := Update(ctx, client, &Category{}, nil); return err }},
		{"media", "list", func() error { _, err := List[Image](ctx, client, nil); return err }},
		{"media", "create", func() error { _, err := client.Media().Create(ctx, &Image{}, nil); return err }},
		{"user", "list", func() error { _, err := client.Users().List(ctx, nil); return err }},
		{"user", "update", func() error { _, err := client.Users().Update(ctx, &User{}, nil); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.resource+" "+tt.operation, func(t *testing.T) {
			var opErr *UnsupportedOperationError
			require.ErrorAs(t, tt.call(), &opErr)
			assert.Equal(t, tt.resource, opErr.Resource)
			assert.Equal(t, tt.operation, opErr.Operation)
		})
	}
}

// echoHandler answers every write with the entity from the request envelope
func echoHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var envelope map[string]json.RawMessage
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&envelope)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Len(t, envelope, 1)
		for _, entity := range envelope {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(entity)
		}
	}
}

func TestUpdateWithoutChangesIsIdempotent(t *testing.T) {
	client := newTestClient(t, echoHandler(t))
	ctx := context.Background()

	t.Run("event", func(t *testing.T) {
		event := NewEventStub().Get()
		got, err := Update(ctx, client, &event, nil)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(event, *got))
	})

	t.Run("venue", func(t *testing.T) {
		venue := NewVenueStub()
		got, err := Update(ctx, client, &venue, nil)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(venue, *got))
	})

	t.Run("organizer", func(t *testing.T) {
		organizer := NewOrganizerStub()
		got, err := Update(ctx, client, &organizer, nil)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(organizer, *got))
	})

	t.Run("ticket class", func(t *testing.T) {
		tc := NewTicketClassStub("123")
		got, err := Update(ctx, client, &tc, nil)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(tc, *got))
	})

	t.Run("access code", func(t *testing.T) {
		code := NewAccessCodeStub().Get()
		got, err := Update(ctx, client, &code, nil)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(code, *got))
	})
}

func TestUpdatePaths(t *testing.T) {
	var paths []string
	pathCh := make(chan string, 8)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		pathCh <- r.URL.Path
		echoHandler(t)(w, r)
	})
	ctx := context.Background()

	_, err := client.Venues().Update(ctx, &Venue{ID: "v1"}, nil)
	require.NoError(t, err)
	_, err = client.Organizers().Update(ctx, &Organizer{ID: "o1"}, nil)
	require.NoError(t, err)
	_, err = client.TicketClasses().Update(ctx, &TicketClass{ID: "t1", EventID: "e1"}, nil)
	require.NoError(t, err)
	_, err = client.AccessCodes().Update(ctx, &AccessCode{ID: "a1", Code: "X"}, &RequestOptions{EventID: "e2"})
	require.NoError(t, err)

	close(pathCh)
	for p := range pathCh {
		paths = append(paths, p)
	}
	assert.Equal(t, []string{
		"/v3/venues/v1/",
		"/v3/organizers/o1/",
		"/v3/events/e1/ticket_classes/t1/",
		"/v3/events/e2/access_codes/a1/",
	}, paths)
}
