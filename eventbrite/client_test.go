package eventbrite

import (
	"context"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "test-token"

// newTestClient starts a stub server and returns a client pointed at it
func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(testToken, zerolog.Nop(), append([]Option{WithHost(server.URL)}, opts...)...)
	require.NoError(t, err)
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		token   string
		host    string
		wantURL string
		wantErr string
	}{
		{
			name:    "default host",
			token:   testToken,
			wantURL: "https://www.eventbriteapi.com/v3/",
		},
		{
			name:    "custom host",
			token:   testToken,
			host:    "http://localhost:8080",
			wantURL: "http://localhost:8080/v3/",
		},
		{
			name:    "host with version suffix",
			token:   testToken,
			host:    "http://localhost:8080/v3/",
			wantURL: "http://localhost:8080/v3/",
		},
		{
			name:    "missing token",
			token:   "",
			wantErr: "token",
		},
		{
			name:    "blank token",
			token:   "   ",
			wantErr: "token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.token, logger, WithHost(tt.host))
			if tt.wantErr != "" {
				require.Error(t, err)
				var argErr *InvalidArgumentError
				require.ErrorAs(t, err, &argErr)
				assert.Equal(t, tt.wantErr, argErr.Argument)
				assert.Nil(t, client)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, client.BaseURL())
			assert.Equal(t, tt.token, client.token)
		})
	}
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient(testToken, logger, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("default timeout", func(t *testing.T) {
		client, err := NewClient(testToken, logger, WithTimeout(0))
		require.NoError(t, err)
		assert.Equal(t, defaultTimeout, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient(testToken, logger, WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Same(t, customClient, client.httpClient)
	})

	t.Run("with user agent", func(t *testing.T) {
		client, err := NewClient(testToken, logger, WithUserAgent("evbrite-test/1.0"))
		require.NoError(t, err)
		assert.Equal(t, "evbrite-test/1.0", client.userAgent)
	})
}

func TestTokenSentWithEveryRequest(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, testToken, r.URL.Query().Get("token"))
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, defaultUserAgent, r.Header.Get("User-Agent"))
		_, err := uuid.Parse(r.Header.Get("X-Request-Id"))
		assert.NoError(t, err)

		switch r.URL.Path {
		case "/v3/users/me/":
			writeJSON(t, w, map[string]any{"id": "1", "name": "Jane"})
		case "/v3/events/123/":
			writeJSON(t, w, map[string]any{"id": "123"})
		case "/v3/users/me/venues/":
			writeJSON(t, w, map[string]any{"pagination": map[string]any{"page_number": 1, "page_count": 1}, "venues": []any{}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	ctx := context.Background()

	me, err := client.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Jane", me.GetDisplayName())

	_, err = client.Events().Get(ctx, "123", nil)
	require.NoError(t, err)

	_, err = client.Venues().List(ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, int32(3), calls.Load())
}

func TestBearerAuth(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
		assert.False(t, r.URL.Query().Has("token"))
		writeJSON(t, w, map[string]any{"id": "1"})
	}, WithBearerAuth())

	_, err := client.Me(context.Background())
	require.NoError(t, err)
}

func TestBearerAuthKeepsHTTPClient(t *testing.T) {
	var redirected atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
		if r.URL.Path == "/v3/users/me/" {
			http.Redirect(w, r, "/v3/users/42/", http.StatusFound)
			return
		}
		writeJSON(t, w, map[string]any{"id": "42"})
	}))
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	custom := &http.Client{
		Jar:     jar,
		Timeout: 5 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			redirected.Add(1)
			return nil
		},
	}

	client, err := NewClient(testToken, zerolog.Nop(),
		WithHost(server.URL), WithHTTPClient(custom), WithBearerAuth())
	require.NoError(t, err)

	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "42", user.ID)
	assert.Equal(t, int32(1), redirected.Load())

	assert.Same(t, jar, client.httpClient.Jar)
	assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	assert.Nil(t, custom.Transport, "caller's client must not be modified")
}

func TestAPIErrorResponses(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantCode    string
		wantMessage string
		wantIs      error
	}{
		{
			name:        "structured not found",
			status:      http.StatusNotFound,
			body:        `{"status_code": 404, "error": "NOT_FOUND", "error_description": "The event you requested does not exist."}`,
			wantCode:    "NOT_FOUND",
			wantMessage: "The event you requested does not exist.",
			wantIs:      ErrNotFound,
		},
		{
			name:        "plain text unauthorized",
			status:      http.StatusUnauthorized,
			body:        "bad token",
			wantMessage: "bad token",
			wantIs:      ErrUnauthorized,
		},
		{
			name:        "empty server error",
			status:      http.StatusInternalServerError,
			wantMessage: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Events().Get(context.Background(), "999", nil)
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.ErrorCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			} else {
				assert.False(t, errors.Is(err, ErrNotFound))
				assert.False(t, errors.Is(err, ErrUnauthorized))
			}
		})
	}
}

func TestRequestSuccessCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		writeJSON(t, w, map[string]any{"id": "1"})
	})

	req := NewRequest(http.MethodGet, "/users/me/")
	req.SuccessCode = http.StatusCreated

	err := client.Do(context.Background(), req, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusOK, apiErr.StatusCode)
	assert.Equal(t, "users/me/", req.Path)
}

func TestContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"id": "1"})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Me(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAPIError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &APIError{
			StatusCode: 404,
			Message:    "Not Found",
		}
		assert.Equal(t, "eventbrite API error: status 404: Not Found", err.Error())

		err.ErrorCode = "NOT_FOUND"
		assert.Equal(t, "eventbrite API error: status 404: NOT_FOUND: Not Found", err.Error())
	})

	t.Run("IsNotFound", func(t *testing.T) {
		err := &APIError{StatusCode: 404}
		assert.True(t, err.IsNotFound())

		err.StatusCode = 500
		assert.False(t, err.IsNotFound())
	})

	t.Run("IsUnauthorized", func(t *testing.T) {
		tests := []struct {
			code     int
			expected bool
		}{
			{401, true},
			{403, true},
			{404, false},
			{500, false},
		}

		for _, tt := range tests {
			err := &APIError{StatusCode: tt.code}
			assert.Equal(t, tt.expected, err.IsUnauthorized())
		}
	})
}

func TestPagination(t *testing.T) {
	t.Run("NextPage", func(t *testing.T) {
		p := Pagination{PageNumber: 2, PageCount: 5}
		next, err := p.NextPage()
		require.NoError(t, err)
		assert.Equal(t, 3, next)

		p.PageNumber = 5
		_, err = p.NextPage()
		assert.ErrorIs(t, err, ErrNoMorePages)
	})

	t.Run("HasMoreItems without page count", func(t *testing.T) {
		p := Pagination{PageNumber: 1, HasMoreItems: true, Continuation: "abc"}
		assert.True(t, p.HasMorePages())
	})

	t.Run("decode missing items", func(t *testing.T) {
		page, err := decodePage[Venue]([]byte(`{"pagination": {"page_number": 1, "page_count": 1}, "venues": null}`), "venues")
		require.NoError(t, err)
		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
		assert.False(t, page.HasMorePages())
	})

	t.Run("decode malformed body", func(t *testing.T) {
		_, err := decodePage[Venue]([]byte(`not json`), "venues")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse response")
	})
}
