package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkolesov/launchbook/internal/graphql"
)

type staticTokens struct {
	token string
}

func (s *staticTokens) Token(ctx context.Context) (string, error) { return s.token, nil }

// newServer returns a client wired to a test endpoint. The handler
// receives the decoded request and the raw http request for header checks.
func newServer(t *testing.T, handle func(req *graphql.Request, r *http.Request) any) (*GraphQLClient, *staticTokens) {
	t.Helper()
	tokens := &staticTokens{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphql.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := handle(&req, r)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)

	return NewGraphQLClient(srv.URL, tokens, 5*time.Second), tokens
}

func dataResponse(t *testing.T, data any) *graphql.Response {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	return &graphql.Response{Data: raw}
}

func TestLogin_ReturnsToken(t *testing.T) {
	var gotEmail any
	c, _ := newServer(t, func(req *graphql.Request, r *http.Request) any {
		assert.Equal(t, "Login", req.OperationName)
		gotEmail = req.Variables["email"]
		return dataResponse(t, map[string]any{"login": map[string]any{"token": "tok-123"}})
	})

	payload, err := c.Login(context.Background(), "me@example.com")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", payload.Token)
	assert.Empty(t, payload.Messages)
	assert.Equal(t, "me@example.com", gotEmail)
}

func TestLogin_NullTokenWithErrorsAlongside(t *testing.T) {
	c, _ := newServer(t, func(req *graphql.Request, r *http.Request) any {
		resp := graphql.ErrorResponse("login disabled")
		raw, _ := json.Marshal(map[string]any{"login": map[string]any{"token": nil}})
		resp.Data = raw
		return resp
	})

	payload, err := c.Login(context.Background(), "me@example.com")
	require.NoError(t, err)
	// Structured errors surface alongside the payload, not as a Go error.
	assert.Equal(t, "", payload.Token)
	assert.Equal(t, []string{"login disabled"}, payload.Messages)
}

func TestLogin_TransportFailureMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewGraphQLClient(srv.URL, nil, time.Second)
	_, err := c.Login(context.Background(), "me@example.com")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestLogin_ServerErrorStatusMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := NewGraphQLClient(srv.URL, nil, time.Second)
	_, err := c.Login(context.Background(), "me@example.com")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestBookTrips_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	c, tokens := newServer(t, func(req *graphql.Request, r *http.Request) any {
		gotAuth = r.Header.Get("Authorization")
		return dataResponse(t, map[string]any{"bookTrips": map[string]any{"success": true, "message": "booked"}})
	})
	tokens.token = "tok-123"

	payload, err := c.BookTrips(context.Background(), []string{"109"})
	require.NoError(t, err)
	assert.True(t, payload.Success)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestBookTrips_NoHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	c, _ := newServer(t, func(req *graphql.Request, r *http.Request) any {
		gotAuth = r.Header.Get("Authorization")
		return graphql.ErrorResponse("unauthorized")
	})

	_, err := c.BookTrips(context.Background(), []string{"109"})
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, gotAuth)
}

func TestLaunches_DecodesList(t *testing.T) {
	c, _ := newServer(t, func(req *graphql.Request, r *http.Request) any {
		assert.Equal(t, "LaunchList", req.OperationName)
		return dataResponse(t, map[string]any{"launches": []map[string]any{
			{"id": "109", "site": "KSC LC-39A", "mission": "Starlink-15", "rocket": "Falcon 9"},
		}})
	})

	launches, err := c.Launches(context.Background())
	require.NoError(t, err)
	require.Len(t, launches, 1)
	assert.Equal(t, Launch{ID: "109", Site: "KSC LC-39A", Mission: "Starlink-15", Rocket: "Falcon 9"}, launches[0])
}

func TestPing(t *testing.T) {
	c, _ := newServer(t, func(req *graphql.Request, r *http.Request) any {
		return dataResponse(t, map[string]any{"ping": "OK"})
	})
	require.NoError(t, c.Ping(context.Background()))
}
