package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkolesov/launchbook/internal/common"
	"github.com/pkolesov/launchbook/internal/graphql"
)

// TokenSource supplies the stored session credential for outbound
// protected requests. An empty token means "not logged in" and no auth
// header is attached.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// GraphQLClient implements Client against a /graphql HTTP endpoint.
type GraphQLClient struct {
	endpointURL string
	httpClient  *http.Client
	tokens      TokenSource
}

func NewGraphQLClient(endpointURL string, tokens TokenSource, timeout time.Duration) *GraphQLClient {
	return &GraphQLClient{
		endpointURL: endpointURL,
		httpClient:  &http.Client{Timeout: timeout},
		tokens:      tokens,
	}
}

// do posts one operation and decodes the data portion into out (when out
// is non-nil). Structured errors are returned to the caller untouched;
// transport and HTTP-level failures map to sentinel errors.
func (c *GraphQLClient) do(ctx context.Context, req *graphql.Request, out any) ([]graphql.Error, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("read credential: %w", err)
		}
		if token != "" {
			httpReq.Header.Set(common.AuthHeaderName, "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	default:
		return nil, fmt.Errorf("%w: unexpected status %s", ErrUnavailable, resp.Status)
	}

	var envelope graphql.Response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return nil, fmt.Errorf("decode data: %w", err)
		}
	}
	return envelope.Errors, nil
}

// opError turns structured errors on a protected operation into a Go
// error. Login deliberately does not use it: there, structured errors
// travel alongside the payload for diagnostics.
func (c *GraphQLClient) opError(errs []graphql.Error) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.Message == common.ErrUnauthorized.Error() {
			return ErrUnauthorized
		}
		msgs = append(msgs, e.Message)
	}
	return fmt.Errorf("server error: %s", strings.Join(msgs, "; "))
}

const loginMutation = `mutation Login($email: String) { login(email: $email) { token } }`

func (c *GraphQLClient) Login(ctx context.Context, email string) (*LoginPayload, error) {
	req := &graphql.Request{
		Query:         loginMutation,
		OperationName: "Login",
		Variables:     map[string]any{"email": email},
	}

	var data struct {
		Login struct {
			Token string `json:"token"`
		} `json:"login"`
	}

	gqlErrs, err := c.do(ctx, req, &data)
	if err != nil {
		return nil, err
	}

	payload := &LoginPayload{Token: data.Login.Token}
	for _, e := range gqlErrs {
		payload.Messages = append(payload.Messages, e.Message)
	}
	return payload, nil
}

const launchListQuery = `query LaunchList { launches { id site mission rocket } }`

func (c *GraphQLClient) Launches(ctx context.Context) ([]Launch, error) {
	req := &graphql.Request{Query: launchListQuery, OperationName: "LaunchList"}

	var data struct {
		Launches []launchDTO `json:"launches"`
	}
	gqlErrs, err := c.do(ctx, req, &data)
	if err != nil {
		return nil, err
	}
	if err := c.opError(gqlErrs); err != nil {
		return nil, err
	}
	return toLaunches(data.Launches), nil
}

const bookTripsMutation = `mutation BookTrips($launchIds: [ID]!) { bookTrips(launchIds: $launchIds) { success message } }`

func (c *GraphQLClient) BookTrips(ctx context.Context, launchIDs []string) (*BookingPayload, error) {
	ids := make([]any, 0, len(launchIDs))
	for _, id := range launchIDs {
		ids = append(ids, id)
	}
	req := &graphql.Request{
		Query:         bookTripsMutation,
		OperationName: "BookTrips",
		Variables:     map[string]any{"launchIds": ids},
	}

	var data struct {
		BookTrips bookingDTO `json:"bookTrips"`
	}
	gqlErrs, err := c.do(ctx, req, &data)
	if err != nil {
		return nil, err
	}
	if err := c.opError(gqlErrs); err != nil {
		return nil, err
	}
	return &BookingPayload{Success: data.BookTrips.Success, Message: data.BookTrips.Message}, nil
}

const cancelTripMutation = `mutation CancelTrip($launchId: ID!) { cancelTrip(launchId: $launchId) { success message } }`

func (c *GraphQLClient) CancelTrip(ctx context.Context, launchID string) (*BookingPayload, error) {
	req := &graphql.Request{
		Query:         cancelTripMutation,
		OperationName: "CancelTrip",
		Variables:     map[string]any{"launchId": launchID},
	}

	var data struct {
		CancelTrip bookingDTO `json:"cancelTrip"`
	}
	gqlErrs, err := c.do(ctx, req, &data)
	if err != nil {
		return nil, err
	}
	if err := c.opError(gqlErrs); err != nil {
		return nil, err
	}
	return &BookingPayload{Success: data.CancelTrip.Success, Message: data.CancelTrip.Message}, nil
}

const bookedTripsQuery = `query BookedTrips { bookedTrips { id site mission rocket } }`

func (c *GraphQLClient) BookedTrips(ctx context.Context) ([]Launch, error) {
	req := &graphql.Request{Query: bookedTripsQuery, OperationName: "BookedTrips"}

	var data struct {
		BookedTrips []launchDTO `json:"bookedTrips"`
	}
	gqlErrs, err := c.do(ctx, req, &data)
	if err != nil {
		return nil, err
	}
	if err := c.opError(gqlErrs); err != nil {
		return nil, err
	}
	return toLaunches(data.BookedTrips), nil
}

const pingQuery = `query Ping { ping }`

func (c *GraphQLClient) Ping(ctx context.Context) error {
	req := &graphql.Request{Query: pingQuery, OperationName: "Ping"}

	var data struct {
		Ping string `json:"ping"`
	}
	gqlErrs, err := c.do(ctx, req, &data)
	if err != nil {
		return err
	}
	if err := c.opError(gqlErrs); err != nil {
		return err
	}
	if data.Ping != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (c *GraphQLClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

type launchDTO struct {
	ID      string `json:"id"`
	Site    string `json:"site"`
	Mission string `json:"mission"`
	Rocket  string `json:"rocket"`
}

type bookingDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func toLaunches(dtos []launchDTO) []Launch {
	launches := make([]Launch, 0, len(dtos))
	for _, d := range dtos {
		launches = append(launches, Launch{ID: d.ID, Site: d.Site, Mission: d.Mission, Rocket: d.Rocket})
	}
	return launches
}
