package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkolesov/launchbook/internal/common"
	"github.com/pkolesov/launchbook/internal/graphql"
	"github.com/pkolesov/launchbook/internal/logging"
	"github.com/pkolesov/launchbook/internal/server/models"
	"github.com/pkolesov/launchbook/internal/server/services"
)

type fakeUserService struct {
	token    string
	loginErr error

	userID   string
	tokenErr error

	lastEmail string
}

func (f *fakeUserService) Login(ctx context.Context, email string) (string, error) {
	f.lastEmail = email
	return f.token, f.loginErr
}

func (f *fakeUserService) UserIDFromToken(tokenString string) (string, error) {
	if f.tokenErr != nil {
		return "", f.tokenErr
	}
	return f.userID, nil
}

type fakeBookingService struct {
	launches []models.Launch
	result   *services.BookingResult
	trips    []models.Launch
	err      error

	lastUserID    string
	lastLaunchIDs []string
}

func (f *fakeBookingService) Launches(ctx context.Context) ([]models.Launch, error) {
	return f.launches, f.err
}

func (f *fakeBookingService) BookTrips(ctx context.Context, userID string, launchIDs []string) (*services.BookingResult, error) {
	f.lastUserID = userID
	f.lastLaunchIDs = launchIDs
	return f.result, f.err
}

func (f *fakeBookingService) CancelTrip(ctx context.Context, userID string, launchID string) (*services.BookingResult, error) {
	f.lastUserID = userID
	f.lastLaunchIDs = []string{launchID}
	return f.result, f.err
}

func (f *fakeBookingService) BookedTrips(ctx context.Context, userID string) ([]models.Launch, error) {
	f.lastUserID = userID
	return f.trips, f.err
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}

func post(t *testing.T, h *Handler, req *graphql.Request, token string) (*httptest.ResponseRecorder, *graphql.Response) {
	t.Helper()

	body, err := json.Marshal(req)
	require.NoError(t, err)

	httpReq := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	if token != "" {
		httpReq.Header.Set(common.AuthHeaderName, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httpReq)

	var resp graphql.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, &resp
}

func TestLogin_TokenEmitted(t *testing.T) {
	users := &fakeUserService{token: "tok-123"}
	h := NewHandler(users, &fakeBookingService{}, testLogger())

	req := &graphql.Request{OperationName: "Login", Variables: map[string]any{"email": "me@example.com"}}
	rec, resp := post(t, h, req, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, resp.Errors)
	assert.Equal(t, "me@example.com", users.lastEmail)

	var data struct {
		Login struct {
			Token *string `json:"token"`
		} `json:"login"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotNil(t, data.Login.Token)
	assert.Equal(t, "tok-123", *data.Login.Token)
}

func TestLogin_NoTokenIsNull(t *testing.T) {
	h := NewHandler(&fakeUserService{token: ""}, &fakeBookingService{}, testLogger())

	req := &graphql.Request{OperationName: "Login", Variables: map[string]any{"email": "not-an-email"}}
	rec, resp := post(t, h, req, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, resp.Errors)
	assert.Contains(t, string(resp.Data), `"token":null`)
}

func TestLogin_NullEmailVariable(t *testing.T) {
	users := &fakeUserService{token: ""}
	h := NewHandler(users, &fakeBookingService{}, testLogger())

	req := &graphql.Request{OperationName: "Login", Variables: map[string]any{"email": nil}}
	_, resp := post(t, h, req, "")

	assert.Empty(t, resp.Errors)
	assert.Equal(t, "", users.lastEmail)
}

func TestLogin_RateLimitedAsEnvelopeError(t *testing.T) {
	h := NewHandler(&fakeUserService{loginErr: common.ErrTooManyAttempts}, &fakeBookingService{}, testLogger())

	req := &graphql.Request{OperationName: "Login", Variables: map[string]any{"email": "me@example.com"}}
	rec, resp := post(t, h, req, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, common.ErrTooManyAttempts.Error(), resp.Errors[0].Message)
}

func TestLaunchList_Success(t *testing.T) {
	booking := &fakeBookingService{launches: []models.Launch{
		{ID: "109", Site: "CCAFS SLC 40", Mission: "Sentinel-6", Rocket: "Falcon 9"},
	}}
	h := NewHandler(&fakeUserService{}, booking, testLogger())

	_, resp := post(t, h, &graphql.Request{OperationName: "LaunchList"}, "")

	assert.Empty(t, resp.Errors)
	var data struct {
		Launches []struct {
			ID      string `json:"id"`
			Mission string `json:"mission"`
		} `json:"launches"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Len(t, data.Launches, 1)
	assert.Equal(t, "Sentinel-6", data.Launches[0].Mission)
}

func TestBookTrips_RequiresToken(t *testing.T) {
	booking := &fakeBookingService{result: &services.BookingResult{Success: true}}
	h := NewHandler(&fakeUserService{userID: "u-1"}, booking, testLogger())

	req := &graphql.Request{OperationName: "BookTrips", Variables: map[string]any{"launchIds": []any{"109"}}}
	_, resp := post(t, h, req, "")

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, common.ErrUnauthorized.Error(), resp.Errors[0].Message)
	assert.Empty(t, booking.lastUserID)
}

func TestBookTrips_InvalidTokenRefused(t *testing.T) {
	users := &fakeUserService{tokenErr: common.ErrInvalidToken}
	h := NewHandler(users, &fakeBookingService{}, testLogger())

	req := &graphql.Request{OperationName: "BookTrips", Variables: map[string]any{"launchIds": []any{"109"}}}
	_, resp := post(t, h, req, "forged")

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, common.ErrUnauthorized.Error(), resp.Errors[0].Message)
}

func TestBookTrips_Dispatches(t *testing.T) {
	booking := &fakeBookingService{result: &services.BookingResult{Success: true, Message: "trips booked successfully"}}
	h := NewHandler(&fakeUserService{userID: "u-1"}, booking, testLogger())

	req := &graphql.Request{OperationName: "BookTrips", Variables: map[string]any{"launchIds": []any{"108", "109"}}}
	_, resp := post(t, h, req, "tok-123")

	assert.Empty(t, resp.Errors)
	assert.Equal(t, "u-1", booking.lastUserID)
	assert.Equal(t, []string{"108", "109"}, booking.lastLaunchIDs)

	var data struct {
		BookTrips struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		} `json:"bookTrips"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.True(t, data.BookTrips.Success)
}

func TestCancelTrip_Dispatches(t *testing.T) {
	booking := &fakeBookingService{result: &services.BookingResult{Success: true, Message: "launch 109 cancelled"}}
	h := NewHandler(&fakeUserService{userID: "u-1"}, booking, testLogger())

	req := &graphql.Request{OperationName: "CancelTrip", Variables: map[string]any{"launchId": "109"}}
	_, resp := post(t, h, req, "tok-123")

	assert.Empty(t, resp.Errors)
	assert.Equal(t, []string{"109"}, booking.lastLaunchIDs)
}

func TestBookedTrips_Dispatches(t *testing.T) {
	booking := &fakeBookingService{trips: []models.Launch{{ID: "109"}}}
	h := NewHandler(&fakeUserService{userID: "u-1"}, booking, testLogger())

	_, resp := post(t, h, &graphql.Request{OperationName: "BookedTrips"}, "tok-123")

	assert.Empty(t, resp.Errors)
	assert.Equal(t, "u-1", booking.lastUserID)
	assert.Contains(t, string(resp.Data), `"bookedTrips"`)
}

func TestPing(t *testing.T) {
	h := NewHandler(&fakeUserService{}, &fakeBookingService{}, testLogger())

	_, resp := post(t, h, &graphql.Request{OperationName: "Ping"}, "")

	assert.Empty(t, resp.Errors)
	assert.Contains(t, string(resp.Data), `"ping":"OK"`)
}

func TestUnknownOperation(t *testing.T) {
	h := NewHandler(&fakeUserService{}, &fakeBookingService{}, testLogger())

	_, resp := post(t, h, &graphql.Request{OperationName: "DropTables"}, "")

	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0].Message, "unknown operation")
}

func TestInvalidBodyIsBadRequest(t *testing.T) {
	h := NewHandler(&fakeUserService{}, &fakeBookingService{}, testLogger())

	httpReq := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httpReq)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
