// Package httpapi exposes the server over HTTP: one POST /graphql
// endpoint speaking the JSON envelope, dispatched on operationName,
// plus a health probe. Operation-level failures travel as structured
// errors in the envelope with HTTP 200; only malformed requests get a
// non-200 status.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkolesov/launchbook/internal/common"
	"github.com/pkolesov/launchbook/internal/graphql"
	"github.com/pkolesov/launchbook/internal/logging"
	"github.com/pkolesov/launchbook/internal/server/models"
	"github.com/pkolesov/launchbook/internal/server/services"
)

type UserService interface {
	Login(ctx context.Context, email string) (string, error)
	UserIDFromToken(tokenString string) (string, error)
}

type BookingService interface {
	Launches(ctx context.Context) ([]models.Launch, error)
	BookTrips(ctx context.Context, userID string, launchIDs []string) (*services.BookingResult, error)
	CancelTrip(ctx context.Context, userID string, launchID string) (*services.BookingResult, error)
	BookedTrips(ctx context.Context, userID string) ([]models.Launch, error)
}

type Handler struct {
	users   UserService
	booking BookingService
	logger  logging.Logger
}

func NewHandler(users UserService, booking BookingService, logger logging.Logger) *Handler {
	return &Handler{users: users, booking: booking, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	var req graphql.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	var resp *graphql.Response
	switch req.OperationName {
	case "Login":
		resp = h.login(ctx, &req)
	case "LaunchList":
		resp = h.launchList(ctx)
	case "BookTrips":
		resp = h.bookTrips(ctx, r, &req)
	case "CancelTrip":
		resp = h.cancelTrip(ctx, r, &req)
	case "BookedTrips":
		resp = h.bookedTrips(ctx, r)
	case "Ping":
		resp = h.ping()
	default:
		resp = graphql.ErrorResponse("unknown operation: " + req.OperationName)
	}

	writeJSON(w, resp)
}

// userID authenticates a protected operation from the bearer token. Any
// missing, malformed, expired or forged token maps to
// common.ErrUnauthorized.
func (h *Handler) userID(r *http.Request) (string, error) {
	header := r.Header.Get(common.AuthHeaderName)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", common.ErrUnauthorized
	}

	userID, err := h.users.UserIDFromToken(token)
	if err != nil {
		return "", common.ErrUnauthorized
	}
	return userID, nil
}

type loginData struct {
	Login struct {
		Token *string `json:"token"`
	} `json:"login"`
}

// login never reports a missing email as an error: an absent or
// malformed identifier yields a null token and the caller stays logged
// out.
func (h *Handler) login(ctx context.Context, req *graphql.Request) *graphql.Response {
	email, _ := graphql.StringVar(req, "email")

	token, err := h.users.Login(ctx, email)
	if err != nil {
		h.logger.Warn(ctx, "login refused", "error", err.Error())
		return graphql.ErrorResponse(err.Error())
	}

	var data loginData
	if token != "" {
		data.Login.Token = &token
	}
	return dataResponse(data)
}

type launchDTO struct {
	ID      string `json:"id"`
	Site    string `json:"site"`
	Mission string `json:"mission"`
	Rocket  string `json:"rocket"`
}

func toLaunchDTOs(launches []models.Launch) []launchDTO {
	dtos := make([]launchDTO, 0, len(launches))
	for _, l := range launches {
		dtos = append(dtos, launchDTO{ID: l.ID, Site: l.Site, Mission: l.Mission, Rocket: l.Rocket})
	}
	return dtos
}

func (h *Handler) launchList(ctx context.Context) *graphql.Response {
	launches, err := h.booking.Launches(ctx)
	if err != nil {
		h.logger.Error(ctx, "launch list failed", "error", err.Error())
		return graphql.ErrorResponse(err.Error())
	}

	return dataResponse(map[string]any{"launches": toLaunchDTOs(launches)})
}

type bookingDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *Handler) bookTrips(ctx context.Context, r *http.Request, req *graphql.Request) *graphql.Response {
	userID, err := h.userID(r)
	if err != nil {
		return graphql.ErrorResponse(err.Error())
	}

	launchIDs, ok := graphql.StringSliceVar(req, "launchIds")
	if !ok {
		return graphql.ErrorResponse("launchIds must be a list of IDs")
	}

	res, err := h.booking.BookTrips(ctx, userID, launchIDs)
	if err != nil {
		h.logger.Error(ctx, "booking failed", "error", err.Error())
		return graphql.ErrorResponse(err.Error())
	}

	return dataResponse(map[string]any{"bookTrips": bookingDTO{Success: res.Success, Message: res.Message}})
}

func (h *Handler) cancelTrip(ctx context.Context, r *http.Request, req *graphql.Request) *graphql.Response {
	userID, err := h.userID(r)
	if err != nil {
		return graphql.ErrorResponse(err.Error())
	}

	launchID, ok := graphql.StringVar(req, "launchId")
	if !ok || launchID == "" {
		return graphql.ErrorResponse("launchId is required")
	}

	res, err := h.booking.CancelTrip(ctx, userID, launchID)
	if err != nil {
		h.logger.Error(ctx, "cancellation failed", "error", err.Error())
		return graphql.ErrorResponse(err.Error())
	}

	return dataResponse(map[string]any{"cancelTrip": bookingDTO{Success: res.Success, Message: res.Message}})
}

func (h *Handler) bookedTrips(ctx context.Context, r *http.Request) *graphql.Response {
	userID, err := h.userID(r)
	if err != nil {
		return graphql.ErrorResponse(err.Error())
	}

	trips, err := h.booking.BookedTrips(ctx, userID)
	if err != nil {
		h.logger.Error(ctx, "booked trips failed", "error", err.Error())
		return graphql.ErrorResponse(err.Error())
	}

	return dataResponse(map[string]any{"bookedTrips": toLaunchDTOs(trips)})
}

func (h *Handler) ping() *graphql.Response {
	return dataResponse(map[string]any{"ping": "OK"})
}

func dataResponse(data any) *graphql.Response {
	raw, err := json.Marshal(data)
	if err != nil {
		return graphql.ErrorResponse(common.ErrInternal.Error())
	}
	return &graphql.Response{Data: raw}
}

func writeJSON(w http.ResponseWriter, resp *graphql.Response) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
