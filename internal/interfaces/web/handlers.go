package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/example/tripplanner/internal/application/usecases"
	"github.com/example/tripplanner/internal/domain/departure"
	"github.com/example/tripplanner/internal/telemetry"
)

const requestTimeout = 5 * time.Second

func optionalInt(r *http.Request, name string) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &departure.InputError{Field: name, Value: raw, Reason: "want a whole number of minutes"}
	}
	return &n, nil
}

func optionalBool(r *http.Request, name string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, &departure.InputError{Field: name, Value: raw, Reason: "want true or false"}
	}
	return &b, nil
}

func (s *Server) handleRecommendation(w http.ResponseWriter, r *http.Request) {
	req := departure.Request{FlightDepartureTime: r.URL.Query().Get("flight_time")}
	var err error
	if req.DriveTimeMinutes, err = optionalInt(r, "drive_minutes"); err != nil {
		telemetry.RecommendationErrorsTotal.Inc()
		writeErr(w, s.Log, err)
		return
	}
	if req.International, err = optionalBool(r, "international"); err != nil {
		telemetry.RecommendationErrorsTotal.Inc()
		writeErr(w, s.Log, err)
		return
	}

	rec, err := s.Recommender.RecommendFor(req)
	if err != nil {
		telemetry.RecommendationErrorsTotal.Inc()
		writeErr(w, s.Log, err)
		return
	}
	international := req.International == nil || *req.International
	telemetry.RecommendationsTotal.WithLabelValues(telemetry.TripType(international)).Inc()
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleFormatDuration(w http.ResponseWriter, r *http.Request) {
	n, err := optionalInt(r, "minutes")
	if err == nil && (n == nil || *n < 0) {
		err = &departure.InputError{Field: "minutes", Value: r.URL.Query().Get("minutes"), Reason: "want a non-negative whole number"}
	}
	if err != nil {
		writeErr(w, s.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"minutes": *n, "formatted": departure.FormatDuration(*n)})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	m, err := s.Auth.VerifyPassword(ctx, strings.TrimSpace(body.Username), body.Password)
	if err != nil {
		writeErr(w, s.Log, err)
		return
	}
	if err := s.Sessions.SetMemberID(w, r, m.ID); err != nil {
		writeErr(w, s.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, toMemberView(m))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.Sessions.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFlights(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	fs, err := s.Flights.ListByMember(ctx, memberIDFromCtx(r))
	if err != nil {
		writeErr(w, s.Log, err)
		return
	}
	out := make([]flightView, 0, len(fs))
	for _, f := range fs {
		out = append(out, toFlightView(f))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTrip(w http.ResponseWriter, r *http.Request) {
	drive, err := optionalInt(r, "drive_minutes")
	if err != nil {
		writeErr(w, s.Log, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	d, err := s.PlanTrip.Execute(ctx, memberIDFromCtx(r), chi.URLParam(r, "flightID"), drive)
	if err != nil {
		writeErr(w, s.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, toTripView(d, s.Recommender.Now()))
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	bs, err := s.Bookings.ListByMember(ctx, memberIDFromCtx(r))
	if err != nil {
		writeErr(w, s.Log, err)
		return
	}
	now := s.Recommender.Now()
	out := make([]bookingView, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBookingView(b, now))
	}
	writeJSON(w, http.StatusOK, out)
}

type createBookingRequest struct {
	FlightID         string `json:"flightId"`
	PickupAddress    string `json:"pickupAddress"`
	DropoffAddress   string `json:"dropoffAddress"`
	PickupTime       string `json:"pickupTime"`
	DriveTimeMinutes *int   `json:"driveTimeMinutes"`
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var body createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}
	req := usecases.BookTaxiRequest{
		MemberID:         memberIDFromCtx(r),
		FlightID:         body.FlightID,
		PickupAddress:    body.PickupAddress,
		DropoffAddress:   body.DropoffAddress,
		DriveTimeMinutes: body.DriveTimeMinutes,
	}
	if strings.TrimSpace(body.PickupTime) != "" {
		t, err := departure.ParseInstant(body.PickupTime)
		if err != nil {
			writeErr(w, s.Log, &departure.InputError{Field: "pickup time", Value: body.PickupTime, Reason: "want RFC 3339 with offset"})
			return
		}
		req.PickupTime = &t
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	resp, err := s.BookTaxi.Execute(ctx, req)
	if err != nil {
		writeErr(w, s.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	b, err := s.Cancel.Execute(ctx, memberIDFromCtx(r), chi.URLParam(r, "bookingID"))
	if err != nil {
		writeErr(w, s.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingView(b, s.Recommender.Now()))
}
