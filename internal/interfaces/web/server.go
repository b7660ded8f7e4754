package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/example/tripplanner/internal/application/usecases"
	"github.com/example/tripplanner/internal/domain/departure"
	"github.com/example/tripplanner/internal/telemetry"
)

type Server struct {
	Sessions    *SessionManager
	Auth        usecases.AuthService
	Flights     usecases.FlightStore
	Bookings    usecases.BookingStore
	Recommender *departure.Recommender
	PlanTrip    usecases.PlanTrip
	BookTaxi    usecases.BookTaxi
	Cancel      usecases.CancelBooking
	Log         zerolog.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.Log))
	r.Use(middleware.Recoverer)
	r.Use(telemetry.MetricsMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Method(http.MethodGet, "/metrics", telemetry.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/recommendation", s.handleRecommendation)
		r.Get("/format/duration", s.handleFormatDuration)

		r.Post("/session", s.handleLogin)
		r.Delete("/session", s.handleLogout)

		r.Group(func(r chi.Router) {
			r.Use(s.Sessions.RequireMember)
			r.Get("/flights", s.handleFlights)
			r.Get("/trips/{flightID}", s.handleTrip)
			r.Get("/bookings", s.handleListBookings)
			r.Post("/bookings", s.handleCreateBooking)
			r.Post("/bookings/{bookingID}/cancel", s.handleCancelBooking)
		})
	})
	return r
}

func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("http request")
		})
	}
}

// Start serves h on addr until ctx is cancelled, then shuts down gracefully.
func Start(ctx context.Context, addr string, h http.Handler, log zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	log.Info().Str("addr", addr).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
