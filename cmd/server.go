package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/tripplanner/internal/application/scheduler"
	"github.com/example/tripplanner/internal/application/usecases"
	"github.com/example/tripplanner/internal/config"
	"github.com/example/tripplanner/internal/domain/departure"
	"github.com/example/tripplanner/internal/infrastructure/crypto"
	"github.com/example/tripplanner/internal/infrastructure/postgres"
	"github.com/example/tripplanner/internal/interfaces/web"
	"github.com/example/tripplanner/internal/logging"
)

// serveWithWorker runs worker alongside serve and, once serve returns, stops
// the worker and waits for it to finish.
func serveWithWorker(ctx context.Context, worker, serve func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = worker(ctx)
	}()

	err := serve(ctx)
	cancel()
	<-done
	return err
}

func newServerCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the HTTP API + taxi dispatcher",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			log := logging.Setup(cfg.Environment)

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			aead, err := crypto.New(cfg.PIIEncKey)
			if err != nil {
				return err
			}
			d, err := openDB(ctx, cfg, migrateUp)
			if err != nil {
				return err
			}
			defer d.Close()

			members := postgres.NewMemberRepo(d)
			flights := postgres.NewFlightRepo(d)
			lounges := postgres.NewLoungeRepo(d)
			bookings := postgres.NewBookingRepo(d, aead)
			clock := departure.SystemClock{}
			rec := departure.New(departure.DefaultPolicy(), clock, cfg.DisplayLocation)

			// dispatcher
			disp := &scheduler.Dispatcher{
				Store:    bookings,
				Clock:    clock,
				Interval: cfg.PollInterval,
				Lead:     cfg.DispatchLead,
				Log:      log.With().Str("component", "dispatcher").Logger(),
			}

			// api
			ws := &web.Server{
				Sessions:    web.NewSessionManager(cfg.CookieHashKey, cfg.CookieBlockKey),
				Auth:        usecases.AuthService{Members: members},
				Flights:     flights,
				Bookings:    bookings,
				Recommender: rec,
				PlanTrip: usecases.PlanTrip{
					Members: members, Flights: flights, Lounges: lounges, Bookings: bookings, Recommender: rec,
				},
				BookTaxi: usecases.BookTaxi{
					Members: members, Flights: flights, Bookings: bookings, Recommender: rec,
					Tariff: cfg.Tariff, Location: cfg.DisplayLocation,
				},
				Cancel: usecases.CancelBooking{Bookings: bookings},
				Log:    log.With().Str("component", "http").Logger(),
			}
			log.Info().Str("env", cfg.Environment).Str("timezone", cfg.DisplayLocation.String()).Msg("starting tripplan server")
			return serveWithWorker(ctx, disp.Run, func(ctx context.Context) error {
				return web.Start(ctx, cfg.ListenAddr, ws.Routes(), log)
			})
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "run database migrations on startup")
	cmd.Flags().Lookup("migrate").NoOptDefVal = "true"
	return cmd
}
