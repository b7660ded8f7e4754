package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/tripplanner/internal/application/usecases"
	"github.com/example/tripplanner/internal/config"
	"github.com/example/tripplanner/internal/domain/departure"
	"github.com/example/tripplanner/internal/domain/trip"
	"github.com/example/tripplanner/internal/infrastructure/crypto"
	"github.com/example/tripplanner/internal/infrastructure/postgres"
)

func newBookingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "booking",
		Short: "Manage taxi bookings (non-UI)",
	}
	cmd.AddCommand(newBookingCreateCmd())
	cmd.AddCommand(newBookingListCmd())
	cmd.AddCommand(newBookingCancelCmd())
	return cmd
}

type bookingEnv struct {
	cfg      config.Config
	db       *postgres.DB
	members  *postgres.MemberRepo
	flights  *postgres.FlightRepo
	bookings *postgres.BookingRepo
}

func openBookingEnv(ctx context.Context, migrate bool) (*bookingEnv, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	aead, err := crypto.New(cfg.PIIEncKey)
	if err != nil {
		return nil, err
	}
	d, err := openDB(ctx, cfg, migrate)
	if err != nil {
		return nil, err
	}
	return &bookingEnv{
		cfg:      cfg,
		db:       d,
		members:  postgres.NewMemberRepo(d),
		flights:  postgres.NewFlightRepo(d),
		bookings: postgres.NewBookingRepo(d, aead),
	}, nil
}

func newBookingCreateCmd() *cobra.Command {
	var (
		req          usecases.BookTaxiRequest
		pickupTime   string
		driveMinutes int
	)

	c := &cobra.Command{
		Use:   "create",
		Short: "Book a taxi to the airport for a member's flight",
		RunE: func(cmd *cobra.Command, args []string) error {
			if pickupTime != "" {
				t, err := departure.ParseInstant(pickupTime)
				if err != nil {
					return fmt.Errorf("invalid --pickup-time: %w", err)
				}
				req.PickupTime = &t
			}
			if cmd.Flags().Changed("drive-minutes") {
				req.DriveTimeMinutes = &driveMinutes
			}

			ctx := context.Background()
			env, err := openBookingEnv(ctx, true)
			if err != nil {
				return err
			}
			defer env.db.Close()

			u := usecases.BookTaxi{
				Members:     env.members,
				Flights:     env.flights,
				Bookings:    env.bookings,
				Recommender: departure.New(departure.DefaultPolicy(), departure.SystemClock{}, env.cfg.DisplayLocation),
				Tariff:      env.cfg.Tariff,
				Location:    env.cfg.DisplayLocation,
			}
			resp, err := u.Execute(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created booking id=%s pickup=%s fare=%s discount=%s\n%s\n",
				resp.BookingID, departure.FormatInstant(resp.EstimatedPickupTime),
				departure.FormatCurrency(resp.EstimatedFare, resp.Currency),
				departure.FormatCurrency(resp.DiscountApplied, resp.Currency), resp.Message)
			return nil
		},
	}

	c.Flags().StringVar(&req.MemberID, "member-id", "", "member id")
	c.Flags().StringVar(&req.FlightID, "flight-id", "", "flight id")
	c.Flags().StringVar(&req.PickupAddress, "pickup-address", "", "pickup address")
	c.Flags().StringVar(&req.DropoffAddress, "dropoff-address", "", "dropoff address (defaults to the departure terminal)")
	c.Flags().StringVar(&pickupTime, "pickup-time", "", "pickup time, RFC 3339 (defaults to the recommended pickup)")
	c.Flags().IntVar(&driveMinutes, "drive-minutes", departure.DefaultPolicy().DefaultDriveTimeMinutes, "estimated drive time")
	for _, name := range []string{"member-id", "flight-id", "pickup-address"} {
		_ = c.MarkFlagRequired(name)
	}
	return c
}

func newBookingListCmd() *cobra.Command {
	var memberID string
	c := &cobra.Command{
		Use:   "list",
		Short: "List taxi bookings for a member",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			env, err := openBookingEnv(ctx, false)
			if err != nil {
				return err
			}
			defer env.db.Close()

			bs, err := env.bookings.ListByMember(ctx, memberID)
			if err != nil {
				return err
			}
			now := time.Now()
			for _, b := range bs {
				fmt.Fprintln(cmd.OutOrStdout(), bookingLine(b, now, env.cfg.DisplayLocation))
			}
			return nil
		},
	}
	c.Flags().StringVar(&memberID, "member-id", "", "member id")
	_ = c.MarkFlagRequired("member-id")
	return c
}

func bookingLine(b trip.TaxiBooking, now time.Time, loc *time.Location) string {
	lastErr := ""
	if b.LastError != nil {
		lastErr = *b.LastError
	}
	return fmt.Sprintf("id=%s flight=%s status=%s pickup=%s pickup_in=%q fare=%s last_error=%q",
		b.ID, b.FlightID, b.Status, departure.FormatDateTime(b.PickupTime, loc),
		departure.TimeRemaining(b.PickupTime, now),
		departure.FormatCurrency(b.Fare.NetMinor, b.Fare.Currency), lastErr)
}

func newBookingCancelCmd() *cobra.Command {
	var memberID, bookingID string
	c := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel a taxi booking",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			env, err := openBookingEnv(ctx, false)
			if err != nil {
				return err
			}
			defer env.db.Close()

			b, err := usecases.CancelBooking{Bookings: env.bookings}.Execute(ctx, memberID, bookingID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cancelled booking id=%s\n", b.ID)
			return nil
		},
	}
	c.Flags().StringVar(&memberID, "member-id", "", "member id")
	c.Flags().StringVar(&bookingID, "booking-id", "", "booking id")
	_ = c.MarkFlagRequired("member-id")
	_ = c.MarkFlagRequired("booking-id")
	return c
}
