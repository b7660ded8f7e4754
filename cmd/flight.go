package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/example/tripplanner/internal/config"
	"github.com/example/tripplanner/internal/domain/departure"
	"github.com/example/tripplanner/internal/domain/trip"
	"github.com/example/tripplanner/internal/infrastructure/postgres"
)

func newFlightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flight",
		Short: "Manage member flights",
	}
	cmd.AddCommand(newFlightAddCmd())
	cmd.AddCommand(newFlightListCmd())
	return cmd
}

func newFlightAddCmd() *cobra.Command {
	var (
		f         trip.Flight
		departs   string
		arrives   string
		domestic  bool
		statusArg string
	)

	c := &cobra.Command{
		Use:   "add",
		Short: "Add a flight for a member",
		RunE: func(cmd *cobra.Command, args []string) error {
			dep, err := departure.ParseInstant(departs)
			if err != nil {
				return fmt.Errorf("invalid --departure: %w", err)
			}
			f.DepartureTime = dep
			if arrives != "" {
				arr, err := departure.ParseInstant(arrives)
				if err != nil {
					return fmt.Errorf("invalid --arrival: %w", err)
				}
				f.ArrivalTime = &arr
			}
			f.ID = "flt_" + uuid.NewString()
			f.FlightNumber = strings.ToUpper(f.FlightNumber)
			f.DepartureAirport = strings.ToUpper(f.DepartureAirport)
			f.ArrivalAirport = strings.ToUpper(f.ArrivalAirport)
			f.Status = trip.FlightStatus(statusArg)
			f.International = !domestic
			if err := f.Validate(); err != nil {
				return err
			}

			cfg, err := config.FromEnvWithoutSecrets()
			if err != nil {
				return err
			}
			ctx := context.Background()
			d, err := openDB(ctx, cfg, true)
			if err != nil {
				return err
			}
			defer d.Close()

			if err := postgres.NewFlightRepo(d).Create(ctx, f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created flight id=%s %s %s->%s departs=%s\n",
				f.ID, f.FlightNumber, f.DepartureAirport, f.ArrivalAirport, departure.FormatInstant(f.DepartureTime))
			return nil
		},
	}

	c.Flags().StringVar(&f.MemberID, "member-id", "", "member id")
	c.Flags().StringVar(&f.FlightNumber, "flight-number", "", "flight number, e.g. BA117")
	c.Flags().StringVar(&f.Airline, "airline", "", "airline name")
	c.Flags().StringVar(&f.DepartureAirport, "from", "", "departure airport IATA code")
	c.Flags().StringVar(&f.ArrivalAirport, "to", "", "arrival airport IATA code")
	c.Flags().StringVar(&departs, "departure", "", "departure time, RFC 3339 with offset")
	c.Flags().StringVar(&arrives, "arrival", "", "optional arrival time, RFC 3339 with offset")
	c.Flags().StringVar(&f.Terminal, "terminal", "", "departure terminal")
	c.Flags().StringVar(&f.Gate, "gate", "", "gate")
	c.Flags().StringVar(&statusArg, "status", string(trip.FlightUpcoming), "flight status")
	c.Flags().BoolVar(&domestic, "domestic", false, "domestic flight")
	for _, name := range []string{"member-id", "flight-number", "from", "to", "departure", "terminal"} {
		_ = c.MarkFlagRequired(name)
	}
	return c
}

func newFlightListCmd() *cobra.Command {
	var memberID string
	c := &cobra.Command{
		Use:   "list",
		Short: "List flights for a member",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnvWithoutSecrets()
			if err != nil {
				return err
			}
			ctx := context.Background()
			d, err := openDB(ctx, cfg, false)
			if err != nil {
				return err
			}
			defer d.Close()

			fs, err := postgres.NewFlightRepo(d).ListByMember(ctx, memberID)
			if err != nil {
				return err
			}
			for _, f := range fs {
				fmt.Fprintf(cmd.OutOrStdout(), "id=%s %s %s->%s terminal=%s departs=%s status=%s international=%t\n",
					f.ID, f.FlightNumber, f.DepartureAirport, f.ArrivalAirport, f.Terminal,
					departure.FormatDateTime(f.DepartureTime, cfg.DisplayLocation), f.Status, f.International)
			}
			return nil
		},
	}
	c.Flags().StringVar(&memberID, "member-id", "", "member id")
	_ = c.MarkFlagRequired("member-id")
	return c
}
