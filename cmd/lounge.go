package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/example/tripplanner/internal/config"
	"github.com/example/tripplanner/internal/domain/trip"
	"github.com/example/tripplanner/internal/infrastructure/postgres"
)

func newLoungeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lounge",
		Short: "Manage the airport lounge catalogue",
	}
	cmd.AddCommand(newLoungeAddCmd())
	cmd.AddCommand(newLoungeListCmd())
	return cmd
}

func newLoungeAddCmd() *cobra.Command {
	var (
		l         trip.Lounge
		amenities string
		access    string
		tiers     string
	)

	c := &cobra.Command{
		Use:   "add",
		Short: "Add a lounge",
		RunE: func(cmd *cobra.Command, args []string) error {
			l.ID = "lng_" + uuid.NewString()
			l.AirportCode = strings.ToUpper(l.AirportCode)
			l.Amenities = splitCSV(amenities)
			switch a := trip.AccessType(access); a {
			case trip.AccessIncluded, trip.AccessPartner, trip.AccessPremium:
				l.AccessType = a
			default:
				return fmt.Errorf("invalid --access %q (want included, partner or premium)", access)
			}
			for _, s := range splitCSV(tiers) {
				t, err := trip.ParseTier(s)
				if err != nil {
					return err
				}
				l.Tiers = append(l.Tiers, t)
			}
			if len(l.Tiers) == 0 {
				return fmt.Errorf("--tiers needs at least one tier")
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

			if err := postgres.NewLoungeRepo(d).Create(ctx, l); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created lounge id=%s %q at %s terminal %s\n", l.ID, l.Name, l.AirportCode, l.Terminal)
			return nil
		},
	}

	c.Flags().StringVar(&l.Name, "name", "", "lounge name")
	c.Flags().StringVar(&l.AirportCode, "airport", "", "airport IATA code")
	c.Flags().StringVar(&l.Terminal, "terminal", "", "terminal")
	c.Flags().StringVar(&amenities, "amenities", "", "comma-separated amenities")
	c.Flags().StringVar(&l.OpeningHours, "hours", "", `opening hours, e.g. "05:00 - 23:00"`)
	c.Flags().StringVar(&l.Description, "description", "", "description")
	c.Flags().StringVar(&access, "access", string(trip.AccessIncluded), "access type: included, partner or premium")
	c.Flags().StringVar(&tiers, "tiers", "standard,prestige,prestige_plus", "comma-separated tiers allowed in")
	for _, name := range []string{"name", "airport", "terminal"} {
		_ = c.MarkFlagRequired(name)
	}
	return c
}

func newLoungeListCmd() *cobra.Command {
	var airport string
	c := &cobra.Command{
		Use:   "list",
		Short: "List lounges at an airport",
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

			ls, err := postgres.NewLoungeRepo(d).ListByAirport(ctx, strings.ToUpper(airport))
			if err != nil {
				return err
			}
			for _, l := range ls {
				fmt.Fprintf(cmd.OutOrStdout(), "id=%s %q terminal=%s access=%s hours=%q amenities=%s\n",
					l.ID, l.Name, l.Terminal, l.AccessType, l.OpeningHours, strings.Join(l.Amenities, ","))
			}
			return nil
		},
	}
	c.Flags().StringVar(&airport, "airport", "", "airport IATA code")
	_ = c.MarkFlagRequired("airport")
	return c
}
