package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/tripplanner/internal/config"
	"github.com/example/tripplanner/internal/domain/departure"
)

func newRecommendCmd() *cobra.Command {
	var (
		flightTime   string
		driveMinutes int
		domestic     bool
		asJSON       bool
	)

	c := &cobra.Command{
		Use:   "recommend",
		Short: "Compute the recommended taxi pickup time for a flight",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnvWithoutSecrets()
			if err != nil {
				return err
			}
			rec := departure.New(departure.DefaultPolicy(), departure.SystemClock{}, cfg.DisplayLocation)

			req := departure.Request{FlightDepartureTime: flightTime}
			if cmd.Flags().Changed("drive-minutes") {
				req.DriveTimeMinutes = &driveMinutes
			}
			international := !domestic
			req.International = &international

			r, err := rec.RecommendFor(req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(r)
			}

			loc := cfg.DisplayLocation
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Pickup\t%s\n", departure.FormatDateTime(r.PickupTime, loc))
			fmt.Fprintf(tw, "Arrive at airport\t%s\n", departure.FormatDateTime(r.ArrivalAtAirportTime, loc))
			fmt.Fprintf(tw, "Flight departs\t%s\n", departure.FormatDateTime(r.FlightDepartureTime, loc))
			fmt.Fprintf(tw, "Total buffer\t%s\n", departure.FormatDuration(r.TotalBufferMinutes))
			fmt.Fprintf(tw, "Time until pickup\t%s\n", r.TimeUntilPickup)
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(out, r.Reasoning)
			return nil
		},
	}

	c.Flags().StringVar(&flightTime, "flight-time", "", "flight departure, RFC 3339 with offset (e.g. 2025-10-20T14:30:00Z)")
	c.Flags().IntVar(&driveMinutes, "drive-minutes", departure.DefaultPolicy().DefaultDriveTimeMinutes, "estimated drive time to the airport")
	c.Flags().BoolVar(&domestic, "domestic", false, "domestic flight (shorter security buffer)")
	c.Flags().BoolVar(&asJSON, "json", false, "print the recommendation as JSON")
	_ = c.MarkFlagRequired("flight-time")
	return c
}
