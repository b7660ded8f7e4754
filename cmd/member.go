package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/tripplanner/internal/application/usecases"
	"github.com/example/tripplanner/internal/config"
	"github.com/example/tripplanner/internal/domain/trip"
	"github.com/example/tripplanner/internal/infrastructure/postgres"
)

func newMemberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage members",
	}
	cmd.AddCommand(newMemberAddCmd())
	return cmd
}

func newMemberAddCmd() *cobra.Command {
	var in usecases.NewMemberInput
	var tier string

	c := &cobra.Command{
		Use:   "add",
		Short: "Add a member (username/password)",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := trip.ParseTier(tier)
			if err != nil {
				return err
			}
			in.Tier = t

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

			m, err := usecases.NewMember(in)
			if err != nil {
				return err
			}
			if err := postgres.NewMemberRepo(d).Create(ctx, m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created member %q id=%s tier=%s\n", m.Username, m.ID, m.Tier)
			return nil
		},
	}

	c.Flags().StringVar(&in.Username, "username", "", "username")
	c.Flags().StringVar(&in.Password, "password", "", "password")
	c.Flags().StringVar(&in.Email, "email", "", "email")
	c.Flags().StringVar(&in.FirstName, "first-name", "", "first name")
	c.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	c.Flags().StringVar(&tier, "tier", string(trip.TierStandard), "membership tier: standard, prestige or prestige_plus")
	_ = c.MarkFlagRequired("username")
	_ = c.MarkFlagRequired("password")
	return c
}
