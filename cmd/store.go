package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/tripplanner/internal/config"
	"github.com/example/tripplanner/internal/infrastructure/postgres"
)

// openDB connects, checks the connection and optionally applies migrations.
func openDB(ctx context.Context, cfg config.Config, migrate bool) (*postgres.DB, error) {
	d, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := d.Ping(ctx); err != nil {
		d.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	if migrate {
		if err := postgres.Migrate(ctx, d); err != nil {
			d.Close()
			return nil, err
		}
	}
	return d, nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
