package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/tripplanner/internal/domain/departure"
	"github.com/example/tripplanner/internal/domain/trip"
	"github.com/example/tripplanner/internal/internaltypes"
	"github.com/example/tripplanner/internal/telemetry"
)

const (
	batchSize = 25

	OutcomeConfirmed = "confirmed"
	OutcomeExpired   = "expired"
	OutcomeFailed    = "failed"
)

// MsgPickupPassed is recorded on bookings the dispatcher reaches too late.
const MsgPickupPassed = "pickup time passed before dispatch"

type Store interface {
	DuePending(ctx context.Context, cutoff time.Time, limit int) ([]trip.TaxiBooking, error)
	SetStatus(ctx context.Context, id string, from, to trip.BookingStatus, lastErr *string) error
}

// Dispatcher polls for pending taxi bookings whose pickup falls inside the lead
// window and hands them to a driver by confirming them.
type Dispatcher struct {
	Store    Store
	Clock    departure.Clock
	Interval time.Duration
	Lead     time.Duration
	Log      zerolog.Logger

	wg sync.WaitGroup
}

// Run ticks until ctx is cancelled, then waits for in-flight bookings.
func (d *Dispatcher) Run(ctx context.Context) error {
	t := time.NewTicker(d.Interval)
	defer t.Stop()

	d.Tick(ctx)

	for {
		select {
		case <-ctx.Done():
			d.wg.Wait()
			return ctx.Err()
		case <-t.C:
			d.Tick(ctx)
		}
	}
}

// Tick runs one dispatch pass and returns once every booking in it is handled.
func (d *Dispatcher) Tick(ctx context.Context) {
	now := d.now()
	due, err := d.Store.DuePending(ctx, now.Add(d.Lead), batchSize)
	if err != nil {
		d.Log.Error().Err(err).Msg("dispatcher: due bookings query failed")
		return
	}

	for _, b := range due {
		b := b
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.dispatch(ctx, b, now)
		}()
	}
	d.wg.Wait()
}

func (d *Dispatcher) dispatch(ctx context.Context, b trip.TaxiBooking, now time.Time) {
	log := d.Log.With().Str("booking_id", b.ID).Time("pickup_time", b.PickupTime).Logger()

	to, outcome := trip.BookingConfirmed, OutcomeConfirmed
	var lastErr *string
	switch {
	case !b.PickupTime.After(now):
		msg := MsgPickupPassed
		to, outcome, lastErr = trip.BookingCancelled, OutcomeExpired, &msg
	case !departure.IsWithinMinutes(b.PickupTime, int(d.Lead/time.Minute), now):
		// The store handed back a booking outside the lead window; leave it for a later tick.
		log.Debug().Msg("dispatcher: pickup outside lead window")
		return
	}

	if err := d.Store.SetStatus(ctx, b.ID, b.Status, to, lastErr); err != nil {
		if errors.Is(err, internaltypes.ErrNotFound) {
			// Cancelled by the member since the query ran.
			log.Debug().Msg("dispatcher: booking no longer pending")
			return
		}
		telemetry.BookingsDispatchedTotal.WithLabelValues(OutcomeFailed).Inc()
		log.Error().Err(err).Msg("dispatcher: status update failed")
		return
	}
	telemetry.BookingsDispatchedTotal.WithLabelValues(outcome).Inc()
	log.Info().Str("status", string(to)).Msg("dispatcher: booking handled")
}

func (d *Dispatcher) now() time.Time {
	if d.Clock == nil {
		return time.Now().UTC()
	}
	return d.Clock.Now().UTC()
}
