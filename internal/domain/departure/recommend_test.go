package departure

import (
	"encoding/json"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustInstant(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := ParseInstant(s)
	require.NoError(t, err)
	return ts
}

func newTestRecommender(t *testing.T, now string) *Recommender {
	return New(DefaultPolicy(), FixedClock{At: mustInstant(t, now)}, time.UTC)
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestRecommend_InternationalScenario(t *testing.T) {
	r := newTestRecommender(t, "2025-10-20T09:30:00Z")

	rec, err := r.Recommend(mustInstant(t, "2025-10-20T14:30:00Z"), 45, true)
	require.NoError(t, err)

	assert.Equal(t, 105, rec.SecurityBufferMinutes)
	assert.Equal(t, 15, rec.PreparationBufferMinutes)
	assert.Equal(t, 45, rec.DriveTimeMinutes)
	assert.Equal(t, 165, rec.TotalBufferMinutes)
	assert.Equal(t, mustInstant(t, "2025-10-20T11:45:00Z"), rec.PickupTime)
	assert.Equal(t, mustInstant(t, "2025-10-20T12:30:00Z"), rec.ArrivalAtAirportTime)
	assert.Equal(t, mustInstant(t, "2025-10-20T14:30:00Z"), rec.FlightDepartureTime)
	assert.Equal(t, "2 hours 15 mins", rec.TimeUntilPickup)
	assert.Equal(t,
		"Recommended pickup at 11:45 AM: 45 min drive + 15 min preparation + 105 min security/check-in buffer",
		rec.Reasoning)
}

func TestRecommend_Domestic(t *testing.T) {
	r := newTestRecommender(t, "2024-12-20T08:00:00Z")

	rec, err := r.Recommend(mustInstant(t, "2024-12-20T14:30:00Z"), 30, false)
	require.NoError(t, err)

	assert.Equal(t, 75, rec.SecurityBufferMinutes)
	assert.Equal(t, 30, rec.DriveTimeMinutes)
	assert.Equal(t, 15, rec.PreparationBufferMinutes)
	assert.Equal(t, 120, rec.TotalBufferMinutes)
	assert.Equal(t, mustInstant(t, "2024-12-20T12:30:00Z"), rec.PickupTime)
}

func TestRecommend_Invariants(t *testing.T) {
	r := newTestRecommender(t, "2024-01-01T00:00:00Z")
	flight := mustInstant(t, "2024-12-20T18:00:00Z")

	for _, drive := range []int{0, 1, 15, 45, 60, 240, 2000} {
		for _, intl := range []bool{true, false} {
			rec, err := r.Recommend(flight, drive, intl)
			require.NoError(t, err)

			assert.Contains(t, []int{75, 105}, rec.SecurityBufferMinutes)
			assert.Equal(t, 15, rec.PreparationBufferMinutes)
			assert.Equal(t, rec.DriveTimeMinutes+rec.SecurityBufferMinutes+rec.PreparationBufferMinutes, rec.TotalBufferMinutes)
			assert.Equal(t, rec.FlightDepartureTime.Add(-time.Duration(rec.TotalBufferMinutes)*time.Minute), rec.PickupTime)
			assert.Equal(t, rec.PickupTime.Add(time.Duration(rec.DriveTimeMinutes)*time.Minute), rec.ArrivalAtAirportTime)
			if intl {
				assert.Equal(t, 105, rec.SecurityBufferMinutes)
			} else {
				assert.Equal(t, 75, rec.SecurityBufferMinutes)
			}
		}
	}
}

func TestRecommend_LongerDriveMovesPickupEarlier(t *testing.T) {
	r := newTestRecommender(t, "2024-12-19T00:00:00Z")
	flight := mustInstant(t, "2024-12-20T10:00:00Z")

	short, err := r.Recommend(flight, 30, true)
	require.NoError(t, err)
	long, err := r.Recommend(flight, 60, true)
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, short.PickupTime.Sub(long.PickupTime))
	assert.Equal(t, 30, long.TotalBufferMinutes-short.TotalBufferMinutes)
	// airport arrival only depends on the security and preparation buffers
	assert.Equal(t, short.ArrivalAtAirportTime, long.ArrivalAtAirportTime)
}

func TestRecommendFor_Defaults(t *testing.T) {
	r := newTestRecommender(t, "2024-12-20T08:00:00Z")

	rec, err := r.RecommendFor(Request{FlightDepartureTime: "2024-12-20T14:30:00Z"})
	require.NoError(t, err)

	assert.Equal(t, 45, rec.DriveTimeMinutes)
	assert.Equal(t, 105, rec.SecurityBufferMinutes)
	assert.Equal(t, 165, rec.TotalBufferMinutes)
}

func TestRecommendFor_ExplicitValues(t *testing.T) {
	r := newTestRecommender(t, "2024-12-20T08:00:00Z")

	rec, err := r.RecommendFor(Request{
		FlightDepartureTime: "2024-12-20T14:30:00.000Z",
		DriveTimeMinutes:    intPtr(30),
		International:       boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, 120, rec.TotalBufferMinutes)
}

func TestRecommend_PickupOnPreviousDay(t *testing.T) {
	r := newTestRecommender(t, "2024-12-18T00:00:00Z")

	rec, err := r.Recommend(mustInstant(t, "2024-12-20T01:00:00Z"), 45, true)
	require.NoError(t, err)

	assert.Equal(t, mustInstant(t, "2024-12-19T22:15:00Z"), rec.PickupTime)
	assert.Equal(t, 19, rec.PickupTime.Day())
}

func TestRecommend_EarlyMorningFlight(t *testing.T) {
	r := newTestRecommender(t, "2024-12-18T00:00:00Z")
	flight := mustInstant(t, "2024-12-20T06:00:00Z")

	rec, err := r.Recommend(flight, 45, true)
	require.NoError(t, err)

	assert.True(t, rec.PickupTime.Before(flight))
	assert.Equal(t, 165, rec.TotalBufferMinutes)

	// the same flight seen from UTC-5 is collected the evening before
	est := time.FixedZone("EST", -5*3600)
	assert.Equal(t, 19, rec.PickupTime.In(est).Day())
}

func TestRecommend_PastDue(t *testing.T) {
	r := newTestRecommender(t, "2025-10-20T12:00:00Z")

	rec, err := r.Recommend(mustInstant(t, "2025-10-20T14:30:00Z"), 45, true)
	require.NoError(t, err)
	assert.Equal(t, "Past due", rec.TimeUntilPickup)

	// exactly at pickup is no longer in the future
	r = newTestRecommender(t, "2025-10-20T11:45:00Z")
	rec, err = r.Recommend(mustInstant(t, "2025-10-20T14:30:00Z"), 45, true)
	require.NoError(t, err)
	assert.Equal(t, "Past due", rec.TimeUntilPickup)
}

func TestRecommend_HugeDriveTimeIsAccepted(t *testing.T) {
	r := newTestRecommender(t, "2025-10-20T00:00:00Z")

	rec, err := r.Recommend(mustInstant(t, "2025-10-20T14:30:00Z"), 10000, false)
	require.NoError(t, err)
	assert.Equal(t, "Past due", rec.TimeUntilPickup)
	assert.Equal(t, 10090, rec.TotalBufferMinutes)
}

func TestRecommend_DriveTimeBeyondDurationRangeIsRejected(t *testing.T) {
	r := newTestRecommender(t, "2025-10-20T00:00:00Z")
	flight := mustInstant(t, "2025-10-20T14:30:00Z")

	for _, drive := range []int{200000000, MaxTotalBufferMinutes, math.MaxInt - 10} {
		_, err := r.Recommend(flight, drive, true)
		assert.ErrorIs(t, err, ErrInvalidInput, "drive %d", drive)
	}

	// the largest accepted drive still puts pickup before the flight
	largest := MaxTotalBufferMinutes - 105 - 15
	rec, err := r.Recommend(flight, largest, true)
	require.NoError(t, err)
	assert.Equal(t, MaxTotalBufferMinutes, rec.TotalBufferMinutes)
	assert.True(t, rec.PickupTime.Before(flight))
	assert.Equal(t, flight.Add(-time.Duration(rec.TotalBufferMinutes)*time.Minute), rec.PickupTime)
	assert.Equal(t, rec.PickupTime.Add(time.Duration(largest)*time.Minute), rec.ArrivalAtAirportTime)
	assert.Equal(t, "Past due", rec.TimeUntilPickup)

	_, err = r.Recommend(flight, largest+1, true)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecommend_RejectsInvalidInput(t *testing.T) {
	r := newTestRecommender(t, "2025-10-20T00:00:00Z")

	_, err := r.Recommend(mustInstant(t, "2025-10-20T14:30:00Z"), -1, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = r.Recommend(time.Time{}, 45, true)
	assert.ErrorIs(t, err, ErrInvalidInput)

	for _, in := range []string{"", "not-a-date", "2025-10-20", "2025-10-20T14:30:00", "2025-13-40T99:00:00Z"} {
		_, err := r.RecommendFor(Request{FlightDepartureTime: in})
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", in)
	}
}

func TestRecommend_ReasoningMentionsDriveTime(t *testing.T) {
	r := newTestRecommender(t, "2024-12-20T00:00:00Z")

	rec, err := r.Recommend(mustInstant(t, "2024-12-20T14:30:00Z"), 37, true)
	require.NoError(t, err)
	assert.Contains(t, rec.Reasoning, "37 min drive")
	assert.Contains(t, rec.Reasoning, "15 min preparation")
	assert.Contains(t, rec.Reasoning, "105 min security/check-in buffer")
}

func TestRecommend_ReasoningUsesDisplayLocation(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	r := New(DefaultPolicy(), FixedClock{At: mustInstant(t, "2025-10-20T00:00:00Z")}, est)

	rec, err := r.Recommend(mustInstant(t, "2025-10-20T14:30:00Z"), 45, true)
	require.NoError(t, err)
	assert.Contains(t, rec.Reasoning, "at 6:45 AM:")
	assert.Equal(t, time.UTC, rec.PickupTime.Location())
}

func TestRecommend_OffsetInputIsNormalized(t *testing.T) {
	r := newTestRecommender(t, "2025-10-20T00:00:00Z")

	rec, err := r.RecommendFor(Request{FlightDepartureTime: "2025-10-20T15:30:00+01:00"})
	require.NoError(t, err)
	assert.Equal(t, "2025-10-20T14:30:00.000Z", FormatInstant(rec.FlightDepartureTime))
	assert.Equal(t, "2025-10-20T11:45:00.000Z", FormatInstant(rec.PickupTime))
}

func TestRecommend_CustomPolicy(t *testing.T) {
	p := DefaultPolicy()
	p.InternationalSecurityBufferMinutes = 120
	p.PreparationBufferMinutes = 20
	r := New(p, FixedClock{At: mustInstant(t, "2025-10-20T00:00:00Z")}, nil)

	rec, err := r.Recommend(mustInstant(t, "2025-10-20T14:30:00Z"), 40, true)
	require.NoError(t, err)
	assert.Equal(t, 180, rec.TotalBufferMinutes)
	assert.Equal(t, mustInstant(t, "2025-10-20T11:30:00Z"), rec.PickupTime)
}

func TestRecommendation_JSON(t *testing.T) {
	r := newTestRecommender(t, "2025-10-20T09:30:00Z")
	rec, err := r.Recommend(mustInstant(t, "2025-10-20T14:30:00Z"), 45, true)
	require.NoError(t, err)

	b, err := json.Marshal(rec)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, "2025-10-20T11:45:00.000Z", raw["pickupTime"])
	assert.Equal(t, "2025-10-20T12:30:00.000Z", raw["arrivalAtAirportTime"])
	assert.Equal(t, "2025-10-20T14:30:00.000Z", raw["flightDepartureTime"])
	assert.EqualValues(t, 165, raw["totalBufferMinutes"])
	assert.Equal(t, "2 hours 15 mins", raw["timeUntilPickup"])

	var back Recommendation
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, rec, back)
}

func TestRecommender_ConcurrentUse(t *testing.T) {
	r := newTestRecommender(t, "2025-10-20T00:00:00Z")
	flight := mustInstant(t, "2025-10-20T14:30:00Z")

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(drive int) {
			defer wg.Done()
			rec, err := r.Recommend(flight, drive, drive%2 == 0)
			assert.NoError(t, err)
			assert.Equal(t, flight.Add(-time.Duration(rec.TotalBufferMinutes)*time.Minute), rec.PickupTime)
		}(i)
	}
	wg.Wait()
}
