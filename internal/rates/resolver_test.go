package rates

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/calebryder/ai-governance/internal/domain/entity"
)

type fakeSource struct {
	cards []*entity.RateCard
	err   error
	calls int
}

func (f *fakeSource) ActiveRateCards(ctx context.Context) ([]*entity.RateCard, error) {
	f.calls++
	return f.cards, f.err
}

type fakeClock struct {
	at time.Time
}

func (c *fakeClock) Now() time.Time          { return c.at }
func (c *fakeClock) Advance(d time.Duration) { c.at = c.at.Add(d) }

func TestResolve_CachesWithinTTL(t *testing.T) {
	src := &fakeSource{cards: []*entity.RateCard{
		{StaffLevel: "senior", HourlyRate: 135},
	}}
	clock := &fakeClock{at: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	r := NewResolver(src, 5*time.Minute, zap.NewNop()).WithClock(clock.Now)

	table := r.Resolve(context.Background())
	assert.Equal(t, 135.0, table["senior"])
	assert.Equal(t, 1, src.calls)

	clock.Advance(4 * time.Minute)
	r.Resolve(context.Background())
	assert.Equal(t, 1, src.calls, "fresh cache must not hit the store")
}

func TestResolve_RefetchesAfterExpiry(t *testing.T) {
	src := &fakeSource{cards: []*entity.RateCard{
		{StaffLevel: "senior", HourlyRate: 135},
	}}
	clock := &fakeClock{at: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	r := NewResolver(src, 5*time.Minute, zap.NewNop()).WithClock(clock.Now)

	r.Resolve(context.Background())
	clock.Advance(6 * time.Minute)

	src.cards = []*entity.RateCard{{StaffLevel: "senior", HourlyRate: 150}}
	table := r.Resolve(context.Background())

	assert.Equal(t, 2, src.calls)
	assert.Equal(t, 150.0, table["senior"])
}

func TestResolve_SourceErrorFallsBackToDefaults(t *testing.T) {
	src := &fakeSource{err: errors.New("store unavailable")}
	r := NewResolver(src, time.Minute, zap.NewNop())

	table := r.Resolve(context.Background())
	assert.Equal(t, entity.DefaultRates, table)
}

func TestResolve_EmptyStoreFallsBackToDefaults(t *testing.T) {
	src := &fakeSource{}
	r := NewResolver(src, time.Minute, zap.NewNop())

	table := r.Resolve(context.Background())
	assert.Equal(t, entity.DefaultRates, table)
}

func TestResolve_ErrorDoesNotPoisonCache(t *testing.T) {
	src := &fakeSource{err: errors.New("store unavailable")}
	clock := &fakeClock{at: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	r := NewResolver(src, 5*time.Minute, zap.NewNop()).WithClock(clock.Now)

	r.Resolve(context.Background())

	// Store recovers; the next call must retry rather than serve a cached
	// failure.
	src.err = nil
	src.cards = []*entity.RateCard{{StaffLevel: "mid", HourlyRate: 105}}
	table := r.Resolve(context.Background())
	assert.Equal(t, 105.0, table["mid"])
}

func TestNewResolver_ZeroTTLUsesDefault(t *testing.T) {
	r := NewResolver(&fakeSource{}, 0, zap.NewNop())
	assert.Equal(t, DefaultTTL, r.ttl)
}

func TestRateFor(t *testing.T) {
	table := entity.RateTable{"senior": 140}

	tests := []struct {
		name  string
		level string
		want  float64
	}{
		{name: "live table wins", level: "senior", want: 140},
		{name: "default table covers known levels", level: "director", want: 200},
		{name: "unknown level hits the fallback", level: "intern", want: entity.FallbackHourlyRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RateFor(tt.level, table))
		})
	}
}
