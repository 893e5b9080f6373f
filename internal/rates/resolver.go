// Package rates resolves staff seniority levels to hourly cost rates.
//
// Live rates come from an externally managed rate store and are cached
// with a fixed TTL; anything that fails to resolve degrades to the
// hardcoded default table and finally to a global fallback rate. Rate
// resolution never returns an error to the caller.
package rates

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/calebryder/ai-governance/internal/domain/entity"
)

// DefaultTTL is how long a fetched rate table is served before the store
// is consulted again.
const DefaultTTL = 5 * time.Minute

// Source reads the externally managed rate store. Implementations return
// only active rate cards.
type Source interface {
	ActiveRateCards(ctx context.Context) ([]*entity.RateCard, error)
}

// Resolver owns the process-wide rate cache. The clock is injectable so
// expiry is testable without wall-clock sleeps. Concurrent refreshes are
// tolerated: a race causes a redundant fetch, never stale-forever data.
type Resolver struct {
	source Source
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger

	mu        sync.RWMutex
	cached    entity.RateTable
	fetchedAt time.Time
}

// NewResolver creates a Resolver over the given rate source. A zero ttl
// falls back to DefaultTTL.
func NewResolver(source Source, ttl time.Duration, logger *zap.Logger) *Resolver {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Resolver{
		source: source,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// WithClock overrides the resolver's clock. Intended for tests.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// Resolve returns the current rate table. While the cache is fresh it is
// served as-is; on expiry the store is re-read. A store failure or an
// empty store yields the default table unconditionally.
func (r *Resolver) Resolve(ctx context.Context) entity.RateTable {
	r.mu.RLock()
	if r.cached != nil && r.now().Sub(r.fetchedAt) < r.ttl {
		table := r.cached
		r.mu.RUnlock()
		return table
	}
	r.mu.RUnlock()

	cards, err := r.source.ActiveRateCards(ctx)
	if err != nil {
		r.logger.Warn("Rate store read failed, using default rates", zap.Error(err))
		return entity.DefaultRates
	}
	if len(cards) == 0 {
		return entity.DefaultRates
	}

	table := make(entity.RateTable, len(cards))
	for _, c := range cards {
		table[c.StaffLevel] = c.HourlyRate
	}

	r.mu.Lock()
	r.cached = table
	r.fetchedAt = r.now()
	r.mu.Unlock()

	r.logger.Debug("Rate table refreshed", zap.Int("levels", len(table)))
	return table
}

// RateFor resolves a staff level against the given table, falling back to
// the default table and then to the global fallback rate.
func RateFor(level string, table entity.RateTable) float64 {
	if rate, ok := table[level]; ok {
		return rate
	}
	if rate, ok := entity.DefaultRates[level]; ok {
		return rate
	}
	return entity.FallbackHourlyRate
}
