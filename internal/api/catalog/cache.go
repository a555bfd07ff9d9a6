package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/atlanticotrips/itinerary-engine/internal/types"
)

// Snapshot is one cached catalog read: the places plus when they were
// fetched. Multiple generation requests may read the same snapshot
// concurrently; nobody mutates it.
type Snapshot struct {
	Places    []types.CandidatePlace
	FetchedAt time.Time
}

// Stale reports whether the snapshot is older than ttl at the given instant.
func (s *Snapshot) Stale(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.FetchedAt) > ttl
}

// Ensure implementation satisfies the interface
var _ Repository = (*SnapshotCache)(nil)

// SnapshotCache is a read-through TTL cache over a catalog Repository.
// Concurrent requests for the same stale key share a single upstream fetch.
type SnapshotCache struct {
	logger *slog.Logger
	inner  Repository
	ttl    time.Duration
	store  *gocache.Cache
	group  singleflight.Group
	now    func() time.Time
}

func NewSnapshotCache(inner Repository, ttl time.Duration, logger *slog.Logger) *SnapshotCache {
	return &SnapshotCache{
		logger: logger,
		inner:  inner,
		ttl:    ttl,
		store:  gocache.New(ttl, 2*ttl),
		now:    time.Now,
	}
}

func (c *SnapshotCache) GetPlaces(ctx context.Context, filter types.PlaceFilter) ([]types.CandidatePlace, error) {
	key := filterKey(filter)
	if snap := c.lookup(key); snap != nil {
		c.logger.DebugContext(ctx, "catalog cache hit", slog.String("key", key))
		return snap.Places, nil
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		places, err := c.inner.GetPlaces(ctx, filter)
		if err != nil {
			return nil, err
		}
		snap := &Snapshot{Places: places, FetchedAt: c.now()}
		c.store.Set(key, snap, c.ttl)
		return snap, nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog fetch failed: %w", err)
	}
	if shared {
		c.logger.DebugContext(ctx, "catalog fetch shared across requests", slog.String("key", key))
	}
	return v.(*Snapshot).Places, nil
}

func (c *SnapshotCache) GetFeatured(ctx context.Context, limit int, familyOnly bool) ([]types.CandidatePlace, error) {
	key := fmt.Sprintf("featured:%d:%t", limit, familyOnly)
	if snap := c.lookup(key); snap != nil {
		return snap.Places, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		places, err := c.inner.GetFeatured(ctx, limit, familyOnly)
		if err != nil {
			return nil, err
		}
		snap := &Snapshot{Places: places, FetchedAt: c.now()}
		c.store.Set(key, snap, c.ttl)
		return snap, nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog fetch failed: %w", err)
	}
	return v.(*Snapshot).Places, nil
}

func (c *SnapshotCache) lookup(key string) *Snapshot {
	v, ok := c.store.Get(key)
	if !ok {
		return nil
	}
	snap := v.(*Snapshot)
	// go-cache expires on its own clock; re-check against the injected one so
	// tests can control staleness.
	if snap.Stale(c.now(), c.ttl) {
		return nil
	}
	return snap
}

func filterKey(filter types.PlaceFilter) string {
	// JSON keeps the key stable for identical filters.
	b, _ := json.Marshal(filter)
	return "places:" + string(b)
}
