package registry

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vbagdi/ResearchCode/domain"
)

// Cache persists package index lookup outcomes between runs.  A nil lookup
// with a nil error means the name has not been seen.
type Cache interface {
	IndexLookup(name string) (*domain.IndexLookup, error)
	IndexLookupSave(lookup *domain.IndexLookup) error
}

// CachedIndex serves lookups from Cache while they are fresh and records
// definitive outcomes (found or not found) of the wrapped index.  Transient
// failures are never cached.
type CachedIndex struct {
	Index PackageIndex
	Cache Cache
	TTL   time.Duration
	Now   func() time.Time
}

func NewCachedIndex(index PackageIndex, cache Cache, ttl time.Duration) *CachedIndex {
	ci := &CachedIndex{
		Index: index,
		Cache: cache,
		TTL:   ttl,
		Now:   time.Now,
	}
	return ci
}

func (ci *CachedIndex) Lookup(ctx context.Context, name string) (*domain.Candidate, error) {
	now := ci.now()

	lookup, err := ci.Cache.IndexLookup(name)
	if err != nil {
		log.WithField("name", name).Warnf("Index cache read failed: %s", err)
	} else if lookup != nil && lookup.Fresh(now, ci.TTL) {
		log.WithField("name", name).WithField("found", lookup.Found).Debug("Index cache hit")
		if !lookup.Found || lookup.Candidate == nil {
			return nil, ErrNotFound
		}
		return lookup.Candidate, nil
	}

	c, err := ci.Index.Lookup(ctx, name)
	switch {
	case err == nil:
		ci.save(&domain.IndexLookup{Name: name, Found: true, Candidate: c, FetchedAt: now})
	case IsNotFound(err):
		ci.save(&domain.IndexLookup{Name: name, Found: false, FetchedAt: now})
	}
	return c, err
}

func (ci *CachedIndex) save(lookup *domain.IndexLookup) {
	if err := ci.Cache.IndexLookupSave(lookup); err != nil {
		log.WithField("name", lookup.Name).Warnf("Index cache write failed: %s", err)
	}
}

func (ci *CachedIndex) now() time.Time {
	if ci.Now == nil {
		return time.Now()
	}
	return ci.Now()
}
