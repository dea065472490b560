package repositories

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"labelguard/domain/contracts"
	"labelguard/domain/labels"
)

// CachedLabelRepository decorates a LabelRepository with a short-TTL
// read-through cache. Classification resolves labels on every call, so the
// hot lookups (by id, name, and priority) are cached; any write flushes the
// whole cache since labels are few and invalidation precision buys nothing.
type CachedLabelRepository struct {
	inner contracts.LabelRepository
	cache *gocache.Cache
}

// NewCachedLabelRepository wraps a label repository with a read-through
// cache using the given TTL.
func NewCachedLabelRepository(inner contracts.LabelRepository, ttl time.Duration) contracts.LabelRepository {
	return &CachedLabelRepository{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// GetByID retrieves a label by id, from cache when fresh.
func (r *CachedLabelRepository) GetByID(ctx context.Context, id string) (*labels.Label, error) {
	if cached, ok := r.cache.Get("id:" + id); ok {
		return cached.(*labels.Label).Clone(), nil
	}
	label, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault("id:"+id, label.Clone())
	return label, nil
}

// GetByName retrieves a label by name, from cache when fresh.
func (r *CachedLabelRepository) GetByName(ctx context.Context, name string) (*labels.Label, error) {
	if cached, ok := r.cache.Get("name:" + name); ok {
		return cached.(*labels.Label).Clone(), nil
	}
	label, err := r.inner.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault("name:"+name, label.Clone())
	return label, nil
}

// GetByPriority retrieves active labels at a tier, from cache when fresh.
func (r *CachedLabelRepository) GetByPriority(ctx context.Context, tier labels.PriorityTier) ([]*labels.Label, error) {
	key := "priority:" + tier.String()
	if cached, ok := r.cache.Get(key); ok {
		return cloneAll(cached.([]*labels.Label)), nil
	}
	result, err := r.inner.GetByPriority(ctx, tier)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(key, cloneAll(result))
	return result, nil
}

// GetAll always hits the store; listing is not on the classification path.
func (r *CachedLabelRepository) GetAll(ctx context.Context) ([]*labels.Label, error) {
	return r.inner.GetAll(ctx)
}

// Create persists a new label and flushes the cache.
func (r *CachedLabelRepository) Create(ctx context.Context, label *labels.Label) (*labels.Label, error) {
	created, err := r.inner.Create(ctx, label)
	if err != nil {
		return nil, err
	}
	r.cache.Flush()
	return created, nil
}

// Update persists label changes and flushes the cache.
func (r *CachedLabelRepository) Update(ctx context.Context, label *labels.Label) (*labels.Label, error) {
	updated, err := r.inner.Update(ctx, label)
	if err != nil {
		return nil, err
	}
	r.cache.Flush()
	return updated, nil
}

// Delete removes a label and flushes the cache.
func (r *CachedLabelRepository) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := r.inner.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		r.cache.Flush()
	}
	return deleted, nil
}

func cloneAll(ls []*labels.Label) []*labels.Label {
	out := make([]*labels.Label, len(ls))
	for i, l := range ls {
		out[i] = l.Clone()
	}
	return out
}
