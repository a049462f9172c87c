package hotel

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/mamadbah2/hotel-admin/internal/cache"
	"github.com/mamadbah2/hotel-admin/pkg/clients/hotelapi"
)

// ErrNotFound is returned when the hotel API has no record for an id.
var ErrNotFound = errors.New("introuvable")

// Catalog wraps one API collection. When cacheKey is set the list is cached
// and every write drops it. Anonymous calls always go to the API so that it
// can refuse them. prepare runs before create and update.
type Catalog[T any] struct {
	res      *hotelapi.Resource[T]
	cache    cache.Cache
	cacheKey string
	prepare  func(*T) error
	logger   *zap.Logger
}

func (c *Catalog[T]) List(ctx context.Context) ([]T, error) {
	useCache := c.cacheKey != "" && c.res.Authenticated(ctx)
	if useCache {
		var items []T
		found, err := c.cache.Get(ctx, c.cacheKey, &items)
		if err != nil {
			c.logger.Warn("cache read failed", zap.String("key", c.cacheKey), zap.Error(err))
		} else if found {
			return items, nil
		}
	}

	items, err := c.res.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.res.Path(), err)
	}
	if items == nil {
		items = []T{}
	}

	if useCache {
		if err := c.cache.Set(ctx, c.cacheKey, items); err != nil {
			c.logger.Warn("cache write failed", zap.String("key", c.cacheKey), zap.Error(err))
		}
	}
	return items, nil
}

func (c *Catalog[T]) Get(ctx context.Context, id int64) (*T, error) {
	item, err := c.res.Get(ctx, id)
	if err != nil {
		return nil, notFound(fmt.Errorf("get %s/%d: %w", c.res.Path(), id, err))
	}
	return item, nil
}

func (c *Catalog[T]) Create(ctx context.Context, item T) (*T, error) {
	if c.prepare != nil {
		if err := c.prepare(&item); err != nil {
			return nil, err
		}
	}
	created, err := c.res.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", c.res.Path(), err)
	}
	c.invalidate(ctx)
	return created, nil
}

func (c *Catalog[T]) Update(ctx context.Context, id int64, item T) (*T, error) {
	if c.prepare != nil {
		if err := c.prepare(&item); err != nil {
			return nil, err
		}
	}
	updated, err := c.res.Update(ctx, id, item)
	if err != nil {
		return nil, notFound(fmt.Errorf("update %s/%d: %w", c.res.Path(), id, err))
	}
	c.invalidate(ctx)
	return updated, nil
}

func (c *Catalog[T]) Delete(ctx context.Context, id int64) error {
	if err := c.res.Delete(ctx, id); err != nil {
		return notFound(fmt.Errorf("delete %s/%d: %w", c.res.Path(), id, err))
	}
	c.invalidate(ctx)
	return nil
}

func (c *Catalog[T]) invalidate(ctx context.Context) {
	if c.cacheKey == "" {
		return
	}
	if err := c.cache.Delete(ctx, c.cacheKey); err != nil {
		c.logger.Warn("cache invalidation failed", zap.String("key", c.cacheKey), zap.Error(err))
	}
}

func notFound(err error) error {
	var apiErr *hotelapi.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
