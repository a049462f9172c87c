package hotelapi

import (
	"context"
	"fmt"
	"net/http"
)

// Resource exposes the CRUD endpoints of one API collection.
type Resource[T any] struct {
	c    *Client
	path string
}

func newResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{c: c, path: path}
}

// Path returns the collection path, e.g. "/chambres".
func (r *Resource[T]) Path() string { return r.path }

// Authenticated reports whether requests made with ctx carry a token.
func (r *Resource[T]) Authenticated(ctx context.Context) bool { return r.c.Authenticated(ctx) }

// List fetches the whole collection.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	req := r.c.request(ctx).SetResult(&items)
	if err := r.c.execute(req, http.MethodGet, r.path); err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches one item by id.
func (r *Resource[T]) Get(ctx context.Context, id int64) (*T, error) {
	item := new(T)
	req := r.c.request(ctx).SetResult(item)
	if err := r.c.execute(req, http.MethodGet, r.itemPath(id)); err != nil {
		return nil, err
	}
	return item, nil
}

// Create posts a new item and returns what the API echoed back.
func (r *Resource[T]) Create(ctx context.Context, item T) (*T, error) {
	created := new(T)
	req := r.c.request(ctx).SetBody(item).SetResult(created)
	if err := r.c.execute(req, http.MethodPost, r.path); err != nil {
		return nil, err
	}
	return created, nil
}

// Update sends a full or partial item.
func (r *Resource[T]) Update(ctx context.Context, id int64, patch any) (*T, error) {
	updated := new(T)
	req := r.c.request(ctx).SetBody(patch).SetResult(updated)
	if err := r.c.execute(req, http.MethodPut, r.itemPath(id)); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes one item.
func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	return r.c.execute(r.c.request(ctx), http.MethodDelete, r.itemPath(id))
}

func (r *Resource[T]) itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", r.path, id)
}
