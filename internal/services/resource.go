package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/instituto-brotar/painel-brotar/internal/apiclient"
	"github.com/instituto-brotar/painel-brotar/internal/models"
)

// resource is the CRUD surface shared by every backend collection
type resource[T any] struct {
	backend Backend
	path    string
}

func newResource[T any](backend Backend, path string) resource[T] {
	return resource[T]{backend: backend, path: path}
}

func (r resource[T]) itemPath(id int64) string {
	return r.path + "/" + strconv.FormatInt(id, 10)
}

// GetAll returns whatever list the backend sends, unwrapped from either the
// paginated or the bare array shape
func (r resource[T]) GetAll(ctx context.Context) ([]T, error) {
	page, err := r.GetPage(ctx, nil)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// GetPage is GetAll with query parameters and the pagination metadata
func (r resource[T]) GetPage(ctx context.Context, query url.Values) (apiclient.Page[T], error) {
	path := r.path
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	body, err := r.backend.GetRaw(ctx, path)
	if err != nil {
		return apiclient.Page[T]{}, err
	}
	return apiclient.UnwrapList[T](body), nil
}

func (r resource[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	if id <= 0 {
		return nil, models.ErrInvalidID
	}
	var out T
	if err := r.backend.Get(ctx, r.itemPath(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r resource[T]) Create(ctx context.Context, payload interface{}) (*T, error) {
	var out T
	if err := r.backend.Post(ctx, r.path, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r resource[T]) Update(ctx context.Context, id int64, payload interface{}) (*T, error) {
	if id <= 0 {
		return nil, models.ErrInvalidID
	}
	var out T
	if err := r.backend.Patch(ctx, r.itemPath(id), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r resource[T]) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return models.ErrInvalidID
	}
	if err := r.backend.Delete(ctx, r.itemPath(id)); err != nil {
		return fmt.Errorf("failed to delete %s: %w", r.itemPath(id), err)
	}
	return nil
}
