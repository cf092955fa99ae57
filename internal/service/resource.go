// Package service applies payload validation on top of the owner-scoped
// repositories. Every operation takes the acting user's id explicitly.
package service

import (
	"context"

	"inspection-back/internal/schema"
)

// Store is the owner-scoped persistence a Resource works on.
type Store[T any] interface {
	List(ctx context.Context, userID uint) ([]T, error)
	Get(ctx context.Context, userID, id uint) (*T, error)
	Create(ctx context.Context, userID uint, row *T) error
	Save(ctx context.Context, userID uint, row *T) error
	Delete(ctx context.Context, userID, id uint) (*T, error)
}

// Resource is the CRUD service of an entity without sub-resources.
type Resource[T any] struct {
	store  Store[T]
	schema *schema.Schema[T]
}

func NewResource[T any](store Store[T], s *schema.Schema[T]) *Resource[T] {
	return &Resource[T]{store: store, schema: s}
}

func (r *Resource[T]) List(ctx context.Context, userID uint) ([]T, error) {
	return r.store.List(ctx, userID)
}

func (r *Resource[T]) Get(ctx context.Context, userID, id uint) (*T, error) {
	return r.store.Get(ctx, userID, id)
}

// Create validates a full payload and stores the record owned by userID.
func (r *Resource[T]) Create(ctx context.Context, userID uint, raw []byte) (*T, error) {
	p, err := r.schema.Parse(raw, false)
	if err != nil {
		return nil, err
	}
	row := new(T)
	r.schema.Apply(p, row)
	if err := r.store.Create(ctx, userID, row); err != nil {
		return nil, err
	}
	return row, nil
}

// Update resolves the record first so a foreign id is NotFound even when the
// payload is invalid.
func (r *Resource[T]) Update(ctx context.Context, userID, id uint, raw []byte, partial bool) (*T, error) {
	row, err := r.store.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	p, err := r.schema.Parse(raw, partial)
	if err != nil {
		return nil, err
	}
	r.schema.Apply(p, row)
	if err := r.store.Save(ctx, userID, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Resource[T]) Delete(ctx context.Context, userID, id uint) error {
	_, err := r.store.Delete(ctx, userID, id)
	return err
}
