// Package repository contains the gorm-backed record stores. Every record
// query is filtered by the owning user, so rows of other users behave as if
// they did not exist.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inspection-back/internal/errs"
)

// Owned is implemented by pointers to records carrying a user_id column.
type Owned[T any] interface {
	*T
	SetOwner(userID uint)
}

// Scoped is an owner-filtered store for records of type T.
type Scoped[T any, PT Owned[T]] struct {
	db    *gorm.DB
	order string
	// preload adds eager loading to every read.
	preload func(*gorm.DB) *gorm.DB
	// detach runs inside the delete transaction before the row is removed.
	detach func(tx *gorm.DB, row *T) error
}

// NewScoped returns a store listing rows in the given SQL order.
func NewScoped[T any, PT Owned[T]](db *gorm.DB, order string) *Scoped[T, PT] {
	return &Scoped[T, PT]{db: db, order: order}
}

func (s *Scoped[T, PT]) scope(ctx context.Context, userID uint) *gorm.DB {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if s.preload != nil {
		q = s.preload(q)
	}
	return q
}

// List returns every row owned by userID.
func (s *Scoped[T, PT]) List(ctx context.Context, userID uint) ([]T, error) {
	rows := []T{}
	if err := s.scope(ctx, userID).Order(s.order).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return rows, nil
}

// Get returns the row with id if it is owned by userID, errs.ErrNotFound otherwise.
func (s *Scoped[T, PT]) Get(ctx context.Context, userID, id uint) (*T, error) {
	var row T
	if err := s.scope(ctx, userID).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("get %d: %w", id, err)
	}
	return &row, nil
}

// Create inserts row owned by userID.
func (s *Scoped[T, PT]) Create(ctx context.Context, userID uint, row *T) error {
	PT(row).SetOwner(userID)
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return fmt.Errorf("create: %w", err)
	}
	return nil
}

// Save writes every column of row. The owner is forced to userID so that a
// caller can never move a record to someone else.
func (s *Scoped[T, PT]) Save(ctx context.Context, userID uint, row *T) error {
	PT(row).SetOwner(userID)
	if err := updateAll(s.db.WithContext(ctx), userID, row); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// updateAll writes every column of an existing row owned by userID. It never
// inserts: a row removed in the meantime yields errs.ErrNotFound.
func updateAll(tx *gorm.DB, userID uint, row interface{}) error {
	res := tx.Model(row).
		Where("user_id = ?", userID).
		Select("*").
		Omit(clause.Associations).
		Updates(row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes the row with id owned by userID and returns it.
func (s *Scoped[T, PT]) Delete(ctx context.Context, userID, id uint) (*T, error) {
	row, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if s.detach != nil {
			if err := s.detach(tx, row); err != nil {
				return err
			}
		}
		return tx.Delete(PT(row)).Error
	})
	if err != nil {
		return nil, fmt.Errorf("delete %d: %w", id, err)
	}
	return row, nil
}
