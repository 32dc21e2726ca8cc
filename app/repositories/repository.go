package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/bcama/linqlab/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is generic CRUD over one entity type keyed by ID.
//
// Update replaces the stored row by primary key without any version check,
// so concurrent writers race and the last one wins.
type Repository[T any, ID comparable] interface {
	All(ctx context.Context) ([]T, error)
	// Find returns (nil, nil) when no row has the given id.
	Find(ctx context.Context, id ID) (*T, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	// Delete is a no-op when no row has the given id.
	Delete(ctx context.Context, id ID) error
}

// GormRepository implements Repository on top of gorm.
type GormRepository[T any, ID comparable] struct {
	db *gorm.DB
}

// NewGorm returns a Repository for T backed by db.
func NewGorm[T any, ID comparable](db *gorm.DB) *GormRepository[T, ID] {
	return &GormRepository[T, ID]{db: db}
}

func NewClientRepository(db *gorm.DB) *GormRepository[models.Client, uint] {
	return NewGorm[models.Client, uint](db)
}

func NewProductRepository(db *gorm.DB) *GormRepository[models.Product, uint] {
	return NewGorm[models.Product, uint](db)
}

func NewOrderRepository(db *gorm.DB) *GormRepository[models.Order, uint] {
	return NewGorm[models.Order, uint](db)
}

func (r *GormRepository[T, ID]) session(ctx context.Context) *gorm.DB {
	return r.db.Session(&gorm.Session{NewDB: true, Context: ctx})
}

func (r *GormRepository[T, ID]) All(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.session(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("repositories: all: %w", err)
	}
	return out, nil
}

func (r *GormRepository[T, ID]) Find(ctx context.Context, id ID) (*T, error) {
	var entity T
	err := r.session(ctx).Where("id = ?", id).Take(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("repositories: find %v: %w", id, err)
	}
	return &entity, nil
}

// Create and Update write only T's own table; associations are left alone.
func (r *GormRepository[T, ID]) Create(ctx context.Context, entity *T) error {
	if err := r.session(ctx).Omit(clause.Associations).Create(entity).Error; err != nil {
		return fmt.Errorf("repositories: create: %w", err)
	}
	return nil
}

func (r *GormRepository[T, ID]) Update(ctx context.Context, entity *T) error {
	if err := r.session(ctx).Omit(clause.Associations).Save(entity).Error; err != nil {
		return fmt.Errorf("repositories: update: %w", err)
	}
	return nil
}

func (r *GormRepository[T, ID]) Delete(ctx context.Context, id ID) error {
	var entity T
	if err := r.session(ctx).Where("id = ?", id).Delete(&entity).Error; err != nil {
		return fmt.Errorf("repositories: delete %v: %w", id, err)
	}
	return nil
}
