package cartrepo

import (
	"context"

	"bistro/internal/core/domain/model/cart"
	"bistro/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRepository implements CartRepository using GORM.
// Save replaces the stored lines wholesale; the aggregate is small enough
// that diffing rows is not worth the complexity.
type GormCartRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB, tracker aggregateTracker) *GormCartRepository {
	return &GormCartRepository{
		db:      db,
		tracker: tracker,
	}
}

// GetByUser retrieves the user's cart. A user without stored lines gets a
// valid empty cart.
func (r *GormCartRepository) GetByUser(ctx context.Context, userID kernel.UUID) (*cart.Cart, error) {
	return r.getByUser(ctx, userID, false)
}

// GetByUserForUpdate retrieves the user's cart with its rows locked until the
// surrounding transaction ends. Checkout uses this so two conversions of the
// same cart serialize and the second one sees the emptied cart.
func (r *GormCartRepository) GetByUserForUpdate(ctx context.Context, userID kernel.UUID) (*cart.Cart, error) {
	return r.getByUser(ctx, userID, true)
}

func (r *GormCartRepository) getByUser(ctx context.Context, userID kernel.UUID, forUpdate bool) (*cart.Cart, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	if forUpdate {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dtos []CartLineDTO
	err := db.Order("menu_item_id").Find(&dtos, "user_id = ?", userID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return toDomain(userID, dtos)
}

// Save persists the cart's current lines, replacing whatever is stored.
// Saving an empty cart deletes all of the user's lines.
func (r *GormCartRepository) Save(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	err := db.Delete(&CartLineDTO{}, "user_id = ?", aggregate.UserID().Bytes()).Error
	if err != nil {
		return err
	}

	if dtos := fromDomain(aggregate); len(dtos) > 0 {
		if err = db.Create(&dtos).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.UserID(), aggregate)
	return nil
}

// DeleteByUser removes all of the user's lines. Deleting an already empty
// cart succeeds.
func (r *GormCartRepository) DeleteByUser(ctx context.Context, userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&CartLineDTO{}, "user_id = ?", userID.Bytes()).Error
}
