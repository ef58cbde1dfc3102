package menurepo

import (
	"context"
	"errors"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormMenuCatalog implements MenuCatalog using GORM.
type GormMenuCatalog struct {
	db *gorm.DB
}

// NewGormMenuCatalog creates a new GORM menu catalog.
func NewGormMenuCatalog(db *gorm.DB) *GormMenuCatalog {
	return &GormMenuCatalog{db: db}
}

// PriceOf returns the current unit price of a menu item.
// Returns an object-not-found error when the item does not exist.
func (r *GormMenuCatalog) PriceOf(ctx context.Context, menuItemID kernel.UUID) (kernel.Money, error) {
	if err := menuItemID.Validate(); err != nil {
		return kernel.Money{}, err
	}

	var dto MenuItemDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", menuItemID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.Money{}, errs.NewObjectNotFoundError("menuItem", menuItemID.String())
		}
		return kernel.Money{}, err
	}

	return kernel.NewMoney(dto.Price)
}

// Add inserts a menu item. Used for seeding and integration tests; the
// service itself never writes menu data.
func (r *GormMenuCatalog) Add(ctx context.Context, menuItemID kernel.UUID, name string, price kernel.Money) error {
	if err := menuItemID.Validate(); err != nil {
		return err
	}
	if err := price.Validate(); err != nil {
		return err
	}

	dto := MenuItemDTO{
		ID:    menuItemID.Bytes(),
		Name:  name,
		Price: price.Amount(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}
