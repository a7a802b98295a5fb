package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem is a purchasable catalog entry. Availability is the soft-delete
// switch: unavailable items stay in the catalog but never reach a cart.
type MenuItem struct {
	ID           uint            `gorm:"column:id;primaryKey"`
	CategoryID   uint            `gorm:"column:category_id;not null"`
	Category     *Category       `gorm:"foreignKey:CategoryID"`
	Name         string          `gorm:"column:name;not null"`
	Description  string          `gorm:"column:description;not null;default:''"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(8,2);not null"`
	Image        *string         `gorm:"column:image"`
	IsAvailable  bool            `gorm:"column:is_available;not null;default:true"`
	IsVegetarian bool            `gorm:"column:is_vegetarian;not null;default:false"`
	IsSpicy      bool            `gorm:"column:is_spicy;not null;default:false"`
	IsFeatured   bool            `gorm:"column:is_featured;not null;default:false"`
	DisplayOrder int             `gorm:"column:display_order;not null;default:0"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
