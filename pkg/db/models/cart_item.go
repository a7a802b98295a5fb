package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem links a cart to a live menu item. The composite unique index on
// (cart_id, menu_item_id) means re-adding an item bumps its quantity instead
// of creating a second row.
type CartItem struct {
	ID         uint      `gorm:"column:id;primaryKey"`
	CartID     uint      `gorm:"column:cart_id;not null;uniqueIndex:idx_cart_items_cart_menu_item"`
	MenuItemID uint      `gorm:"column:menu_item_id;not null;uniqueIndex:idx_cart_items_cart_menu_item"`
	MenuItem   *MenuItem `gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE"`
	Quantity   int       `gorm:"column:quantity;not null;default:1"`
	Notes      string    `gorm:"column:notes;not null;default:''"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

// Subtotal is the live price of the referenced item times the quantity.
func (ci CartItem) Subtotal() decimal.Decimal {
	if ci.MenuItem == nil {
		return decimal.Zero
	}
	return ci.MenuItem.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}
