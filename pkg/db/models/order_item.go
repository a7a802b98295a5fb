package models

import "github.com/shopspring/decimal"

// OrderItem captures a frozen line item. Name and price are copied from the
// menu item at checkout so later catalog edits or deletions never rewrite
// order history; the menu item reference is nulled on deletion and the frozen
// fields survive.
type OrderItem struct {
	ID         uint            `gorm:"column:id;primaryKey"`
	OrderID    uint            `gorm:"column:order_id;not null"`
	MenuItemID *uint           `gorm:"column:menu_item_id"`
	MenuItem   *MenuItem       `gorm:"foreignKey:MenuItemID;constraint:OnDelete:SET NULL"`
	Name       string          `gorm:"column:name;not null"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(8,2);not null"`
	Quantity   int             `gorm:"column:quantity;not null;default:1"`
	Notes      string          `gorm:"column:notes;not null;default:''"`
}

// Subtotal is the frozen price times the quantity.
func (oi OrderItem) Subtotal() decimal.Decimal {
	return oi.Price.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}
