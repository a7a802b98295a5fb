package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sobnin/sobnin-backend/pkg/enums"
)

// Order is the immutable snapshot of a completed checkout. The total is
// frozen at creation time and never recomputed from the items.
type Order struct {
	ID            uint               `gorm:"column:id;primaryKey"`
	OrderNumber   string             `gorm:"column:order_number;uniqueIndex;not null"`
	CustomerName  string             `gorm:"column:customer_name;not null"`
	CustomerPhone string             `gorm:"column:customer_phone;not null"`
	DeliveryType  enums.DeliveryType `gorm:"column:delivery_type;not null;default:'pickup'"`
	Address       string             `gorm:"column:address;not null;default:''"`
	Notes         string             `gorm:"column:notes;not null;default:''"`
	Total         decimal.Decimal    `gorm:"column:total;type:numeric(10,2);not null"`
	Status        enums.OrderStatus  `gorm:"column:status;not null;default:'pending'"`
	Items         []OrderItem        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
