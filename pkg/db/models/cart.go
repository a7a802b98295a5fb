package models

import "time"

// Cart is the anonymous, session-scoped collection of pending line items.
// The unique session key enforces at most one cart per browser session;
// abandoned carts are simply never cleaned up.
type Cart struct {
	ID         uint       `gorm:"column:id;primaryKey"`
	SessionKey string     `gorm:"column:session_key;uniqueIndex;not null"`
	Items      []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
