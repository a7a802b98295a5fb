package models

import "time"

// Category groups menu items into the sections shown on the storefront.
type Category struct {
	ID           uint       `gorm:"column:id;primaryKey"`
	Name         string     `gorm:"column:name;not null"`
	Icon         string     `gorm:"column:icon;not null;default:'bx-food-menu'"`
	Image        *string    `gorm:"column:image"`
	DisplayOrder int        `gorm:"column:display_order;not null;default:0"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true"`
	Items        []MenuItem `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
}
