package catalog

import (
	"github.com/sobnin/sobnin-backend/pkg/db/models"
)

// CategoryDTO is the category shape returned to clients, carrying the derived
// count of currently available items.
type CategoryDTO struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Icon           string  `json:"icon"`
	Image          *string `json:"image,omitempty"`
	DisplayOrder   int     `json:"display_order"`
	IsActive       bool    `json:"is_active"`
	AvailableItems int64   `json:"available_items"`
}

// MenuItemDTO is the item shape returned to clients. Price is serialized as a
// plain number because the storefront JavaScript does arithmetic on it.
type MenuItemDTO struct {
	ID           uint    `json:"id"`
	CategoryID   uint    `json:"category_id"`
	CategoryName string  `json:"category_name,omitempty"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Image        *string `json:"image,omitempty"`
	IsAvailable  bool    `json:"is_available"`
	IsVegetarian bool    `json:"is_vegetarian"`
	IsSpicy      bool    `json:"is_spicy"`
	IsFeatured   bool    `json:"is_featured"`
	DisplayOrder int     `json:"display_order"`
}

func categoryDTO(category models.Category, availableItems int64) CategoryDTO {
	return CategoryDTO{
		ID:             category.ID,
		Name:           category.Name,
		Icon:           category.Icon,
		Image:          category.Image,
		DisplayOrder:   category.DisplayOrder,
		IsActive:       category.IsActive,
		AvailableItems: availableItems,
	}
}

func menuItemDTO(item models.MenuItem) MenuItemDTO {
	dto := MenuItemDTO{
		ID:           item.ID,
		CategoryID:   item.CategoryID,
		Name:         item.Name,
		Description:  item.Description,
		Price:        item.Price.InexactFloat64(),
		Image:        item.Image,
		IsAvailable:  item.IsAvailable,
		IsVegetarian: item.IsVegetarian,
		IsSpicy:      item.IsSpicy,
		IsFeatured:   item.IsFeatured,
		DisplayOrder: item.DisplayOrder,
	}
	if item.Category != nil {
		dto.CategoryName = item.Category.Name
	}
	return dto
}

func menuItemDTOs(items []models.MenuItem) []MenuItemDTO {
	dtos := make([]MenuItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, menuItemDTO(item))
	}
	return dtos
}
