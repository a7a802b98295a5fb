package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sobnin/sobnin-backend/pkg/db/models"
	pkgerrors "github.com/sobnin/sobnin-backend/pkg/errors"
)

// Service exposes storefront catalog reads plus the staff CRUD surface.
type Service interface {
	ListItems(ctx context.Context, filter ItemFilter) ([]MenuItemDTO, error)
	Categories(ctx context.Context) ([]CategoryDTO, error)
	GetAvailableItem(ctx context.Context, id uint) (*models.MenuItem, error)

	AllCategories(ctx context.Context) ([]CategoryDTO, error)
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error)
	UpdateCategory(ctx context.Context, id uint, input UpdateCategoryInput) (*CategoryDTO, error)
	DeleteCategory(ctx context.Context, id uint) error

	AllItems(ctx context.Context) ([]MenuItemDTO, error)
	CreateItem(ctx context.Context, input CreateItemInput) (*MenuItemDTO, error)
	UpdateItem(ctx context.Context, id uint, input UpdateItemInput) (*MenuItemDTO, error)
	DeleteItem(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

// NewService builds a catalog service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// CreateCategoryInput carries the staff payload for a new category.
type CreateCategoryInput struct {
	Name         string
	Icon         string
	Image        *string
	DisplayOrder int
	IsActive     *bool
}

// UpdateCategoryInput carries partial category edits; nil fields are untouched.
type UpdateCategoryInput struct {
	Name         *string
	Icon         *string
	Image        *string
	DisplayOrder *int
	IsActive     *bool
}

// CreateItemInput carries the staff payload for a new menu item.
type CreateItemInput struct {
	CategoryID   uint
	Name         string
	Description  string
	Price        decimal.Decimal
	Image        *string
	IsAvailable  *bool
	IsVegetarian bool
	IsSpicy      bool
	IsFeatured   bool
	DisplayOrder int
}

// UpdateItemInput carries partial item edits; nil fields are untouched.
type UpdateItemInput struct {
	CategoryID   *uint
	Name         *string
	Description  *string
	Price        *decimal.Decimal
	Image        *string
	IsAvailable  *bool
	IsVegetarian *bool
	IsSpicy      *bool
	IsFeatured   *bool
	DisplayOrder *int
}

func (s *service) ListItems(ctx context.Context, filter ItemFilter) ([]MenuItemDTO, error) {
	items, err := s.repo.ListAvailableItems(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list menu items")
	}
	return menuItemDTOs(items), nil
}

func (s *service) Categories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ActiveCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	counts, err := s.repo.AvailableItemCounts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count available items")
	}
	dtos := make([]CategoryDTO, 0, len(categories))
	for _, category := range categories {
		dtos = append(dtos, categoryDTO(category, counts[category.ID]))
	}
	return dtos, nil
}

// GetAvailableItem returns the live menu item or NotFound when it is missing
// or flagged unavailable. Unavailable items are invisible to customers.
func (s *service) GetAvailableItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	item, err := s.repo.FindAvailableItem(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load menu item")
	}
	return item, nil
}

func (s *service) AllCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	counts, err := s.repo.AvailableItemCounts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count available items")
	}
	dtos := make([]CategoryDTO, 0, len(categories))
	for _, category := range categories {
		dtos = append(dtos, categoryDTO(category, counts[category.ID]))
	}
	return dtos, nil
}

func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}
	if input.DisplayOrder < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "display order must be non-negative")
	}

	category := models.Category{
		Name:         name,
		Icon:         input.Icon,
		Image:        input.Image,
		DisplayOrder: input.DisplayOrder,
		IsActive:     true,
	}
	if category.Icon == "" {
		category.Icon = "bx-food-menu"
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.repo.CreateCategory(ctx, &category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	dto := categoryDTO(category, 0)
	return &dto, nil
}

func (s *service) UpdateCategory(ctx context.Context, id uint, input UpdateCategoryInput) (*CategoryDTO, error) {
	category, err := s.repo.FindCategory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
		}
		category.Name = name
	}
	if input.Icon != nil {
		category.Icon = *input.Icon
	}
	if input.Image != nil {
		category.Image = input.Image
	}
	if input.DisplayOrder != nil {
		if *input.DisplayOrder < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "display order must be non-negative")
		}
		category.DisplayOrder = *input.DisplayOrder
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.repo.SaveCategory(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save category")
	}

	counts, err := s.repo.AvailableItemCounts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count available items")
	}
	dto := categoryDTO(*category, counts[category.ID])
	return &dto, nil
}

// DeleteCategory removes the category; the FK cascade removes its items.
func (s *service) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.repo.FindCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

func (s *service) AllItems(ctx context.Context) ([]MenuItemDTO, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list menu items")
	}
	return menuItemDTOs(items), nil
}

func (s *service) CreateItem(ctx context.Context, input CreateItemInput) (*MenuItemDTO, error) {
	if err := validateItemFields(input.Name, input.Price, input.DisplayOrder); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindCategory(ctx, input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}

	item := models.MenuItem{
		CategoryID:   input.CategoryID,
		Name:         strings.TrimSpace(input.Name),
		Description:  input.Description,
		Price:        input.Price,
		Image:        input.Image,
		IsAvailable:  true,
		IsVegetarian: input.IsVegetarian,
		IsSpicy:      input.IsSpicy,
		IsFeatured:   input.IsFeatured,
		DisplayOrder: input.DisplayOrder,
	}
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}

	if err := s.repo.CreateItem(ctx, &item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create menu item")
	}
	dto := menuItemDTO(item)
	return &dto, nil
}

func (s *service) UpdateItem(ctx context.Context, id uint, input UpdateItemInput) (*MenuItemDTO, error) {
	item, err := s.repo.FindItem(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load menu item")
	}

	if input.CategoryID != nil {
		if _, err := s.repo.FindCategory(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
		}
		item.CategoryID = *input.CategoryID
		item.Category = nil
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
		}
		item.Name = name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
		}
		item.Price = *input.Price
	}
	if input.Image != nil {
		item.Image = input.Image
	}
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}
	if input.IsVegetarian != nil {
		item.IsVegetarian = *input.IsVegetarian
	}
	if input.IsSpicy != nil {
		item.IsSpicy = *input.IsSpicy
	}
	if input.IsFeatured != nil {
		item.IsFeatured = *input.IsFeatured
	}
	if input.DisplayOrder != nil {
		if *input.DisplayOrder < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "display order must be non-negative")
		}
		item.DisplayOrder = *input.DisplayOrder
	}

	if err := s.repo.SaveItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save menu item")
	}
	dto := menuItemDTO(*item)
	return &dto, nil
}

func (s *service) DeleteItem(ctx context.Context, id uint) error {
	if _, err := s.repo.FindItem(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load menu item")
	}
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete menu item")
	}
	return nil
}

func validateItemFields(name string, price decimal.Decimal, displayOrder int) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}
	if price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if displayOrder < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "display order must be non-negative")
	}
	return nil
}
