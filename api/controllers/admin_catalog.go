package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/sobnin/sobnin-backend/api/responses"
	"github.com/sobnin/sobnin-backend/api/validators"
	catalogsvc "github.com/sobnin/sobnin-backend/internal/catalog"
	"github.com/sobnin/sobnin-backend/pkg/logger"
)

type createCategoryRequest struct {
	Name         string  `json:"name" validate:"required,max=100"`
	Icon         string  `json:"icon" validate:"omitempty,max=50"`
	Image        *string `json:"image,omitempty" validate:"omitempty,max=500"`
	DisplayOrder int     `json:"display_order" validate:"omitempty,min=0"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

type updateCategoryRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Icon         *string `json:"icon,omitempty" validate:"omitempty,max=50"`
	Image        *string `json:"image,omitempty" validate:"omitempty,max=500"`
	DisplayOrder *int    `json:"display_order,omitempty" validate:"omitempty,min=0"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

type createItemRequest struct {
	CategoryID   uint    `json:"category_id" validate:"required,min=1"`
	Name         string  `json:"name" validate:"required,max=200"`
	Description  string  `json:"description" validate:"omitempty,max=2000"`
	Price        float64 `json:"price" validate:"required,gte=0"`
	Image        *string `json:"image,omitempty" validate:"omitempty,max=500"`
	IsAvailable  *bool   `json:"is_available,omitempty"`
	IsVegetarian bool    `json:"is_vegetarian"`
	IsSpicy      bool    `json:"is_spicy"`
	IsFeatured   bool    `json:"is_featured"`
	DisplayOrder int     `json:"display_order" validate:"omitempty,min=0"`
}

type updateItemRequest struct {
	CategoryID   *uint    `json:"category_id,omitempty" validate:"omitempty,min=1"`
	Name         *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	Description  *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price        *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Image        *string  `json:"image,omitempty" validate:"omitempty,max=500"`
	IsAvailable  *bool    `json:"is_available,omitempty"`
	IsVegetarian *bool    `json:"is_vegetarian,omitempty"`
	IsSpicy      *bool    `json:"is_spicy,omitempty"`
	IsFeatured   *bool    `json:"is_featured,omitempty"`
	DisplayOrder *int     `json:"display_order,omitempty" validate:"omitempty,min=0"`
}

// AdminListCategories returns every category, active or not.
func AdminListCategories(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.AllCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"categories": categories})
	}
}

func AdminCreateCategory(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.CreateCategory(r.Context(), catalogsvc.CreateCategoryInput{
			Name:         strings.TrimSpace(payload.Name),
			Icon:         strings.TrimSpace(payload.Icon),
			Image:        payload.Image,
			DisplayOrder: payload.DisplayOrder,
			IsActive:     payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

func AdminUpdateCategory(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.UpdateCategory(r.Context(), id, catalogsvc.UpdateCategoryInput{
			Name:         payload.Name,
			Icon:         payload.Icon,
			Image:        payload.Image,
			DisplayOrder: payload.DisplayOrder,
			IsActive:     payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, category)
	}
}

// AdminDeleteCategory removes a category and, through the cascade, its items.
func AdminDeleteCategory(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteCategory(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"success": true})
	}
}

// AdminListItems returns every menu item regardless of availability.
func AdminListItems(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.AllItems(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"items": items})
	}
}

func AdminCreateItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.CreateItem(r.Context(), catalogsvc.CreateItemInput{
			CategoryID:   payload.CategoryID,
			Name:         strings.TrimSpace(payload.Name),
			Description:  strings.TrimSpace(payload.Description),
			Price:        decimal.NewFromFloat(payload.Price),
			Image:        payload.Image,
			IsAvailable:  payload.IsAvailable,
			IsVegetarian: payload.IsVegetarian,
			IsSpicy:      payload.IsSpicy,
			IsFeatured:   payload.IsFeatured,
			DisplayOrder: payload.DisplayOrder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func AdminUpdateItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalogsvc.UpdateItemInput{
			CategoryID:   payload.CategoryID,
			Name:         payload.Name,
			Description:  payload.Description,
			Image:        payload.Image,
			IsAvailable:  payload.IsAvailable,
			IsVegetarian: payload.IsVegetarian,
			IsSpicy:      payload.IsSpicy,
			IsFeatured:   payload.IsFeatured,
			DisplayOrder: payload.DisplayOrder,
		}
		if payload.Price != nil {
			price := decimal.NewFromFloat(*payload.Price)
			input.Price = &price
		}

		item, err := svc.UpdateItem(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

func AdminDeleteItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteItem(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"success": true})
	}
}
