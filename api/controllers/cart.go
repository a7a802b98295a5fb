package controllers

import (
	"net/http"

	"github.com/sobnin/sobnin-backend/api/middleware"
	"github.com/sobnin/sobnin-backend/api/pages"
	"github.com/sobnin/sobnin-backend/api/responses"
	"github.com/sobnin/sobnin-backend/api/validators"
	cartsvc "github.com/sobnin/sobnin-backend/internal/cart"
	pkgerrors "github.com/sobnin/sobnin-backend/pkg/errors"
	"github.com/sobnin/sobnin-backend/pkg/logger"
)

type cartMutationResponse struct {
	Success   bool    `json:"success"`
	Message   string  `json:"message,omitempty"`
	CartCount int     `json:"cart_count"`
	CartTotal float64 `json:"cart_total"`
}

type cartContentResponse struct {
	HTML      string  `json:"html"`
	CartCount int     `json:"cart_count"`
	CartTotal float64 `json:"cart_total"`
}

type cartAddRequest struct {
	ItemID   uint   `json:"item_id" validate:"required,min=1"`
	Quantity *int   `json:"quantity" validate:"required"`
	Notes    string `json:"notes" validate:"omitempty,max=500"`
}

type cartUpdateRequest struct {
	ItemID   uint `json:"item_id" validate:"required,min=1"`
	Quantity *int `json:"quantity" validate:"required"`
}

type cartRemoveRequest struct {
	ItemID uint `json:"item_id" validate:"required,min=1"`
}

func cartMutation(result *cartsvc.MutationResult) cartMutationResponse {
	return cartMutationResponse{
		Success:   true,
		Message:   result.Message,
		CartCount: result.Summary.Count,
		CartTotal: result.Summary.Total.InexactFloat64(),
	}
}

// CartAdd puts a menu item into the session cart, accumulating quantity when
// the item is already there.
func CartAdd(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionKey := middleware.SessionKeyFromContext(r.Context())
		if sessionKey == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
			return
		}

		var payload cartAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Add(r.Context(), sessionKey, payload.ItemID, *payload.Quantity, payload.Notes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartMutation(result))
	}
}

// CartUpdate sets a cart line's quantity; zero or below removes the line.
func CartUpdate(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionKey := middleware.SessionKeyFromContext(r.Context())
		if sessionKey == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
			return
		}

		var payload cartUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Update(r.Context(), sessionKey, payload.ItemID, *payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		response := cartMutation(result)
		response.Message = ""
		responses.WriteSuccess(w, response)
	}
}

// CartRemove deletes a cart line. Removing an absent line is not an error.
func CartRemove(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionKey := middleware.SessionKeyFromContext(r.Context())
		if sessionKey == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
			return
		}

		var payload cartRemoveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Remove(r.Context(), sessionKey, payload.ItemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		response := cartMutation(result)
		response.Message = ""
		responses.WriteSuccess(w, response)
	}
}

// CartClear empties the session cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionKey := middleware.SessionKeyFromContext(r.Context())
		if sessionKey == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
			return
		}

		result, err := svc.Clear(r.Context(), sessionKey)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		response := cartMutation(result)
		response.Message = ""
		responses.WriteSuccess(w, response)
	}
}

// CartContent renders the cart modal fragment plus the live count and total.
func CartContent(svc cartsvc.Service, renderer *pages.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionKey := middleware.SessionKeyFromContext(r.Context())
		if sessionKey == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
			return
		}

		contents, err := svc.GetContents(r.Context(), sessionKey)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view := cartView(contents)
		html, err := renderer.CartPartial(view)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render cart"))
			return
		}

		responses.WriteSuccess(w, cartContentResponse{
			HTML:      html,
			CartCount: contents.Summary.Count,
			CartTotal: contents.Summary.Total.InexactFloat64(),
		})
	}
}

func cartView(contents *cartsvc.Contents) pages.CartView {
	lines := make([]pages.CartLine, 0, len(contents.Items))
	for _, item := range contents.Items {
		line := pages.CartLine{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			Notes:      item.Notes,
		}
		if item.MenuItem != nil {
			line.Name = item.MenuItem.Name
			line.Price = item.MenuItem.Price.StringFixed(2)
			line.Subtotal = item.Subtotal().StringFixed(2)
			if item.MenuItem.Image != nil {
				line.Image = *item.MenuItem.Image
			}
		}
		lines = append(lines, line)
	}
	return pages.CartView{
		Lines:     lines,
		CartCount: contents.Summary.Count,
		CartTotal: contents.Summary.Total.StringFixed(2),
	}
}
