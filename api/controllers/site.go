package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/sobnin/sobnin-backend/api/middleware"
	"github.com/sobnin/sobnin-backend/api/pages"
	"github.com/sobnin/sobnin-backend/api/responses"
	cartsvc "github.com/sobnin/sobnin-backend/internal/cart"
	catalogsvc "github.com/sobnin/sobnin-backend/internal/catalog"
	pkgerrors "github.com/sobnin/sobnin-backend/pkg/errors"
	"github.com/sobnin/sobnin-backend/pkg/logger"
)

// MenuPage renders the storefront with optional category and search filters.
func MenuPage(catalog catalogsvc.Service, carts cartsvc.Service, renderer *pages.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := catalogsvc.ItemFilter{
			Search: strings.TrimSpace(r.URL.Query().Get("search")),
		}
		var activeCategory uint
		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			if id, err := strconv.ParseUint(raw, 10, 64); err == nil && id > 0 {
				categoryID := uint(id)
				filter.CategoryID = &categoryID
				activeCategory = categoryID
			}
		}

		items, err := catalog.ListItems(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categories, err := catalog.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view := pages.MenuView{
			Categories:     categories,
			Items:          items,
			ActiveCategory: activeCategory,
			Search:         filter.Search,
			CartTotal:      "0.00",
		}

		// Read-only peek: a plain page view must not create a cart row.
		if sessionKey := middleware.SessionKeyFromContext(r.Context()); sessionKey != "" {
			if contents, err := carts.PeekContents(r.Context(), sessionKey); err == nil {
				view.CartCount = contents.Summary.Count
				view.CartTotal = contents.Summary.Total.StringFixed(2)
			}
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := renderer.Menu(w, view); err != nil && logg != nil {
			logg.Error(r.Context(), "page.menu.render", err)
		}
	}
}

// AboutPage renders the static restaurant page.
func AboutPage(renderer *pages.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := renderer.About(w); err != nil && logg != nil {
			logg.Error(r.Context(), "page.about.render", err)
		}
	}
}

// CheckoutPage renders the checkout form, bouncing back to the menu when the
// cart is empty.
func CheckoutPage(carts cartsvc.Service, renderer *pages.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionKey := middleware.SessionKeyFromContext(r.Context())
		if sessionKey == "" {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		contents, err := carts.GetContents(r.Context(), sessionKey)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart"))
			return
		}
		if contents.Summary.Count == 0 {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		cart := cartView(contents)
		view := pages.CheckoutView{
			Lines:     cart.Lines,
			CartCount: cart.CartCount,
			CartTotal: cart.CartTotal,
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := renderer.Checkout(w, view); err != nil && logg != nil {
			logg.Error(r.Context(), "page.checkout.render", err)
		}
	}
}
