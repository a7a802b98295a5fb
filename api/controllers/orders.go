package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sobnin/sobnin-backend/api/middleware"
	"github.com/sobnin/sobnin-backend/api/responses"
	"github.com/sobnin/sobnin-backend/api/validators"
	checkoutsvc "github.com/sobnin/sobnin-backend/internal/checkout"
	"github.com/sobnin/sobnin-backend/pkg/enums"
	pkgerrors "github.com/sobnin/sobnin-backend/pkg/errors"
	"github.com/sobnin/sobnin-backend/pkg/logger"
	"github.com/sobnin/sobnin-backend/pkg/metrics"
)

type createOrderRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	Phone        string `json:"phone" validate:"required,max=30"`
	DeliveryType string `json:"delivery_type" validate:"required,oneof=pickup delivery"`
	Address      string `json:"address" validate:"omitempty,max=500"`
	Notes        string `json:"notes" validate:"omitempty,max=1000"`
}

type createOrderResponse struct {
	Success     bool    `json:"success"`
	OrderNumber string  `json:"order_number"`
	Total       float64 `json:"total"`
	WhatsAppURL string  `json:"whatsapp_url"`
}

// CreateOrder turns the session cart into an order and hands back the
// WhatsApp deep link carrying the summary.
func CreateOrder(svc checkoutsvc.Service, m *metrics.HTTPMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionKey := middleware.SessionKeyFromContext(r.Context())
		if sessionKey == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
			return
		}

		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deliveryType, err := enums.ParseDeliveryType(strings.TrimSpace(payload.DeliveryType))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery type"))
			return
		}

		result, err := svc.Create(r.Context(), sessionKey, checkoutsvc.CreateInput{
			CustomerName:  strings.TrimSpace(payload.Name),
			CustomerPhone: strings.TrimSpace(payload.Phone),
			DeliveryType:  deliveryType,
			Address:       strings.TrimSpace(payload.Address),
			Notes:         strings.TrimSpace(payload.Notes),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if m != nil {
			m.IncOrdersCreated()
		}
		if logg != nil {
			ctx := logg.WithOrderNumber(r.Context(), result.OrderNumber)
			logg.Info(ctx, "order.created")
		}

		responses.WriteSuccess(w, createOrderResponse{
			Success:     true,
			OrderNumber: result.OrderNumber,
			Total:       result.Total.InexactFloat64(),
			WhatsAppURL: result.WhatsAppURL,
		})
	}
}

// DirectWhatsAppOrder redirects to a WhatsApp link carrying a single-item
// order intent, bypassing the cart.
func DirectWhatsAppOrder(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := validators.ParseIDParam(chi.URLParam(r, "item_id"), "item_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		link, err := svc.DirectItemLink(r.Context(), itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.Redirect(w, r, link, http.StatusFound)
	}
}
