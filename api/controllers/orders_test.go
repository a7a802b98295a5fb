package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	checkoutsvc "github.com/sobnin/sobnin-backend/internal/checkout"
	pkgerrors "github.com/sobnin/sobnin-backend/pkg/errors"
)

type stubCheckoutService struct {
	result *checkoutsvc.Result
	link   string
	err    error

	lastSessionKey string
	lastInput      checkoutsvc.CreateInput
	lastItemID     uint
}

func (s *stubCheckoutService) Create(ctx context.Context, sessionKey string, input checkoutsvc.CreateInput) (*checkoutsvc.Result, error) {
	s.lastSessionKey = sessionKey
	s.lastInput = input
	return s.result, s.err
}

func (s *stubCheckoutService) DirectItemLink(ctx context.Context, menuItemID uint) (string, error) {
	s.lastItemID = menuItemID
	return s.link, s.err
}

func TestCreateOrderSuccess(t *testing.T) {
	svc := &stubCheckoutService{result: &checkoutsvc.Result{
		OrderID:     1,
		OrderNumber: "ORD-20250110-AB12CD",
		Total:       decimal.RequireFromString("50.00"),
		WhatsAppURL: "https://wa.me/212600000000?text=hello",
	}}
	handler := CreateOrder(svc, nil, nil)

	payload := `{"name": "Amina", "phone": "+212611111111", "delivery_type": "pickup"}`
	req := sessionRequest(http.MethodPost, "/api/order/create/", payload)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var body createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success || body.OrderNumber != "ORD-20250110-AB12CD" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.Total != 50.00 || body.WhatsAppURL == "" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if svc.lastSessionKey != "session-1" || svc.lastInput.CustomerName != "Amina" {
		t.Fatalf("unexpected service call: %+v", svc.lastInput)
	}
}

func TestCreateOrderRejectsUnknownDeliveryType(t *testing.T) {
	handler := CreateOrder(&stubCheckoutService{}, nil, nil)

	payload := `{"name": "Amina", "phone": "+212611111111", "delivery_type": "shipping"}`
	req := sessionRequest(http.MethodPost, "/api/order/create/", payload)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCreateOrderEmptyCart(t *testing.T) {
	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")}
	handler := CreateOrder(svc, nil, nil)

	payload := `{"name": "Amina", "phone": "+212611111111", "delivery_type": "pickup"}`
	req := sessionRequest(http.MethodPost, "/api/order/create/", payload)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Error != "cart is empty" {
		t.Fatalf("unexpected error: %q", body.Error)
	}
}

func TestDirectWhatsAppOrderRedirects(t *testing.T) {
	svc := &stubCheckoutService{link: "https://wa.me/212600000000?text=tagine"}

	router := chi.NewRouter()
	router.Get("/order/whatsapp/{item_id}/", DirectWhatsAppOrder(svc, nil))

	req := httptest.NewRequest(http.MethodGet, "/order/whatsapp/7/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusFound {
		t.Fatalf("expected 302 got %d", resp.Code)
	}
	if loc := resp.Header().Get("Location"); loc != svc.link {
		t.Fatalf("unexpected redirect target: %s", loc)
	}
	if svc.lastItemID != 7 {
		t.Fatalf("expected item id 7, got %d", svc.lastItemID)
	}
}

func TestDirectWhatsAppOrderBadID(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/order/whatsapp/{item_id}/", DirectWhatsAppOrder(&stubCheckoutService{}, nil))

	for _, raw := range []string{"0", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/order/whatsapp/"+raw+"/", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %d: %s", raw, resp.Code, resp.Body.String())
		}
	}
}

func TestCreateOrderTrimsInput(t *testing.T) {
	svc := &stubCheckoutService{result: &checkoutsvc.Result{
		OrderNumber: "ORD-20250110-AB12CD",
		Total:       decimal.Zero,
	}}
	handler := CreateOrder(svc, nil, nil)

	payload := `{"name": "  Amina  ", "phone": " +212611111111 ", "delivery_type": "delivery", "address": " 12 Rue des Oliviers "}`
	req := sessionRequest(http.MethodPost, "/api/order/create/", payload)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastInput.CustomerName != "Amina" ||
		svc.lastInput.CustomerPhone != "+212611111111" ||
		svc.lastInput.Address != "12 Rue des Oliviers" {
		t.Fatalf("expected trimmed input, got %+v", svc.lastInput)
	}
}
