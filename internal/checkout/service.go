package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sobnin/sobnin-backend/internal/cart"
	"github.com/sobnin/sobnin-backend/internal/orders"
	"github.com/sobnin/sobnin-backend/pkg/config"
	"github.com/sobnin/sobnin-backend/pkg/db"
	"github.com/sobnin/sobnin-backend/pkg/db/models"
	"github.com/sobnin/sobnin-backend/pkg/enums"
	pkgerrors "github.com/sobnin/sobnin-backend/pkg/errors"
	"github.com/sobnin/sobnin-backend/pkg/whatsapp"
)

const (
	orderNumberConstraint = "idx_orders_order_number"

	// A six-character random suffix makes collisions within one day
	// practically impossible at restaurant volume, but the unique index is
	// still the source of truth: on a collision the whole transaction is
	// retried with a fresh number.
	maxOrderNumberAttempts = 3
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type itemLoader interface {
	GetAvailableItem(ctx context.Context, id uint) (*models.MenuItem, error)
}

type cartResolver interface {
	Resolve(ctx context.Context, sessionKey string) (*models.Cart, error)
}

// CreateInput carries the customer fields submitted at checkout.
type CreateInput struct {
	CustomerName  string
	CustomerPhone string
	DeliveryType  enums.DeliveryType
	Address       string
	Notes         string
}

// Result is what the storefront needs after an order is placed.
type Result struct {
	OrderID     uint
	OrderNumber string
	Total       decimal.Decimal
	WhatsAppURL string
}

// Service turns a session's cart into an immutable order and builds the
// WhatsApp hand-off link.
type Service interface {
	Create(ctx context.Context, sessionKey string, input CreateInput) (*Result, error)
	DirectItemLink(ctx context.Context, menuItemID uint) (string, error)
}

type service struct {
	carts      cartResolver
	cartRepo   cart.Repository
	ordersRepo orders.Repository
	items      itemLoader
	tx         txRunner
	restaurant config.RestaurantConfig
	now        func() time.Time
}

// NewService builds a checkout service backed by the provided stack.
func NewService(
	carts cartResolver,
	cartRepo cart.Repository,
	ordersRepo orders.Repository,
	items itemLoader,
	tx txRunner,
	restaurant config.RestaurantConfig,
) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart resolver required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if items == nil {
		return nil, fmt.Errorf("item loader required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		carts:      carts,
		cartRepo:   cartRepo,
		ordersRepo: ordersRepo,
		items:      items,
		tx:         tx,
		restaurant: restaurant,
		now:        time.Now,
	}, nil
}

// Create snapshots the cart into an order, freezes line items, and empties
// the cart, all in one transaction. On failure nothing is committed and the
// cart is untouched, so the customer can simply retry.
func (s *service) Create(ctx context.Context, sessionKey string, input CreateInput) (*Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	resolved, err := s.carts.Resolve(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	var created models.Order

	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		orderNumber := s.newOrderNumber()

		txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			cartRepo := s.cartRepo.WithTx(tx)
			ordersRepo := s.ordersRepo.WithTx(tx)

			items, err := cartRepo.ItemsWithMenu(ctx, resolved.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart items")
			}
			if len(items) == 0 {
				return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
			}

			total := decimal.Zero
			orderItems := make([]models.OrderItem, 0, len(items))
			for _, item := range items {
				if item.MenuItem == nil {
					return pkgerrors.New(pkgerrors.CodeDependency, "cart item missing menu item")
				}
				menuItemID := item.MenuItemID
				orderItems = append(orderItems, models.OrderItem{
					MenuItemID: &menuItemID,
					Name:       item.MenuItem.Name,
					Price:      item.MenuItem.Price,
					Quantity:   item.Quantity,
					Notes:      item.Notes,
				})
				total = total.Add(item.Subtotal())
			}

			order := models.Order{
				OrderNumber:   orderNumber,
				CustomerName:  strings.TrimSpace(input.CustomerName),
				CustomerPhone: strings.TrimSpace(input.CustomerPhone),
				DeliveryType:  input.DeliveryType,
				Address:       strings.TrimSpace(input.Address),
				Notes:         strings.TrimSpace(input.Notes),
				Total:         total,
				Status:        enums.OrderStatusPending,
			}
			if err := ordersRepo.Create(ctx, &order); err != nil {
				return err
			}

			for i := range orderItems {
				orderItems[i].OrderID = order.ID
			}
			if err := ordersRepo.CreateItems(ctx, orderItems); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order items")
			}

			if err := cartRepo.DeleteAllItems(ctx, resolved.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
			}

			order.Items = orderItems
			created = order
			return nil
		})

		if txErr == nil {
			message := orderMessage(created)
			return &Result{
				OrderID:     created.ID,
				OrderNumber: created.OrderNumber,
				Total:       created.Total,
				WhatsAppURL: whatsapp.Link(s.restaurant.WhatsApp, message),
			}, nil
		}
		if db.IsUniqueViolation(txErr, orderNumberConstraint) {
			continue
		}
		if typed := pkgerrors.As(txErr); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, txErr, "create order")
	}

	return nil, pkgerrors.New(pkgerrors.CodeConflict, "could not allocate a unique order number")
}

// DirectItemLink builds the express single-item order link. This path never
// records an Order; it only opens a chat naming the item.
func (s *service) DirectItemLink(ctx context.Context, menuItemID uint) (string, error) {
	item, err := s.items.GetAvailableItem(ctx, menuItemID)
	if err != nil {
		return "", err
	}
	return whatsapp.Link(s.restaurant.WhatsApp, directItemMessage(*item)), nil
}

func validateInput(input CreateInput) error {
	if strings.TrimSpace(input.CustomerName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if strings.TrimSpace(input.CustomerPhone) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer phone is required")
	}
	if !input.DeliveryType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid delivery type")
	}
	if input.DeliveryType == enums.DeliveryTypeDelivery && strings.TrimSpace(input.Address) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "address is required for delivery orders")
	}
	return nil
}

func (s *service) newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", s.now().Format("20060102"), suffix)
}
