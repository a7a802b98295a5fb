package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sobnin/sobnin-backend/pkg/db"
	"github.com/sobnin/sobnin-backend/pkg/db/models"
	pkgerrors "github.com/sobnin/sobnin-backend/pkg/errors"
)

const sessionKeyConstraint = "idx_carts_session_key"

type itemLoader interface {
	GetAvailableItem(ctx context.Context, id uint) (*models.MenuItem, error)
}

// Summary carries the aggregates every cart mutation hands back: the item
// count (sum of quantities) and the recomputed total.
type Summary struct {
	Count int
	Total decimal.Decimal
}

// MutationResult pairs a human message with the post-mutation summary.
type MutationResult struct {
	Message string
	Summary Summary
}

// Contents is the full cart view used by the storefront modal and checkout.
type Contents struct {
	Cart    *models.Cart
	Items   []models.CartItem
	Summary Summary
}

// Service applies session-scoped cart operations. Every operation resolves
// the cart from the session key explicitly; there is no ambient request
// state.
type Service interface {
	Resolve(ctx context.Context, sessionKey string) (*models.Cart, error)
	Add(ctx context.Context, sessionKey string, menuItemID uint, quantity int, notes string) (*MutationResult, error)
	Update(ctx context.Context, sessionKey string, menuItemID uint, quantity int) (*MutationResult, error)
	Remove(ctx context.Context, sessionKey string, menuItemID uint) (*MutationResult, error)
	Clear(ctx context.Context, sessionKey string) (*MutationResult, error)
	GetContents(ctx context.Context, sessionKey string) (*Contents, error)
	PeekContents(ctx context.Context, sessionKey string) (*Contents, error)
}

type service struct {
	repo  Repository
	items itemLoader
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo Repository, items itemLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if items == nil {
		return nil, fmt.Errorf("item loader required")
	}
	return &service{repo: repo, items: items}, nil
}

// Resolve returns the cart for the session, creating one when absent.
// Concurrent first requests for a brand-new session can both attempt the
// insert; the unique session key makes one win and the loser falls back to
// fetching the winner's row.
func (s *service) Resolve(ctx context.Context, sessionKey string) (*models.Cart, error) {
	if sessionKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session key is required")
	}

	cart, err := s.repo.FindBySessionKey(ctx, sessionKey)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	fresh := &models.Cart{SessionKey: sessionKey}
	if createErr := s.repo.Create(ctx, fresh); createErr != nil {
		if db.IsUniqueViolation(createErr, sessionKeyConstraint) {
			cart, err = s.repo.FindBySessionKey(ctx, sessionKey)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart after create race")
			}
			return cart, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, createErr, "create cart")
	}
	return fresh, nil
}

// Add puts quantity units of the menu item into the cart. Re-adding an
// existing item increments its quantity instead of inserting a second row.
func (s *service) Add(ctx context.Context, sessionKey string, menuItemID uint, quantity int, notes string) (*MutationResult, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}

	menuItem, err := s.items.GetAvailableItem(ctx, menuItemID)
	if err != nil {
		return nil, err
	}

	cart, err := s.Resolve(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindItem(ctx, cart.ID, menuItemID)
	switch {
	case err == nil:
		item.Quantity += quantity
		if notes != "" {
			item.Notes = notes
		}
		if err := s.repo.SaveItem(ctx, item); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart item")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		fresh := &models.CartItem{
			CartID:     cart.ID,
			MenuItemID: menuItemID,
			Quantity:   quantity,
			Notes:      notes,
		}
		if err := s.repo.CreateItem(ctx, fresh); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart item")
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
	}

	summary, err := s.summarize(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	return &MutationResult{
		Message: fmt.Sprintf("%s added to cart", menuItem.Name),
		Summary: summary,
	}, nil
}

// Update sets the quantity for an existing cart line. A quantity of zero or
// below deletes the line; that is the designed removal path for quantity
// steppers in the UI.
func (s *service) Update(ctx context.Context, sessionKey string, menuItemID uint, quantity int) (*MutationResult, error) {
	cart, err := s.Resolve(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindItem(ctx, cart.ID, menuItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item is not in the cart")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
	}

	if quantity > 0 {
		item.Quantity = quantity
		if err := s.repo.SaveItem(ctx, item); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart item")
		}
	} else {
		if err := s.repo.DeleteItem(ctx, cart.ID, menuItemID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart item")
		}
	}

	summary, err := s.summarize(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	return &MutationResult{Summary: summary}, nil
}

// Remove deletes the cart line if present. Absence is not an error, so the
// operation is safely retryable.
func (s *service) Remove(ctx context.Context, sessionKey string, menuItemID uint) (*MutationResult, error) {
	cart, err := s.Resolve(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteItem(ctx, cart.ID, menuItemID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart item")
	}

	summary, err := s.summarize(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	return &MutationResult{Summary: summary}, nil
}

// Clear empties the cart.
func (s *service) Clear(ctx context.Context, sessionKey string) (*MutationResult, error) {
	cart, err := s.Resolve(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteAllItems(ctx, cart.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return &MutationResult{Summary: Summary{Count: 0, Total: decimal.Zero}}, nil
}

// GetContents returns the cart lines with their live menu item data attached.
func (s *service) GetContents(ctx context.Context, sessionKey string) (*Contents, error) {
	cart, err := s.Resolve(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ItemsWithMenu(ctx, cart.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart items")
	}
	return &Contents{
		Cart:    cart,
		Items:   items,
		Summary: summarizeItems(items),
	}, nil
}

// PeekContents is the read-only variant for page renders: a session with no
// cart yet gets an empty view and no row is written. Carts come into being on
// the first cart mutation, not on the first page view.
func (s *service) PeekContents(ctx context.Context, sessionKey string) (*Contents, error) {
	if sessionKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session key is required")
	}

	cart, err := s.repo.FindBySessionKey(ctx, sessionKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &Contents{Summary: Summary{Total: decimal.Zero}}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	items, err := s.repo.ItemsWithMenu(ctx, cart.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart items")
	}
	return &Contents{
		Cart:    cart,
		Items:   items,
		Summary: summarizeItems(items),
	}, nil
}

// summarize recomputes count and total from the stored rows. Totals are never
// cached, so a price edit in the back office is reflected immediately.
func (s *service) summarize(ctx context.Context, cartID uint) (Summary, error) {
	items, err := s.repo.ItemsWithMenu(ctx, cartID)
	if err != nil {
		return Summary{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart items")
	}
	return summarizeItems(items), nil
}

func summarizeItems(items []models.CartItem) Summary {
	summary := Summary{Total: decimal.Zero}
	for _, item := range items {
		summary.Count += item.Quantity
		summary.Total = summary.Total.Add(item.Subtotal())
	}
	return summary
}
