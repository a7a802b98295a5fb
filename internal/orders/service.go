package orders

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sobnin/sobnin-backend/pkg/enums"
	pkgerrors "github.com/sobnin/sobnin-backend/pkg/errors"
)

// Service defines the staff-facing order operations. Orders are created by
// the checkout service; this side only reads and advances status. Orders are
// never deleted.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]OrderDTO, error)
	Get(ctx context.Context, id uint) (*OrderDTO, error)
	UpdateStatus(ctx context.Context, id uint, next enums.OrderStatus) (*OrderDTO, error)
}

type service struct {
	repo Repository
}

// NewService builds a staff order service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]OrderDTO, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	dtos := make([]OrderDTO, 0, len(orders))
	for _, order := range orders {
		dtos = append(dtos, orderDTO(order))
	}
	return dtos, nil
}

func (s *service) Get(ctx context.Context, id uint) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	dto := orderDTO(*order)
	return &dto, nil
}

// UpdateStatus advances the order one step forward, or cancels it. Invalid
// moves surface as state conflicts so the back office can explain them.
func (s *service) UpdateStatus(ctx context.Context, id uint, next enums.OrderStatus) (*OrderDTO, error) {
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, pkgerrors.New(
			pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, next),
		)
	}

	order.Status = next
	if err := s.repo.Save(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save order")
	}

	dto := orderDTO(*order)
	return &dto, nil
}
