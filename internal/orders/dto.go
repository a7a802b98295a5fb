package orders

import (
	"time"

	"github.com/sobnin/sobnin-backend/pkg/db/models"
)

// OrderDTO is the back-office order shape.
type OrderDTO struct {
	ID            uint           `json:"id"`
	OrderNumber   string         `json:"order_number"`
	CustomerName  string         `json:"customer_name"`
	CustomerPhone string         `json:"customer_phone"`
	DeliveryType  string         `json:"delivery_type"`
	Address       string         `json:"address,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	Total         float64        `json:"total"`
	Status        string         `json:"status"`
	Items         []OrderItemDTO `json:"items"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// OrderItemDTO is a frozen line item as shown to staff.
type OrderItemDTO struct {
	ID         uint    `json:"id"`
	MenuItemID *uint   `json:"menu_item_id,omitempty"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Subtotal   float64 `json:"subtotal"`
	Notes      string  `json:"notes,omitempty"`
}

func orderDTO(order models.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemDTO{
			ID:         item.ID,
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Price:      item.Price.InexactFloat64(),
			Quantity:   item.Quantity,
			Subtotal:   item.Subtotal().InexactFloat64(),
			Notes:      item.Notes,
		})
	}
	return OrderDTO{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		DeliveryType:  order.DeliveryType.String(),
		Address:       order.Address,
		Notes:         order.Notes,
		Total:         order.Total.InexactFloat64(),
		Status:        order.Status.String(),
		Items:         items,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}
