package checkout

import (
	"fmt"
	"strings"

	"github.com/sobnin/sobnin-backend/pkg/db/models"
	"github.com/sobnin/sobnin-backend/pkg/enums"
)

const currencyLabel = "MAD"

// orderMessage renders the human-readable summary that gets pre-filled into
// the WhatsApp chat with the restaurant.
func orderMessage(order models.Order) string {
	lines := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, fmt.Sprintf("• %dx %s - %s %s",
			item.Quantity, item.Name, item.Subtotal().StringFixed(2), currencyLabel))
	}

	delivery := "pickup at the restaurant"
	if order.DeliveryType == enums.DeliveryTypeDelivery {
		delivery = "delivery to: " + order.Address
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🍽️ *New order #%s*\n\n", order.OrderNumber)
	fmt.Fprintf(&b, "👤 *Customer:* %s\n", order.CustomerName)
	fmt.Fprintf(&b, "📞 *Phone:* %s\n", order.CustomerPhone)
	fmt.Fprintf(&b, "🚚 *Delivery:* %s\n\n", delivery)
	fmt.Fprintf(&b, "📝 *Items:*\n%s\n\n", strings.Join(lines, "\n"))
	fmt.Fprintf(&b, "💰 *Total:* %s %s\n", order.Total.StringFixed(2), currencyLabel)
	if order.Notes != "" {
		fmt.Fprintf(&b, "\n📌 *Notes:* %s", order.Notes)
	}
	return b.String()
}

// directItemMessage renders the short order-intent text for the express
// single-item path.
func directItemMessage(item models.MenuItem) string {
	return fmt.Sprintf("Hello, I would like to order:\n\n• %s - %s %s",
		item.Name, item.Price.StringFixed(2), currencyLabel)
}
