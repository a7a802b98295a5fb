package pages

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/sobnin/sobnin-backend/internal/catalog"
	"github.com/sobnin/sobnin-backend/pkg/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer owns the parsed storefront templates. Pages are intentionally
// thin: they render the same data the JSON endpoints expose.
type Renderer struct {
	templates  *template.Template
	restaurant config.RestaurantConfig
}

func NewRenderer(restaurant config.RestaurantConfig) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing page templates: %w", err)
	}
	return &Renderer{templates: tmpl, restaurant: restaurant}, nil
}

// RestaurantView is the public identity block shared by every page.
type RestaurantView struct {
	Name     string
	Phone    string
	Address  string
	MapsLink string
}

// MenuView feeds the storefront menu page.
type MenuView struct {
	Restaurant     RestaurantView
	Categories     []catalog.CategoryDTO
	Items          []catalog.MenuItemDTO
	ActiveCategory uint
	Search         string
	CartCount      int
	CartTotal      string
}

// CheckoutView feeds the checkout page.
type CheckoutView struct {
	Restaurant RestaurantView
	Lines      []CartLine
	CartCount  int
	CartTotal  string
}

// CartLine is one rendered cart row.
type CartLine struct {
	MenuItemID uint
	Name       string
	Quantity   int
	Price      string
	Subtotal   string
	Notes      string
	Image      string
}

// CartView feeds the cart modal partial returned by the cart content
// endpoint.
type CartView struct {
	Lines     []CartLine
	CartCount int
	CartTotal string
}

func (r *Renderer) restaurantView() RestaurantView {
	return RestaurantView{
		Name:     r.restaurant.Name,
		Phone:    r.restaurant.Phone,
		Address:  r.restaurant.Address,
		MapsLink: r.restaurant.MapsLink,
	}
}

func (r *Renderer) Menu(w io.Writer, view MenuView) error {
	view.Restaurant = r.restaurantView()
	return r.templates.ExecuteTemplate(w, "menu.html", view)
}

func (r *Renderer) About(w io.Writer) error {
	return r.templates.ExecuteTemplate(w, "about.html", r.restaurantView())
}

func (r *Renderer) Checkout(w io.Writer, view CheckoutView) error {
	view.Restaurant = r.restaurantView()
	return r.templates.ExecuteTemplate(w, "checkout.html", view)
}

// CartPartial renders the cart rows fragment returned inside the cart content
// JSON payload.
func (r *Renderer) CartPartial(view CartView) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "cart_items.html", view); err != nil {
		return "", fmt.Errorf("rendering cart partial: %w", err)
	}
	return buf.String(), nil
}
