package cart

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sobnin/sobnin-backend/pkg/db/models"
	pkgerrors "github.com/sobnin/sobnin-backend/pkg/errors"
)

type stubItemLoader struct {
	items map[uint]*models.MenuItem
}

func (s stubItemLoader) GetAvailableItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	item, ok := s.items[id]
	if !ok || !item.IsAvailable {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
	}
	return item, nil
}

type memCartRepo struct {
	carts      map[string]*models.Cart
	items      map[uint]*models.CartItem
	menu       map[uint]*models.MenuItem
	nextCartID uint
	nextItemID uint

	createCartErr error
	saveErr       error
	findMisses    int
}

func newMemCartRepo(menu map[uint]*models.MenuItem) *memCartRepo {
	return &memCartRepo{
		carts: map[string]*models.Cart{},
		items: map[uint]*models.CartItem{},
		menu:  menu,
	}
}

func (m *memCartRepo) WithTx(tx *gorm.DB) Repository { return m }

func (m *memCartRepo) FindBySessionKey(ctx context.Context, sessionKey string) (*models.Cart, error) {
	if m.findMisses > 0 {
		m.findMisses--
		return nil, gorm.ErrRecordNotFound
	}
	if cart, ok := m.carts[sessionKey]; ok {
		return cart, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memCartRepo) Create(ctx context.Context, cart *models.Cart) error {
	if m.createCartErr != nil {
		return m.createCartErr
	}
	if _, ok := m.carts[cart.SessionKey]; ok {
		return fmt.Errorf("duplicate key value violates unique constraint %q", "idx_carts_session_key")
	}
	m.nextCartID++
	cart.ID = m.nextCartID
	m.carts[cart.SessionKey] = cart
	return nil
}

func (m *memCartRepo) FindItem(ctx context.Context, cartID, menuItemID uint) (*models.CartItem, error) {
	for _, item := range m.items {
		if item.CartID == cartID && item.MenuItemID == menuItemID {
			copied := *item
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memCartRepo) CreateItem(ctx context.Context, item *models.CartItem) error {
	m.nextItemID++
	item.ID = m.nextItemID
	stored := *item
	m.items[item.ID] = &stored
	return nil
}

func (m *memCartRepo) SaveItem(ctx context.Context, item *models.CartItem) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	stored := *item
	m.items[item.ID] = &stored
	return nil
}

func (m *memCartRepo) DeleteItem(ctx context.Context, cartID, menuItemID uint) error {
	for id, item := range m.items {
		if item.CartID == cartID && item.MenuItemID == menuItemID {
			delete(m.items, id)
		}
	}
	return nil
}

func (m *memCartRepo) DeleteAllItems(ctx context.Context, cartID uint) error {
	for id, item := range m.items {
		if item.CartID == cartID {
			delete(m.items, id)
		}
	}
	return nil
}

func (m *memCartRepo) ItemsWithMenu(ctx context.Context, cartID uint) ([]models.CartItem, error) {
	var result []models.CartItem
	for _, item := range m.items {
		if item.CartID != cartID {
			continue
		}
		copied := *item
		copied.MenuItem = m.menu[item.MenuItemID]
		result = append(result, copied)
	}
	return result, nil
}

func testMenu() map[uint]*models.MenuItem {
	return map[uint]*models.MenuItem{
		7: {ID: 7, Name: "Tagine", Price: decimal.RequireFromString("25.00"), IsAvailable: true},
		8: {ID: 8, Name: "Couscous", Price: decimal.RequireFromString("40.00"), IsAvailable: true},
		9: {ID: 9, Name: "Pastilla", Price: decimal.RequireFromString("60.00"), IsAvailable: false},
	}
}

func newTestService(t *testing.T, repo Repository, menu map[uint]*models.MenuItem) Service {
	t.Helper()
	svc, err := NewService(repo, stubItemLoader{items: menu})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestResolveCreatesLazily(t *testing.T) {
	t.Parallel()

	repo := newMemCartRepo(testMenu())
	svc := newTestService(t, repo, testMenu())

	first, err := svc.Resolve(context.Background(), "session-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Resolve(context.Background(), "session-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected the same cart, got %d and %d", first.ID, second.ID)
	}
	if len(repo.carts) != 1 {
		t.Fatalf("expected one cart row, got %d", len(repo.carts))
	}
}

func TestResolveFallsBackOnCreateRace(t *testing.T) {
	t.Parallel()

	repo := newMemCartRepo(testMenu())
	svc := newTestService(t, repo, testMenu())

	// Simulate the losing side of a concurrent create: the insert hits the
	// unique session key, then the fetch finds the winner's row.
	winner := &models.Cart{ID: 42, SessionKey: "session-race"}
	repo.createCartErr = fmt.Errorf("duplicate key value violates unique constraint %q", "idx_carts_session_key")
	repo.carts["session-race"] = winner
	repo.findMisses = 1

	cart, err := svc.Resolve(context.Background(), "session-race")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.ID != winner.ID {
		t.Fatalf("expected winner cart %d, got %d", winner.ID, cart.ID)
	}
}

func TestAddNewItemThenAccumulate(t *testing.T) {
	t.Parallel()

	menu := testMenu()
	repo := newMemCartRepo(menu)
	svc := newTestService(t, repo, menu)

	result, err := svc.Add(context.Background(), "session-a", 7, 2, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary.Count != 2 {
		t.Fatalf("expected count 2, got %d", result.Summary.Count)
	}
	if !result.Summary.Total.Equal(decimal.RequireFromString("50.00")) {
		t.Fatalf("expected total 50.00, got %s", result.Summary.Total)
	}
	if result.Message != "Tagine added to cart" {
		t.Fatalf("unexpected message: %q", result.Message)
	}

	// Re-adding increments the existing row instead of duplicating it.
	result, err = svc.Add(context.Background(), "session-a", 7, 3, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary.Count != 5 {
		t.Fatalf("expected count 5, got %d", result.Summary.Count)
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected one cart item row, got %d", len(repo.items))
	}
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newMemCartRepo(testMenu()), testMenu())

	for _, quantity := range []int{0, -1} {
		_, err := svc.Add(context.Background(), "session-a", 7, quantity, "")
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("quantity %d: expected validation error, got %v", quantity, err)
		}
	}
}

func TestAddUnavailableItem(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newMemCartRepo(testMenu()), testMenu())

	_, err := svc.Add(context.Background(), "session-a", 9, 1, "")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unavailable item, got %v", err)
	}

	_, err = svc.Add(context.Background(), "session-a", 999, 1, "")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for missing item, got %v", err)
	}
}

func TestUpdateSetsQuantity(t *testing.T) {
	t.Parallel()

	menu := testMenu()
	repo := newMemCartRepo(menu)
	svc := newTestService(t, repo, menu)

	if _, err := svc.Add(context.Background(), "session-a", 7, 2, ""); err != nil {
		t.Fatalf("seed add: %v", err)
	}

	result, err := svc.Update(context.Background(), "session-a", 7, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary.Count != 4 {
		t.Fatalf("expected count 4, got %d", result.Summary.Count)
	}
	if !result.Summary.Total.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("expected total 100.00, got %s", result.Summary.Total)
	}
}

func TestUpdateZeroDeletesLine(t *testing.T) {
	t.Parallel()

	menu := testMenu()
	repo := newMemCartRepo(menu)
	svc := newTestService(t, repo, menu)

	if _, err := svc.Add(context.Background(), "session-a", 7, 2, ""); err != nil {
		t.Fatalf("seed add: %v", err)
	}

	result, err := svc.Update(context.Background(), "session-a", 7, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary.Count != 0 || !result.Summary.Total.IsZero() {
		t.Fatalf("expected empty summary, got %+v", result.Summary)
	}
	if len(repo.items) != 0 {
		t.Fatalf("expected row deleted, got %d rows", len(repo.items))
	}
}

func TestUpdateMissingLine(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newMemCartRepo(testMenu()), testMenu())

	_, err := svc.Update(context.Background(), "session-a", 7, 1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	t.Parallel()

	menu := testMenu()
	repo := newMemCartRepo(menu)
	svc := newTestService(t, repo, menu)

	if _, err := svc.Add(context.Background(), "session-a", 7, 2, ""); err != nil {
		t.Fatalf("seed add: %v", err)
	}

	if _, err := svc.Remove(context.Background(), "session-a", 7); err != nil {
		t.Fatalf("first remove: %v", err)
	}
	result, err := svc.Remove(context.Background(), "session-a", 7)
	if err != nil {
		t.Fatalf("second remove should not error: %v", err)
	}
	if result.Summary.Count != 0 {
		t.Fatalf("expected empty cart, got count %d", result.Summary.Count)
	}
}

func TestClearEmptiesCart(t *testing.T) {
	t.Parallel()

	menu := testMenu()
	repo := newMemCartRepo(menu)
	svc := newTestService(t, repo, menu)

	if _, err := svc.Add(context.Background(), "session-a", 7, 2, ""); err != nil {
		t.Fatalf("seed add: %v", err)
	}
	if _, err := svc.Add(context.Background(), "session-a", 8, 1, ""); err != nil {
		t.Fatalf("seed add: %v", err)
	}

	result, err := svc.Clear(context.Background(), "session-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary.Count != 0 || !result.Summary.Total.IsZero() {
		t.Fatalf("expected empty summary, got %+v", result.Summary)
	}
	if len(repo.items) != 0 {
		t.Fatalf("expected all rows deleted, got %d", len(repo.items))
	}
}

func TestTotalsReflectCurrentMenuPrices(t *testing.T) {
	t.Parallel()

	menu := testMenu()
	repo := newMemCartRepo(menu)
	svc := newTestService(t, repo, menu)

	if _, err := svc.Add(context.Background(), "session-a", 7, 2, ""); err != nil {
		t.Fatalf("seed add: %v", err)
	}

	// A back-office price edit shows up in the next summary because totals
	// are recomputed from the rows, never cached.
	menu[7].Price = decimal.RequireFromString("30.00")

	contents, err := svc.GetContents(context.Background(), "session-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !contents.Summary.Total.Equal(decimal.RequireFromString("60.00")) {
		t.Fatalf("expected total 60.00 after price change, got %s", contents.Summary.Total)
	}
}

func TestContentsIncludesMenuData(t *testing.T) {
	t.Parallel()

	menu := testMenu()
	repo := newMemCartRepo(menu)
	svc := newTestService(t, repo, menu)

	if _, err := svc.Add(context.Background(), "session-a", 8, 1, "no onions"); err != nil {
		t.Fatalf("seed add: %v", err)
	}

	contents, err := svc.GetContents(context.Background(), "session-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contents.Items) != 1 {
		t.Fatalf("expected one line, got %d", len(contents.Items))
	}
	line := contents.Items[0]
	if line.MenuItem == nil || line.MenuItem.Name != "Couscous" {
		t.Fatalf("expected menu data attached, got %+v", line.MenuItem)
	}
	if line.Notes != "no onions" {
		t.Fatalf("expected notes preserved, got %q", line.Notes)
	}
}

func TestResolveRequiresSessionKey(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newMemCartRepo(testMenu()), testMenu())

	_, err := svc.Resolve(context.Background(), "")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddSurfacesRepositoryFailure(t *testing.T) {
	t.Parallel()

	menu := testMenu()
	repo := newMemCartRepo(menu)
	svc := newTestService(t, repo, menu)

	if _, err := svc.Add(context.Background(), "session-a", 7, 1, ""); err != nil {
		t.Fatalf("seed add: %v", err)
	}

	repo.saveErr = errors.New("disk full")
	_, err := svc.Add(context.Background(), "session-a", 7, 1, "")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestPeekContentsCreatesNoCart(t *testing.T) {
	t.Parallel()

	repo := newMemCartRepo(testMenu())
	svc := newTestService(t, repo, testMenu())

	contents, err := svc.PeekContents(context.Background(), "fresh-session")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contents.Summary.Count != 0 || !contents.Summary.Total.IsZero() {
		t.Fatalf("expected empty summary, got %+v", contents.Summary)
	}
	if contents.Cart != nil {
		t.Fatalf("expected no cart attached, got %+v", contents.Cart)
	}
	if len(repo.carts) != 0 {
		t.Fatalf("peek must not create a cart row, found %d", len(repo.carts))
	}
}

func TestPeekContentsReadsExistingCart(t *testing.T) {
	t.Parallel()

	menu := testMenu()
	repo := newMemCartRepo(menu)
	svc := newTestService(t, repo, menu)

	if _, err := svc.Add(context.Background(), "session-a", 7, 2, ""); err != nil {
		t.Fatalf("seed add: %v", err)
	}

	contents, err := svc.PeekContents(context.Background(), "session-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contents.Summary.Count != 2 || !contents.Summary.Total.Equal(decimal.RequireFromString("50.00")) {
		t.Fatalf("unexpected summary: %+v", contents.Summary)
	}
}
