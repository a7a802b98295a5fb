package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sobnin/sobnin-backend/pkg/db/models"
	pkgerrors "github.com/sobnin/sobnin-backend/pkg/errors"
)

type memCatalogRepo struct {
	categories map[uint]*models.Category
	items      map[uint]*models.MenuItem
	nextID     uint

	listErr error
}

func newMemCatalogRepo() *memCatalogRepo {
	return &memCatalogRepo{
		categories: map[uint]*models.Category{},
		items:      map[uint]*models.MenuItem{},
	}
}

func (m *memCatalogRepo) seedCategory(c models.Category) *models.Category {
	m.nextID++
	c.ID = m.nextID
	m.categories[c.ID] = &c
	return &c
}

func (m *memCatalogRepo) seedItem(i models.MenuItem) *models.MenuItem {
	m.nextID++
	i.ID = m.nextID
	m.items[i.ID] = &i
	return &i
}

func (m *memCatalogRepo) ListAvailableItems(ctx context.Context, filter ItemFilter) ([]models.MenuItem, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []models.MenuItem
	for _, item := range m.items {
		if !item.IsAvailable {
			continue
		}
		if filter.CategoryID != nil && item.CategoryID != *filter.CategoryID {
			continue
		}
		result = append(result, *item)
	}
	return result, nil
}

func (m *memCatalogRepo) FindAvailableItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	item, ok := m.items[id]
	if !ok || !item.IsAvailable {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (m *memCatalogRepo) ActiveCategories(ctx context.Context) ([]models.Category, error) {
	var result []models.Category
	for _, category := range m.categories {
		if category.IsActive {
			result = append(result, *category)
		}
	}
	return result, nil
}

func (m *memCatalogRepo) AvailableItemCounts(ctx context.Context) (map[uint]int64, error) {
	counts := map[uint]int64{}
	for _, item := range m.items {
		if item.IsAvailable {
			counts[item.CategoryID]++
		}
	}
	return counts, nil
}

func (m *memCatalogRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var result []models.Category
	for _, category := range m.categories {
		result = append(result, *category)
	}
	return result, nil
}

func (m *memCatalogRepo) FindCategory(ctx context.Context, id uint) (*models.Category, error) {
	category, ok := m.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *category
	return &copied, nil
}

func (m *memCatalogRepo) CreateCategory(ctx context.Context, category *models.Category) error {
	m.nextID++
	category.ID = m.nextID
	stored := *category
	m.categories[category.ID] = &stored
	return nil
}

func (m *memCatalogRepo) SaveCategory(ctx context.Context, category *models.Category) error {
	stored := *category
	m.categories[category.ID] = &stored
	return nil
}

func (m *memCatalogRepo) DeleteCategory(ctx context.Context, id uint) error {
	delete(m.categories, id)
	// the FK cascade removes the category's items
	for itemID, item := range m.items {
		if item.CategoryID == id {
			delete(m.items, itemID)
		}
	}
	return nil
}

func (m *memCatalogRepo) ListItems(ctx context.Context) ([]models.MenuItem, error) {
	var result []models.MenuItem
	for _, item := range m.items {
		result = append(result, *item)
	}
	return result, nil
}

func (m *memCatalogRepo) FindItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (m *memCatalogRepo) CreateItem(ctx context.Context, item *models.MenuItem) error {
	m.nextID++
	item.ID = m.nextID
	stored := *item
	m.items[item.ID] = &stored
	return nil
}

func (m *memCatalogRepo) SaveItem(ctx context.Context, item *models.MenuItem) error {
	stored := *item
	m.items[item.ID] = &stored
	return nil
}

func (m *memCatalogRepo) DeleteItem(ctx context.Context, id uint) error {
	delete(m.items, id)
	return nil
}

func newCatalogService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestGetAvailableItemHidesUnavailable(t *testing.T) {
	t.Parallel()

	repo := newMemCatalogRepo()
	category := repo.seedCategory(models.Category{Name: "Mains", IsActive: true})
	visible := repo.seedItem(models.MenuItem{CategoryID: category.ID, Name: "Tagine", Price: decimal.RequireFromString("25.00"), IsAvailable: true})
	hidden := repo.seedItem(models.MenuItem{CategoryID: category.ID, Name: "Pastilla", Price: decimal.RequireFromString("60.00"), IsAvailable: false})
	svc := newCatalogService(t, repo)

	if _, err := svc.GetAvailableItem(context.Background(), visible.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.GetAvailableItem(context.Background(), hidden.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unavailable item, got %v", err)
	}
}

func TestCategoriesCarryAvailableCounts(t *testing.T) {
	t.Parallel()

	repo := newMemCatalogRepo()
	mains := repo.seedCategory(models.Category{Name: "Mains", IsActive: true})
	drinks := repo.seedCategory(models.Category{Name: "Drinks", IsActive: true})
	repo.seedCategory(models.Category{Name: "Retired", IsActive: false})
	repo.seedItem(models.MenuItem{CategoryID: mains.ID, Name: "Tagine", IsAvailable: true})
	repo.seedItem(models.MenuItem{CategoryID: mains.ID, Name: "Couscous", IsAvailable: true})
	repo.seedItem(models.MenuItem{CategoryID: mains.ID, Name: "Pastilla", IsAvailable: false})
	svc := newCatalogService(t, repo)

	categories, err := svc.Categories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 active categories, got %d", len(categories))
	}

	byName := map[string]CategoryDTO{}
	for _, category := range categories {
		byName[category.Name] = category
	}
	if byName["Mains"].AvailableItems != 2 {
		t.Fatalf("expected 2 available items in Mains, got %d", byName["Mains"].AvailableItems)
	}
	if byName["Drinks"].AvailableItems != 0 {
		t.Fatalf("expected 0 available items in Drinks, got %d", byName["Drinks"].AvailableItems)
	}
	_ = drinks
}

func TestListItemsFiltersByCategory(t *testing.T) {
	t.Parallel()

	repo := newMemCatalogRepo()
	mains := repo.seedCategory(models.Category{Name: "Mains", IsActive: true})
	drinks := repo.seedCategory(models.Category{Name: "Drinks", IsActive: true})
	repo.seedItem(models.MenuItem{CategoryID: mains.ID, Name: "Tagine", IsAvailable: true})
	repo.seedItem(models.MenuItem{CategoryID: drinks.ID, Name: "Mint tea", IsAvailable: true})
	svc := newCatalogService(t, repo)

	items, err := svc.ListItems(context.Background(), ItemFilter{CategoryID: &mains.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Tagine" {
		t.Fatalf("expected only Tagine, got %+v", items)
	}
}

func TestCreateCategoryDefaults(t *testing.T) {
	t.Parallel()

	repo := newMemCatalogRepo()
	svc := newCatalogService(t, repo)

	category, err := svc.CreateCategory(context.Background(), CreateCategoryInput{Name: "  Mains  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if category.Name != "Mains" {
		t.Fatalf("expected trimmed name, got %q", category.Name)
	}
	if !category.IsActive {
		t.Fatal("expected new categories to default to active")
	}
	if category.Icon == "" {
		t.Fatal("expected a default icon")
	}
}

func TestCreateCategoryValidation(t *testing.T) {
	t.Parallel()

	svc := newCatalogService(t, newMemCatalogRepo())

	_, err := svc.CreateCategory(context.Background(), CreateCategoryInput{Name: "   "})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateCategoryPartial(t *testing.T) {
	t.Parallel()

	repo := newMemCatalogRepo()
	category := repo.seedCategory(models.Category{Name: "Mains", Icon: "bx-dish", IsActive: true})
	svc := newCatalogService(t, repo)

	inactive := false
	updated, err := svc.UpdateCategory(context.Background(), category.ID, UpdateCategoryInput{IsActive: &inactive})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.IsActive {
		t.Fatal("expected category deactivated")
	}
	if updated.Name != "Mains" || updated.Icon != "bx-dish" {
		t.Fatalf("untouched fields must survive, got %+v", updated)
	}
}

func TestDeleteCategoryCascades(t *testing.T) {
	t.Parallel()

	repo := newMemCatalogRepo()
	category := repo.seedCategory(models.Category{Name: "Mains", IsActive: true})
	repo.seedItem(models.MenuItem{CategoryID: category.ID, Name: "Tagine", IsAvailable: true})
	svc := newCatalogService(t, repo)

	if err := svc.DeleteCategory(context.Background(), category.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatalf("expected cascade to remove items, got %d", len(repo.items))
	}

	err := svc.DeleteCategory(context.Background(), category.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestCreateItemRequiresCategory(t *testing.T) {
	t.Parallel()

	repo := newMemCatalogRepo()
	svc := newCatalogService(t, repo)

	_, err := svc.CreateItem(context.Background(), CreateItemInput{
		CategoryID: 99,
		Name:       "Tagine",
		Price:      decimal.RequireFromString("25.00"),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for missing category, got %v", err)
	}
}

func TestCreateItemValidation(t *testing.T) {
	t.Parallel()

	repo := newMemCatalogRepo()
	category := repo.seedCategory(models.Category{Name: "Mains", IsActive: true})
	svc := newCatalogService(t, repo)

	cases := []struct {
		name  string
		input CreateItemInput
	}{
		{"empty name", CreateItemInput{CategoryID: category.ID, Name: " ", Price: decimal.RequireFromString("1.00")}},
		{"negative price", CreateItemInput{CategoryID: category.ID, Name: "Tagine", Price: decimal.RequireFromString("-1.00")}},
		{"negative display order", CreateItemInput{CategoryID: category.ID, Name: "Tagine", Price: decimal.RequireFromString("1.00"), DisplayOrder: -1}},
	}
	for _, tc := range cases {
		_, err := svc.CreateItem(context.Background(), tc.input)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestUpdateItemTogglesAvailability(t *testing.T) {
	t.Parallel()

	repo := newMemCatalogRepo()
	category := repo.seedCategory(models.Category{Name: "Mains", IsActive: true})
	item := repo.seedItem(models.MenuItem{CategoryID: category.ID, Name: "Tagine", Price: decimal.RequireFromString("25.00"), IsAvailable: true})
	svc := newCatalogService(t, repo)

	unavailable := false
	updated, err := svc.UpdateItem(context.Background(), item.ID, UpdateItemInput{IsAvailable: &unavailable})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.IsAvailable {
		t.Fatal("expected item to be unavailable")
	}

	// Hidden from the storefront immediately.
	_, err = svc.GetAvailableItem(context.Background(), item.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after toggle, got %v", err)
	}
}
