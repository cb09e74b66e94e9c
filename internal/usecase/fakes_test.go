package usecase

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/MayankPandey2611/E-commerce-Application/internal/domain"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Hand-written fakes over the domain interfaces. They mirror the repository
// contracts closely enough for the use cases to behave as they would against
// Postgres: active-only lookups, sentinel errors, snapshot semantics.

type fakeProductRepo struct {
	seq        int64
	products   map[int64]*domain.Product
	lastFilter domain.ProductFilter
	listResult []domain.Product
	listErr    error
	inUse      map[int64]bool
}

func newFakeProductRepo(products ...domain.Product) *fakeProductRepo {
	repo := &fakeProductRepo{
		products: make(map[int64]*domain.Product),
		inUse:    make(map[int64]bool),
	}
	for i := range products {
		p := products[i]
		if p.ID == 0 {
			repo.seq++
			p.ID = repo.seq
		} else if p.ID > repo.seq {
			repo.seq = p.ID
		}
		repo.products[p.ID] = &p
	}
	return repo
}

func (f *fakeProductRepo) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	f.lastFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.listResult != nil {
		return f.listResult, nil
	}
	out := []domain.Product{}
	ids := make([]int64, 0, len(f.products))
	for id := range f.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		p := f.products[id]
		if !filter.IncludeInactive && !p.IsActive {
			continue
		}
		if filter.CategoryID != 0 && p.CategoryID != filter.CategoryID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductRepo) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	for _, p := range f.products {
		if p.Slug == slug && p.IsActive {
			out := *p
			return &out, nil
		}
	}
	return nil, fmt.Errorf("product '%s': %w", slug, domain.ErrProductNotFound)
}

func (f *fakeProductRepo) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok || !p.IsActive {
		return nil, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
	}
	out := *p
	return &out, nil
}

func (f *fakeProductRepo) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	for _, p := range f.products {
		if p.Slug == product.Slug {
			return nil, fmt.Errorf("product '%s': %w", product.Slug, domain.ErrProductExists)
		}
	}
	f.seq++
	product.ID = f.seq
	product.CreatedAt = time.Now()
	stored := *product
	f.products[product.ID] = &stored
	return product, nil
}

func (f *fakeProductRepo) UpdateProduct(ctx context.Context, id int64, update domain.ProductUpdate) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
	}
	if update.CategoryID != nil {
		p.CategoryID = *update.CategoryID
	}
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Slug != nil {
		p.Slug = *update.Slug
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	if update.Price != nil {
		p.Price = *update.Price
	}
	if update.Stock != nil {
		p.Stock = *update.Stock
	}
	if update.ImageURL != nil {
		p.ImageURL = *update.ImageURL
	}
	if update.IsActive != nil {
		p.IsActive = *update.IsActive
	}
	out := *p
	return &out, nil
}

func (f *fakeProductRepo) DeleteProduct(ctx context.Context, id int64) error {
	if _, ok := f.products[id]; !ok {
		return fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
	}
	if f.inUse[id] {
		return fmt.Errorf("product %d: %w", id, domain.ErrProductInUse)
	}
	delete(f.products, id)
	return nil
}

// setPrice mutates the catalog price in place, for snapshot tests.
func (f *fakeProductRepo) setPrice(id int64, price string) {
	f.products[id].Price = mustDecimal(price)
}

func (f *fakeProductRepo) setActive(id int64, active bool) {
	f.products[id].IsActive = active
}

func (f *fakeProductRepo) stock(id int64) int {
	return f.products[id].Stock
}

type fakeCategoryRepo struct {
	seq        int64
	categories map[int64]*domain.Category
}

func newFakeCategoryRepo(categories ...domain.Category) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{categories: make(map[int64]*domain.Category)}
	for i := range categories {
		c := categories[i]
		if c.ID == 0 {
			repo.seq++
			c.ID = repo.seq
		} else if c.ID > repo.seq {
			repo.seq = c.ID
		}
		repo.categories[c.ID] = &c
	}
	return repo
}

func (f *fakeCategoryRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	for _, c := range f.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCategoryRepo) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	for _, c := range f.categories {
		if c.Slug == slug {
			out := *c
			return &out, nil
		}
	}
	return nil, fmt.Errorf("category '%s': %w", slug, domain.ErrCategoryNotFound)
}

func (f *fakeCategoryRepo) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	for _, c := range f.categories {
		if c.Name == category.Name || c.Slug == category.Slug {
			return nil, fmt.Errorf("category '%s': %w", category.Name, domain.ErrCategoryExists)
		}
	}
	f.seq++
	category.ID = f.seq
	stored := *category
	f.categories[category.ID] = &stored
	return category, nil
}

func (f *fakeCategoryRepo) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	existing, ok := f.categories[category.ID]
	if !ok {
		return nil, fmt.Errorf("category %d: %w", category.ID, domain.ErrCategoryNotFound)
	}
	for id, c := range f.categories {
		if id != category.ID && (c.Name == category.Name || c.Slug == category.Slug) {
			return nil, fmt.Errorf("category '%s': %w", category.Name, domain.ErrCategoryExists)
		}
	}
	existing.Name = category.Name
	existing.Slug = category.Slug
	out := *existing
	return &out, nil
}

func (f *fakeCategoryRepo) DeleteCategory(ctx context.Context, id int64) error {
	if _, ok := f.categories[id]; !ok {
		return fmt.Errorf("category %d: %w", id, domain.ErrCategoryNotFound)
	}
	delete(f.categories, id)
	return nil
}

// fakeOrderRepo shares the product fake so checkout side effects (price
// snapshot, stock decrement) surface the same way the transactional
// repository produces them. Resolution happens before any write, mirroring
// the rollback-on-failure contract.
type fakeOrderRepo struct {
	products    *fakeProductRepo
	seq         int64
	orders      map[int64]*domain.Order
	createCalls int
}

func newFakeOrderRepo(products *fakeProductRepo) *fakeOrderRepo {
	return &fakeOrderRepo{
		products: products,
		orders:   make(map[int64]*domain.Order),
	}
}

func (f *fakeOrderRepo) CreateOrder(ctx context.Context, userID *int64, contact domain.ContactInfo, lines []domain.CartLine) (*domain.Order, error) {
	f.createCalls++

	resolved := make([]*domain.Product, 0, len(lines))
	for _, line := range lines {
		p, ok := f.products.products[line.ProductID]
		if !ok || !p.IsActive {
			return nil, fmt.Errorf("product %d: %w", line.ProductID, domain.ErrProductNotFound)
		}
		resolved = append(resolved, p)
	}

	f.seq++
	order := &domain.Order{
		ID:          f.seq,
		UserID:      userID,
		ContactInfo: contact,
		Paid:        true,
		CreatedAt:   time.Now(),
	}
	for i, line := range lines {
		p := resolved[i]
		order.Items = append(order.Items, domain.OrderItem{
			ID:        int64(i + 1),
			OrderID:   order.ID,
			ProductID: p.ID,
			Name:      p.Name,
			Qty:       line.Qty,
			Price:     p.Price,
		})
		p.Stock = domain.DecrementStock(p.Stock, line.Qty)
	}

	stored := *order
	stored.Items = append([]domain.OrderItem(nil), order.Items...)
	f.orders[order.ID] = &stored
	return order, nil
}

func (f *fakeOrderRepo) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", id, domain.ErrOrderNotFound)
	}
	out := *order
	out.Items = append([]domain.OrderItem(nil), order.Items...)
	return &out, nil
}

type fakeUserRepo struct {
	seq   int64
	users map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == user.Username {
			return nil, fmt.Errorf("username '%s': %w", user.Username, domain.ErrUsernameTaken)
		}
		if strings.EqualFold(u.Email, user.Email) {
			return nil, fmt.Errorf("email '%s': %w", user.Email, domain.ErrEmailTaken)
		}
	}
	f.seq++
	user.ID = f.seq
	user.CreatedAt = time.Now()
	stored := *user
	f.users[user.ID] = &stored
	return user, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrUserNotFound)
	}
	out := *u
	return &out, nil
}

func (f *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, fmt.Errorf("username '%s': %w", username, domain.ErrUserNotFound)
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			out := *u
			return &out, nil
		}
	}
	return nil, fmt.Errorf("email '%s': %w", email, domain.ErrUserNotFound)
}
