package usecase

import (
	"context"
	"regexp"
	"strings"

	"github.com/MayankPandey2611/E-commerce-Application/internal/domain"
	"github.com/sirupsen/logrus"
)

// slugPattern mirrors the storefront's slug rule: letters, digits, hyphens
// and underscores only.
var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// AdminUseCase is the catalog-management surface behind the admin guard.
// Storefront reads never come through here.
type AdminUseCase interface {
	ListAllProducts(ctx context.Context, search, sort string) ([]domain.Product, error)
	CreateCategory(ctx context.Context, name, slug string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id int64, name, slug string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, update domain.ProductUpdate) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type adminUseCase struct {
	categoryRepo domain.CategoryRepository
	productRepo  domain.ProductRepository
	log          *logrus.Logger
}

func NewAdminUseCase(cRepo domain.CategoryRepository, pRepo domain.ProductRepository, logger *logrus.Logger) AdminUseCase {
	return &adminUseCase{
		categoryRepo: cRepo,
		productRepo:  pRepo,
		log:          logger,
	}
}

// ListAllProducts includes inactive rows so deactivated products stay
// manageable.
func (uc *adminUseCase) ListAllProducts(ctx context.Context, search, sort string) ([]domain.Product, error) {
	filter := domain.ProductFilter{
		Search:          search,
		Sort:            domain.ParseProductSort(sort),
		IncludeInactive: true,
	}
	products, err := uc.productRepo.ListProducts(ctx, filter)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list products for management: %v", err)
		return nil, err
	}
	return products, nil
}

func validateCategoryInput(name, slug string) *domain.ValidationError {
	var fields []string
	if strings.TrimSpace(name) == "" {
		fields = append(fields, "name")
	}
	if !slugPattern.MatchString(slug) {
		fields = append(fields, "slug")
	}
	if len(fields) > 0 {
		return domain.NewValidationError("invalid category data", fields...)
	}
	return nil
}

func (uc *adminUseCase) CreateCategory(ctx context.Context, name, slug string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if verr := validateCategoryInput(name, slug); verr != nil {
		uc.log.Warnf("Use Case: Invalid category input: %v", verr)
		return nil, verr
	}

	category, err := uc.categoryRepo.CreateCategory(ctx, &domain.Category{Name: name, Slug: slug})
	if err != nil {
		uc.log.Warnf("Use Case: Failed to create category '%s': %v", name, err)
		return nil, err
	}
	uc.log.Infof("Use Case: Category '%s' created with ID %d", category.Name, category.ID)
	return category, nil
}

func (uc *adminUseCase) UpdateCategory(ctx context.Context, id int64, name, slug string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if verr := validateCategoryInput(name, slug); verr != nil {
		uc.log.Warnf("Use Case: Invalid category input for update ID %d: %v", id, verr)
		return nil, verr
	}

	category, err := uc.categoryRepo.UpdateCategory(ctx, &domain.Category{ID: id, Name: name, Slug: slug})
	if err != nil {
		uc.log.Warnf("Use Case: Failed to update category ID %d: %v", id, err)
		return nil, err
	}
	return category, nil
}

func (uc *adminUseCase) DeleteCategory(ctx context.Context, id int64) error {
	if err := uc.categoryRepo.DeleteCategory(ctx, id); err != nil {
		uc.log.Warnf("Use Case: Failed to delete category ID %d: %v", id, err)
		return err
	}
	uc.log.Infof("Use Case: Category ID %d deleted", id)
	return nil
}

func (uc *adminUseCase) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	product.Name = strings.TrimSpace(product.Name)

	var fields []string
	if product.CategoryID <= 0 {
		fields = append(fields, "category_id")
	}
	if product.Name == "" {
		fields = append(fields, "name")
	}
	if !slugPattern.MatchString(product.Slug) {
		fields = append(fields, "slug")
	}
	if product.Price.IsNegative() {
		fields = append(fields, "price")
	}
	if product.Stock < 0 {
		fields = append(fields, "stock")
	}
	if len(fields) > 0 {
		verr := domain.NewValidationError("invalid product data", fields...)
		uc.log.Warnf("Use Case: Invalid product input: %v", verr)
		return nil, verr
	}

	created, err := uc.productRepo.CreateProduct(ctx, product)
	if err != nil {
		uc.log.Warnf("Use Case: Failed to create product '%s': %v", product.Name, err)
		return nil, err
	}
	uc.log.Infof("Use Case: Product '%s' created with ID %d", created.Name, created.ID)
	return created, nil
}

func (uc *adminUseCase) UpdateProduct(ctx context.Context, id int64, update domain.ProductUpdate) (*domain.Product, error) {
	var fields []string
	if update.CategoryID != nil && *update.CategoryID <= 0 {
		fields = append(fields, "category_id")
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		fields = append(fields, "name")
	}
	if update.Slug != nil && !slugPattern.MatchString(*update.Slug) {
		fields = append(fields, "slug")
	}
	if update.Price != nil && update.Price.IsNegative() {
		fields = append(fields, "price")
	}
	if update.Stock != nil && *update.Stock < 0 {
		fields = append(fields, "stock")
	}
	if len(fields) > 0 {
		verr := domain.NewValidationError("invalid product data", fields...)
		uc.log.Warnf("Use Case: Invalid product update for ID %d: %v", id, verr)
		return nil, verr
	}

	updated, err := uc.productRepo.UpdateProduct(ctx, id, update)
	if err != nil {
		uc.log.Warnf("Use Case: Failed to update product ID %d: %v", id, err)
		return nil, err
	}
	return updated, nil
}

func (uc *adminUseCase) DeleteProduct(ctx context.Context, id int64) error {
	if err := uc.productRepo.DeleteProduct(ctx, id); err != nil {
		uc.log.Warnf("Use Case: Failed to delete product ID %d: %v", id, err)
		return err
	}
	uc.log.Infof("Use Case: Product ID %d deleted", id)
	return nil
}
