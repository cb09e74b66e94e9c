package usecase

import (
	"context"
	"errors"

	"github.com/MayankPandey2611/E-commerce-Application/internal/domain"
	"github.com/sirupsen/logrus"
)

type CatalogUseCase interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListProducts(ctx context.Context, search, sort string) ([]domain.Product, error)
	ListProductsByCategory(ctx context.Context, categorySlug, search, sort string) (*domain.Category, []domain.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
}

type catalogUseCase struct {
	categoryRepo domain.CategoryRepository
	productRepo  domain.ProductRepository
	log          *logrus.Logger
}

func NewCatalogUseCase(cRepo domain.CategoryRepository, pRepo domain.ProductRepository, logger *logrus.Logger) CatalogUseCase {
	return &catalogUseCase{
		categoryRepo: cRepo,
		productRepo:  pRepo,
		log:          logger,
	}
}

func (uc *catalogUseCase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := uc.categoryRepo.ListCategories(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list categories: %v", err)
		return nil, err
	}
	return categories, nil
}

func (uc *catalogUseCase) ListProducts(ctx context.Context, search, sort string) ([]domain.Product, error) {
	filter := domain.ProductFilter{
		Search: search,
		Sort:   domain.ParseProductSort(sort),
	}
	products, err := uc.productRepo.ListProducts(ctx, filter)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list products (search: %q): %v", search, err)
		return nil, err
	}
	uc.log.Debugf("Use Case: Retrieved %d products (search: %q, sort: %q)", len(products), search, sort)
	return products, nil
}

func (uc *catalogUseCase) ListProductsByCategory(ctx context.Context, categorySlug, search, sort string) (*domain.Category, []domain.Product, error) {
	category, err := uc.categoryRepo.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			uc.log.Warnf("Use Case: Category '%s' not found for product listing", categorySlug)
		} else {
			uc.log.Errorf("Use Case: Repository failed to resolve category '%s': %v", categorySlug, err)
		}
		return nil, nil, err
	}

	filter := domain.ProductFilter{
		CategoryID: category.ID,
		Search:     search,
		Sort:       domain.ParseProductSort(sort),
	}
	products, err := uc.productRepo.ListProducts(ctx, filter)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list products for category '%s': %v", categorySlug, err)
		return nil, nil, err
	}
	return category, products, nil
}

func (uc *catalogUseCase) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	product, err := uc.productRepo.GetProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			uc.log.Warnf("Use Case: Product '%s' not found", slug)
		} else {
			uc.log.Errorf("Use Case: Repository failed to get product '%s': %v", slug, err)
		}
		return nil, err
	}
	return product, nil
}
