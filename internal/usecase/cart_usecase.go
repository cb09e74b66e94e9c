package usecase

import (
	"context"
	"errors"

	"github.com/MayankPandey2611/E-commerce-Application/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// CartViewLine is one resolved cart entry: the product at its current
// catalog state plus the carted quantity.
type CartViewLine struct {
	Product  domain.Product  `json:"product"`
	Qty      int             `json:"qty"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CartView is the cart as the storefront shows it. Lines that no longer
// resolve to an active product are dropped from the view (they stay in the
// stored cart and checkout still reports them).
type CartView struct {
	Lines       []CartViewLine  `json:"lines"`
	TotalQty    int             `json:"total_qty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type CartUseCase interface {
	ViewCart(ctx context.Context, sessionID string) (*CartView, error)
	// AddToCart increments the quantity for an active product by one.
	AddToCart(ctx context.Context, sessionID string, productID int64) (*CartView, error)
	// UpdateQuantity sets a quantity exactly; qty <= 0 removes the line.
	UpdateQuantity(ctx context.Context, sessionID string, productID int64, qty int) (*CartView, error)
	RemoveFromCart(ctx context.Context, sessionID string, productID int64) (*CartView, error)
}

type cartUseCase struct {
	sessions    domain.SessionStore
	productRepo domain.ProductRepository
	log         *logrus.Logger
}

func NewCartUseCase(sessions domain.SessionStore, pRepo domain.ProductRepository, logger *logrus.Logger) CartUseCase {
	return &cartUseCase{
		sessions:    sessions,
		productRepo: pRepo,
		log:         logger,
	}
}

func (uc *cartUseCase) ViewCart(ctx context.Context, sessionID string) (*CartView, error) {
	sess, err := uc.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return uc.buildView(ctx, &domain.Cart{})
		}
		uc.log.Errorf("Use Case: Failed to load session %s for cart view: %v", sessionID, err)
		return nil, err
	}
	return uc.buildView(ctx, &sess.Cart)
}

func (uc *cartUseCase) AddToCart(ctx context.Context, sessionID string, productID int64) (*CartView, error) {
	// Resolve first so only active products ever enter the cart.
	product, err := uc.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			uc.log.Warnf("Use Case: Attempted to add missing or inactive product ID %d to cart", productID)
		} else {
			uc.log.Errorf("Use Case: Failed to resolve product ID %d for cart add: %v", productID, err)
		}
		return nil, err
	}

	sess, err := uc.sessions.UpdateSession(ctx, sessionID, func(s *domain.Session) error {
		s.Cart.Add(productID)
		return nil
	})
	if err != nil {
		uc.log.Errorf("Use Case: Failed to update session %s for cart add: %v", sessionID, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Added product '%s' (ID %d) to cart for session %s", product.Name, productID, sessionID)
	return uc.buildView(ctx, &sess.Cart)
}

func (uc *cartUseCase) UpdateQuantity(ctx context.Context, sessionID string, productID int64, qty int) (*CartView, error) {
	sess, err := uc.sessions.UpdateSession(ctx, sessionID, func(s *domain.Session) error {
		s.Cart.SetQuantity(productID, qty)
		return nil
	})
	if err != nil {
		uc.log.Errorf("Use Case: Failed to update session %s for cart quantity change: %v", sessionID, err)
		return nil, err
	}
	return uc.buildView(ctx, &sess.Cart)
}

func (uc *cartUseCase) RemoveFromCart(ctx context.Context, sessionID string, productID int64) (*CartView, error) {
	sess, err := uc.sessions.UpdateSession(ctx, sessionID, func(s *domain.Session) error {
		s.Cart.Remove(productID)
		return nil
	})
	if err != nil {
		uc.log.Errorf("Use Case: Failed to update session %s for cart removal: %v", sessionID, err)
		return nil, err
	}
	return uc.buildView(ctx, &sess.Cart)
}

// buildView resolves every stored line against the catalog at read time. A
// line whose product has vanished or gone inactive since it was added is
// dropped from the view with a warning rather than breaking the whole cart.
func (uc *cartUseCase) buildView(ctx context.Context, cart *domain.Cart) (*CartView, error) {
	view := &CartView{
		Lines:       []CartViewLine{},
		TotalAmount: decimal.Zero,
	}

	for _, line := range cart.Lines {
		product, err := uc.productRepo.GetProductByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				uc.log.Warnf("Use Case: Dropping stale cart line for product ID %d from view", line.ProductID)
				continue
			}
			uc.log.Errorf("Use Case: Failed to resolve cart line product ID %d: %v", line.ProductID, err)
			return nil, err
		}

		subtotal := product.Price.Mul(decimal.NewFromInt(int64(line.Qty)))
		view.Lines = append(view.Lines, CartViewLine{
			Product:  *product,
			Qty:      line.Qty,
			Subtotal: subtotal,
		})
		view.TotalQty += line.Qty
		view.TotalAmount = view.TotalAmount.Add(subtotal)
	}
	return view, nil
}
