package usecase

import (
	"context"
	"errors"

	"github.com/MayankPandey2611/E-commerce-Application/internal/domain"
	"github.com/sirupsen/logrus"
)

type CheckoutUseCase interface {
	// Checkout turns the session's cart into a paid order: empty-cart and
	// contact validation first, then the transactional write, then the cart
	// is cleared. A failed checkout leaves both the cart and the database
	// untouched.
	Checkout(ctx context.Context, sessionID string, userID int64, contact domain.ContactInfo) (*domain.Order, error)
	// GetOrderForUser returns the order only to its owner; anyone else sees
	// ErrOrderNotFound.
	GetOrderForUser(ctx context.Context, orderID, userID int64) (*domain.Order, error)
}

type checkoutUseCase struct {
	sessions  domain.SessionStore
	orderRepo domain.OrderRepository
	log       *logrus.Logger
}

func NewCheckoutUseCase(sessions domain.SessionStore, oRepo domain.OrderRepository, logger *logrus.Logger) CheckoutUseCase {
	return &checkoutUseCase{
		sessions:  sessions,
		orderRepo: oRepo,
		log:       logger,
	}
}

func (uc *checkoutUseCase) Checkout(ctx context.Context, sessionID string, userID int64, contact domain.ContactInfo) (*domain.Order, error) {
	sess, err := uc.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			uc.log.Warnf("Use Case: Checkout attempted with no session state (session %s)", sessionID)
			return nil, domain.ErrEmptyCart
		}
		uc.log.Errorf("Use Case: Failed to load session %s for checkout: %v", sessionID, err)
		return nil, err
	}
	if sess.Cart.IsEmpty() {
		uc.log.Warnf("Use Case: Checkout attempted with an empty cart (session %s)", sessionID)
		return nil, domain.ErrEmptyCart
	}

	if verr := contact.Validate(); verr != nil {
		uc.log.Warnf("Use Case: Checkout contact validation failed: %v", verr)
		return nil, verr
	}

	order, err := uc.orderRepo.CreateOrder(ctx, &userID, contact, sess.Cart.Lines)
	if err != nil {
		uc.log.Errorf("Use Case: Checkout failed for user %d: %v", userID, err)
		return nil, err
	}

	// The order is committed; an unlucky failure here leaves a full cart
	// next to a completed order, which beats losing the order.
	if _, err := uc.sessions.UpdateSession(ctx, sessionID, func(s *domain.Session) error {
		s.Cart.Clear()
		return nil
	}); err != nil {
		uc.log.Errorf("Use Case: Order %d created but clearing cart for session %s failed: %v", order.ID, sessionID, err)
	}

	uc.log.Infof("Use Case: Checkout complete: order %d for user %d with %d items", order.ID, userID, len(order.Items))
	return order, nil
}

func (uc *checkoutUseCase) GetOrderForUser(ctx context.Context, orderID, userID int64) (*domain.Order, error) {
	order, err := uc.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, domain.ErrOrderNotFound) {
			uc.log.Errorf("Use Case: Failed to get order %d: %v", orderID, err)
		}
		return nil, err
	}
	if order.UserID == nil || *order.UserID != userID {
		uc.log.Warnf("Use Case: User %d requested order %d belonging to someone else", userID, orderID)
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}
