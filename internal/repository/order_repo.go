package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MayankPandey2611/E-commerce-Application/internal/domain"
	"github.com/sirupsen/logrus"
)

type postgresOrderRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresOrderRepository(db *sql.DB, logger *logrus.Logger) domain.OrderRepository {
	return &postgresOrderRepository{
		db:  db,
		log: logger,
	}
}

// CreateOrder writes the whole checkout in one transaction. Each cart line
// locks its product row with FOR UPDATE before the price snapshot and stock
// decrement, so two checkouts hitting the same product serialize and the
// clamp-at-zero always applies to the latest committed stock. Any failure
// rolls every write back. The returns are named so the deferred commit can
// surface its own failure.
func (r *postgresOrderRepository) CreateOrder(ctx context.Context, userID *int64, contact domain.ContactInfo, lines []domain.CartLine) (order *domain.Order, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.log.Errorf("Failed to begin checkout transaction: %v", err)
		return nil, fmt.Errorf("could not start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			r.log.Error("Recovered from panic during checkout, rolling back")
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			r.log.Warnf("Rolling back checkout transaction: %v", err)
			if rbErr := tx.Rollback(); rbErr != nil {
				r.log.Errorf("Failed to rollback checkout transaction: %v", rbErr)
			}
		} else {
			if cErr := tx.Commit(); cErr != nil {
				r.log.Errorf("Failed to commit checkout transaction: %v", cErr)
				err = fmt.Errorf("failed to commit checkout: %w", cErr)
			}
		}
	}()

	order = &domain.Order{
		UserID:      userID,
		ContactInfo: contact,
		Paid:        true,
	}

	orderQuery := `
        INSERT INTO orders (user_id, full_name, email, phone, address, city, state, pincode, paid)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at`
	var dbUserID sql.NullInt64
	if userID != nil {
		dbUserID = sql.NullInt64{Int64: *userID, Valid: true}
	}
	err = tx.QueryRowContext(ctx, orderQuery,
		dbUserID,
		contact.FullName,
		contact.Email,
		contact.Phone,
		contact.Address,
		contact.City,
		contact.State,
		contact.Pincode,
		order.Paid,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		r.log.Errorf("Failed to insert order: %v", err)
		return nil, fmt.Errorf("could not create order entry: %w", err)
	}

	lockQuery := `
        SELECT name, price, stock
        FROM products
        WHERE id = $1 AND is_active = TRUE
        FOR UPDATE`
	itemQuery := `
        INSERT INTO order_items (order_id, product_id, qty, price)
        VALUES ($1, $2, $3, $4)
        RETURNING id`
	stockQuery := `UPDATE products SET stock = $1 WHERE id = $2`

	for _, line := range lines {
		item := domain.OrderItem{
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Qty:       line.Qty,
		}
		var stock int

		err = tx.QueryRowContext(ctx, lockQuery, line.ProductID).Scan(&item.Name, &item.Price, &stock)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				r.log.Warnf("Checkout references missing or inactive product ID %d", line.ProductID)
				err = fmt.Errorf("product %d: %w", line.ProductID, domain.ErrProductNotFound)
				return nil, err
			}
			r.log.Errorf("Failed to lock product ID %d during checkout: %v", line.ProductID, err)
			err = fmt.Errorf("could not lock product %d: %w", line.ProductID, err)
			return nil, err
		}

		err = tx.QueryRowContext(ctx, itemQuery, order.ID, line.ProductID, line.Qty, item.Price).Scan(&item.ID)
		if err != nil {
			r.log.Errorf("Failed to insert order item (product %d, qty %d) for order %d: %v", line.ProductID, line.Qty, order.ID, err)
			err = fmt.Errorf("could not create order item (product %d): %w", line.ProductID, err)
			return nil, err
		}

		if _, err = tx.ExecContext(ctx, stockQuery, domain.DecrementStock(stock, line.Qty), line.ProductID); err != nil {
			r.log.Errorf("Failed to decrement stock for product ID %d: %v", line.ProductID, err)
			err = fmt.Errorf("could not update stock for product %d: %w", line.ProductID, err)
			return nil, err
		}

		order.Items = append(order.Items, item)
	}

	r.log.Infof("Order %d created with %d items", order.ID, len(order.Items))
	return order, nil
}

func (r *postgresOrderRepository) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	order := &domain.Order{}
	var dbUserID sql.NullInt64

	orderQuery := `
        SELECT id, user_id, full_name, email, phone, address, city, state, pincode, paid, created_at
        FROM orders
        WHERE id = $1`
	err := r.db.QueryRowContext(ctx, orderQuery, id).Scan(
		&order.ID,
		&dbUserID,
		&order.FullName,
		&order.Email,
		&order.Phone,
		&order.Address,
		&order.City,
		&order.State,
		&order.Pincode,
		&order.Paid,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Order with ID %d not found", id)
			return nil, fmt.Errorf("order %d: %w", id, domain.ErrOrderNotFound)
		}
		r.log.Errorf("Failed to get order by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not retrieve order: %w", err)
	}
	if dbUserID.Valid {
		order.UserID = &dbUserID.Int64
	}

	items, err := r.getOrderItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

func (r *postgresOrderRepository) getOrderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	// order_items carries no product name; the RESTRICT foreign key
	// guarantees the joined product row still exists.
	itemsQuery := `
        SELECT oi.id, oi.order_id, oi.product_id, p.name, oi.qty, oi.price
        FROM order_items oi
        JOIN products p ON p.id = oi.product_id
        WHERE oi.order_id = $1
        ORDER BY oi.id ASC`
	rows, err := r.db.QueryContext(ctx, itemsQuery, orderID)
	if err != nil {
		r.log.Errorf("Failed to query order items for order ID %d: %v", orderID, err)
		return nil, fmt.Errorf("could not retrieve order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Qty, &item.Price); err != nil {
			r.log.Errorf("Failed to scan order item row for order ID %d: %v", orderID, err)
			return nil, fmt.Errorf("error scanning order item: %w", err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during order items iteration for order ID %d: %v", orderID, err)
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}
	return items, nil
}
