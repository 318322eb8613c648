package orders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"grocerystore/internal/domain/cart"
	"grocerystore/internal/domain/order"
)

// StockDecrementer is the slice of the catalog order placement needs.
type StockDecrementer interface {
	DecrementStock(ctx context.Context, tx pgx.Tx, productID int64, qty int) error
}

type Repo struct {
	db    *pgxpool.Pool
	stock StockDecrementer
}

func NewRepo(db *pgxpool.Pool, stock StockDecrementer) *Repo {
	return &Repo{db: db, stock: stock}
}

// Place persists an order atomically: every line's stock decrement, the
// order row and its items commit together or not at all. On any failure the
// transaction rolls back and no stock is taken.
func (r *Repo) Place(ctx context.Context, customerID int64, shipping order.Shipping, payment order.Payment, items []cart.Line, totals cart.Totals) (order.Order, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return order.Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, it := range items {
		if err := r.stock.DecrementStock(ctx, tx, it.ProductID, it.Quantity); err != nil {
			return order.Order{}, fmt.Errorf("product %d: %w", it.ProductID, err)
		}
	}

	o := order.Order{
		CustomerID: customerID,
		Shipping:   shipping,
		Payment:    order.Payment{Method: payment.Method},
		Items:      items,
		Subtotal:   totals.Subtotal,
		Tax:        totals.Tax,
		Total:      totals.Total,
		Status:     order.StatusPending,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (customer_id, full_name, address, area, postal_code, phone_number,
		                    payment_method, subtotal, tax, total, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id, placed_at
	`, customerID, shipping.FullName, shipping.Address, shipping.Area, shipping.PostalCode,
		shipping.PhoneNumber, payment.Method, totals.Subtotal, totals.Tax, totals.Total,
		order.StatusPending).Scan(&o.ID, &o.PlacedAt)
	if err != nil {
		return order.Order{}, err
	}

	for _, it := range items {
		_, err := tx.Exec(ctx, `
			INSERT INTO order_item (order_id, product_id, name, price, quantity)
			VALUES ($1,$2,$3,$4,$5)
		`, o.ID, it.ProductID, it.Name, it.Price, it.Quantity)
		if err != nil {
			return order.Order{}, fmt.Errorf("order item insert failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return order.Order{}, err
	}
	return o, nil
}
