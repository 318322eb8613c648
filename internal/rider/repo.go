package rider

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"grocerystore/internal/domain/order"
)

var (
	ErrNotAssignable = errors.New("order not assignable to this rider")
	ErrBadTransition = errors.New("invalid status transition")
	ErrOrderNotFound = errors.New("order not found")
)

// Assignment is a delivery job as the rider sees it: where to go, what to
// hand over, and how far along it is.
type Assignment struct {
	OrderID  int64        `json:"order_id"`
	Customer string       `json:"customer"`
	Address  string       `json:"address"`
	Area     string       `json:"area"`
	Items    []string     `json:"items"`
	Total    float64      `json:"total"`
	Status   order.Status `json:"status"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// ListForRider returns the rider's own orders plus the unclaimed pending
// pool, newest first.
func (r *Repo) ListForRider(ctx context.Context, riderID int64) ([]Assignment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT o.id, o.full_name, o.address, o.area, o.total, o.status,
		       array_remove(array_agg(oi.name ORDER BY oi.id), NULL)
		FROM orders o
		LEFT JOIN order_item oi ON oi.order_id = o.id
		WHERE o.rider_id = $1 OR (o.rider_id IS NULL AND o.status = 'pending')
		GROUP BY o.id
		ORDER BY o.placed_at DESC
	`, riderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Assignment
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.OrderID, &a.Customer, &a.Address, &a.Area, &a.Total, &a.Status, &a.Items); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateStatus moves an order one step along the delivery workflow. A
// pending order is claimed by the rider on its first move; after that only
// the claiming rider can advance it. The WHERE clause re-checks the current
// status so a concurrent update loses cleanly.
func (r *Repo) UpdateStatus(ctx context.Context, riderID, orderID int64, to order.Status) error {
	var cur order.Status
	var assigned *int64
	err := r.db.QueryRow(ctx, `SELECT status, rider_id FROM orders WHERE id=$1`, orderID).
		Scan(&cur, &assigned)
	if err != nil {
		return ErrOrderNotFound
	}
	if assigned != nil && *assigned != riderID {
		return ErrNotAssignable
	}
	if !cur.CanTransition(to) {
		return ErrBadTransition
	}

	ct, err := r.db.Exec(ctx, `
		UPDATE orders SET status=$1, rider_id=$2
		WHERE id=$3 AND status=$4 AND (rider_id IS NULL OR rider_id=$2)
	`, to, riderID, orderID, cur)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrBadTransition
	}
	return nil
}
