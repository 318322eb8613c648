package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"grocerystore/internal/domain/catalog"
)

var ErrInsufficientStock = errors.New("insufficient stock")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const productCols = `id, name, category, price, stock_quantity, COALESCE(description,''), COALESCE(image,''), created_at, updated_at`

func scanProduct(row pgx.Row) (catalog.Product, error) {
	var p catalog.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Category, &p.Price, &p.StockQuantity,
		&p.Description, &p.Image, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// List returns products matching an exact category (empty or "All" means
// every category) and a case-insensitive name search.
func (r *Repo) List(ctx context.Context, category, search string) ([]catalog.Product, error) {
	q := `SELECT ` + productCols + ` FROM product WHERE true`
	args := []any{}
	if category != "" && category != "All" {
		args = append(args, category)
		q += ` AND TRIM(category) = $1`
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		if len(args) == 1 {
			q += ` AND name ILIKE $1`
		} else {
			q += ` AND name ILIKE $2`
		}
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) ByID(ctx context.Context, id int64) (catalog.Product, error) {
	return scanProduct(r.db.QueryRow(ctx, `SELECT `+productCols+` FROM product WHERE id=$1`, id))
}

type ProductInput struct {
	Name          string
	Category      string
	Price         float64
	StockQuantity int
	Description   string
	Image         string
}

func (r *Repo) Create(ctx context.Context, in ProductInput) (catalog.Product, error) {
	return scanProduct(r.db.QueryRow(ctx, `
		INSERT INTO product (name, category, price, stock_quantity, description, image)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING `+productCols,
		in.Name, in.Category, in.Price, in.StockQuantity, in.Description, in.Image))
}

func (r *Repo) Update(ctx context.Context, id int64, in ProductInput) (catalog.Product, error) {
	return scanProduct(r.db.QueryRow(ctx, `
		UPDATE product
		SET name=$2, category=$3, price=$4, stock_quantity=$5, description=$6, image=$7, updated_at=now()
		WHERE id=$1
		RETURNING `+productCols,
		id, in.Name, in.Category, in.Price, in.StockQuantity, in.Description, in.Image))
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM product WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Reorder tops up a product's stock by the standard reorder lot of 10.
func (r *Repo) Reorder(ctx context.Context, id int64) (catalog.Product, error) {
	return scanProduct(r.db.QueryRow(ctx, `
		UPDATE product
		SET stock_quantity = stock_quantity + 10, updated_at=now()
		WHERE id=$1
		RETURNING `+productCols, id))
}

// DecrementStock takes qty units off a product inside the caller's
// transaction. The decrement is conditional on available stock so a
// concurrent order cannot take the count negative.
func (r *Repo) DecrementStock(ctx context.Context, tx pgx.Tx, productID int64, qty int) error {
	ct, err := tx.Exec(ctx, `
		UPDATE product
		SET stock_quantity = stock_quantity - $2, updated_at=now()
		WHERE id=$1 AND stock_quantity >= $2
	`, productID, qty)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrInsufficientStock
	}
	return nil
}
