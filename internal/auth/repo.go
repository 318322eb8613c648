package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"grocerystore/internal/domain/account"
)

// Repo reads and writes the three account tables. Each role lives in its own
// table (customer, admin, deliverypersonnel) with a role-specific column set,
// so lookups are always keyed by role + email or role + id.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) ByEmail(ctx context.Context, role account.Role, email string) (account.Account, error) {
	return r.one(ctx, role, `email=$1`, email)
}

func (r *Repo) ByID(ctx context.Context, role account.Role, id int64) (account.Account, error) {
	return r.one(ctx, role, `id=$1`, id)
}

func (r *Repo) one(ctx context.Context, role account.Role, where string, arg any) (account.Account, error) {
	a := account.Account{Role: role}
	switch role {
	case account.RoleCustomer:
		err := r.db.QueryRow(ctx, `
			SELECT id, name, email, password_hash,
			       COALESCE(contact,''), COALESCE(alternate_contact,''), COALESCE(address,''),
			       created_at, updated_at
			FROM customer WHERE `+where, arg).Scan(
			&a.ID, &a.Name, &a.Email, &a.PasswordHash,
			&a.Contact, &a.AltContact, &a.Address,
			&a.CreatedAt, &a.UpdatedAt,
		)
		return a, err
	case account.RoleAdmin:
		err := r.db.QueryRow(ctx, `
			SELECT id, name, email, password_hash, COALESCE(contact,''),
			       created_at, updated_at
			FROM admin WHERE `+where, arg).Scan(
			&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Contact,
			&a.CreatedAt, &a.UpdatedAt,
		)
		return a, err
	default:
		err := r.db.QueryRow(ctx, `
			SELECT id, name, email, password_hash,
			       COALESCE(contact,''), COALESCE(cnic,''), COALESCE(number_plate,''),
			       created_at, updated_at
			FROM deliverypersonnel WHERE `+where, arg).Scan(
			&a.ID, &a.Name, &a.Email, &a.PasswordHash,
			&a.Contact, &a.CNIC, &a.NumberPlate,
			&a.CreatedAt, &a.UpdatedAt,
		)
		return a, err
	}
}

// CreateCustomer registers a new customer account. Admin and rider accounts
// are provisioned out of band, not through the storefront.
func (r *Repo) CreateCustomer(ctx context.Context, name, email, passwordHash, address string) (account.Account, error) {
	a := account.Account{Role: account.RoleCustomer}
	err := r.db.QueryRow(ctx, `
		INSERT INTO customer (name, email, password_hash, address)
		VALUES ($1,$2,$3,$4)
		RETURNING id, name, email, password_hash, COALESCE(address,''), created_at, updated_at
	`, name, email, passwordHash, address).Scan(
		&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Address, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}
