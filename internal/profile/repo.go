package profile

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"grocerystore/internal/domain/account"
)

var ErrUnknownField = errors.New("unknown profile field")

// editable maps each role to the fields its profile view lets it change,
// and each field to the column it lives in. One save touches one column.
var editable = map[account.Role]map[string]string{
	account.RoleCustomer: {
		"name":              "name",
		"email":             "email",
		"contact":           "contact",
		"alternate_contact": "alternate_contact",
		"address":           "address",
	},
	account.RoleAdmin: {
		"name":    "name",
		"email":   "email",
		"contact": "contact",
	},
	account.RoleRider: {
		"name":         "name",
		"email":        "email",
		"contact":      "contact",
		"cnic":         "cnic",
		"number_plate": "number_plate",
	},
}

func tableFor(role account.Role) string {
	switch role {
	case account.RoleAdmin:
		return "admin"
	case account.RoleRider:
		return "deliverypersonnel"
	default:
		return "customer"
	}
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// UpdateField persists exactly one field of the account record. The column
// name comes from the whitelist above, never from the request.
func (r *Repo) UpdateField(ctx context.Context, role account.Role, id int64, field, value string) error {
	col, ok := editable[role][field]
	if !ok {
		return ErrUnknownField
	}
	ct, err := r.db.Exec(ctx,
		`UPDATE `+tableFor(role)+` SET `+col+`=$1, updated_at=now() WHERE id=$2`,
		value, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errors.New("account not found")
	}
	return nil
}
