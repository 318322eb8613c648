package account

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleRider    Role = "rider"
)

func ValidRole(r string) bool {
	switch Role(r) {
	case RoleCustomer, RoleAdmin, RoleRider:
		return true
	}
	return false
}

// Account is the canonical record across the customer, admin and
// deliverypersonnel tables. Fields that exist only for some roles are
// optional; which ones a given account carries follows its role.
type Account struct {
	ID           int64     `json:"id"`
	Role         Role      `json:"role"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Contact      string    `json:"contact,omitempty"`
	AltContact   string    `json:"alternate_contact,omitempty"` // customers only
	Address      string    `json:"address,omitempty"`
	CNIC         string    `json:"cnic,omitempty"`         // riders only
	NumberPlate  string    `json:"number_plate,omitempty"` // riders only
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
