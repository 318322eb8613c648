package catalog

import "time"

type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	Description   string    `json:"description,omitempty"`
	Image         string    `json:"image,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Categories is the storefront's fixed category vocabulary. "All" is a
// filter value on the browse side, not a category a product can carry.
func Categories() []string {
	return []string{"Fruits", "Vegetables", "Dairy", "Bakery", "Beverages", "Snacks"}
}

func ValidCategory(c string) bool {
	for _, v := range Categories() {
		if v == c {
			return true
		}
	}
	return false
}
