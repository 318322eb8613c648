package orders

import (
	"fmt"
	"time"

	"grocerystore/internal/domain/order"
)

type ReceiptLine struct {
	Label     string  `json:"label"`
	LineTotal float64 `json:"line_total"`
}

// Receipt is the human-readable projection of an order for the
// confirmation view. Pure data, no persistence behind it.
type Receipt struct {
	OrderNumber   int64          `json:"order_number"`
	PlacedAt      time.Time      `json:"placed_at"`
	Shipping      order.Shipping `json:"shipping"`
	PaymentMethod string         `json:"payment_method"`
	Lines         []ReceiptLine  `json:"lines"`
	Subtotal      float64        `json:"subtotal"`
	Tax           float64        `json:"tax"`
	Total         float64        `json:"total"`
}

func PaymentMethodLabel(method string) string {
	if method == order.MethodCash {
		return "Cash on Delivery"
	}
	return "Credit/Debit Card"
}

func BuildReceipt(o order.Order) Receipt {
	r := Receipt{
		OrderNumber:   o.ID,
		PlacedAt:      o.PlacedAt,
		Shipping:      o.Shipping,
		PaymentMethod: PaymentMethodLabel(o.Payment.Method),
		Subtotal:      o.Subtotal,
		Tax:           o.Tax,
		Total:         o.Total,
	}
	for _, it := range o.Items {
		r.Lines = append(r.Lines, ReceiptLine{
			Label:     fmt.Sprintf("%s x %d", it.Name, it.Quantity),
			LineTotal: it.Total(),
		})
	}
	return r
}
