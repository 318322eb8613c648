package checkout

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"grocerystore/internal/auth"
	"grocerystore/internal/catalog"
	"grocerystore/internal/domain/account"
	"grocerystore/internal/domain/cart"
	dcheckout "grocerystore/internal/domain/checkout"
	"grocerystore/internal/domain/order"
	"grocerystore/internal/session"
)

// CartViewPath is where the empty-cart guard bounces a shopper.
const CartViewPath = "/api/cart"

const ConfirmationPath = "/api/order-confirmation"

// OrderPlacer persists a finished checkout.
type OrderPlacer interface {
	Place(ctx context.Context, customerID int64, shipping order.Shipping, payment order.Payment, items []cart.Line, totals cart.Totals) (order.Order, error)
}

// AccountGetter resolves the shopper's account for shipping prefill.
type AccountGetter interface {
	ByID(ctx context.Context, role account.Role, id int64) (account.Account, error)
}

type Handler struct {
	flows             *Flows
	orders            OrderPlacer
	accounts          AccountGetter
	requirePostalCode bool
}

func NewHandler(flows *Flows, orders OrderPlacer, accounts AccountGetter, requirePostalCode bool) *Handler {
	return &Handler{
		flows:             flows,
		orders:            orders,
		accounts:          accounts,
		requirePostalCode: requirePostalCode,
	}
}

// prefill seeds a fresh flow's shipping form from the account record.
func (h *Handler) prefill(c *gin.Context, s *session.Session) func(*dcheckout.Flow) {
	return func(f *dcheckout.Flow) {
		a, err := h.accounts.ByID(c.Request.Context(), s.Role, s.AccountID)
		if err != nil {
			return
		}
		f.PrefillShipping(order.Shipping{
			FullName:    a.Name,
			Address:     a.Address,
			PhoneNumber: a.Contact,
		})
	}
}

type stateResp struct {
	Step     dcheckout.Step `json:"step"`
	Shipping order.Shipping `json:"shipping"`
	Items    []cart.Line    `json:"items"`
	Totals   cart.Totals    `json:"totals"`
}

// State reports the flow's current step with the order summary shown
// alongside both checkout steps.
func (h *Handler) State(c *gin.Context) {
	s := auth.SessionFrom(c)
	_ = h.flows.With(s.ID, h.prefill(c, s), func(f *dcheckout.Flow) error {
		if f.ShouldRedirectToCart(s.CartIsEmpty()) {
			c.Redirect(http.StatusSeeOther, CartViewPath)
			return nil
		}
		lines, totals := s.CartSnapshot()
		c.JSON(http.StatusOK, stateResp{
			Step:     f.Step(),
			Shipping: f.Shipping(),
			Items:    lines,
			Totals:   totals,
		})
		return nil
	})
}

type shippingReq struct {
	FullName    string `json:"full_name"`
	Address     string `json:"address"`
	Area        string `json:"area"`
	PhoneNumber string `json:"phone_number"`
	PostalCode  string `json:"postal_code"`
}

func (h *Handler) SubmitShipping(c *gin.Context) {
	var req shippingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	s := auth.SessionFrom(c)
	_ = h.flows.With(s.ID, h.prefill(c, s), func(f *dcheckout.Flow) error {
		if f.ShouldRedirectToCart(s.CartIsEmpty()) {
			c.Redirect(http.StatusSeeOther, CartViewPath)
			return nil
		}
		err := f.SubmitShipping(order.Shipping{
			FullName:    req.FullName,
			Address:     req.Address,
			Area:        req.Area,
			PhoneNumber: req.PhoneNumber,
			PostalCode:  req.PostalCode,
		}, h.requirePostalCode)
		if err != nil {
			respondFlowError(c, err)
			return nil
		}
		c.JSON(http.StatusOK, gin.H{"step": f.Step()})
		return nil
	})
}

// Back returns from payment to shipping; the entered shipping data is kept.
func (h *Handler) Back(c *gin.Context) {
	s := auth.SessionFrom(c)
	_ = h.flows.With(s.ID, h.prefill(c, s), func(f *dcheckout.Flow) error {
		if err := f.Back(); err != nil {
			respondFlowError(c, err)
			return nil
		}
		c.JSON(http.StatusOK, gin.H{"step": f.Step(), "shipping": f.Shipping()})
		return nil
	})
}

type paymentReq struct {
	Method     string `json:"method" binding:"required"`
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
	CVV        string `json:"cvv"`
}

// SubmitPayment finalizes the flow: validates the payment form, places the
// order atomically, clears the cart and parks the order for confirmation.
func (h *Handler) SubmitPayment(c *gin.Context) {
	var req paymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	s := auth.SessionFrom(c)
	submitted := false
	_ = h.flows.With(s.ID, h.prefill(c, s), func(f *dcheckout.Flow) error {
		if f.ShouldRedirectToCart(s.CartIsEmpty()) {
			c.Redirect(http.StatusSeeOther, CartViewPath)
			return nil
		}

		payment := order.Payment{Method: req.Method}
		if req.Method == order.MethodCard {
			payment.Card = &order.CardDetails{
				Number: req.CardNumber,
				Expiry: req.ExpiryDate,
				CVV:    req.CVV,
			}
		}
		if err := f.SubmitPayment(payment); err != nil {
			respondFlowError(c, err)
			return nil
		}

		items, totals := s.CartSnapshot()
		o, err := h.orders.Place(c.Request.Context(), s.AccountID, f.Shipping(), payment, items, totals)
		if err != nil {
			f.FailSubmit()
			if errors.Is(err, catalog.ErrInsufficientStock) {
				c.JSON(http.StatusConflict, gin.H{"error": "insufficient stock"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place order"})
			}
			return nil
		}

		s.ClearCart()
		s.SetLastOrder(&o)
		f.Complete()
		submitted = true

		c.JSON(http.StatusCreated, gin.H{
			"order_id": o.ID,
			"redirect": ConfirmationPath,
		})
		return nil
	})
	if submitted {
		h.flows.Discard(s.ID)
	}
}

func respondFlowError(c *gin.Context, err error) {
	var fe *dcheckout.FieldError
	if errors.As(err, &fe) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fe.Error(), "field": fe.Field})
		return
	}
	if errors.Is(err, dcheckout.ErrWrongStep) {
		c.JSON(http.StatusConflict, gin.H{"error": "operation not valid in current step"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout failed"})
}
