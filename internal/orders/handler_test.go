package orders

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"grocerystore/internal/auth"
	"grocerystore/internal/domain/account"
	"grocerystore/internal/domain/cart"
	"grocerystore/internal/domain/order"
	"grocerystore/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func confirmationServer(t *testing.T) (*gin.Engine, *session.Session) {
	t.Helper()
	s := session.NewRegistry(time.Hour).Create(7, account.RoleCustomer)
	h := NewHandler()

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(auth.CtxSessionKey, s)
	})
	r.GET("/api/order-confirmation", h.Confirmation)
	return r, s
}

func TestConfirmationRendersParkedOrder(t *testing.T) {
	r, s := confirmationServer(t)
	s.SetLastOrder(&order.Order{
		ID:       42,
		Shipping: order.Shipping{FullName: "A", Address: "B", Area: "C", PhoneNumber: "0300"},
		Payment:  order.Payment{Method: order.MethodCash},
		Items:    []cart.Line{{ProductID: 1, Name: "Mango", Price: 250, Quantity: 2}},
		Subtotal: 500,
		Tax:      50,
		Total:    550,
		PlacedAt: time.Now(),
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/order-confirmation", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got Receipt
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, int64(42), got.OrderNumber)
	require.Equal(t, "Cash on Delivery", got.PaymentMethod)
	require.Equal(t, []ReceiptLine{{Label: "Mango x 2", LineTotal: 500}}, got.Lines)
	require.Equal(t, 550.0, got.Total)
}

func TestConfirmationWithoutOrderRedirectsHome(t *testing.T) {
	r, _ := confirmationServer(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/order-confirmation", nil))
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, CatalogHomePath, w.Header().Get("Location"))
}

func TestConfirmationIsOneShot(t *testing.T) {
	r, s := confirmationServer(t)
	s.SetLastOrder(&order.Order{ID: 42, Payment: order.Payment{Method: order.MethodCard}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/order-confirmation", nil))
	require.Equal(t, http.StatusOK, w.Code)

	// a reload finds nothing and bounces home
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/order-confirmation", nil))
	require.Equal(t, http.StatusSeeOther, w.Code)
}
