package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"grocerystore/internal/auth"
	"grocerystore/internal/domain/account"
	"grocerystore/internal/domain/catalog"
	"grocerystore/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubCatalog struct {
	products map[int64]catalog.Product
}

func (s *stubCatalog) ByID(_ context.Context, id int64) (catalog.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return catalog.Product{}, pgx.ErrNoRows
	}
	return p, nil
}

func setup(t *testing.T) (*gin.Engine, *session.Session) {
	t.Helper()
	s := session.NewRegistry(time.Hour).Create(7, account.RoleCustomer)

	h := NewHandler(&stubCatalog{products: map[int64]catalog.Product{
		1: {ID: 1, Name: "Mango", Price: 250, StockQuantity: 10},
		2: {ID: 2, Name: "Milk", Price: 120, StockQuantity: 5},
	}})

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(auth.CtxSessionKey, s)
		c.Set(auth.CtxAccountIDKey, s.AccountID)
		c.Set(auth.CtxRoleKey, s.Role)
	})
	r.GET("/api/cart", h.GetMyCart)
	r.POST("/api/cart/items", h.AddItem)
	r.PATCH("/api/cart/items", h.UpdateQty)
	r.DELETE("/api/cart/items", h.RemoveItem)
	r.DELETE("/api/cart", h.Clear)
	return r, s
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type cartResp struct {
	Items []struct {
		ProductID int64   `json:"product_id"`
		Name      string  `json:"name"`
		Price     float64 `json:"price"`
		Quantity  int     `json:"quantity"`
	} `json:"items"`
	Totals struct {
		Subtotal float64 `json:"subtotal"`
		Tax      float64 `json:"tax"`
		Total    float64 `json:"total"`
	} `json:"totals"`
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) cartResp {
	t.Helper()
	var resp cartResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAddItemSnapshotsProduct(t *testing.T) {
	r, _ := setup(t)

	w := doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{"product_id": 1})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeCart(t, w)
	require.Len(t, resp.Items, 1)
	require.Equal(t, "Mango", resp.Items[0].Name)
	require.Equal(t, 250.0, resp.Items[0].Price)
	require.Equal(t, 1, resp.Items[0].Quantity)
}

func TestAddUnknownProduct(t *testing.T) {
	r, s := setup(t)

	w := doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{"product_id": 99})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.True(t, s.CartIsEmpty())
}

func TestAddTwiceThenTotals(t *testing.T) {
	r, _ := setup(t)

	doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{"product_id": 1})
	w := doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{"product_id": 1})

	resp := decodeCart(t, w)
	require.Len(t, resp.Items, 1)
	require.Equal(t, 2, resp.Items[0].Quantity)
	require.Equal(t, 500.0, resp.Totals.Subtotal)
	require.Equal(t, 50.0, resp.Totals.Tax)
	require.Equal(t, 550.0, resp.Totals.Total)
}

func TestUpdateQtyRejectsBelowOne(t *testing.T) {
	r, s := setup(t)
	doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{"product_id": 1})

	w := doJSON(t, r, http.MethodPatch, "/api/cart/items", gin.H{"product_id": 1, "quantity": 0})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/api/cart/items", gin.H{"product_id": 1, "quantity": -1})
	require.Equal(t, http.StatusBadRequest, w.Code)

	lines, _ := s.CartSnapshot()
	require.Equal(t, 1, lines[0].Quantity, "rejected updates leave the line unchanged")

	w = doJSON(t, r, http.MethodPatch, "/api/cart/items", gin.H{"product_id": 1, "quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 3, decodeCart(t, w).Items[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	r, _ := setup(t)
	doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{"product_id": 1})
	doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{"product_id": 2})

	w := doJSON(t, r, http.MethodDelete, "/api/cart/items", gin.H{"product_id": 1})
	resp := decodeCart(t, w)
	require.Len(t, resp.Items, 1)
	require.Equal(t, int64(2), resp.Items[0].ProductID)

	// unknown id is a no-op
	w = doJSON(t, r, http.MethodDelete, "/api/cart/items", gin.H{"product_id": 77})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decodeCart(t, w).Items, 1)
}

func TestClearCart(t *testing.T) {
	r, s := setup(t)
	doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{"product_id": 1})

	w := doJSON(t, r, http.MethodDelete, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, s.CartIsEmpty())
}

func TestGetEmptyCart(t *testing.T) {
	r, _ := setup(t)
	w := doJSON(t, r, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeCart(t, w)
	require.Empty(t, resp.Items)
	require.Equal(t, 0.0, resp.Totals.Total)
}
