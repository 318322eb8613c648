package cart

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"grocerystore/internal/auth"
	"grocerystore/internal/domain/catalog"
)

// ProductGetter is the slice of the catalog the cart needs: resolving the
// product being added so its name and price can be snapshotted.
type ProductGetter interface {
	ByID(ctx context.Context, id int64) (catalog.Product, error)
}

type Handler struct {
	products ProductGetter
}

func NewHandler(products ProductGetter) *Handler {
	return &Handler{products: products}
}

func (h *Handler) GetMyCart(c *gin.Context) {
	s := auth.SessionFrom(c)
	lines, totals := s.CartSnapshot()
	c.JSON(http.StatusOK, gin.H{"items": lines, "totals": totals})
}

type addItemReq struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

func (h *Handler) AddItem(c *gin.Context) {
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, err := h.products.ByID(c.Request.Context(), req.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	s := auth.SessionFrom(c)
	s.AddToCart(p)

	lines, totals := s.CartSnapshot()
	c.JSON(http.StatusOK, gin.H{"items": lines, "totals": totals})
}

type updateQtyReq struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

func (h *Handler) UpdateQty(c *gin.Context) {
	var req updateQtyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Quantity < 1 {
		// quantities below 1 never change the line; removal is explicit
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be at least 1"})
		return
	}

	s := auth.SessionFrom(c)
	s.UpdateCartQuantity(req.ProductID, req.Quantity)

	lines, totals := s.CartSnapshot()
	c.JSON(http.StatusOK, gin.H{"items": lines, "totals": totals})
}

type removeItemReq struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

func (h *Handler) RemoveItem(c *gin.Context) {
	var req removeItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	s := auth.SessionFrom(c)
	s.RemoveFromCart(req.ProductID)

	lines, totals := s.CartSnapshot()
	c.JSON(http.StatusOK, gin.H{"items": lines, "totals": totals})
}

func (h *Handler) Clear(c *gin.Context) {
	s := auth.SessionFrom(c)
	s.ClearCart()
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
