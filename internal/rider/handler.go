package rider

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"grocerystore/internal/auth"
	"grocerystore/internal/domain/order"
)

type Handler struct {
	repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) ListOrders(c *gin.Context) {
	items, err := h.repo.ListForRider(c.Request.Context(), auth.AccountIDFrom(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type updateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	orderID, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil || !order.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	err := h.repo.UpdateStatus(c.Request.Context(), auth.AccountIDFrom(c), orderID, order.Status(req.Status))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"ok": true})
	case errors.Is(err, ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
	case errors.Is(err, ErrNotAssignable):
		c.JSON(http.StatusForbidden, gin.H{"error": "order assigned to another rider"})
	case errors.Is(err, ErrBadTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "invalid status transition"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
	}
}
