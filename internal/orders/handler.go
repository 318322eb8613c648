package orders

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grocerystore/internal/auth"
)

// CatalogHomePath is where the confirmation view bounces to when there is
// no freshly placed order to show.
const CatalogHomePath = "/api/products"

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Confirmation renders the receipt for the order just placed in this
// session. The order is handed over exactly once; revisiting (the API
// shape of a reload or direct navigation) redirects to the catalog home.
func (h *Handler) Confirmation(c *gin.Context) {
	s := auth.SessionFrom(c)
	o, ok := s.TakeLastOrder()
	if !ok {
		c.Redirect(http.StatusSeeOther, CatalogHomePath)
		return
	}
	c.JSON(http.StatusOK, BuildReceipt(*o))
}
