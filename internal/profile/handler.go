package profile

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"

	"grocerystore/internal/auth"
	"grocerystore/internal/domain/account"
)

// AccountGetter loads the caller's account for the profile view.
type AccountGetter interface {
	ByID(ctx context.Context, role account.Role, id int64) (account.Account, error)
}

type Handler struct {
	repo     *Repo
	accounts AccountGetter
}

func NewHandler(repo *Repo, accounts AccountGetter) *Handler {
	return &Handler{repo: repo, accounts: accounts}
}

func (h *Handler) Get(c *gin.Context) {
	a, err := h.accounts.ByID(c.Request.Context(), auth.RoleFrom(c), auth.AccountIDFrom(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		return
	}
	c.JSON(http.StatusOK, a)
}

type updateFieldReq struct {
	Value string `json:"value"`
}

// UpdateField is the per-field save: one request persists one field and
// leaves every other field untouched.
func (h *Handler) UpdateField(c *gin.Context) {
	field := c.Param("field")

	var req updateFieldReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	value, err := normalize(field, req.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": field})
		return
	}

	err = h.repo.UpdateField(c.Request.Context(), auth.RoleFrom(c), auth.AccountIDFrom(c), field, value)
	if err != nil {
		if errors.Is(err, ErrUnknownField) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown field", "field": field})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save field"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "field": field, "value": value})
}

// normalize applies the profile form's field rules: contact numbers keep
// digits only, capped at 15; emails must parse.
func normalize(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	switch field {
	case "contact", "alternate_contact":
		var digits strings.Builder
		for _, r := range value {
			if r >= '0' && r <= '9' {
				digits.WriteRune(r)
			}
		}
		v := digits.String()
		if len(v) > 15 {
			v = v[:15]
		}
		return v, nil
	case "email":
		if _, err := mail.ParseAddress(value); err != nil {
			return "", errors.New("malformed email")
		}
		return strings.ToLower(value), nil
	default:
		return value, nil
	}
}
