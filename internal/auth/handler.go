package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"grocerystore/internal/domain/account"
	"grocerystore/internal/session"
)

type Dependencies struct {
	JWT      *JWTManager
	Accounts *Repo
	Sessions *session.Registry
}

type Handler struct {
	deps Dependencies
}

func NewHandler(d Dependencies) *Handler {
	return &Handler{deps: d}
}

type registerReq struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Address         string `json:"address"`
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passwords do not match"})
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	pwHash, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "password hash failed"})
		return
	}

	a, err := h.deps.Accounts.CreateCustomer(c.Request.Context(), req.Name, req.Email, pwHash, req.Address)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "account": a})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !account.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	role := account.Role(req.Role)

	// A missing row and a wrong password look identical to the caller.
	a, err := h.deps.Accounts.ByEmail(c.Request.Context(), role, req.Email)
	if err != nil || !CheckPassword(a.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	s := h.deps.Sessions.Create(a.ID, role)
	token, exp, err := h.deps.JWT.Sign(a.ID, role, s.ID)
	if err != nil {
		h.deps.Sessions.Drop(s.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": exp,
		"account":    a,
	})
}

// Logout drops the session: the cart is cleared and the token stops working.
func (h *Handler) Logout(c *gin.Context) {
	s := SessionFrom(c)
	h.deps.Sessions.Drop(s.ID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) Me(c *gin.Context) {
	a, err := h.deps.Accounts.ByID(c.Request.Context(), RoleFrom(c), AccountIDFrom(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		return
	}
	c.JSON(http.StatusOK, a)
}
