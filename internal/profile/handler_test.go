package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"grocerystore/internal/auth"
	"grocerystore/internal/domain/account"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNormalizeContactKeepsDigitsOnly(t *testing.T) {
	got, err := normalize("contact", "0300-123 4567x")
	require.NoError(t, err)
	require.Equal(t, "03001234567", got)
}

func TestNormalizeContactCapsAtFifteenDigits(t *testing.T) {
	got, err := normalize("alternate_contact", "12345678901234567890")
	require.NoError(t, err)
	require.Equal(t, "123456789012345", got)
}

func TestNormalizeEmail(t *testing.T) {
	got, err := normalize("email", " Ayesha@Example.COM ")
	require.NoError(t, err)
	require.Equal(t, "ayesha@example.com", got)

	_, err = normalize("email", "not-an-email")
	require.Error(t, err)
}

func TestNormalizePlainFieldTrims(t *testing.T) {
	got, err := normalize("address", "  12 Canal Road  ")
	require.NoError(t, err)
	require.Equal(t, "12 Canal Road", got)
}

func TestEditableWhitelistPerRole(t *testing.T) {
	require.Contains(t, editable["customer"], "alternate_contact")
	require.NotContains(t, editable["admin"], "alternate_contact")
	require.Contains(t, editable["rider"], "number_plate")
	require.NotContains(t, editable["customer"], "number_plate")
}

func TestUpdateFieldUnknownFieldSkipsDB(t *testing.T) {
	// The whitelist check runs before any query, so a nil pool is safe here.
	err := NewRepo(nil).UpdateField(context.Background(), account.RoleCustomer, 1, "number_plate", "LEB-1234")
	require.ErrorIs(t, err, ErrUnknownField)
}

func setup(t *testing.T, role account.Role) *gin.Engine {
	t.Helper()
	h := NewHandler(NewRepo(nil), nil)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(auth.CtxAccountIDKey, int64(7))
		c.Set(auth.CtxRoleKey, role)
	})
	r.PATCH("/api/profile/:field", h.UpdateField)
	return r
}

func patchField(t *testing.T, r *gin.Engine, field string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPatch, "/api/profile/"+field, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateUnknownFieldIsBadRequest(t *testing.T) {
	r := setup(t, account.RoleCustomer)

	w := patchField(t, r, "number_plate", gin.H{"value": "LEB-1234"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "unknown field", resp["error"])
	require.Equal(t, "number_plate", resp["field"])
}

func TestUpdateMalformedEmailIsBadRequest(t *testing.T) {
	r := setup(t, account.RoleCustomer)

	w := patchField(t, r, "email", gin.H{"value": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
