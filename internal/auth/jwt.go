package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"grocerystore/internal/domain/account"
)

type JWTConfig struct {
	Issuer   string
	Secret   string
	TTLHours int
}

type JWTManager struct {
	cfg JWTConfig
}

// Claims carry the session identity: who is logged in, as what, and which
// server-side session owns their cart. The session ID is what makes logout
// effective — dropping the session invalidates every token that names it.
type Claims struct {
	AccountID int64        `json:"uid"`
	Role      account.Role `json:"role"`
	SessionID string       `json:"sid"`
	jwt.RegisteredClaims
}

func NewJWTManager(cfg JWTConfig) *JWTManager {
	return &JWTManager{cfg: cfg}
}

func (m *JWTManager) TTL() time.Duration {
	return time.Duration(m.cfg.TTLHours) * time.Hour
}

func (m *JWTManager) Sign(accountID int64, role account.Role, sessionID string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.TTL())
	claims := Claims{
		AccountID: accountID,
		Role:      role,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString([]byte(m.cfg.Secret))
	return s, exp, err
}

func (m *JWTManager) Parse(tokenStr string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(m.cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
