package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppEnv   string
	HTTPAddr string

	DatabaseURL string
	DBMaxConns  int
	DBMinConns  int

	JWTIssuer       string
	JWTSecret       string
	SessionTTLHours int

	// RequirePostalCode toggles whether checkout shipping forms must carry
	// a postal code. Both storefront variants exist in the field.
	RequirePostalCode bool
}

func Load() Config {
	return Config{
		AppEnv:   get("APP_ENV", "dev"),
		HTTPAddr: get("HTTP_ADDR", ":8080"),

		DatabaseURL: get("DATABASE_URL", ""),
		DBMaxConns:  getInt("DB_MAX_CONNS", 10),
		DBMinConns:  getInt("DB_MIN_CONNS", 2),

		JWTIssuer:       get("JWT_ISSUER", "grocerystore"),
		JWTSecret:       get("JWT_SECRET", ""),
		SessionTTLHours: getInt("SESSION_TTL_HOURS", 12),

		RequirePostalCode: getBool("CHECKOUT_REQUIRE_POSTAL_CODE", true),
	}
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
