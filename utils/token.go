package authUtils

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
)

const defaultTokenTTL = 72 * time.Hour

// TokenTTL is the session lifetime, read from JWT_EXPIRY_HOURS when set.
func TokenTTL() time.Duration {
	raw := os.Getenv("JWT_EXPIRY_HOURS")
	if raw == "" {
		return defaultTokenTTL
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours < 1 {
		log.Printf("Invalid JWT_EXPIRY_HOURS %q, using default", raw)
		return defaultTokenTTL
	}
	return time.Duration(hours) * time.Hour
}

// IssueToken signs an HS256 session token carrying the user id, the issue
// time, and the expiry.
func IssueToken(userID string) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET environment variable is not set")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(TokenTTL()).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
