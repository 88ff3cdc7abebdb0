package utils

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT creates a signed bearer token for the given user ID. The token
// carries identity only; permissions live on each event's membership and are
// resolved per request.
func GenerateJWT(userID string) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET not configured")
	}

	expMinutes := 60
	if val := os.Getenv("JWT_EXP_MIN"); val != "" {
		if mins, err := strconv.Atoi(val); err == nil {
			expMinutes = mins
		}
	}

	claims := jwt.MapClaims{
		"sub": userID,
		"iat": time.Now().Unix(),
		"iss": "wedding-backend",
		"exp": time.Now().Add(time.Minute * time.Duration(expMinutes)).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
