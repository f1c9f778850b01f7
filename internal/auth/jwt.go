package auth

import (
	"fmt"
	"time"

	"starmap-server/internal/commander"
	"starmap-server/internal/shared/config"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	CommanderID int    `json:"commander_id"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWT issues the session token stored in the auth cookie.
func GenerateJWT(c *commander.Commander) (string, error) {
	cfg := config.GlobalConfig
	if cfg == nil || cfg.Auth.JWTSecret == "" {
		return "", fmt.Errorf("auth configuration not initialized")
	}

	claims := Claims{
		CommanderID: c.ID,
		Username:    c.Username,
		Role:        c.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cfg.Auth.TokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   fmt.Sprintf("commander_%d", c.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Auth.JWTSecret))
}

// ValidateJWT parses and verifies a session token.
func ValidateJWT(tokenString string) (*Claims, error) {
	cfg := config.GlobalConfig
	if cfg == nil || cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth configuration not initialized")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.Auth.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
