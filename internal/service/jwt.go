// Package service holds session-token handling. Tokens are issued by the
// parent panel with the shared secret; this add-on only validates them.
package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

// SessionClaims identifies an authenticated panel user. UserID is the
// add-on's opaque user ID (coin balances key off it); PanelUserID is the
// user's ID in the Pterodactyl panel (server ownership keys off it).
type SessionClaims struct {
	UserID      string
	PanelUserID string
}

func InitJWT(secret string) {
	if secret == "" {
		panic("jwt secret is empty")
	}
	jwtSecret = []byte(secret)
}

// GenerateJWT signs a session token. Used by tests and the smoke client;
// in production the parent panel issues tokens.
func GenerateJWT(userID, panelUserID string) (string, error) {
	now := time.Now().Unix()
	claims := jwt.MapClaims{
		"sub":      userID,
		"panel_id": panelUserID,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
		"iat":      now,
		"nbf":      now,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseJWT validates a session token and extracts its claims.
func ParseJWT(tokenString string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	now := time.Now().Unix()
	if exp, ok := claims["exp"].(float64); ok && int64(exp) < now {
		return nil, errors.New("token expired")
	}
	if nbf, ok := claims["nbf"].(float64); ok && int64(nbf) > now {
		return nil, errors.New("token not valid yet")
	}

	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return nil, errors.New("subject not found")
	}
	panelID, _ := claims["panel_id"].(string)

	return &SessionClaims{UserID: userID, PanelUserID: panelID}, nil
}
