package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/models"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValidity is the fixed session length for every issued token.
const TokenValidity = 7 * 24 * time.Hour

const tokenIssuer = "iem-media-team"

// TokenClaims is the decoded session: who the caller is and what they may do.
// Name is only present on login-issued tokens.
type TokenClaims struct {
	UserID string
	Role   models.Role
	Name   string
}

// GenerateToken signs a 7-day HS256 session token embedding the user id and
// role. name may be empty (registration-issued tokens).
func GenerateToken(secret, userID string, role models.Role, name string) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(TokenValidity).Unix(),
		"iss":  tokenIssuer,
	}
	if name != "" {
		claims["name"] = name
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies the signature and expiry and returns the embedded
// session claims. The signing method is pinned to HMAC so a token signed
// with "none" or an RSA public key can never pass.
func ParseToken(secret, tokenStr string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("invalid token subject")
	}
	role, _ := claims["role"].(string)
	name, _ := claims["name"].(string)

	return &TokenClaims{UserID: sub, Role: models.Role(role), Name: name}, nil
}
