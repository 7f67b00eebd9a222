package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/Smartstaychur/smartstaychur-website/internal/domain/identity"
	"github.com/Smartstaychur/smartstaychur-website/internal/domain/provider"
)

// Claims is the session token payload. The linked ids embedded here are a
// snapshot for display only; authorization always re-reads the live
// account (see Service.IdentityFromToken).
type Claims struct {
	Username           string `json:"username"`
	DisplayName        string `json:"displayName,omitempty"`
	Role               string `json:"role"`
	LinkedHotelID      *int64 `json:"linkedHotelId,omitempty"`
	LinkedRestaurantID *int64 `json:"linkedRestaurantId,omitempty"`
	jwt.RegisteredClaims
}

// mintToken signs an HS256 session token for the account.
func mintToken(secret []byte, acct *provider.Account, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		Username:    acct.Username,
		DisplayName: acct.DisplayName,
		Role:        string(acct.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(acct.ID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	switch acct.Role {
	case identity.RoleHotelier:
		claims.LinkedHotelID = acct.LinkedHotelID
	case identity.RoleGastronom:
		claims.LinkedRestaurantID = acct.LinkedRestaurantID
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// parseToken verifies signature and expiry and returns the claims plus
// the account id from the subject.
func parseToken(secret []byte, raw string) (*Claims, int64, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("parse token: %w", err)
	}
	if claims.Subject == "" {
		return nil, 0, errors.New("token has no subject")
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, 0, fmt.Errorf("token subject %q: %w", claims.Subject, err)
	}
	return claims, id, nil
}
