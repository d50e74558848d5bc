package jwt

import (
	"errors"
	"time"

	"MetOptix/models"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "metoptix"

type Claims struct {
	Role string `json:"role"`
	gojwt.RegisteredClaims
}

func GenerateToken(secret []byte, username, role string, ttl time.Duration, now time.Time) (string, *models.Session, error) {
	if len(secret) == 0 {
		return "", nil, errors.New("jwt secret is empty")
	}
	session := &models.Session{
		Username:  username,
		Role:      role,
		TokenID:   uuid.NewString(),
		IssuedAt:  now.UTC().Truncate(time.Second),
		ExpiresAt: now.Add(ttl).UTC().Truncate(time.Second),
	}
	claims := Claims{
		Role: role,
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   username,
			ID:        session.TokenID,
			IssuedAt:  gojwt.NewNumericDate(session.IssuedAt),
			ExpiresAt: gojwt.NewNumericDate(session.ExpiresAt),
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", nil, err
	}
	return token, session, nil
}

// ParseToken validates signature, issuer and expiry and returns the session the token carries.
func ParseToken(secret []byte, tokenString string) (*models.Session, error) {
	claims := &Claims{}
	token, err := gojwt.ParseWithClaims(tokenString, claims, func(t *gojwt.Token) (interface{}, error) {
		return secret, nil
	}, gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}), gojwt.WithIssuer(issuer), gojwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" {
		return nil, errors.New("invalid token")
	}
	session := &models.Session{
		Username: claims.Subject,
		Role:     claims.Role,
		TokenID:  claims.ID,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return session, nil
}
