package checkin

import (
	"errors"
	"time"

	"gymdesk/internal/class"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTTL = 60 * time.Second
	// RefreshAfter is how often the kiosk display should fetch a new token.
	RefreshAfter = 25 * time.Second

	tokenIssuer   = "gymdesk-api"
	tokenAudience = "gymdesk-checkin"
)

var (
	ErrInvalidToken = errors.New("invalid check-in token")
	ErrEmptySecret  = errors.New("check-in secret cannot be empty")
)

// TokenClaims is the payload of the QR code shown at the class entrance.
type TokenClaims struct {
	ClassID        int    `json:"class_id"`
	ClassName      string `json:"class_name"`
	IssuedAtMillis int64  `json:"issued_at_ms"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies short-lived class tokens.
type Issuer struct {
	secret []byte
	now    func() time.Time
}

func NewIssuer(secret string) (*Issuer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Issuer{secret: []byte(secret), now: time.Now}, nil
}

func (i *Issuer) Issue(c *class.Class) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(TokenTTL)

	claims := &TokenClaims{
		ClassID:        c.ID,
		ClassName:      c.Name,
		IssuedAtMillis: now.UnixMilli(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Audience:  []string{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks signature, issuer, audience and expiry. Every failure is
// reported as ErrInvalidToken.
func (i *Issuer) Verify(token string) (*TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(
		token,
		&TokenClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*TokenClaims)
	if !ok || !parsed.Valid || claims.ClassID <= 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
