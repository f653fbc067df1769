package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers malformed, tampered and expired tokens alike.
var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Email string `json:"email"`
	JTI   string `json:"jti"`
	jwt.RegisteredClaims
}

// Manager signs and verifies the bearer tokens handed out at signup and
// login. Tokens carry no server-side state: validity is a function of the
// signature and the expiry claim only.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue mints a token bound to the given email and reports its validity
// window in seconds.
func (m *Manager) Issue(email string) (token string, expiresIn int64, err error) {
	now := time.Now().UTC()

	claims := Claims{
		Email: email,
		JTI:   uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)

	if err != nil {
		return "", 0, err
	}

	return token, int64(m.ttl.Seconds()), nil
}

func (m *Manager) parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Enforce HS256

		_, ok := t.Method.(*jwt.SigningMethodHMAC)

		if !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)

	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Validate reports whether the token verifies and has not expired. It never
// returns an error; any defect reads as false.
func (m *Manager) Validate(tokenStr string) bool {
	_, err := m.parse(tokenStr)

	return err == nil
}

// ExtractEmail returns the subject email carried by the token.
func (m *Manager) ExtractEmail(tokenStr string) (string, error) {
	claims, err := m.parse(tokenStr)

	if err != nil {
		return "", err
	}

	if claims.Email != "" {
		return claims.Email, nil
	}

	// fall back to the registered subject for tokens minted elsewhere
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
