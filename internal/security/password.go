package security

import "golang.org/x/crypto/bcrypt"

const DefaultCost = bcrypt.DefaultCost

// BcryptHasher is passed explicitly into every service that touches
// passwords, so tests can swap the cost down.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return BcryptHasher{cost: cost}
}

// Hash derives a salted bcrypt hash from a plaintext password.
func (h BcryptHasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// Matches compares a plaintext password against a stored bcrypt hash.
func (h BcryptHasher) Matches(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
