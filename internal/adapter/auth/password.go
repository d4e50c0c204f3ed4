package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// Compile-time check: Hasher implements domain.PasswordHasher.
var _ domain.PasswordHasher = (*Hasher)(nil)

// Hasher hashes passwords with bcrypt.
type Hasher struct {
	cost int
}

// NewHasher creates a hasher with the given bcrypt cost. Costs outside
// bcrypt's range fall back to bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash hashes a password using bcrypt.
func (h *Hasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify compares a password with a hash.
func (h *Hasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
