package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher derives and verifies password digests. The services never
// inspect digest internals; swapping the implementation (e.g., for a stub in
// tests) does not change any orchestration rule.
type PasswordHasher interface {
	// Hash derives an irreversible, salted digest from a plaintext password.
	Hash(password string) (string, error)

	// Compare verifies a plaintext password against a stored digest.
	// Returns nil on match, an error on mismatch.
	Compare(hash, password string) error
}

// BcryptHasher implements PasswordHasher using bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher with the given cost. Costs outside
// bcrypt's valid range fall back to the default cost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash implements PasswordHasher.
func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Compare implements PasswordHasher.
func (h *BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

var _ PasswordHasher = (*BcryptHasher)(nil)
