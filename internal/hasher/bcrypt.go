package hasher

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskhub/taskhub-server/internal/model"
)

var _ model.PasswordHasher = (*Bcrypt)(nil)

// Bcrypt derives salted one-way password digests. Cost is tunable so
// tests can run at the cheap end of the range.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a hasher with the given cost. Out-of-range costs
// fall back to the bcrypt default.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash derives a digest for the plaintext password.
func (b *Bcrypt) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. Comparison is
// constant-time inside bcrypt; malformed digests verify as false,
// never as an error.
func (b *Bcrypt) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
