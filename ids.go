package users

import (
	"crypto/rand"
	"math/big"

	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// PublicIDLength is the length of generated public identifiers
const PublicIDLength = 30

const publicIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// NewPublicID generates a random alphanumeric identifier safe to expose
// outside the service. Randomness comes from crypto/rand.
func NewPublicID(length int) string {
	if length <= 0 {
		length = PublicIDLength
	}

	max := big.NewInt(int64(len(publicIDAlphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// rand.Reader failing means the platform is broken
			panic(err)
		}
		out[i] = publicIDAlphabet[n.Int64()]
	}

	return string(out)
}

// newAccountID derives a deterministic row uuid from the email so repeated
// registrations of the same address collide on the primary key as well as
// the unique email constraint.
func newAccountID(email string) uuid.UUID {
	if id, err := hashid.NewUUID(email); err == nil {
		return id
	}
	return uuid.New()
}
