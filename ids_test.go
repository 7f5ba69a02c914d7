package users_test

import (
	"testing"

	users "github.com/goliatone/go-users"
	"github.com/stretchr/testify/assert"
)

func TestNewPublicID(t *testing.T) {
	t.Run("generates ids of the requested length", func(t *testing.T) {
		id := users.NewPublicID(30)
		assert.Len(t, id, 30)
	})

	t.Run("defaults the length", func(t *testing.T) {
		id := users.NewPublicID(0)
		assert.Len(t, id, users.PublicIDLength)
	})

	t.Run("stays alphanumeric", func(t *testing.T) {
		id := users.NewPublicID(200)
		for _, r := range id {
			ok := (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
			assert.True(t, ok, "unexpected rune %q", r)
		}
	})

	t.Run("does not repeat", func(t *testing.T) {
		seen := map[string]bool{}
		for i := 0; i < 100; i++ {
			id := users.NewPublicID(30)
			assert.False(t, seen[id])
			seen[id] = true
		}
	})
}
