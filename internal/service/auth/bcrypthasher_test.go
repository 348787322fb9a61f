package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_BcryptHasher(t *testing.T) {
	t.Parallel()

	h := BcryptHasher{}

	t.Run("hash password", func(t *testing.T) {
		got, err := h.Hash("password")
		require.NoError(t, err)

		require.Len(t, got, 60, "bcrypt hash length is 60 letters")
		require.Equal(t, "$2a$", got[:4], "bcrypt hash should have prefix '$2a$'")
	})

	t.Run("compare password ok", func(t *testing.T) {
		hash, err := h.Hash("password")
		require.NoError(t, err)

		err = h.Compare(hash, "password")

		require.NoError(t, err)
	})

	t.Run("fail compare if wrong password", func(t *testing.T) {
		hash, err := h.Hash("password")
		require.NoError(t, err)

		err = h.Compare(hash, "wrong")

		require.Error(t, err)
	})

	t.Run("same password hashes differently but both verify", func(t *testing.T) {
		hash1, err := h.Hash("password")
		require.NoError(t, err)
		hash2, err := h.Hash("password")
		require.NoError(t, err)

		require.NotEqual(t, hash1, hash2, "salted hashes should differ")
		require.NoError(t, h.Compare(hash1, "password"))
		require.NoError(t, h.Compare(hash2, "password"))
	})

	t.Run("long password is hashable and verifiable", func(t *testing.T) {
		// Longer than bcrypt's own 72 byte input limit
		long := make([]byte, 200)
		for i := range long {
			long[i] = 'a'
		}

		hash, err := h.Hash(string(long))
		require.NoError(t, err)
		require.NoError(t, h.Compare(hash, string(long)))
	})

	t.Run("malformed stored hash compares as mismatch", func(t *testing.T) {
		tests := []struct {
			name string
			hash string
		}{
			{"empty", ""},
			{"garbage", "not-a-bcrypt-hash"},
			{"truncated", "$2a$10$too-short"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := h.Compare(tt.hash, "password")
				require.Error(t, err, "corrupted hash should fail verification, not panic")
			})
		}
	})
}
