package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active member by default", func(t *testing.T) {
		user, err := NewUser(UserRegistrationParams{
			FullName: "Jo Field",
			Email:    "jo@acme.test",
			Password: "Sup3rSecret",
		}, 7)

		require.NoError(t, err)
		assert.Equal(t, int64(7), user.OrganizationID)
		assert.Equal(t, "member", user.Role)
		assert.True(t, user.IsActive)
		assert.NotEqual(t, "Sup3rSecret", user.HashedPassword)
		assert.True(t, user.CheckPassword("Sup3rSecret"))
		assert.False(t, user.CheckPassword("wrong"))
	})

	t.Run("rejects invalid params", func(t *testing.T) {
		_, err := NewUser(UserRegistrationParams{Email: "not-an-email", Password: "short"}, 7)
		assert.Error(t, err)
	})
}

func TestValidatePassword(t *testing.T) {
	assert.Empty(t, ValidatePassword("Sup3rSecret"))
	assert.NotEmpty(t, ValidatePassword("short1A"))
	assert.NotEmpty(t, ValidatePassword("alllowercase1"))
	assert.NotEmpty(t, ValidatePassword("ALLUPPERCASE1"))
	assert.NotEmpty(t, ValidatePassword("NoNumbersHere"))
}

func TestUserSnapshot(t *testing.T) {
	user := &User{ID: 3, OrganizationID: 7, FullName: "Jo Field", Email: "jo@acme.test", Role: "admin", HashedPassword: "hash"}

	snap := user.Snapshot()
	assert.Equal(t, "Jo Field", snap["fullName"])
	assert.Equal(t, "admin", snap["role"])
	for key := range snap {
		assert.NotContains(t, key, "assword")
		assert.NotContains(t, key, "ash")
	}
}
