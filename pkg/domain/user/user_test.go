package user_test

import (
	"testing"

	"github.com/amirasaad/bankcli/pkg/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	u, err := user.New("11122233344", "Mari", "hash")
	require.NoError(t, err)
	assert.Equal(t, "11122233344", u.CPF)
	assert.Equal(t, "Mari", u.Name)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.Empty(t, u.Accounts)
}

func TestNew_Validation(t *testing.T) {
	_, err := user.New("", "Mari", "hash")
	assert.ErrorIs(t, err, user.ErrCPFRequired)

	_, err = user.New("1", "Mari", "")
	assert.ErrorIs(t, err, user.ErrPasswordHashRequired)
}

func TestAccounts(t *testing.T) {
	src := []string{"100001"}
	u := user.NewFromData("1", "Mari", "hash", src)
	src[0] = "mutated"

	u.AddAccount("100002")
	assert.Equal(t, []string{"100001", "100002"}, u.Accounts)
	assert.True(t, u.Owns("100002"))
	assert.False(t, u.Owns("mutated"))
}
