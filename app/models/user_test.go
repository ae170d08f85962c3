package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserHashesPassword(t *testing.T) {
	u, err := CreateUser("alice", "alice@example.com", "pw1234")
	require.NoError(t, err)

	assert.Equal(t, "alice", u.Username)
	assert.NotEqual(t, "pw1234", u.Password)
	assert.True(t, u.CheckPassword("pw1234"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestCreateUserValidation(t *testing.T) {
	_, err := CreateUser("al", "alice@example.com", "pw1234")
	assert.Error(t, err, "username below minimum length")

	_, err = CreateUser("alice", "not-an-email", "pw1234")
	assert.Error(t, err)
}

func TestSetPassword(t *testing.T) {
	u, err := CreateUser("alice", "alice@example.com", "pw1234")
	require.NoError(t, err)

	old := u.Password
	require.NoError(t, u.SetPassword("newpass"))
	assert.NotEqual(t, old, u.Password)
	assert.True(t, u.CheckPassword("newpass"))
	assert.False(t, u.CheckPassword("pw1234"))
}
