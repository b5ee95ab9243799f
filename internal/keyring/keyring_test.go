package keyring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	zkr "github.com/zalando/go-keyring"
)

func TestTokenLifecycle(t *testing.T) {
	zkr.MockInit()

	_, err := GetToken()
	assert.ErrorIs(t, err, ErrNotFound)

	token, err := NewToken()
	require.NoError(t, err)
	assert.Len(t, token, 64)

	got, err := GetToken()
	require.NoError(t, err)
	assert.Equal(t, token, got)

	require.NoError(t, SetToken("fixed"))
	got, err = GetToken()
	require.NoError(t, err)
	assert.Equal(t, "fixed", got)

	require.NoError(t, DeleteToken())
	require.NoError(t, DeleteToken())
	_, err = GetToken()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAvailable(t *testing.T) {
	zkr.MockInit()
	assert.True(t, Available())

	t.Setenv("NEBO_CONTACTS_KEYRING_DISABLED", "1")
	assert.False(t, Available())
}

func TestNewTokenIsRandom(t *testing.T) {
	zkr.MockInit()

	a, err := NewToken()
	require.NoError(t, err)
	b, err := NewToken()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
