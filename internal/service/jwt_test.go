package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJWT_RoundTrip(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT("discord-123", "42")
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	require.Equal(t, "discord-123", claims.UserID)
	require.Equal(t, "42", claims.PanelUserID)
}

func TestJWT_WrongSecret(t *testing.T) {
	InitJWT("secret-a")
	token, err := GenerateJWT("u", "1")
	require.NoError(t, err)

	InitJWT("secret-b")
	_, err = ParseJWT(token)
	require.Error(t, err)
}

func TestJWT_Garbage(t *testing.T) {
	InitJWT("test-secret")
	_, err := ParseJWT("not.a.token")
	require.Error(t, err)
}
