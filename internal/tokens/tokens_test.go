package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	secret := "supersecret00000000000000000000000"
	raw, err := GenerateAccessToken(secret, "signer-1", time.Hour)
	require.NoError(t, err)

	sub, err := ParseSubject(secret, raw)
	require.NoError(t, err)
	require.Equal(t, "signer-1", sub)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	raw, err := GenerateAccessToken("secret-a-0000000000000000000000000", "signer-1", time.Hour)
	require.NoError(t, err)

	_, err = ParseSubject("secret-b-0000000000000000000000000", raw)
	require.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	secret := "supersecret00000000000000000000000"
	raw, err := GenerateAccessToken(secret, "signer-1", -time.Minute)
	require.NoError(t, err)

	_, err = ParseSubject(secret, raw)
	require.Error(t, err)
}
