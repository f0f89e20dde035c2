package commands

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/Niranjjith/Attendance-System/internal/auth"

	"github.com/stretchr/testify/require"
)

func writeTestKey(t *testing.T) string {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	block := &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}

	path := filepath.Join(t.TempDir(), "private.pem")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0o600))

	return path
}

func TestGenToken(t *testing.T) {
	keyPath := writeTestKey(t)

	access, refresh, err := GenToken(AuthClaims{ID: 7, Role: auth.RoleTeacher}, keyPath)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	require.NotEqual(t, access, refresh)

	a, err := auth.NewAuth(keyPath)
	require.NoError(t, err)

	claims, err := a.ValidateToken(access)
	require.NoError(t, err)
	require.Equal(t, 7, claims.UserId)
	require.Equal(t, auth.RoleTeacher, claims.Role)
	require.Equal(t, "access", claims.Type)

	claims, err = a.ValidateToken(refresh)
	require.NoError(t, err)
	require.Equal(t, "refresh", claims.Type)
}

func TestGenTokenMissingKey(t *testing.T) {
	_, _, err := GenToken(AuthClaims{ID: 1, Role: auth.RoleAdmin}, filepath.Join(t.TempDir(), "missing.pem"))
	require.Error(t, err)
}

func TestVerifyTokens(t *testing.T) {
	keyPath := writeTestKey(t)

	access, refresh, err := GenToken(AuthClaims{ID: 3, Role: auth.RoleStudent}, keyPath)
	require.NoError(t, err)

	accessClaims, refreshClaims, err := VerifyTokens(access, refresh, keyPath)
	require.NoError(t, err)
	require.Equal(t, 3, accessClaims.UserId)
	require.Equal(t, 3, refreshClaims.UserId)
	require.Equal(t, "refresh", refreshClaims.Type)
}

func TestVerifyTokensRejectsAccessTokenAsRefresh(t *testing.T) {
	keyPath := writeTestKey(t)

	access, _, err := GenToken(AuthClaims{ID: 3, Role: auth.RoleStudent}, keyPath)
	require.NoError(t, err)

	_, _, err = VerifyTokens(access, access, keyPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "refresh token expected")
}

func TestVerifyTokensRejectsGarbage(t *testing.T) {
	keyPath := writeTestKey(t)

	_, refresh, err := GenToken(AuthClaims{ID: 3, Role: auth.RoleStudent}, keyPath)
	require.NoError(t, err)

	_, _, err = VerifyTokens("not-a-token", refresh, keyPath)
	require.Error(t, err)
}

func TestVerifyTokensRejectsForeignKey(t *testing.T) {
	keyPath := writeTestKey(t)
	otherKeyPath := writeTestKey(t)

	access, refresh, err := GenToken(AuthClaims{ID: 3, Role: auth.RoleStudent}, keyPath)
	require.NoError(t, err)

	_, _, err = VerifyTokens(access, refresh, otherKeyPath)
	require.Error(t, err)
}
