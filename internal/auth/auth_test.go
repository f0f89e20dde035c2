package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClaimsAuthorized(t *testing.T) {
	claims := Claims{Role: RoleTeacher}

	require.True(t, claims.Authorized(RoleTeacher))
	require.True(t, claims.Authorized(RoleTeacher, RoleAdmin))
	require.True(t, claims.Authorized(RoleAdmin, RoleTeacher))

	require.False(t, claims.Authorized(RoleAdmin))
	require.False(t, claims.Authorized(RoleAdmin, RoleStudent))
	require.False(t, claims.Authorized())
}

func TestGetClaims(t *testing.T) {
	want := Claims{UserId: 42, Role: RoleAdmin, Type: "access"}

	ctx := context.WithValue(context.Background(), Key, want)

	got, ok := GetClaims(ctx)
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestGetClaimsMissing(t *testing.T) {
	_, ok := GetClaims(context.Background())
	require.False(t, ok)
}
