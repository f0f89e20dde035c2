package commands

import (
	"os"
	"time"

	"github.com/Niranjjith/Attendance-System/internal/auth"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

// AuthClaims is the identity a token pair is minted for.
type AuthClaims struct {
	ID   int
	Role string
}

// AccessTokenTTL also bounds the single-session entry kept in the session
// store.
const (
	AccessTokenTTL  = 12 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// GenToken mints an access/refresh token pair signed with the RSA key at
// privateKeyPath.
func GenToken(claims AuthClaims, privateKeyPath string) (string, string, error) {
	keyData, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return "", "", errors.Wrap(err, "reading private key")
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(keyData)
	if err != nil {
		return "", "", errors.Wrap(err, "parsing private key")
	}

	now := time.Now()

	accessClaims := auth.Claims{
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(AccessTokenTTL).Unix(),
		},
		UserId: claims.ID,
		Role:   claims.Role,
		Type:   "access",
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodRS256, accessClaims).SignedString(privateKey)
	if err != nil {
		return "", "", errors.Wrap(err, "signing access token")
	}

	refreshClaims := auth.Claims{
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(refreshTokenTTL).Unix(),
		},
		UserId: claims.ID,
		Role:   claims.Role,
		Type:   "refresh",
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodRS256, refreshClaims).SignedString(privateKey)
	if err != nil {
		return "", "", errors.Wrap(err, "signing refresh token")
	}

	return accessToken, refreshToken, nil
}

// VerifyTokens checks a token pair during refresh. The access token may be
// expired; the refresh token must still be valid.
func VerifyTokens(accessToken, refreshToken, privateKeyPath string) (*auth.Claims, *auth.Claims, error) {
	a, err := auth.NewAuth(privateKeyPath)
	if err != nil {
		return nil, nil, err
	}

	accessClaims, err := a.ValidateToken(accessToken)
	if err != nil {
		// An expired access token is exactly why refresh exists; anything
		// else is rejected.
		ve, ok := errors.Cause(err).(*jwt.ValidationError)
		if !ok || ve.Errors&jwt.ValidationErrorExpired == 0 {
			return nil, nil, errors.Wrap(err, "validating access token")
		}
	}

	refreshClaims, err := a.ValidateToken(refreshToken)
	if err != nil {
		return nil, nil, errors.Wrap(err, "validating refresh token")
	}

	if refreshClaims.Type != "refresh" {
		return nil, nil, errors.New("refresh token expected")
	}

	return &accessClaims, &refreshClaims, nil
}
