package auth

import (
	"log"
	"net/http"

	"github.com/Niranjjith/Attendance-System/foundation/web"
	"github.com/Niranjjith/Attendance-System/internal/auth"
	"github.com/Niranjjith/Attendance-System/internal/commands"
	"github.com/Niranjjith/Attendance-System/internal/pkg/repository/redisdb"
	"github.com/Niranjjith/Attendance-System/internal/repository/postgres/user"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type Controller struct {
	user           User
	session        *redisdb.Session
	privateKeyPath string
}

func NewController(user User, session *redisdb.Session, privateKeyPath string) *Controller {
	return &Controller{user: user, session: session, privateKeyPath: privateKeyPath}
}

// storeActiveToken makes the new access token the only valid one for the
// user. A session store failure only logs; sign-in must still work.
func (uc Controller) storeActiveToken(c *web.Context, userID int, token string) {
	if uc.session == nil {
		return
	}
	if err := uc.session.SetActiveToken(c.Ctx, userID, token, commands.AccessTokenTTL); err != nil {
		log.Println("storing active token:", err)
	}
}

func (uc Controller) SignIn(c *web.Context) error {
	var data user.SignInRequest

	err := c.BindFunc(&data, "UserID", "Password")
	if err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.user.GetByUserID(c.Ctx, data.UserID)
	if err != nil {
		return c.RespondError(err)
	}

	if detail.Password == nil || detail.Role == nil {
		return c.RespondError(&web.Error{
			Err:    errors.New("user not found"),
			Status: http.StatusUnauthorized,
		})
	}

	if err = bcrypt.CompareHashAndPassword([]byte(*detail.Password), []byte(data.Password)); err != nil {
		return c.RespondError(web.NewRequestError(errors.New("incorrect password"), http.StatusBadRequest))
	}

	accessToken, refreshToken, err := commands.GenToken(commands.AuthClaims{
		ID:   detail.ID,
		Role: *detail.Role,
	}, uc.privateKeyPath)
	if err != nil {
		return c.RespondError(err)
	}

	uc.storeActiveToken(c, detail.ID, accessToken)

	return c.Respond(map[string]interface{}{
		"status": true,
		"data": map[string]interface{}{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
			"role":          *detail.Role,
		},
		"error": nil,
	}, http.StatusOK)
}

func (uc Controller) RefreshToken(c *web.Context) error {
	var data user.RefreshTokenRequest

	err := c.BindFunc(&data, "AccessToken", "RefreshToken")
	if err != nil {
		return c.RespondError(err)
	}

	_, refreshTokenClaims, err := commands.VerifyTokens(data.AccessToken, data.RefreshToken, uc.privateKeyPath)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
	}

	accessToken, refreshToken, err := commands.GenToken(commands.AuthClaims{
		ID:   refreshTokenClaims.UserId,
		Role: refreshTokenClaims.Role,
	}, uc.privateKeyPath)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "generating new tokens"), http.StatusInternalServerError))
	}

	uc.storeActiveToken(c, refreshTokenClaims.UserId, accessToken)

	return c.Respond(map[string]interface{}{
		"status": true,
		"data": map[string]string{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		},
		"error": nil,
	}, http.StatusOK)
}

// Logout drops the caller's active session.
func (uc Controller) Logout(c *web.Context) error {
	claims, ok := auth.GetClaims(c.Ctx)
	if !ok {
		return c.RespondError(web.NewRequestError(errors.New("token is required"), http.StatusUnauthorized))
	}

	if uc.session != nil {
		if err := uc.session.Clear(c.Ctx, claims.UserId); err != nil {
			return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
		}
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}
