package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Niranjjith/Attendance-System/foundation/web"
	"github.com/Niranjjith/Attendance-System/internal/auth"
	"github.com/Niranjjith/Attendance-System/internal/pkg/repository/redisdb"
)

func Authenticate(a *auth.Auth, session *redisdb.Session, role ...string) web.Middleware {
	// This is the actual middleware function to be executed.
	m := func(handler web.Handler) web.Handler {

		// Create the handler that will be attached in the middleware chain.
		h := func(c *web.Context) error {

			// Expecting: Bearer <token>
			authStr := c.Request.Header.Get("authorization")

			// Parse the authorization header.
			parts := strings.Split(authStr, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				err := errors.New("expected authorization header format: Bearer <token>")
				return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
			}

			// Validate the token is signed by us.
			claims, err := a.ValidateToken(parts[1])
			if err != nil {
				return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
			}

			// One active session per user: a token that is not the stored one
			// was superseded by a later sign-in. A session store outage only
			// logs; it must not lock everyone out.
			if session != nil {
				active, err := session.ActiveToken(c.Ctx, claims.UserId)
				if err != nil {
					log.Println("checking active token:", err)
				} else if active != "" && active != parts[1] {
					return c.RespondError(web.NewRequestError(errors.New("session expired, signed in elsewhere"), http.StatusUnauthorized))
				}
			}

			// Check role inside token data.
			if ok := claims.Authorized(role...); !ok && (len(role) > 0) {
				return c.RespondError(web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusUnauthorized))
			}

			// Add claims to the context so that they can be retrieved later.
			c.Ctx = context.WithValue(c.Ctx, auth.Key, claims)

			// Call the next handler.
			return handler(c)
		}

		return h
	}

	return m
}
