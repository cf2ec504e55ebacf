package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"
)

var contextSessionKey = "session"

// sessionMiddleware resolves the bearer token to a live session and
// stashes it on the request context.
func sessionMiddleware(sessions *SessionManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token := bearerToken(ctx)
			if token == "" {
				return errUnauthorized
			}
			sess, err := sessions.Get(token)
			if err != nil {
				return err
			}
			ctx.Set(contextSessionKey, sess)
			return next(ctx)
		}
	}
}

func bearerToken(ctx echo.Context) string {
	auth := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return auth[7:]
	}
	return ""
}

func getContextSession(ctx echo.Context) (*Session, error) {
	if sess, ok := ctx.Get(contextSessionKey).(*Session); ok {
		return sess, nil
	}
	return nil, errUnauthorized
}
