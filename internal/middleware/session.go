package middleware

import (
	"net/http"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/repository"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CtxSessionTokenKey = "session_token" // string

	// cookie名
	sessionCookieName = "session_token"
)

// Session は訪問者ごとの不透明なトークンをcookieで配る。
// cookieが無い・知らないトークンなら新しいセッション行を作る。
func Session(cfg config.Config, sessions repository.SessionRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			if cookie, err := c.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
				_, err := sessions.Find(ctx, cookie.Value)
				if err == nil {
					c.Set(CtxSessionTokenKey, cookie.Value)
					return next(c)
				}
				// 知らないトークンだけ作り直す。DB障害でカートを捨てない。
				if err != repository.ErrNotFound {
					return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
				}
			}

			token := uuid.NewString()
			if err := sessions.Create(ctx, model.Session{Token: token, CartJSON: "{}"}); err != nil {
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}

			c.SetCookie(&http.Cookie{
				Name:     sessionCookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				Secure:   cfg.CookieSecure,
				SameSite: http.SameSiteLaxMode,
			})
			c.Set(CtxSessionTokenKey, token)

			return next(c)
		}
	}
}
