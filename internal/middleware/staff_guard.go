package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// contextに入っているis_staffを確認します。
// AuthJWTの後ろに置くこと。メソッドに関係なく非スタッフは403。
func StaffGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Get(CtxIsStaffKey)
			isStaff, ok := raw.(bool)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if !isStaff {
				return c.JSON(http.StatusForbidden, errorJSON("staff only"))
			}

			return next(c)
		}
	}
}
