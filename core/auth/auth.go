package auth

import (
	"crypto/hmac"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"kms.GO/config"
)

// Middleware gates the /api group behind the shared admin token carried in
// the X-Admin-Token header. Public catalog reads are skipped via the path
// list in config. The token is checked before any side-effecting work.
func Middleware() echo.MiddlewareFunc {
	skipper := buildSkipper()
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup: "header:X-Admin-Token",
		Validator: func(key string, c echo.Context) (bool, error) {
			return ValidToken(key), nil
		},
		Skipper: skipper,
		ErrorHandler: func(err error, c echo.Context) error {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"error":   "Unauthorized",
			})
		},
	})
}

// buildSkipper exempts the public read-only catalog paths. Mutations on the
// same paths still require the token.
func buildSkipper() middleware.Skipper {
	skipPaths := config.GetAuthSkipperPaths()
	return func(c echo.Context) bool {
		if c.Request().Method != http.MethodGet {
			return false
		}
		path := c.Path()
		for _, skip := range skipPaths {
			if path == skip {
				return true
			}
		}
		return false
	}
}

// ValidToken compares in constant time. An unset ADMIN_TOKEN locks every
// admin operation out rather than opening it up.
func ValidToken(token string) bool {
	want := os.Getenv("ADMIN_TOKEN")
	if want == "" {
		return false
	}
	return hmac.Equal([]byte(token), []byte(want))
}
