package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/taskhive/task-system/internal/core/ports"
)

// Auth validates the bearer token and injects the authenticated user into
// context. A token is accepted only when its signature verifies, its jti is
// still allowlisted in the token store, and the account still exists. The
// user record is fetched fresh on every request so role changes take effect
// immediately.
func Auth(jwtSecret string, tokens ports.TokenStore, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			jti, _ := claims["jti"].(string)
			sub, _ := claims["sub"].(string)
			if jti == "" || sub == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			ctx := c.Request().Context()
			active, err := tokens.Exists(ctx, jti)
			if err != nil || !active {
				return echo.NewHTTPError(http.StatusUnauthorized, "token is no longer valid")
			}

			userID, err := strconv.ParseInt(sub, 10, 64)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			user, err := users.FindByID(ctx, userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("user", user)
			c.Set("jti", jti)

			return next(c)
		}
	}
}

// bearerToken extracts the token from the Authorization header. Reports false
// when the header is absent or not a bearer scheme.
func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
