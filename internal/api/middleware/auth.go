package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/goodplates/recipes-api/internal/core/domain"
	"github.com/goodplates/recipes-api/internal/core/ports"
)

// Context keys populated by Auth for downstream handlers.
const (
	PrincipalKey = "principal"
	TokenIDKey   = "jti"
	TokenExpKey  = "exp"
)

// Auth returns middleware that authenticates requests with a Bearer JWT.
// It verifies the HS256 signature, rejects revoked tokens, and stores the
// authenticated principal plus token metadata in the request context.
func Auth(secret string, denylist ports.TokenDenylist) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := extractBearer(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			jti, _ := claims[TokenIDKey].(string)
			if jti != "" {
				revoked, err := denylist.IsRevoked(c.Request().Context(), jti)
				if err != nil {
					return err
				}
				if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token has been revoked")
				}
			}

			principal, err := principalFromClaims(claims)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			c.Set(PrincipalKey, principal)
			c.Set(TokenIDKey, jti)
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				c.Set(TokenExpKey, exp.Time)
			} else {
				c.Set(TokenExpKey, time.Time{})
			}

			return next(c)
		}
	}
}

func extractBearer(header string) (string, error) {
	if header == "" {
		return "", fmt.Errorf("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", fmt.Errorf("authorization header must be a bearer token")
	}
	return parts[1], nil
}

func principalFromClaims(claims jwt.MapClaims) (domain.Principal, error) {
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return domain.Principal{}, fmt.Errorf("token has no subject")
	}
	username, _ := claims["username"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)

	return domain.Principal{
		ID:       sub,
		Username: username,
		Name:     name,
		Role:     role,
	}, nil
}

// PrincipalFrom retrieves the authenticated principal stored by Auth.
// The boolean is false when the request was not authenticated.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(PrincipalKey).(domain.Principal)
	return p, ok
}
