package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/gebv/bcpay/services"
)

const (
	RoleStaff = "staff"

	bearerPrefix = "Bearer "
)

var signingMethod = jwt.SigningMethodHS256

// Claims содержимое токена админского API.
type Claims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// NewToken подписывает токен для subject с ролями, ttl 0 без срока действия.
func NewToken(secret []byte, subject string, roles []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  subject,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	s, err := jwt.NewWithClaims(signingMethod, claims).SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "Failed sign token")
	}
	return s, nil
}

// Middleware проверяет Bearer токен и кладет клиента в контекст.
// Если заданы roles, у клиента должна быть хотя бы одна из них.
func Middleware(secret []byte, roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			l := services.GetLogger(req.Context())

			header := req.Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, bearerPrefix) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access token is required.")
			}

			var claims Claims
			_, err := jwt.ParseWithClaims(
				strings.TrimPrefix(header, bearerPrefix),
				&claims,
				func(*jwt.Token) (interface{}, error) { return secret, nil },
				jwt.WithValidMethods([]string{signingMethod.Alg()}),
			)
			if err != nil {
				l.Warn("Invalid access token.", zap.Error(err))
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid access token.")
			}

			client := &services.Client{Subject: claims.Subject, Roles: claims.Roles}
			if !allowed(client, roles) {
				l.Warn("Access denied.", zap.String("subject", client.Subject), zap.Strings("roles", client.Roles))
				return echo.NewHTTPError(http.StatusForbidden, "Access denied.")
			}

			c.SetRequest(req.WithContext(services.SetClient(req.Context(), client)))
			return next(c)
		}
	}
}

func allowed(c *services.Client, roles []string) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if c.HasRole(r) {
			return true
		}
	}
	return false
}
