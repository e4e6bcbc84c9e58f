package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/banco/cliente-api/internal/api/metrics"
	"github.com/banco/cliente-api/internal/core/domain"
	"github.com/banco/cliente-api/internal/core/ports"
	"github.com/banco/cliente-api/internal/core/service"
)

// principalKey is the echo context key under which the request's authenticated
// principal is stored. The value is request-scoped and discarded when the
// request ends.
const principalKey = "principal"

// Auth is the per-request authentication gateway. It extracts the bearer
// token, validates it, and re-fetches the account so the principal carries the
// account's current roles rather than whatever the token was issued with.
//
// A missing, malformed, or invalid token does NOT fail the request here: the
// request proceeds anonymously and the authorization policy decides based on
// route sensitivity.
func Auth(tokens ports.TokenService, users ports.UserRepository, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c)
			if raw == "" {
				return next(c)
			}

			subject, err := tokens.Validate(raw)
			if err != nil {
				result := "invalid"
				if errors.Is(err, service.ErrTokenExpired) {
					result = "expired"
				}
				metrics.TokenValidationsTotal.WithLabelValues(result).Inc()
				log.Warn().Err(err).Str("path", c.Path()).Msg("bearer token rejected")
				return next(c)
			}

			// The token is structurally valid, but the account is the source
			// of truth for current roles. A vanished account means no identity.
			user, err := users.FindByUsername(c.Request().Context(), subject)
			if err != nil {
				metrics.TokenValidationsTotal.WithLabelValues("unknown_account").Inc()
				log.Warn().Str("subject", subject).Msg("token subject has no account")
				return next(c)
			}

			metrics.TokenValidationsTotal.WithLabelValues("success").Inc()
			log.Debug().Str("username", user.Username).Strs("roles", user.Roles).Msg("principal established")

			c.Set(principalKey, domain.Principal{Username: user.Username, Roles: user.Roles})
			return next(c)
		}
	}
}

// PrincipalFrom returns the authenticated principal established by Auth,
// or ok=false when the request is anonymous.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
