package middleware

import (
	"errors"
	"strings"

	"portfolio/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const CtxSubjectKey = "subject"

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// QueryToken is the query parameter carrying a websocket access token.
const QueryToken = "token"

// Middleware requires an access token in the Authorization header.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return m.handler(false)
}

// WebSocket also accepts the token as ?token=, since browsers cannot set
// headers on a websocket handshake.
func (m *AuthMiddleware) WebSocket() fiber.Handler {
	return m.handler(true)
}

func (m *AuthMiddleware) handler(allowQuery bool) fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok && allowQuery {
			token = strings.TrimSpace(c.Query(QueryToken))
			ok = token != ""
		}
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", err)
		}

		if claims.TokenType != jwt.TokenTypeAccess || m.jwt.IsRefreshToken(claims) {
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil)
		}

		c.Locals(CtxSubjectKey, claims.Subject)
		return c.Next()
	}
}

// Subject returns the authenticated subject stored by the auth middleware.
func Subject(c fiber.Ctx) string {
	s, _ := c.Locals(CtxSubjectKey).(string)
	return s
}

func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
