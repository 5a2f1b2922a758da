package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aura-events/venues/internal/apperr"
	"github.com/aura-events/venues/internal/auth"
	"github.com/aura-events/venues/internal/models"
)

// ContextPrincipal is the key for the verified principal in gin context.
const ContextPrincipal = "principal"

// TokenValidator verifies bearer tokens.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// JWT returns a middleware that verifies the bearer token and stores the principal in context.
// It does not look at the principal type; see RequirePrincipalType.
func JWT(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abort(c, apperr.Unauthorized("Missing authorization header"))
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			abort(c, apperr.Unauthorized("Invalid authorization header"))
			return
		}
		claims, err := tokens.Validate(strings.TrimSpace(parts[1]))
		if err != nil {
			abort(c, apperr.Unauthorized("Invalid or expired token"))
			return
		}
		c.Set(ContextPrincipal, claims.Principal())
		c.Next()
	}
}

// RequirePrincipalType allows only principals of the given type. Call after JWT.
func RequirePrincipalType(principalType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok || p.Type != principalType {
			abort(c, apperr.Unauthorized("Invalid token"))
			return
		}
		c.Next()
	}
}

// PrincipalFrom returns the principal stored by JWT.
func PrincipalFrom(c *gin.Context) (models.Principal, bool) {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return models.Principal{}, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
