package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/salvadodental/booking-api/internal/model"
	"github.com/salvadodental/booking-api/pkg/auth"
	"github.com/salvadodental/booking-api/pkg/errors"
	"github.com/salvadodental/booking-api/pkg/httputil"
)

const ContextClaims = "claims"

type AuthMiddleware struct {
	jwtService auth.JWTService
}

func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// Authenticate verifies the bearer token and stores the resolved claims in
// context. The role is fixed at token validation; handlers never re-derive it.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httputil.RespondWithError(c, errors.Unauthorized(nil))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.RespondWithError(c, errors.Unauthorized(nil))
			c.Abort()
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			httputil.RespondWithError(c, errors.Unauthorized(err))
			c.Abort()
			return
		}

		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// RequireRole gates a route group to a single role.
func (m *AuthMiddleware) RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			httputil.RespondWithError(c, errors.Unauthorized(nil))
			c.Abort()
			return
		}
		if claims.Role != role {
			httputil.RespondWithError(c, errors.Forbidden("insufficient role"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// ClaimsFromContext extracts the authenticated claims set by Authenticate.
func ClaimsFromContext(c *gin.Context) (*model.TokenClaims, bool) {
	value, exists := c.Get(ContextClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*model.TokenClaims)
	return claims, ok
}
