package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careops/clinic-api/internal/handler"
	"github.com/careops/clinic-api/internal/model"
	"github.com/careops/clinic-api/internal/service/auth"
	"github.com/careops/clinic-api/internal/service/authz"
)

// Context keys set by Authenticate.
const (
	ContextUserID    = "user_id"
	ContextUserRole  = "user_role"
	ContextUserEmail = "user_email"
)

type AuthMiddleware struct {
	authService *auth.Service
}

func NewAuthMiddleware(authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate verifies the bearer token and sets the decoded identity
// in the request context. Clients only ever see "not authorized"; the
// reason a token failed stays server-side.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.ErrorResponse{Message: "not authorized"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.ErrorResponse{Message: "not authorized"})
			return
		}

		claims, err := m.authService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.ErrorResponse{Message: "not authorized"})
			return
		}

		c.Set(ContextUserID, claims.UserID.String())
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextUserEmail, claims.Email)
		c.Next()
	}
}

// RequirePermission consults the policy table for the authenticated
// role before letting the handler run.
func (m *AuthMiddleware) RequirePermission(resource authz.Resource, action authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		if !authz.Can(role, resource, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, handler.ErrorResponse{Message: "permission denied"})
			return
		}
		c.Next()
	}
}

// Authorize derives (resource, action) from the route and consults the
// policy table. Routes outside the table pass through.
func (m *AuthMiddleware) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		resource, ok := resourceForPath(c.FullPath())
		if !ok {
			c.Next()
			return
		}

		role := c.GetString(ContextUserRole)
		if !authz.Can(role, resource, actionForMethod(c.Request.Method)) {
			c.AbortWithStatusJSON(http.StatusForbidden, handler.ErrorResponse{Message: "permission denied"})
			return
		}
		c.Next()
	}
}

func resourceForPath(path string) (authz.Resource, bool) {
	for _, segment := range strings.Split(path, "/") {
		switch segment {
		case "patients":
			return authz.ResourcePatient, true
		case "doctors":
			return authz.ResourceDoctor, true
		case "appointments":
			return authz.ResourceAppointment, true
		case "stats":
			return authz.ResourceStats, true
		}
	}
	return "", false
}

func actionForMethod(method string) authz.Action {
	switch method {
	case http.MethodPost:
		return authz.ActionCreate
	case http.MethodPut:
		return authz.ActionUpdate
	case http.MethodDelete:
		return authz.ActionDelete
	default:
		return authz.ActionRead
	}
}

// CurrentUser rebuilds the token claims from the request context.
func CurrentUser(c *gin.Context) (*model.TokenClaims, error) {
	userID, err := uuid.Parse(c.GetString(ContextUserID))
	if err != nil {
		return nil, err
	}
	return &model.TokenClaims{
		UserID: userID,
		Role:   c.GetString(ContextUserRole),
		Email:  c.GetString(ContextUserEmail),
	}, nil
}
