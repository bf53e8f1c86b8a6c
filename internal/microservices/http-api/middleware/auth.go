package middleware

import (
	"net/http"
	"strings"

	"feedbackme/internal/microservices/http-api/dto"
	"feedbackme/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middlewares.
const (
	ContextClaims  = "claims"
	ContextUserID  = "userID"
	ContextProject = "project"
)

// APIKeyHeader carries a project's public key on widget requests.
const APIKeyHeader = "X-API-Key"

// bearerToken extracts the token from "Authorization: Bearer <token>".
// ok is false when the header is present but malformed.
func bearerToken(c *gin.Context) (token string, present, ok bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false, false
	}

	parts := strings.SplitN(authHeader, " ", 2) // 0 is Bearer, 1 is token
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", true, false
	}
	return parts[1], true, true
}

func setIdentity(c *gin.Context, claims *service.Claims) {
	c.Set(ContextClaims, claims)
	c.Set(ContextUserID, claims.UserID)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail(message))
}

// AuthMiddleware requires a valid access token in the Authorization header.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present, ok := bearerToken(c)
		if !present {
			abortUnauthorized(c, "Authentication required")
			return
		}
		if !ok {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid token is sent and
// otherwise lets the request through as a guest.
func OptionalAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, _, ok := bearerToken(c); ok {
			if claims, err := authService.ValidateToken(token); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

// APIKeyAuth resolves the X-API-Key header to an active project.
func APIKeyAuth(projectService service.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := strings.TrimSpace(c.GetHeader(APIKeyHeader))
		if apiKey == "" {
			abortUnauthorized(c, "API key required")
			return
		}

		project, err := projectService.ResolveAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			if service.KindOf(err) == service.KindUnknown {
				_ = c.Error(err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Fail("Internal server error"))
				return
			}
			abortUnauthorized(c, "Invalid API key")
			return
		}

		c.Set(ContextProject, project)
		c.Next()
	}
}

// UserID returns the authenticated caller's id, or "" for guests.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// Claims returns the caller's token claims when authenticated.
func Claims(c *gin.Context) (*service.Claims, bool) {
	value, exists := c.Get(ContextClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*service.Claims)
	return claims, ok
}

// Actor converts the caller's claims into a comment actor; guests get nil.
func Actor(c *gin.Context) *service.Actor {
	claims, ok := Claims(c)
	if !ok {
		return nil
	}
	return &service.Actor{UserID: claims.UserID, Email: claims.Email, Name: claims.Name}
}
