package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/nexuspointwg/corectl/internal/pkg/code"
	"github.com/nexuspointwg/corectl/internal/store"
	"github.com/nexuspointwg/corectl/pkg/config"
	"github.com/nexuspointwg/corectl/pkg/core"
	"github.com/nexuspointwg/corectl/pkg/utils/jwt"
	"github.com/HappyLadySauce/errors"
)

const (
	// UserIDKey is the context key holding the authenticated user's id.
	UserIDKey = "user_id"
	// IsAdminKey is the context key holding the authenticated user's
	// admin status, resolved fresh from the store on every request so a
	// role change takes effect immediately.
	IsAdminKey = "is_admin"
)

// JWTAuth authenticates a bearer token and loads the caller's current
// admin status from the store.
func JWTAuth(s store.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := config.Get()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			klog.V(1).Infof("missing authorization header")
			core.WriteResponse(c, errors.WithCode(code.ErrMissingHeader, "%s", code.Message(code.ErrMissingHeader)), nil)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			klog.V(1).Infof("invalid authorization header format")
			core.WriteResponse(c, errors.WithCode(code.ErrInvalidAuthHeader, "%s", code.Message(code.ErrInvalidAuthHeader)), nil)
			c.Abort()
			return
		}

		claims, err := jwt.ParseToken(parts[1], cfg.JWT.Secret)
		if err != nil {
			klog.V(1).InfoS("invalid bearer token", "error", err)
			core.WriteResponse(c, err, nil)
			c.Abort()
			return
		}

		if s == nil {
			core.WriteResponse(c, errors.WithCode(code.ErrStoreNotInitialized, "%s", code.Message(code.ErrStoreNotInitialized)), nil)
			c.Abort()
			return
		}

		if _, err := s.Users().Get(context.Background(), claims.UserID); err != nil {
			klog.V(1).InfoS("failed to load user from store", "error", err)
			core.WriteResponse(c, errors.WithCode(code.ErrTokenInvalid, "%s", code.Message(code.ErrTokenInvalid)), nil)
			c.Abort()
			return
		}

		isAdmin, err := s.Roles().IsAdmin(context.Background(), claims.UserID)
		if err != nil {
			core.WriteResponse(c, err, nil)
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(IsAdminKey, isAdmin)
		c.Next()
	}
}
