// Package admin translates HTTP requests into grant/revoke admin-role
// calls against the service.
package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nexuspointwg/corectl/cmd/app/middleware"
	"github.com/nexuspointwg/corectl/internal/pkg/code"
	"github.com/nexuspointwg/corectl/internal/service"
	"github.com/nexuspointwg/corectl/pkg/core"
	"github.com/HappyLadySauce/errors"
)

// Routes registers the admin-management HTTP surface under authed.
type Routes struct{}

func (Routes) Register(v1, authed *gin.RouterGroup, svc *service.Service) {
	g := authed.Group("/admin")
	g.POST("/:user_id", grant(svc))
	g.DELETE("/:user_id", revoke(svc))
}

func targetID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		return uuid.Nil, errors.WithCode(code.ErrValidation, "user_id must be a valid uuid")
	}
	return id, nil
}

// grant implements add_admin.
func grant(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		target, err := targetID(c)
		if err != nil {
			core.WriteResponse(c, err, nil)
			return
		}
		isAdmin := c.MustGet(middleware.IsAdminKey).(bool)
		err = svc.AddAdmin(c.Request.Context(), isAdmin, target)
		core.WriteResponse(c, err, nil)
	}
}

// revoke implements rm_admin.
func revoke(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		target, err := targetID(c)
		if err != nil {
			core.WriteResponse(c, err, nil)
			return
		}
		isAdmin := c.MustGet(middleware.IsAdminKey).(bool)
		err = svc.RemoveAdmin(c.Request.Context(), isAdmin, target)
		core.WriteResponse(c, err, nil)
	}
}
