// Package auth resolves an external (system, external_id) identity to an
// internal user — implicitly creating one on first contact — and mints
// the bearer session token the rest of the HTTP surface requires.
package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/nexuspointwg/corectl/internal/service"
	"github.com/nexuspointwg/corectl/pkg/config"
	"github.com/nexuspointwg/corectl/pkg/core"
	"github.com/nexuspointwg/corectl/pkg/utils/jwt"
)

// Routes registers the public login route on v1.
type Routes struct{}

func (Routes) Register(v1, authed *gin.RouterGroup, svc *service.Service) {
	v1.POST("/login", login(svc))
}

type loginRequest struct {
	System     string `json:"system" binding:"required,urlsafe"`
	ExternalID int64  `json:"external_id"`
}

type loginResponse struct {
	Token   string `json:"token"`
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
}

func login(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			core.WriteResponseBindErr(c, err, nil)
			return
		}

		ctx := c.Request.Context()
		user, err := svc.EnsureUser(ctx, req.System, req.ExternalID)
		if err != nil {
			core.WriteResponse(c, err, nil)
			return
		}

		isAdmin, err := svc.IsAdmin(ctx, user.ID)
		if err != nil {
			core.WriteResponse(c, err, nil)
			return
		}

		cfg := config.Get()
		token, err := jwt.GenerateToken(user.ID, cfg.JWT.Secret, cfg.JWT.Expiration)
		if err != nil {
			core.WriteResponse(c, err, nil)
			return
		}

		core.WriteResponse(c, nil, loginResponse{Token: token, UserID: user.ID.String(), IsAdmin: isAdmin})
	}
}
