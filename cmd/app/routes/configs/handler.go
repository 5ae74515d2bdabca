// Package configs translates HTTP requests into calls on the reconciler's
// config-scoped operations: create, remove, read, list, rename, toggle
// settings, issue a pair code, and render the emitted client config.
// Authorization is left entirely to the service layer: handlers only
// extract the caller identity the JWT middleware resolved and forward
// it.
package configs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nexuspointwg/corectl/cmd/app/middleware"
	"github.com/nexuspointwg/corectl/internal/pkg/code"
	"github.com/nexuspointwg/corectl/internal/service"
	"github.com/nexuspointwg/corectl/pkg/core"
	"github.com/HappyLadySauce/errors"
)

// Routes registers the config-scoped HTTP surface under authed.
type Routes struct{}

func (Routes) Register(v1, authed *gin.RouterGroup, svc *service.Service) {
	g := authed.Group("/configs")
	g.GET("", list(svc))
	g.POST("", create(svc))
	g.GET("/:id", get(svc))
	g.DELETE("/:id", remove(svc))
	g.PATCH("/:id", rename(svc))
	g.POST("/:id/settings", changeSettings(svc))
	g.GET("/:id/render", render(svc))
	g.GET("/:id/pair-code", pairCode(svc))

	v1.POST("/pair", createAssociation(svc))
}

func callerFrom(c *gin.Context) (uuid.UUID, bool) {
	return c.MustGet(middleware.UserIDKey).(uuid.UUID), c.MustGet(middleware.IsAdminKey).(bool)
}

func configID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.WithCode(code.ErrValidation, "id must be a valid uuid")
	}
	return id, nil
}

type createRequest struct {
	Name      string  `json:"name" binding:"required,urlsafe,nochinese,max=64"`
	PublicKey *string `json:"public_key,omitempty"`
}

// create implements new_config.
func create(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			core.WriteResponseBindErr(c, err, nil)
			return
		}
		userID, _ := callerFrom(c)

		id, err := svc.NewConfig(c.Request.Context(), userID, req.Name, req.PublicKey)
		core.WriteResponse(c, err, gin.H{"id": id})
	}
}

// remove implements rm_config.
func remove(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := configID(c)
		if err != nil {
			core.WriteResponse(c, err, nil)
			return
		}
		userID, isAdmin := callerFrom(c)
		err = svc.RmConfig(c.Request.Context(), userID, isAdmin, id)
		core.WriteResponse(c, err, nil)
	}
}

// get implements config(user, id).
func get(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := configID(c)
		if err != nil {
			core.WriteResponse(c, err, nil)
			return
		}
		userID, isAdmin := callerFrom(c)
		cfg, err := svc.GetConfig(c.Request.Context(), userID, isAdmin, id)
		core.WriteResponse(c, err, cfg)
	}
}

// list implements configs(user_id) for the calling user.
func list(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := callerFrom(c)
		list, err := svc.ListConfigs(c.Request.Context(), userID)
		core.WriteResponse(c, err, list)
	}
}

type renameRequest struct {
	Name string `json:"name" binding:"required,urlsafe,nochinese,max=64"`
}

// rename implements rename_config.
func rename(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := configID(c)
		if err != nil {
			core.WriteResponse(c, err, nil)
			return
		}
		var req renameRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			core.WriteResponseBindErr(c, err, nil)
			return
		}
		userID, isAdmin := callerFrom(c)
		err = svc.RenameConfig(c.Request.Context(), userID, isAdmin, id, req.Name)
		core.WriteResponse(c, err, nil)
	}
}

type settingsRequest struct {
	DoubleVPN bool `json:"double_vpn"`
}

// changeSettings implements change_settings(ip, double_vpn), addressed by
// config id (see internal/service.ChangeSettings doc comment).
func changeSettings(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := configID(c)
		if err != nil {
			core.WriteResponse(c, err, nil)
			return
		}
		var req settingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			core.WriteResponseBindErr(c, err, nil)
			return
		}
		userID, isAdmin := callerFrom(c)
		err = svc.ChangeSettings(c.Request.Context(), userID, isAdmin, id, req.DoubleVPN)
		core.WriteResponse(c, err, nil)
	}
}

// render emits the client-facing WireGuard config text as plain text.
func render(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := configID(c)
		if err != nil {
			core.WriteResponse(c, err, nil)
			return
		}
		userID, isAdmin := callerFrom(c)
		text, err := svc.RenderConfig(c.Request.Context(), userID, isAdmin, id)
		if err != nil {
			core.WriteResponse(c, err, nil)
			return
		}
		c.String(http.StatusOK, "%s", text)
	}
}

// pairCode issues a signed token binding the config's assigned address.
func pairCode(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := configID(c)
		if err != nil {
			core.WriteResponse(c, err, nil)
			return
		}
		userID, isAdmin := callerFrom(c)
		token, err := svc.PairCode(c.Request.Context(), userID, isAdmin, id)
		core.WriteResponse(c, err, gin.H{"token": token})
	}
}

type associationRequest struct {
	Token      string `json:"token" binding:"required"`
	System     string `json:"system" binding:"required,urlsafe"`
	ExternalID int64  `json:"external_id"`
}

// createAssociation binds an external identity to the config a pair
// token names. It is unauthenticated by design: the HMAC-signed token
// is the caller's proof of ownership, letting an external identity
// claim a tunnel IP without a prior session.
func createAssociation(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req associationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			core.WriteResponseBindErr(c, err, nil)
			return
		}
		user, err := svc.CreateAssociation(c.Request.Context(), req.Token, req.System, req.ExternalID)
		core.WriteResponse(c, err, user)
	}
}
