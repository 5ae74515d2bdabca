package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/nexuspointwg/corectl/cmd/app/middleware"
	"github.com/nexuspointwg/corectl/internal/service"
	"github.com/nexuspointwg/corectl/internal/store"
	"github.com/nexuspointwg/corectl/pkg/environment"

	_ "github.com/nexuspointwg/corectl/api/swagger/docs"
)

// Routes is implemented by each cmd/app/routes/* package: a thin layer
// translating HTTP requests into calls on the service (C7).
type Routes interface {
	Register(v1, authed *gin.RouterGroup, svc *service.Service)
}

// New builds the gin engine: middleware, health checks, swagger, and every
// registered route group bound to storeIns and svc.
func New(storeIns store.Factory, svc *service.Service, groups ...Routes) *gin.Engine {
	if !environment.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()
	SetupMiddlewares(engine)
	_ = engine.SetTrustedProxies(nil)

	v1 := engine.Group("/api/v1")
	authed := v1.Group("/")
	authed.Use(middleware.JWTAuth(storeIns))

	engine.GET("/livez", func(c *gin.Context) { c.String(200, "livez") })
	engine.GET("/readyz", func(c *gin.Context) { c.String(200, "readyz") })
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	for _, g := range groups {
		g.Register(v1, authed, svc)
	}

	return engine
}
