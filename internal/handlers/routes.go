package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/instituto-brotar/painel-brotar/internal/middleware"
)

// entityRoutes are the handlers of one list plus form section
type entityRoutes interface {
	List(c *gin.Context)
	New(c *gin.Context)
	Create(c *gin.Context)
	Edit(c *gin.Context)
	Update(c *gin.Context)
	RequestDelete(c *gin.Context)
	ConfirmDelete(c *gin.Context)
}

func registerEntity(group *gin.RouterGroup, h entityRoutes) {
	group.GET("", h.List)
	group.GET("/novo", h.New)
	group.POST("/novo", h.Create)
	group.GET("/:id", h.Edit)
	group.POST("/:id", h.Update)
	group.GET("/:id/excluir", h.RequestDelete)
	group.POST("/:id/excluir", h.ConfirmDelete)
}

// Register mounts every page and JSON endpoint of the panel. loginLimiter
// throttles POST /login per client IP; nil disables it.
func Register(router gin.IRouter, panel *Panel, loginLimiter *middleware.IPRateLimiter, checks map[string]HealthCheck) {
	auth := NewAuthHandlers(panel)
	dashboard := NewDashboardHandlers(panel)
	producers := NewProducerHandlers(panel)
	properties := NewPropertyHandlers(panel)
	domains := NewDomainHandlers(panel)
	admins := NewAdminHandlers(panel)
	reports := NewReportHandlers(panel)
	api := NewAPIHandlers(panel, checks)

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, middleware.DashboardPath)
	})
	router.GET("/health", api.Health)

	router.GET(middleware.LoginPath, auth.LoginPage)
	if loginLimiter != nil {
		router.POST(middleware.LoginPath, middleware.Throttle(loginLimiter, auth.Throttled), auth.Login)
	} else {
		router.POST(middleware.LoginPath, auth.Login)
	}
	router.GET("/logout", auth.Logout)
	router.POST("/logout", auth.Logout)
	router.GET(SessionExpiredPath, auth.SessionExpired)
	router.GET(middleware.ChangePasswordPath, auth.ChangePasswordPage)
	router.POST(middleware.ChangePasswordPath, auth.ChangePassword)

	panelGroup := router.Group(middleware.DashboardPath)
	{
		panelGroup.GET("", dashboard.Home)

		registerEntity(panelGroup.Group("/produtores"), producers)
		panelGroup.GET("/produtores/exportar", producers.Export)

		registerEntity(panelGroup.Group("/propriedades"), properties)
		panelGroup.GET("/propriedades/exportar", properties.Export)

		registerEntity(panelGroup.Group("/dominios"), domains)

		registerEntity(panelGroup.Group("/admins"), admins)
		panelGroup.POST("/admins/:id/senha", admins.ChangePassword)

		panelGroup.GET("/relatorios", reports.List)
		panelGroup.GET("/relatorios/:id/pdf", reports.Download)
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/session", api.Session)
		v1.GET("/dashboard/stats", middleware.RequireSession(), dashboard.Stats)
	}
}
