package router

import (
	"github.com/gin-gonic/gin"

	"github.com/tit-academy/crm-api/internal/handler"
	"github.com/tit-academy/crm-api/internal/middleware"
	"github.com/tit-academy/crm-api/internal/models"
	"github.com/tit-academy/crm-api/internal/service"
)

// Handlers bundles every HTTP handler the API mounts.
type Handlers struct {
	Auth       *handler.AuthHandler
	Group      *handler.GroupHandler
	Student    *handler.StudentHandler
	Attendance *handler.AttendanceHandler
	Medal      *handler.MedalHandler
	Product    *handler.ProductHandler
	Purchase   *handler.PurchaseHandler
	Dashboard  *handler.DashboardHandler
	Report     *handler.ReportHandler
}

// Mount registers every API route under the given prefix.
func Mount(r *gin.Engine, prefix string, h Handlers, auth *service.AuthService) {
	api := r.Group(prefix)
	api.Use(middleware.OptionalJWT(auth))

	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/auth/me", middleware.JWT(auth), h.Auth.Me)

	api.GET("/groups", h.Group.List)
	api.POST("/groups", h.Group.Create)
	api.GET("/groups/:id", h.Group.Get)
	api.PUT("/groups/:id", h.Group.Update)
	api.DELETE("/groups/:id", h.Group.Delete)

	api.GET("/students", h.Student.List)
	api.GET("/students/current", h.Student.Current)
	api.POST("/students", h.Student.Create)
	api.GET("/students/:id", h.Student.Get)
	api.PUT("/students/:id", h.Student.Update)
	api.DELETE("/students/:id", h.Student.Delete)

	api.GET("/attendance", h.Attendance.List)
	api.POST("/attendance", h.Attendance.Create)
	api.PUT("/attendance/:id", h.Attendance.Update)

	api.GET("/medals", h.Medal.List)
	api.POST("/medals", h.Medal.Create)
	api.DELETE("/medals/:id", h.Medal.Delete)

	api.GET("/products", h.Product.List)
	api.POST("/products", h.Product.Create)
	api.GET("/products/:id", h.Product.Get)
	api.PUT("/products/:id", h.Product.Update)
	api.DELETE("/products/:id", h.Product.Delete)

	api.GET("/purchases", h.Purchase.List)
	api.POST("/purchases", h.Purchase.Create)

	api.GET("/dashboard/stats", h.Dashboard.Stats)

	api.GET("/reports/medals", middleware.JWT(auth), middleware.RequireRoles(models.RoleAdmin), h.Report.Medals)
}
