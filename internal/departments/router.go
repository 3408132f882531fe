package departments

import "github.com/gin-gonic/gin"

// SetupDepartmentRoutes registers department routes. Listing and detail
// are public (registration forms need them before login); mutations and
// stats require an authenticated admin.
func SetupDepartmentRoutes(rg *gin.RouterGroup, controller *Controller, authn, adminOnly gin.HandlerFunc) {
	public := rg.Group("/departments")
	{
		public.GET("", controller.List)
		public.GET("/:id", controller.Get)
	}

	admin := rg.Group("/departments")
	admin.Use(authn, adminOnly)
	{
		admin.POST("", controller.Create)
		admin.PUT("/:id", controller.Update)
		admin.DELETE("/:id", controller.Delete)
		admin.GET("/:id/stats", controller.Stats)
	}
}
