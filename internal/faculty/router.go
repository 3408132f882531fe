package faculty

import "github.com/gin-gonic/gin"

// SetupFacultyRoutes registers faculty endpoints. Listing and lookups are
// limited to staff; /me requires the faculty role itself.
func SetupFacultyRoutes(rg *gin.RouterGroup, controller *Controller, authn, facultyOnly, staffOnly, adminOnly gin.HandlerFunc) {
	routes := rg.Group("/faculty")
	routes.Use(authn)
	{
		routes.GET("/me", facultyOnly, controller.GetMe)
		routes.PUT("/me", facultyOnly, controller.UpdateMe)

		routes.GET("", staffOnly, controller.List)
		routes.GET("/:id", staffOnly, controller.Get)
		routes.PUT("/:id/status", adminOnly, controller.SetStatus)
	}
}
