package students

import "github.com/gin-gonic/gin"

// SetupStudentRoutes registers student routes. A student can read their
// own record; listing and academic updates are staff operations.
func SetupStudentRoutes(rg *gin.RouterGroup, controller *Controller, authn, studentOnly, staffOnly gin.HandlerFunc) {
	group := rg.Group("/students")
	group.Use(authn)
	{
		group.GET("/me", studentOnly, controller.GetMe)

		group.GET("", staffOnly, controller.List)
		group.GET("/:id", staffOnly, controller.Get)
		group.PUT("/:id/academic", staffOnly, controller.UpdateAcademic)
	}
}
