package users

import "github.com/gin-gonic/gin"

// SetupUserRoutes registers profile endpoints. Everything here requires
// a valid access token; the listing is admin only.
func SetupUserRoutes(rg *gin.RouterGroup, controller *Controller, authn, adminOnly gin.HandlerFunc) {
	routes := rg.Group("/users")
	routes.Use(authn)
	{
		routes.GET("/me", controller.GetMe)
		routes.PUT("/me", controller.UpdateMe)
		routes.POST("/me/profile-image", controller.UploadProfileImage)

		routes.GET("", adminOnly, controller.ListUsers)
	}
}
