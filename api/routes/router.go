// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"campus/internal/auth"
	"campus/internal/departments"
	"campus/internal/faculty"
	"campus/internal/notifications"
	"campus/internal/shared/config"
	"campus/internal/shared/database"
	"campus/internal/shared/middleware"
	"campus/internal/students"
	"campus/internal/users"
	"campus/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config *config.Config
	db     *database.DB
	mailer notifications.Service

	// Built once in SetupRoutes and shared by every module.
	tokenCodec *auth.TokenCodec
	usersRepo  users.Repository
	authn      gin.HandlerFunc
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, mailer notifications.Service) *Router {
	return &Router{
		config: cfg,
		db:     db,
		mailer: mailer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	r.tokenCodec = auth.NewTokenCodec(r.config.JWT)
	r.usersRepo = users.NewRepository(r.db.GetPostgreSQL())
	r.authn = middleware.JWTAuth(r.tokenCodec, r.usersRepo)

	adminOnly := middleware.RequireAdmin()
	staffOnly := middleware.RequireStaff()
	studentOnly := middleware.RequireRoles(string(users.RoleStudent))
	facultyOnly := middleware.RequireRoles(string(users.RoleFaculty))

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupUserRoutes(api, adminOnly)
		r.setupDepartmentRoutes(api, adminOnly)
		r.setupStudentRoutes(api, studentOnly, staffOnly)
		r.setupFacultyRoutes(api, facultyOnly, staffOnly, adminOnly)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "campus-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "campus-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	verifier := auth.NewVerificationTokenGenerator(r.config.JWT.VerificationTTL)
	validator := auth.NewRegistrationValidator(r.config.Password)
	authService := auth.NewService(authRepo, r.tokenCodec, verifier, validator, r.mailer)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.authn)

	authRouter.SetupRoutes(rg)
}

// setupUserRoutes configures profile routes
func (r *Router) setupUserRoutes(rg *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	cacheService := cache.NewService(r.db.GetRedisClient())
	userService := users.NewService(r.usersRepo, r.config, users.SaveToDisk, cacheService)
	userController := users.NewController(userService)

	users.SetupUserRoutes(rg, userController, r.authn, adminOnly)
}

// setupDepartmentRoutes configures department management routes
func (r *Router) setupDepartmentRoutes(rg *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	departmentRepo := departments.NewRepository(r.db.GetPostgreSQL())
	cacheService := cache.NewService(r.db.GetRedisClient())
	departmentService := departments.NewService(departmentRepo, cacheService)
	departmentController := departments.NewController(departmentService)

	departments.SetupDepartmentRoutes(rg, departmentController, r.authn, adminOnly)
}

// setupStudentRoutes configures student record routes
func (r *Router) setupStudentRoutes(rg *gin.RouterGroup, studentOnly, staffOnly gin.HandlerFunc) {
	studentRepo := students.NewRepository(r.db.GetPostgreSQL())
	studentService := students.NewService(studentRepo)
	studentController := students.NewController(studentService)

	students.SetupStudentRoutes(rg, studentController, r.authn, studentOnly, staffOnly)
}

// setupFacultyRoutes configures faculty record routes
func (r *Router) setupFacultyRoutes(rg *gin.RouterGroup, facultyOnly, staffOnly, adminOnly gin.HandlerFunc) {
	facultyRepo := faculty.NewRepository(r.db.GetPostgreSQL())
	facultyService := faculty.NewService(facultyRepo)
	facultyController := faculty.NewController(facultyService)

	faculty.SetupFacultyRoutes(rg, facultyController, r.authn, facultyOnly, staffOnly, adminOnly)
}
