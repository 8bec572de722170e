package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/taskhub/taskhub-server/internal/api/http/handler"
	"github.com/taskhub/taskhub-server/internal/api/http/middleware"
	"github.com/taskhub/taskhub-server/internal/logger"
	"github.com/taskhub/taskhub-server/internal/model"
	"github.com/taskhub/taskhub-server/internal/service"
)

// Router wires handlers and middleware into a gin engine.
type Router struct {
	userService    *service.UserService
	taskService    *service.TaskService
	tokenService   *service.TokenService
	userStore      model.UserStore
	contextManager model.ContextManager
	allowedOrigins []string
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	userService *service.UserService,
	taskService *service.TaskService,
	tokenService *service.TokenService,
	userStore model.UserStore,
	contextManager model.ContextManager,
	allowedOrigins []string,
	logger *logger.Logger,
) *Router {
	return &Router{
		userService:    userService,
		taskService:    taskService,
		tokenService:   tokenService,
		userStore:      userStore,
		contextManager: contextManager,
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
}

// Register builds the gin engine with all routes and middleware.
// Registration and login are the only open endpoints besides the
// health check; everything else sits behind the auth gate.
func (r *Router) Register() *gin.Engine {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.userStore, r.contextManager, r.logger)

	corsConfig := cors.DefaultConfig()
	if len(r.allowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = r.allowedOrigins
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}

	e := gin.New()
	e.Use(gin.Recovery(), logging.Handle, cors.New(corsConfig))

	e.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	userHandler := handler.NewUser(r.userService, r.tokenService, r.contextManager, r.logger)
	taskHandler := handler.NewTask(r.taskService, r.contextManager, r.logger)

	e.POST("/users", userHandler.Register)
	e.POST("/users/login", userHandler.Login)

	authorized := e.Group("", authenticate.Handle)
	{
		authorized.POST("/users/logout", userHandler.Logout)
		authorized.POST("/users/logoutAll", userHandler.LogoutAll)
		authorized.GET("/users/me", userHandler.Me)
		authorized.GET("/users/:id", userHandler.GetByID)
		authorized.PATCH("/users/:id", userHandler.Update)
		authorized.DELETE("/users/:id", userHandler.Delete)

		authorized.POST("/tasks", taskHandler.Create)
		authorized.GET("/tasks", taskHandler.List)
		authorized.GET("/tasks/:id", taskHandler.GetByID)
		authorized.PATCH("/tasks/:id", taskHandler.Update)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)
	}

	return e
}
