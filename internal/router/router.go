package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"showcase/backend/internal/handler"
	"showcase/backend/internal/middleware"
	"showcase/backend/internal/service"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Countdown *handler.CountdownHandler
	Blog      *handler.BlogHandler
	Contact   *handler.ContactHandler
	Projects  *handler.ProjectHandler
}

func New(authService *service.AuthService, handlers Handlers, corsOrigins []string) *gin.Engine {
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.AccessLog(),
		gin.Recovery(),
		middleware.CORS(corsOrigins),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", handlers.Auth.Register)
	auth.POST("/login", handlers.Auth.Login)

	requireAuth := middleware.Auth(authService)

	countdown := api.Group("/countdown")
	countdown.Use(requireAuth)
	countdown.GET("/timers", handlers.Countdown.List)
	countdown.POST("/timers", handlers.Countdown.Create)
	countdown.DELETE("/timers/:id", handlers.Countdown.Delete)
	countdown.GET("/events", handlers.Countdown.Events)

	blog := api.Group("/blog")
	blog.GET("/posts", handlers.Blog.ListPosts)
	blog.GET("/search", handlers.Blog.Search)
	blog.GET("/posts/:postID/share", handlers.Blog.Share)
	blog.GET("/comments", requireAuth, handlers.Blog.Comments)
	blog.POST("/posts/:postID/comments", requireAuth, handlers.Blog.AddComment)

	portfolio := api.Group("/portfolio")
	portfolio.GET("/projects", handlers.Projects.List)
	portfolio.GET("/projects/:id", handlers.Projects.Get)
	portfolio.POST("/contact", requireAuth, handlers.Contact.Submit)
	portfolio.GET("/contact/count", requireAuth, handlers.Contact.Count)

	return engine
}
