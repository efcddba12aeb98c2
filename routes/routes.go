package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"studymate/controllers"
	"studymate/middleware"
	"studymate/services"
	"studymate/store"
)

// Deps carries everything the router needs, constructed once in main.
type Deps struct {
	DB    *gorm.DB // nil for in-memory runs
	Store store.Store
	Chat  *services.ChatService
	Quiz  *services.QuizService
}

func SetupRouter(r *gin.Engine, deps Deps) *gin.Engine {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck(deps.DB))

	// AI orchestrator endpoints
	ai := r.Group("/")
	ai.Use(middleware.AuthMiddleware(), middleware.StoreMiddleware(deps.Store))
	{
		ai.POST("/chat", controllers.SendChatMessage(deps.Chat))
		ai.POST("/quiz", controllers.GenerateQuiz(deps.Quiz))
	}

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.Use(middleware.StoreMiddleware(deps.Store))
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/logingoogle", controllers.GoogleLogin)
	}

	user := api.Group("/")
	user.Use(middleware.AuthMiddleware(), middleware.StoreMiddleware(deps.Store))
	{
		user.POST("/subjects", controllers.CreateSubject)
		user.GET("/subjects", controllers.GetSubjects)
		user.DELETE("/subjects/:id", controllers.DeleteSubject)

		user.POST("/subjects/:id/notes", controllers.CreateNote)
		user.GET("/subjects/:id/notes", controllers.GetNotes)
		user.DELETE("/notes/:id", controllers.DeleteNote)

		user.GET("/subjects/:id/chat", controllers.GetChatTranscript(deps.Chat))

		user.GET("/subjects/:id/quizzes", controllers.GetQuizzes)
		user.GET("/quizzes/:id", controllers.GetQuiz)
	}

	return r
}
