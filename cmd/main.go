package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"studymate/config"
	"studymate/routes"
	"studymate/services"
	"studymate/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db, err := config.InitDB()
	if err != nil {
		log.Fatal("database init: ", err)
	}
	log.Println("PostgreSQL connected & migrated")

	gemini, err := services.NewGeminiClient(
		context.Background(),
		os.Getenv("GEMINI_API_KEY"),
		os.Getenv("GEMINI_MODEL"),
	)
	if err != nil {
		log.Fatal("gemini init: ", err)
	}
	defer gemini.Close()

	st := store.NewGormStore(db)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r = routes.SetupRouter(r, routes.Deps{
		DB:    db,
		Store: st,
		Chat:  services.NewChatService(st, gemini),
		Quiz:  services.NewQuizService(st, gemini),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Server running at port " + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("server: ", err)
	}
}
