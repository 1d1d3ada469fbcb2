package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/WorkshopServices01/workshop-api/internal/config"
	dbpkg "github.com/WorkshopServices01/workshop-api/internal/db"
	"github.com/WorkshopServices01/workshop-api/internal/logging"
	"github.com/WorkshopServices01/workshop-api/internal/routes"
)

func main() {

	_ = godotenv.Load()
	logging.Setup()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
