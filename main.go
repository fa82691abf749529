package main

import (
	"fmt"
	"log"

	"github.com/cb023725/pos-project/configs"
	"github.com/cb023725/pos-project/middlewares"
	"github.com/cb023725/pos-project/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	db := configs.DB()

	// migrate (rebuilds the orders collections on an incompatible schema)
	configs.SetupDatabase()

	if err := configs.SeedAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}
	if err := configs.SeedMenu(); err != nil {
		log.Fatalf("seed menu failed: %v", err)
	}

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())

	routes.RegisterRoutes(r, db, cfg)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("POS server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
