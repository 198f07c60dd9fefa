package main

import (
	"log"

	"hotelier/internal/config"
	"hotelier/internal/database"
	"hotelier/internal/pkg/jwt"
	"hotelier/internal/repository"
	"hotelier/internal/server"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	if err := repository.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	jwtService := jwt.New(cfg.JWTSecret, cfg.JWTTTL)

	r := server.New(db, jwtService)

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
