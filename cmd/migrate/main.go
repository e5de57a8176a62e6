package main

import (
	"log"

	"trekora/config"
	"trekora/internal/entity"
)

func main() {
	cfg := config.Load()
	db := config.ConnectDB(cfg.DatabaseURL)

	err := db.AutoMigrate(
		&entity.User{},
		&entity.VerificationToken{},
		&entity.Session{},
		&entity.AuthEvent{},
	)
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	log.Println("migration complete")
}
