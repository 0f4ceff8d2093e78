package main

import (
	"log"
	"os"

	"cardagency/config"
	"cardagency/database"
	"cardagency/models"

	"golang.org/x/crypto/bcrypt"
)

// Seeds the first admin profile so the dashboard can be logged into on a
// fresh database. Usage: SEED_EMAIL=... SEED_PASSWORD=... go run ./scripts
func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	email := os.Getenv("SEED_EMAIL")
	password := os.Getenv("SEED_PASSWORD")
	name := os.Getenv("SEED_NAME")
	if email == "" || password == "" {
		log.Fatal("SEED_EMAIL and SEED_PASSWORD are required")
	}
	if name == "" {
		name = "Administrator"
	}

	db := database.Database.Db

	// Do nothing if the profile already exists
	if err := db.Where("email = ?", email).First(&models.User{}).Error; err == nil {
		log.Printf("Profile for %s already exists, nothing to do", email)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.SaltRound)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := models.User{
		Name:     name,
		Email:    email,
		Role:     models.RoleAdmin,
		Password: string(hashedPassword),
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	log.Printf("Admin profile created for %s", email)
}
