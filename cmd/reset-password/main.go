package main

import (
	"flag"
	"log"

	"agrichain/internal/model"
	"agrichain/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Ops escape hatch: reset a locked-out user's password from the shell.
func main() {
	userID := flag.String("user", "", "user_id of the account to reset")
	newPassword := flag.String("password", "", "new password to set")
	flag.Parse()

	if *userID == "" || *newPassword == "" {
		log.Fatal("usage: reset-password -user <user_id> -password <new_password>")
	}

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()

	// 3. Find the user
	var user model.User
	if err := db.Where("user_id = ?", *userID).First(&user).Error; err != nil {
		log.Fatalf("User %s not found in database: %v", *userID, err)
	}

	// 4. Hash new password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	// 5. Update
	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		log.Fatalf("Failed to update password in DB: %v", err)
	}

	log.Printf("Password for %s has been reset", *userID)
}
