package main

import (
	"log"
	"os"
	"strings"

	"finbe/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

// defaultCategorySeed is the global category tier. Seeded once at migration
// time; users can never modify it through the API.
var defaultCategorySeed = []models.Category{
	{Name: "Groceries", Icon: "🛒", Color: "#58D68D"},
	{Name: "Dining", Icon: "🍽️", Color: "#DC7633"},
	{Name: "Transport", Icon: "🚗", Color: "#5DADE2"},
	{Name: "Housing", Icon: "🏠", Color: "#AF7AC5"},
	{Name: "Utilities", Icon: "💡", Color: "#F4D03F"},
	{Name: "Health", Icon: "💊", Color: "#45B39D"},
	{Name: "Entertainment", Icon: "🎬", Color: "#EC7063"},
	{Name: "Shopping", Icon: "🛍️", Color: "#F5B041"},
	{Name: "Salary", Icon: "💰", Color: "#52BE80"},
	{Name: "Freelance", Icon: "💻", Color: "#85C1E9"},
	{Name: "Investments", Icon: "📈", Color: "#7FB3D5"},
	{Name: "Other", Icon: "📝", Color: "#85C1E9"},
}

func initDB() {
	var err error
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN.")
	}
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect postgres database:", err)
	}
	// Control schema migrations with env DB_AUTO_MIGRATE (default true). Any permission errors will be logged and ignored.
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	if shouldMigrate {
		// Migrate models individually so a failure on one doesn't block others
		if err := db.AutoMigrate(&models.User{}); err != nil {
			log.Printf("migration warning (users): %v", err)
		}
		if err := db.AutoMigrate(&models.Category{}); err != nil {
			log.Printf("migration warning (categories): %v", err)
		}
		if err := db.AutoMigrate(&models.Transaction{}); err != nil {
			log.Printf("migration warning (transactions): %v", err)
		}
		if err := db.AutoMigrate(&models.RefreshToken{}); err != nil {
			log.Printf("migration warning (refresh_tokens): %v", err)
		}
		if err := db.AutoMigrate(&models.PasswordResetToken{}); err != nil {
			log.Printf("migration warning (password_reset_tokens): %v", err)
		}
	}
	seedDB()
}

// seedDB ensures every default category exists. Idempotent, keyed by name
// within the default tier (user_id IS NULL).
func seedDB() {
	for _, c := range defaultCategorySeed {
		var cnt int64
		db.Model(&models.Category{}).Where("user_id IS NULL AND name = ?", c.Name).Count(&cnt)
		if cnt == 0 {
			seed := c
			if err := db.Create(&seed).Error; err != nil {
				log.Printf("failed to seed default category %q: %v", c.Name, err)
			}
		}
	}
	// Seeding changed the default tier, drop any cached copy.
	defaultCategoryCache.Delete(defaultCacheKey)
}
