package database

import (
	"log"

	"github.com/jobvibe/jobvibe-api/internal/config"
	"github.com/jobvibe/jobvibe-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens both stores and runs migrations. The applications store
// holds applications, communications, reminders and chat sessions; the
// resumes store holds only resumes. There is deliberately no foreign key
// between the two.
func Connect(cfg *config.Config) (*gorm.DB, *gorm.DB) {
	appsDB, err := gorm.Open(postgres.Open(cfg.ApplicationsDSN), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to applications database:", err)
	}

	resumesDB, err := gorm.Open(postgres.Open(cfg.ResumesDSN), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to resumes database:", err)
	}

	log.Println("Database connections established")

	log.Println("Running Migrations...")
	if err := appsDB.AutoMigrate(
		&models.Application{},
		&models.Communication{},
		&models.Reminder{},
		&models.ChatSession{},
	); err != nil {
		log.Fatal("Applications store migration failed:", err)
	}
	if err := resumesDB.AutoMigrate(&models.Resume{}); err != nil {
		log.Fatal("Resumes store migration failed:", err)
	}

	return appsDB, resumesDB
}
