package database

import (
	"log"
	"time"

	"github.com/jobvibe/jobvibe-api/internal/models"
	"gorm.io/gorm"
)

// SeedDemoData populates the applications store with a small demo
// pipeline. It is a no-op when any application already exists.
func SeedDemoData(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Application{}).Count(&count).Error; err != nil {
		log.Println("Demo seed skipped:", err)
		return
	}
	if count > 0 {
		return
	}

	now := time.Now()
	apps := []models.Application{
		{
			CompanyName: "Shopify",
			RoleTitle:   "Backend Developer Intern",
			DateApplied: now.AddDate(0, 0, -21),
			Status:      models.StatusInterview,
			Source:      "Company Site",
			Location:    "Toronto, ON",
			Duration:    "12 months",
		},
		{
			CompanyName: "RBC",
			RoleTitle:   "Software Engineer Co-op",
			DateApplied: now.AddDate(0, 0, -14),
			Status:      models.StatusApplied,
			Source:      "LinkedIn",
			Location:    "Remote",
			Duration:    "4 months",
		},
		{
			CompanyName: "Telus",
			RoleTitle:   "Platform Engineer",
			DateApplied: now.AddDate(0, 0, -30),
			Status:      models.StatusRejected,
			Source:      "Referral",
			Location:    "Vancouver, BC",
		},
	}
	if err := db.Create(&apps).Error; err != nil {
		log.Println("Demo seed failed:", err)
		return
	}

	comms := []models.Communication{
		{
			ApplicationID: apps[0].ID,
			Type:          models.CommTypeInterviewInvite,
			Message:       "We'd love to schedule a technical interview next week.",
			SenderName:    "Shopify Talent",
			SenderEmail:   "talent@shopify.com",
			Timestamp:     now.AddDate(0, 0, -7),
		},
		{
			ApplicationID: apps[2].ID,
			Type:          models.CommTypeRejection,
			Message:       "We have decided to move forward with other candidates.",
			Timestamp:     now.AddDate(0, 0, -5),
		},
	}
	reminders := []models.Reminder{
		{
			ApplicationID: apps[0].ID,
			Type:          "Interview Prep",
			Message:       "Review system design notes before the Shopify interview.",
			DueDate:       now.AddDate(0, 0, 2),
		},
		{
			ApplicationID: apps[1].ID,
			Type:          "Follow-up",
			Message:       "Follow up with the RBC recruiter.",
			DueDate:       now.AddDate(0, 0, 5),
		},
	}
	if err := db.Create(&comms).Error; err != nil {
		log.Println("Demo seed failed:", err)
	}
	if err := db.Create(&reminders).Error; err != nil {
		log.Println("Demo seed failed:", err)
	}
	log.Println("Demo data seeded")
}
