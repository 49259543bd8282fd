package services

import (
	"time"

	"github.com/jobvibe/jobvibe-api/internal/dtos"
	"github.com/jobvibe/jobvibe-api/internal/models"
	"gorm.io/gorm"
)

type ApplicationService struct {
	DB *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{DB: db}
}

func (s *ApplicationService) List() ([]models.Application, error) {
	var apps []models.Application
	err := s.DB.Order("date_applied desc").Find(&apps).Error
	return apps, err
}

func (s *ApplicationService) Get(id uint) (*models.Application, error) {
	var app models.Application
	if err := s.DB.First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *ApplicationService) Create(req *dtos.ApplicationCreateRequest) (*models.Application, error) {
	app := &models.Application{
		CompanyName: req.CompanyName,
		RoleTitle:   req.RoleTitle,
		DateApplied: time.Now(),
		Status:      models.StatusApplied,
		Source:      req.Source,
		Location:    req.Location,
		Duration:    req.Duration,
		Notes:       req.Notes,
		ResumeID:    req.ResumeID,
	}
	if req.DateApplied != nil {
		app.DateApplied = *req.DateApplied
	}
	if req.Status != "" {
		app.Status = req.Status
	}
	if err := s.DB.Create(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) Update(id uint, req *dtos.ApplicationUpdateRequest) (*models.Application, error) {
	var app models.Application
	if err := s.DB.First(&app, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.CompanyName != nil {
		updates["company_name"] = *req.CompanyName
	}
	if req.RoleTitle != nil {
		updates["role_title"] = *req.RoleTitle
	}
	if req.DateApplied != nil {
		updates["date_applied"] = *req.DateApplied
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Source != nil {
		updates["source"] = *req.Source
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.ResumeID != nil {
		updates["resume_id"] = *req.ResumeID
	}
	if len(updates) == 0 {
		return &app, nil
	}
	if err := s.DB.Model(&app).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// Delete removes the application together with its communications and
// reminders in one transaction. Chat sessions referencing it are left in
// place; their application_id is a soft reference.
func (s *ApplicationService) Delete(id uint) error {
	var app models.Application
	if err := s.DB.First(&app, id).Error; err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("application_id = ?", id).Delete(&models.Communication{}).Error; err != nil {
			return err
		}
		if err := tx.Where("application_id = ?", id).Delete(&models.Reminder{}).Error; err != nil {
			return err
		}
		return tx.Delete(&app).Error
	})
}
