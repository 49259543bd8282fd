package services

import (
	"github.com/jobvibe/jobvibe-api/internal/dtos"
	"github.com/jobvibe/jobvibe-api/internal/models"
	"gorm.io/gorm"
)

type ReminderService struct {
	DB *gorm.DB
}

func NewReminderService(db *gorm.DB) *ReminderService {
	return &ReminderService{DB: db}
}

// List returns reminders ordered by due date; isCompleted narrows by
// completion state when non-nil.
func (s *ReminderService) List(isCompleted *bool) ([]models.Reminder, error) {
	query := s.DB.Model(&models.Reminder{})
	if isCompleted != nil {
		query = query.Where("is_completed = ?", *isCompleted)
	}
	var reminders []models.Reminder
	err := query.Order("due_date asc").Find(&reminders).Error
	return reminders, err
}

func (s *ReminderService) Get(id uint) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := s.DB.First(&reminder, id).Error; err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (s *ReminderService) Create(req *dtos.ReminderCreateRequest) (*models.Reminder, error) {
	var app models.Application
	if err := s.DB.First(&app, req.ApplicationID).Error; err != nil {
		return nil, err
	}

	reminder := &models.Reminder{
		ApplicationID: req.ApplicationID,
		Type:          req.Type,
		Message:       req.Message,
		DueDate:       req.DueDate,
	}
	if err := s.DB.Create(reminder).Error; err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *ReminderService) Update(id uint, req *dtos.ReminderUpdateRequest) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := s.DB.First(&reminder, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Message != nil {
		updates["message"] = *req.Message
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}
	if req.IsCompleted != nil {
		updates["is_completed"] = *req.IsCompleted
	}
	if len(updates) == 0 {
		return &reminder, nil
	}
	if err := s.DB.Model(&reminder).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (s *ReminderService) Delete(id uint) error {
	var reminder models.Reminder
	if err := s.DB.First(&reminder, id).Error; err != nil {
		return err
	}
	return s.DB.Delete(&reminder).Error
}
