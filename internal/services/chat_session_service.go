package services

import (
	"errors"
	"fmt"

	"github.com/jobvibe/jobvibe-api/internal/dtos"
	"github.com/jobvibe/jobvibe-api/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ChatSessionService persists chat transcripts in the applications
// store. ResumesDB is only consulted to derive a session title; the
// resume reference is soft and may point at nothing.
type ChatSessionService struct {
	DB        *gorm.DB
	ResumesDB *gorm.DB
}

func NewChatSessionService(db, resumesDB *gorm.DB) *ChatSessionService {
	return &ChatSessionService{DB: db, ResumesDB: resumesDB}
}

func (s *ChatSessionService) List() ([]models.ChatSession, error) {
	var sessions []models.ChatSession
	err := s.DB.Order("updated_at desc").Find(&sessions).Error
	return sessions, err
}

func (s *ChatSessionService) Get(id uint) (*models.ChatSession, error) {
	var session models.ChatSession
	if err := s.DB.First(&session, id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *ChatSessionService) Create(req *dtos.ChatSessionCreateRequest) (*models.ChatSession, error) {
	title := req.Title
	if title == "" {
		resumeName := "Resume"
		if req.ResumeID != nil {
			var resume models.Resume
			if err := s.ResumesDB.First(&resume, *req.ResumeID).Error; err == nil {
				resumeName = resume.Name
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
		modeLabel := "Interview"
		if req.Mode == models.ModeCritique {
			modeLabel = "Critique"
		}
		title = fmt.Sprintf("%s - %s", modeLabel, resumeName)
	}

	session := &models.ChatSession{
		Title:         title,
		Mode:          req.Mode,
		ResumeID:      req.ResumeID,
		ApplicationID: req.ApplicationID,
		Messages:      datatypes.JSON("[]"),
	}
	if err := s.DB.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// Update replaces the transcript wholesale when messages are supplied.
func (s *ChatSessionService) Update(id uint, req *dtos.ChatSessionUpdateRequest) (*models.ChatSession, error) {
	var session models.ChatSession
	if err := s.DB.First(&session, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Messages != nil {
		updates["messages"] = datatypes.JSON(req.Messages)
	}
	if len(updates) == 0 {
		return &session, nil
	}
	if err := s.DB.Model(&session).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *ChatSessionService) Delete(id uint) error {
	var session models.ChatSession
	if err := s.DB.First(&session, id).Error; err != nil {
		return err
	}
	return s.DB.Delete(&session).Error
}
