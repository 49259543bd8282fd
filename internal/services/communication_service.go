package services

import (
	"errors"
	"math"
	"time"

	"github.com/jobvibe/jobvibe-api/internal/dtos"
	"github.com/jobvibe/jobvibe-api/internal/models"
	"gorm.io/gorm"
)

type CommunicationService struct {
	DB *gorm.DB
}

func NewCommunicationService(db *gorm.DB) *CommunicationService {
	return &CommunicationService{DB: db}
}

// CommunicationFilter narrows the list endpoint. Zero values mean "no
// filter".
type CommunicationFilter struct {
	ApplicationID uint
	Type          string
	StartDate     *time.Time
	EndDate       *time.Time
}

func (s *CommunicationService) List(filter CommunicationFilter) ([]models.Communication, error) {
	query := s.DB.Model(&models.Communication{})
	if filter.ApplicationID != 0 {
		query = query.Where("application_id = ?", filter.ApplicationID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.StartDate != nil {
		query = query.Where("timestamp >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("timestamp <= ?", *filter.EndDate)
	}

	var comms []models.Communication
	err := query.Order("timestamp desc").Find(&comms).Error
	return comms, err
}

func (s *CommunicationService) Get(id uint) (*models.Communication, error) {
	var comm models.Communication
	if err := s.DB.First(&comm, id).Error; err != nil {
		return nil, err
	}
	return &comm, nil
}

// Create logs a communication and applies the status rule as a side
// effect, both inside one transaction. The referenced application must
// exist.
func (s *CommunicationService) Create(req *dtos.CommunicationCreateRequest) (*models.Communication, error) {
	var app models.Application
	if err := s.DB.First(&app, req.ApplicationID).Error; err != nil {
		return nil, err
	}

	timestamp := time.Now()
	if req.Timestamp != nil {
		timestamp = *req.Timestamp
	} else if req.ResponseDate != nil {
		timestamp = *req.ResponseDate
	}

	comm := &models.Communication{
		ApplicationID: req.ApplicationID,
		Type:          req.Type,
		Message:       req.Message,
		SenderName:    req.SenderName,
		SenderEmail:   req.SenderEmail,
		ResponseDate:  req.ResponseDate,
		Timestamp:     timestamp,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comm).Error; err != nil {
			return err
		}
		return applyStatusRule(tx, req.ApplicationID, req.Type)
	})
	if err != nil {
		return nil, err
	}
	return comm, nil
}

// Update edits explicit fields. Status derivation re-runs only when the
// payload carries a type, and it runs against the application's current
// status at update time, not the status at original creation time.
func (s *CommunicationService) Update(id uint, req *dtos.CommunicationUpdateRequest) (*models.Communication, error) {
	var comm models.Communication
	if err := s.DB.First(&comm, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Message != nil {
		updates["message"] = *req.Message
	}
	if req.SenderName != nil {
		updates["sender_name"] = *req.SenderName
	}
	if req.SenderEmail != nil {
		updates["sender_email"] = *req.SenderEmail
	}
	if req.ResponseDate != nil {
		updates["response_date"] = *req.ResponseDate
	}
	if req.Timestamp != nil {
		updates["timestamp"] = *req.Timestamp
	}
	if len(updates) == 0 {
		return &comm, nil
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&comm).Updates(updates).Error; err != nil {
			return err
		}
		if req.Type != nil {
			return applyStatusRule(tx, comm.ApplicationID, *req.Type)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &comm, nil
}

func (s *CommunicationService) Delete(id uint) error {
	var comm models.Communication
	if err := s.DB.First(&comm, id).Error; err != nil {
		return err
	}
	return s.DB.Delete(&comm).Error
}

// applyStatusRule is the read-modify-write half of the status engine:
// load the application, run DeriveStatus, persist on change. Callers wrap
// it in the same transaction as the communication write.
func applyStatusRule(tx *gorm.DB, applicationID uint, communicationType string) error {
	var app models.Application
	if err := tx.First(&app, applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	next, changed := DeriveStatus(app.Status, communicationType)
	if !changed {
		return nil
	}
	return tx.Model(&app).Updates(map[string]interface{}{
		"status":     next,
		"updated_at": time.Now(),
	}).Error
}

// TrackingSummary aggregates communications per application. A nil
// applicationID covers every application, including ones with no
// responses yet.
func (s *CommunicationService) TrackingSummary(applicationID *uint) ([]dtos.ResponseTrackingSummary, error) {
	rows := []dtos.ResponseTrackingSummary{}
	query := s.DB.Model(&models.Application{}).
		Select(`applications.id AS application_id,
			applications.company_name,
			applications.role_title,
			applications.status,
			COUNT(communications.id) AS total_responses,
			COALESCE(SUM(CASE WHEN communications.type = ? THEN 1 ELSE 0 END), 0) AS interview_invites,
			COALESCE(SUM(CASE WHEN communications.type = ? THEN 1 ELSE 0 END), 0) AS rejections,
			COALESCE(SUM(CASE WHEN communications.type = ? THEN 1 ELSE 0 END), 0) AS offers,
			MAX(communications.timestamp) AS latest_response_date`,
			models.CommTypeInterviewInvite, models.CommTypeRejection, models.CommTypeOffer).
		Joins("LEFT JOIN communications ON communications.application_id = applications.id")
	if applicationID != nil {
		query = query.Where("applications.id = ?", *applicationID)
	}
	err := query.
		Group("applications.id, applications.company_name, applications.role_title, applications.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		if rows[i].LatestResponseDate == nil {
			continue
		}
		var latest models.Communication
		err := s.DB.
			Where("application_id = ? AND timestamp = ?", rows[i].ApplicationID, *rows[i].LatestResponseDate).
			First(&latest).Error
		if err == nil {
			rows[i].LatestResponseType = latest.Type
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return rows, nil
}

// TrackingStatistics computes global response/interview/offer rates
// across every application.
func (s *CommunicationService) TrackingStatistics() (*dtos.GlobalResponseStatistics, error) {
	var totalApplications int64
	if err := s.DB.Model(&models.Application{}).Count(&totalApplications).Error; err != nil {
		return nil, err
	}

	var counts struct {
		TotalCommunications int64
		InterviewInvites    int64
		Rejections          int64
		Offers              int64
	}
	err := s.DB.Model(&models.Communication{}).
		Select(`COUNT(id) AS total_communications,
			COALESCE(SUM(CASE WHEN type = ? THEN 1 ELSE 0 END), 0) AS interview_invites,
			COALESCE(SUM(CASE WHEN type = ? THEN 1 ELSE 0 END), 0) AS rejections,
			COALESCE(SUM(CASE WHEN type = ? THEN 1 ELSE 0 END), 0) AS offers`,
			models.CommTypeInterviewInvite, models.CommTypeRejection, models.CommTypeOffer).
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	withResponses, err := s.distinctApplications("")
	if err != nil {
		return nil, err
	}
	withInterviews, err := s.distinctApplications(models.CommTypeInterviewInvite)
	if err != nil {
		return nil, err
	}
	withOffers, err := s.distinctApplications(models.CommTypeOffer)
	if err != nil {
		return nil, err
	}

	stats := &dtos.GlobalResponseStatistics{
		TotalApplications:     totalApplications,
		TotalCommunications:   counts.TotalCommunications,
		TotalInterviewInvites: counts.InterviewInvites,
		TotalRejections:       counts.Rejections,
		TotalOffers:           counts.Offers,
	}
	if totalApplications > 0 {
		stats.ResponseRate = round2(float64(withResponses) / float64(totalApplications) * 100)
		stats.InterviewRate = round2(float64(withInterviews) / float64(totalApplications) * 100)
		stats.OfferRate = round2(float64(withOffers) / float64(totalApplications) * 100)
	}
	return stats, nil
}

func (s *CommunicationService) distinctApplications(commType string) (int64, error) {
	query := s.DB.Model(&models.Communication{}).Distinct("application_id")
	if commType != "" {
		query = query.Where("type = ?", commType)
	}
	var n int64
	err := query.Count(&n).Error
	return n, err
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
