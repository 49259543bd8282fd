package dtos

import "time"

type CommunicationCreateRequest struct {
	ApplicationID uint       `json:"application_id" binding:"required"`
	Type          string     `json:"type" binding:"required"`
	Message       string     `json:"message"`
	SenderName    string     `json:"sender_name"`
	SenderEmail   string     `json:"sender_email"`
	ResponseDate  *time.Time `json:"response_date"`
	Timestamp     *time.Time `json:"timestamp"`
}

type CommunicationUpdateRequest struct {
	Type         *string    `json:"type"`
	Message      *string    `json:"message"`
	SenderName   *string    `json:"sender_name"`
	SenderEmail  *string    `json:"sender_email"`
	ResponseDate *time.Time `json:"response_date"`
	Timestamp    *time.Time `json:"timestamp"`
}

// ResponseTrackingSummary aggregates the communications of one
// application. Field names double as scan targets for the grouped query.
type ResponseTrackingSummary struct {
	ApplicationID      uint       `json:"application_id"`
	CompanyName        string     `json:"company_name"`
	RoleTitle          string     `json:"role_title"`
	Status             string     `json:"status"`
	TotalResponses     int64      `json:"total_responses"`
	InterviewInvites   int64      `json:"interview_invites"`
	Rejections         int64      `json:"rejections"`
	Offers             int64      `json:"offers"`
	LatestResponseDate *time.Time `json:"latest_response_date"`
	LatestResponseType string     `json:"latest_response_type,omitempty"`
}

type GlobalResponseStatistics struct {
	TotalApplications     int64   `json:"total_applications"`
	TotalCommunications   int64   `json:"total_communications"`
	TotalInterviewInvites int64   `json:"total_interview_invites"`
	TotalRejections       int64   `json:"total_rejections"`
	TotalOffers           int64   `json:"total_offers"`
	ResponseRate          float64 `json:"response_rate"`
	InterviewRate         float64 `json:"interview_rate"`
	OfferRate             float64 `json:"offer_rate"`
}

// CommunicationDraft is the classified result of an uploaded screenshot
// or photo. It is returned to the client for review, never persisted
// directly.
type CommunicationDraft struct {
	Type         string `json:"type"`
	Message      string `json:"message"`
	SenderName   string `json:"sender_name,omitempty"`
	SenderEmail  string `json:"sender_email,omitempty"`
	ResponseDate string `json:"response_date,omitempty"`
}
