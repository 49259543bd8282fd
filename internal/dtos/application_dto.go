package dtos

import "time"

type ApplicationCreateRequest struct {
	CompanyName string     `json:"company_name" binding:"required"`
	RoleTitle   string     `json:"role_title" binding:"required"`
	DateApplied *time.Time `json:"date_applied"`

	// Optional fields
	Status   string `json:"status"` // Defaults to "Applied" if empty
	Source   string `json:"source"`
	Location string `json:"location"`
	Duration string `json:"duration"`
	Notes    string `json:"notes"`
	ResumeID *uint  `json:"resume_id"`
}

// ApplicationUpdateRequest carries partial updates; only non-nil fields
// are applied.
type ApplicationUpdateRequest struct {
	CompanyName *string    `json:"company_name"`
	RoleTitle   *string    `json:"role_title"`
	DateApplied *time.Time `json:"date_applied"`
	Status      *string    `json:"status"`
	Source      *string    `json:"source"`
	Location    *string    `json:"location"`
	Duration    *string    `json:"duration"`
	Notes       *string    `json:"notes"`
	ResumeID    *uint      `json:"resume_id"`
}
