package models

import (
	"time"

	"gorm.io/datatypes"
)

// Application statuses. Rank ordering lives in the services package.
const (
	StatusApplied   = "Applied"
	StatusInterview = "Interview"
	StatusOffer     = "Offer"
	StatusRejected  = "Rejected"
)

// Communication types. The first three drive status derivation; Note and
// Follow-up never change an application's status.
const (
	CommTypeInterviewInvite = "Interview Invite"
	CommTypeRejection       = "Rejection"
	CommTypeOffer           = "Offer"
	CommTypeNote            = "Note"
	CommTypeFollowUp        = "Follow-up"
)

// Chat session modes.
const (
	ModeCritique  = "critique"
	ModeInterview = "interview"
)

// Application lives in the applications store. ResumeID is a soft
// reference into the resumes store; it is never FK-enforced and lookups
// must tolerate absence.
type Application struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CompanyName string    `gorm:"not null;index" json:"company_name"`
	RoleTitle   string    `gorm:"not null" json:"role_title"`
	DateApplied time.Time `gorm:"not null" json:"date_applied"`
	Status      string    `gorm:"not null;default:'Applied'" json:"status"`
	Source      string    `json:"source"`
	Location    string    `json:"location"`
	Duration    string    `json:"duration"`
	Notes       string    `gorm:"type:text" json:"notes"`
	ResumeID    *uint     `json:"resume_id"`

	Communications []Communication `gorm:"constraint:OnDelete:CASCADE" json:"communications,omitempty"`
	Reminders      []Reminder      `gorm:"constraint:OnDelete:CASCADE" json:"reminders,omitempty"`
}

// Communication belongs to exactly one application; existence is checked
// at creation time. Timestamp defaults to ResponseDate, else creation
// time, when the client does not supply one.
type Communication struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ApplicationID uint       `gorm:"not null;index" json:"application_id"`
	Type          string     `gorm:"not null" json:"type"`
	Message       string     `gorm:"type:text" json:"message"`
	SenderName    string     `json:"sender_name"`
	SenderEmail   string     `json:"sender_email"`
	ResponseDate  *time.Time `json:"response_date"`
	Timestamp     time.Time  `gorm:"not null" json:"timestamp"`
}

type Reminder struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ApplicationID uint      `gorm:"not null;index" json:"application_id"`
	Type          string    `gorm:"not null" json:"type"`
	Message       string    `gorm:"type:text" json:"message"`
	DueDate       time.Time `gorm:"not null" json:"due_date"`
	IsCompleted   bool      `gorm:"default:false" json:"is_completed"`
}

// Resume lives in its own store. At most one row has IsMaster=true at
// any time; MasterResumeID is a weak self-reference to the resume this
// one was derived from (lookup only, not ownership).
//
// VersionHistory is an append-only pre-image trail: element i holds the
// content that was live immediately before the i-th content update.
type Resume struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name           string         `gorm:"not null" json:"name"`
	IsMaster       bool           `gorm:"default:false" json:"is_master"`
	MasterResumeID *uint          `json:"master_resume_id"`
	Content        datatypes.JSON `gorm:"not null" json:"content"`
	VersionHistory datatypes.JSON `json:"version_history"`

	FileData     []byte `json:"-"`
	FileType     string `json:"file_type"`
	LatexContent string `gorm:"type:text" json:"latex_content,omitempty"`
}

// ChatSession stores critique/interview transcripts. Messages is an
// opaque ordered blob of role/content records, fully overwritten on
// update rather than appended server-side. ResumeID and ApplicationID
// are soft references.
type ChatSession struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title         string         `gorm:"not null" json:"title"`
	Mode          string         `gorm:"not null" json:"mode"`
	ResumeID      *uint          `json:"resume_id"`
	ApplicationID *uint          `json:"application_id"`
	Messages      datatypes.JSON `json:"messages"`
}
