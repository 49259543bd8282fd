package dtos

import "time"

type ReminderCreateRequest struct {
	ApplicationID uint      `json:"application_id" binding:"required"`
	Type          string    `json:"type" binding:"required"`
	Message       string    `json:"message"`
	DueDate       time.Time `json:"due_date" binding:"required"`
}

type ReminderUpdateRequest struct {
	Type        *string    `json:"type"`
	Message     *string    `json:"message"`
	DueDate     *time.Time `json:"due_date"`
	IsCompleted *bool      `json:"is_completed"`
}
