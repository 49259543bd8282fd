package dtos

import "encoding/json"

type ResumeCreateRequest struct {
	Name           string          `json:"name" binding:"required"`
	IsMaster       bool            `json:"is_master"`
	MasterResumeID *uint           `json:"master_resume_id"`
	Content        json.RawMessage `json:"content" binding:"required"`
}

type ResumeUpdateRequest struct {
	Name    *string         `json:"name"`
	Content json.RawMessage `json:"content"`
}

type LatexUpdateRequest struct {
	LatexContent string `json:"latex_content" binding:"required"`
}

type ApplyTemplateRequest struct {
	TemplateID string `json:"template_id" binding:"required"`
}

type TemplateInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
