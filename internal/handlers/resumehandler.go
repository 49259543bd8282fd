package handlers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jobvibe/jobvibe-api/internal/dtos"
	"github.com/jobvibe/jobvibe-api/internal/services"
)

// Resume uploads are capped at 10 MB.
const maxResumeSize = 10 << 20

var allowedResumeTypes = map[string]string{
	"pdf":  "application/pdf",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

type ResumeHandler struct {
	Service *services.ResumeService
	Latex   *services.LatexService
}

func NewResumeHandler(s *services.ResumeService, latex *services.LatexService) *ResumeHandler {
	return &ResumeHandler{Service: s, Latex: latex}
}

func (h *ResumeHandler) List(c *gin.Context) {
	resumes, err := h.Service.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list resumes: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, resumes)
}

func (h *ResumeHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resume id"})
		return
	}
	resume, err := h.Service.Get(id)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Resume not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resume)
}

func (h *ResumeHandler) Create(c *gin.Context) {
	var req dtos.ResumeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	resume, err := h.Service.Create(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create resume: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resume)
}

func (h *ResumeHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resume id"})
		return
	}
	var req dtos.ResumeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	resume, err := h.Service.Update(id, &req)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Resume not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update resume: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, resume)
}

func (h *ResumeHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resume id"})
		return
	}
	if err := h.Service.Delete(id); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Resume not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete resume: " + err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Upload accepts a .pdf or .docx file and stores the original bytes
// alongside placeholder structured content. PDF uploads get a
// best-effort LaTeX conversion inside the service.
func (h *ResumeHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing resume file"})
		return
	}
	if fileHeader.Size > maxResumeSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 10MB limit"})
		return
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileHeader.Filename)), ".")
	mimeType, ok := allowedResumeTypes[ext]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type; use .pdf or .docx"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file: " + err.Error()})
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file: " + err.Error()})
		return
	}

	resume, err := h.Service.SaveUpload(c.Request.Context(), fileHeader.Filename, data, mimeType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save resume: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resume)
}

// File streams back the originally uploaded bytes with their original
// MIME type.
func (h *ResumeHandler) File(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resume id"})
		return
	}
	resume, err := h.Service.Get(id)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Resume not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(resume.FileData) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resume has no stored file"})
		return
	}
	c.Data(http.StatusOK, resume.FileType, resume.FileData)
}

func (h *ResumeHandler) GetLatex(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resume id"})
		return
	}
	resume, err := h.Service.Get(id)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Resume not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if resume.LatexContent == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resume has no LaTeX content"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"latex_content": resume.LatexContent})
}

func (h *ResumeHandler) PutLatex(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resume id"})
		return
	}
	var req dtos.LatexUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	resume, err := h.Service.SetLatex(id, req.LatexContent)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Resume not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update LaTeX: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, resume)
}

func (h *ResumeHandler) SetMaster(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resume id"})
		return
	}
	resume, err := h.Service.SetMaster(id)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Resume not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set master resume: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, resume)
}

func (h *ResumeHandler) UnsetMaster(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resume id"})
		return
	}
	resume, err := h.Service.UnsetMaster(id)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Resume not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unset master resume: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, resume)
}

// ApplyTemplate derives a new resume styled after a bundled template.
// A blending failure is a 500; a compile failure still returns the
// derived resume, just without PDF bytes.
func (h *ResumeHandler) ApplyTemplate(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resume id"})
		return
	}
	var req dtos.ApplyTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	derived, err := h.Service.DeriveFromTemplate(c.Request.Context(), id, req.TemplateID)
	if err != nil {
		switch {
		case isNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{"error": "Resume not found"})
		case errors.Is(err, services.ErrNoLatexContent):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Resume has no LaTeX content; upload a PDF or set LaTeX first"})
		case errors.Is(err, services.ErrUnknownTemplate):
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply template: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, derived)
}

func (h *ResumeHandler) Templates(c *gin.Context) {
	c.JSON(http.StatusOK, h.Latex.Templates())
}

// TemplatePreview compiles a bundled template and returns the PDF.
func (h *ResumeHandler) TemplatePreview(c *gin.Context) {
	templateID := c.Param("id")
	pdfBytes, err := h.Latex.TemplatePreview(c.Request.Context(), templateID)
	if err != nil {
		if errors.Is(err, services.ErrUnknownTemplate) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Template preview failed: " + err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
