package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobvibe/jobvibe-api/internal/dtos"
	"github.com/jobvibe/jobvibe-api/internal/services"
)

// Image uploads for process-image are capped at 5 MB.
const maxImageSize = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
}

type CommunicationHandler struct {
	Service *services.CommunicationService
	Chat    *services.ChatService
}

func NewCommunicationHandler(s *services.CommunicationService, chat *services.ChatService) *CommunicationHandler {
	return &CommunicationHandler{Service: s, Chat: chat}
}

func (h *CommunicationHandler) List(c *gin.Context) {
	filter := services.CommunicationFilter{
		Type: c.Query("type"),
	}
	if raw := c.Query("application_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application_id filter"})
			return
		}
		filter.ApplicationID = uint(id)
	}
	for _, q := range []struct {
		name   string
		target **time.Time
	}{
		{"start_date", &filter.StartDate},
		{"end_date", &filter.EndDate},
	} {
		if raw := c.Query(q.name); raw != "" {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + q.name + ": expected RFC3339"})
				return
			}
			*q.target = &t
		}
	}

	comms, err := h.Service.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list communications: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, comms)
}

func (h *CommunicationHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid communication id"})
		return
	}
	comm, err := h.Service.Get(id)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Communication not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, comm)
}

func (h *CommunicationHandler) Create(c *gin.Context) {
	var req dtos.CommunicationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	comm, err := h.Service.Create(&req)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create communication: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, comm)
}

func (h *CommunicationHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid communication id"})
		return
	}
	var req dtos.CommunicationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	comm, err := h.Service.Update(id, &req)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Communication not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update communication: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, comm)
}

func (h *CommunicationHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid communication id"})
		return
	}
	if err := h.Service.Delete(id); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Communication not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete communication: " + err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CommunicationHandler) TrackingSummary(c *gin.Context) {
	var applicationID *uint
	if raw := c.Query("application_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application_id filter"})
			return
		}
		u := uint(id)
		applicationID = &u
	}
	summaries, err := h.Service.TrackingSummary(applicationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build tracking summary: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *CommunicationHandler) TrackingStatistics(c *gin.Context) {
	stats, err := h.Service.TrackingStatistics()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build tracking statistics: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ProcessImage OCRs and classifies an uploaded screenshot into a
// communication draft. Upstream failure propagates as a 500; nothing is
// persisted here.
func (h *CommunicationHandler) ProcessImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing image file"})
		return
	}
	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image exceeds the 5MB limit"})
		return
	}
	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = mimeFromExtension(fileHeader.Filename)
	}
	if !allowedImageTypes[mimeType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported image type; use PNG or JPEG"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image: " + err.Error()})
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image: " + err.Error()})
		return
	}

	draft, err := h.Chat.ClassifyCommunicationImage(c.Request.Context(), data, mimeType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image classification failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, draft)
}

func mimeFromExtension(filename string) string {
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".png"):
		return "image/png"
	case strings.HasSuffix(strings.ToLower(filename), ".jpg"),
		strings.HasSuffix(strings.ToLower(filename), ".jpeg"):
		return "image/jpeg"
	}
	return ""
}
