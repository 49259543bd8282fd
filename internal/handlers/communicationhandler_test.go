package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jobvibe/jobvibe-api/internal/models"
	"github.com/jobvibe/jobvibe-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCommunicationRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	db := openTestDB(t, &models.Application{}, &models.Communication{}, &models.Reminder{})
	commHandler := NewCommunicationHandler(services.NewCommunicationService(db), nil)
	appHandler := NewApplicationHandler(services.NewApplicationService(db))

	r := gin.New()
	r.POST("/api/applications", appHandler.Create)
	r.GET("/api/applications/:id", appHandler.Get)
	r.GET("/api/communications", commHandler.List)
	r.POST("/api/communications", commHandler.Create)
	r.GET("/api/communications/tracking/summary", commHandler.TrackingSummary)
	r.GET("/api/communications/tracking/statistics", commHandler.TrackingStatistics)
	r.POST("/api/communications/process-image", commHandler.ProcessImage)
	r.GET("/api/communications/:id", commHandler.Get)
	r.PATCH("/api/communications/:id", commHandler.Update)
	r.DELETE("/api/communications/:id", commHandler.Delete)
	return r, db
}

func TestCommunicationEndpointsDriveStatus(t *testing.T) {
	r, _ := newCommunicationRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/applications", gin.H{
		"company_name": "Telus",
		"role_title":   "Site Reliability Engineer",
	})
	requireStatus(t, w, http.StatusCreated)

	w = doJSON(t, r, http.MethodPost, "/api/communications", gin.H{
		"application_id": 1,
		"type":           models.CommTypeInterviewInvite,
		"message":        "Phone screen on Thursday?",
	})
	requireStatus(t, w, http.StatusCreated)

	w = doJSON(t, r, http.MethodGet, "/api/applications/1", nil)
	requireStatus(t, w, http.StatusOK)
	var app models.Application
	decodeBody(t, w, &app)
	assert.Equal(t, models.StatusInterview, app.Status)
}

func TestCommunicationCreateMissingApplication(t *testing.T) {
	r, _ := newCommunicationRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/communications", gin.H{
		"application_id": 42,
		"type":           models.CommTypeNote,
	})
	requireStatus(t, w, http.StatusNotFound)
}

func TestCommunicationListRejectsBadDateFilter(t *testing.T) {
	r, _ := newCommunicationRouter(t)

	req := doJSON(t, r, http.MethodGet, "/api/communications?start_date=yesterday", nil)
	requireStatus(t, req, http.StatusBadRequest)
}

func TestTrackingEndpoints(t *testing.T) {
	r, _ := newCommunicationRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/applications", gin.H{
		"company_name": "Shopify",
		"role_title":   "Backend Developer",
	})
	requireStatus(t, w, http.StatusCreated)
	w = doJSON(t, r, http.MethodPost, "/api/communications", gin.H{
		"application_id": 1,
		"type":           models.CommTypeOffer,
	})
	requireStatus(t, w, http.StatusCreated)

	w = doJSON(t, r, http.MethodGet, "/api/communications/tracking/summary", nil)
	requireStatus(t, w, http.StatusOK)
	var summaries []map[string]interface{}
	decodeBody(t, w, &summaries)
	require.Len(t, summaries, 1)
	assert.EqualValues(t, 1, summaries[0]["offers"])

	w = doJSON(t, r, http.MethodGet, "/api/communications/tracking/statistics", nil)
	requireStatus(t, w, http.StatusOK)
	var stats map[string]interface{}
	decodeBody(t, w, &stats)
	assert.EqualValues(t, 1, stats["total_applications"])
	assert.EqualValues(t, 100, stats["offer_rate"])
}

func TestProcessImageRequiresFile(t *testing.T) {
	r, _ := newCommunicationRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/communications/process-image", nil)
	requireStatus(t, w, http.StatusBadRequest)
}
