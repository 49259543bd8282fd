package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobvibe/jobvibe-api/internal/dtos"
	"github.com/jobvibe/jobvibe-api/internal/services"
)

type AutofillHandler struct {
	Service *services.AutofillService
}

func NewAutofillHandler(s *services.AutofillService) *AutofillHandler {
	return &AutofillHandler{Service: s}
}

// Parse turns a pasted job URL or posting text into a tracked
// application. Extraction failure propagates unless a URL fallback was
// possible inside the service.
func (h *AutofillHandler) Parse(c *gin.Context) {
	var req dtos.AutofillParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	if req.URL == "" && req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide a url or text to parse"})
		return
	}
	app, err := h.Service.Parse(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Autofill failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, app)
}
