package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobvibe/jobvibe-api/internal/dtos"
	"github.com/jobvibe/jobvibe-api/internal/models"
	"github.com/jobvibe/jobvibe-api/internal/services"
)

// AIHandler fronts the completion orchestrator and session persistence.
// Resume and application rows are loaded here so the chat service stays
// free of storage concerns.
type AIHandler struct {
	Service      *services.ChatService
	Sessions     *services.ChatSessionService
	Resumes      *services.ResumeService
	Applications *services.ApplicationService
}

func NewAIHandler(chat *services.ChatService, sessions *services.ChatSessionService, resumes *services.ResumeService, applications *services.ApplicationService) *AIHandler {
	return &AIHandler{
		Service:      chat,
		Sessions:     sessions,
		Resumes:      resumes,
		Applications: applications,
	}
}

// loadResume resolves a referenced resume. A reference to a missing row
// is the caller's error; no reference at all yields nil.
func (h *AIHandler) loadResume(c *gin.Context, id *uint) (*models.Resume, bool) {
	if id == nil {
		return nil, true
	}
	resume, err := h.Resumes.Get(*id)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Resume not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil, false
	}
	return resume, true
}

// loadApplication is a soft lookup: a dangling application reference
// just means no role context for the prompt.
func (h *AIHandler) loadApplication(id *uint) *models.Application {
	if id == nil {
		return nil
	}
	app, err := h.Applications.Get(*id)
	if err != nil {
		return nil
	}
	return app
}

// Chat is the single conversational endpoint; mode picks the system
// behavior.
func (h *AIHandler) Chat(c *gin.Context) {
	var req dtos.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	if req.Mode != models.ModeCritique && req.Mode != models.ModeInterview {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mode; use 'critique' or 'interview'"})
		return
	}

	resume, ok := h.loadResume(c, req.ResumeID)
	if !ok {
		return
	}
	application := h.loadApplication(req.ApplicationID)

	var reply string
	var err error
	switch req.Mode {
	case models.ModeCritique:
		reply, err = h.Service.CritiqueResume(c.Request.Context(), resume, req.Message, req.ConversationHistory)
	case models.ModeInterview:
		reply, err = h.Service.ContinueInterview(c.Request.Context(), resume, application, req.Message, req.ConversationHistory)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Chat failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": reply})
}

// CritiqueResume returns the initial full critique for a resume.
func (h *AIHandler) CritiqueResume(c *gin.Context) {
	var req dtos.CritiqueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	resume, ok := h.loadResume(c, &req.ResumeID)
	if !ok {
		return
	}
	reply, err := h.Service.CritiqueResume(c.Request.Context(), resume, "", nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Critique failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"critique": reply})
}

// StartInterview opens a mock interview with the first question.
func (h *AIHandler) StartInterview(c *gin.Context) {
	var req dtos.StartInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	resume, ok := h.loadResume(c, &req.ResumeID)
	if !ok {
		return
	}
	application := h.loadApplication(req.ApplicationID)

	question, err := h.Service.StartInterview(c.Request.Context(), resume, application)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Interview start failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"question": question})
}

// RateAnswer scores one question/answer pair.
func (h *AIHandler) RateAnswer(c *gin.Context) {
	var req dtos.RateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	resume, ok := h.loadResume(c, req.ResumeID)
	if !ok {
		return
	}
	rating, err := h.Service.RateAnswer(c.Request.Context(), req.Question, req.Answer, resume)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Rating failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rating": rating})
}

func (h *AIHandler) ListSessions(c *gin.Context) {
	sessions, err := h.Sessions.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list chat sessions: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (h *AIHandler) GetSession(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
		return
	}
	session, err := h.Sessions.Get(id)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chat session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *AIHandler) CreateSession(c *gin.Context) {
	var req dtos.ChatSessionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	if req.Mode != models.ModeCritique && req.Mode != models.ModeInterview {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mode; use 'critique' or 'interview'"})
		return
	}
	session, err := h.Sessions.Create(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create chat session: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *AIHandler) UpdateSession(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
		return
	}
	var req dtos.ChatSessionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	session, err := h.Sessions.Update(id, &req)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chat session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update chat session: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *AIHandler) DeleteSession(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
		return
	}
	if err := h.Sessions.Delete(id); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chat session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete chat session: " + err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
