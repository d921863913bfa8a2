package http

import (
	"errors"
	"net/http"
	"time"

	"costream/internal/core/domain"
	"costream/internal/core/ports"
	"costream/internal/infrastructure/monitoring"
	"costream/internal/infrastructure/notify"
	"costream/internal/infrastructure/platforms"

	"github.com/gin-gonic/gin"
)

// CoordinationHandler exposes the event and session coordination API.
type CoordinationHandler struct {
	orchestrator ports.Orchestrator
	handles      *platforms.MemoryHandleDirectory
	hub          *notify.Hub
	collector    *monitoring.PrometheusCollector
}

func NewCoordinationHandler(
	orchestrator ports.Orchestrator,
	handles *platforms.MemoryHandleDirectory,
	hub *notify.Hub,
	collector *monitoring.PrometheusCollector,
) *CoordinationHandler {
	return &CoordinationHandler{
		orchestrator: orchestrator,
		handles:      handles,
		hub:          hub,
		collector:    collector,
	}
}

func (h *CoordinationHandler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.POST("/events", h.CreateEvent)
		api.GET("/events/:id", h.GetEvent)
		api.POST("/events/:id/collaborators", h.AddCollaborator)
		api.GET("/events/:id/suggestions", h.GetSuggestions)
		api.POST("/events/:id/join", h.HandleCollaboratorJoin)

		api.POST("/events/:id/session", h.StartSession)
		api.PATCH("/events/:id/phase", h.UpdatePhase)
		api.GET("/events/:id/status", h.GetStatus)

		api.POST("/events/:id/subscribe", h.Subscribe)
		api.DELETE("/events/:id/subscribe", h.Unsubscribe)
	}

	if h.hub != nil {
		router.GET("/ws/events/:id", h.HandleWebSocket)
	}
}

func requestUserID(c *gin.Context) (domain.UserID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return "", false
	}
	userID, ok := val.(domain.UserID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user context"})
		return "", false
	}
	return userID, true
}

func (h *CoordinationHandler) CreateEvent(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	var req struct {
		Title             string                       `json:"title" binding:"required,min=3,max=200"`
		ContentType       string                       `json:"content_type"`
		ScheduledAt       time.Time                    `json:"scheduled_at" binding:"required"`
		EstimatedDuration int                          `json:"estimated_duration_minutes" binding:"min=0,max=1440"`
		Platforms         []domain.PlatformID          `json:"platforms" binding:"required,min=1"`
		PlatformHandles   map[domain.PlatformID]string `json:"platform_handles"`
	}

	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.orchestrator.CreateEvent(c.Request.Context(), userID, domain.EventDraft{
		Title:             req.Title,
		ContentType:       req.ContentType,
		ScheduledAt:       req.ScheduledAt,
		EstimatedDuration: time.Duration(req.EstimatedDuration) * time.Minute,
		Platforms:         req.Platforms,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(req.PlatformHandles) > 0 {
		h.handles.RegisterAll(userID, req.PlatformHandles)
	}

	c.JSON(http.StatusCreated, gin.H{
		"event": event,
	})
}

func (h *CoordinationHandler) GetEvent(c *gin.Context) {
	eventID := domain.EventID(c.Param("id"))

	event, err := h.orchestrator.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"event": event,
	})
}

func (h *CoordinationHandler) AddCollaborator(c *gin.Context) {
	eventID := domain.EventID(c.Param("id"))

	var req struct {
		UserID          domain.UserID                `json:"user_id" binding:"required"`
		Role            domain.CollaboratorRole      `json:"role"`
		PlatformHandles map[domain.PlatformID]string `json:"platform_handles"`
		Capabilities    []string                     `json:"capabilities"`
		Availability    map[string]string            `json:"availability"`
	}

	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collab, err := h.orchestrator.AddCollaborator(c.Request.Context(), eventID, domain.CollaboratorDraft{
		UserID:          req.UserID,
		Role:            req.Role,
		PlatformHandles: req.PlatformHandles,
		Capabilities:    req.Capabilities,
		Availability:    req.Availability,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(req.PlatformHandles) > 0 {
		h.handles.RegisterAll(req.UserID, req.PlatformHandles)
	}

	c.JSON(http.StatusCreated, gin.H{
		"collaborator": collab,
	})
}

func (h *CoordinationHandler) GetSuggestions(c *gin.Context) {
	eventID := domain.EventID(c.Param("id"))

	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	suggestions, err := h.orchestrator.GetCollaborationSuggestions(c.Request.Context(), eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions": suggestions,
	})
}

func (h *CoordinationHandler) HandleCollaboratorJoin(c *gin.Context) {
	eventID := domain.EventID(c.Param("id"))

	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	if err := h.orchestrator.HandleCollaboratorJoin(c.Request.Context(), eventID, userID); err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "joined",
	})
}

func (h *CoordinationHandler) StartSession(c *gin.Context) {
	eventID := domain.EventID(c.Param("id"))

	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	session, err := h.orchestrator.StartSession(c.Request.Context(), eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.collector != nil {
		h.collector.RecordSessionStarted()
	}

	c.JSON(http.StatusCreated, gin.H{
		"session": session,
	})
}

func (h *CoordinationHandler) UpdatePhase(c *gin.Context) {
	eventID := domain.EventID(c.Param("id"))

	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	var req struct {
		Phase domain.SessionPhase `json:"phase" binding:"required"`
	}

	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Phase {
	case domain.PhasePreparation, domain.PhaseLive, domain.PhaseBreak, domain.PhaseEnded:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown phase"})
		return
	}

	if err := h.orchestrator.UpdatePhase(c.Request.Context(), eventID, req.Phase, userID); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No active session for event"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.collector != nil {
		h.collector.RecordPhaseTransition(req.Phase)
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "phase_updated",
		"phase":  req.Phase,
	})
}

func (h *CoordinationHandler) GetStatus(c *gin.Context) {
	eventID := domain.EventID(c.Param("id"))

	status, err := h.orchestrator.GetStatus(c.Request.Context(), eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": status,
	})
}

func (h *CoordinationHandler) Subscribe(c *gin.Context) {
	eventID := domain.EventID(c.Param("id"))

	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	h.orchestrator.Subscribe(eventID, userID)

	c.JSON(http.StatusOK, gin.H{
		"status": "subscribed",
	})
}

func (h *CoordinationHandler) Unsubscribe(c *gin.Context) {
	eventID := domain.EventID(c.Param("id"))

	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	h.orchestrator.Unsubscribe(eventID, userID)

	c.JSON(http.StatusOK, gin.H{
		"status": "unsubscribed",
	})
}

func (h *CoordinationHandler) HandleWebSocket(c *gin.Context) {
	eventID := domain.EventID(c.Param("id"))
	h.hub.HandleWebSocket(c.Writer, c.Request, eventID)

	if h.collector != nil {
		h.collector.SetSubscriberCount(eventID, h.hub.SubscriberCount(eventID))
	}
}
