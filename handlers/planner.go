package handlers

import (
	"errors"
	"net/http"
	"time"

	destinationRepo "voyago/database/repository/destination"
	"voyago/middleware"
	"voyago/models"
	"voyago/services/planner"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PlannerHandler exposes the planning-session service over HTTP.
type PlannerHandler struct {
	Service planner.PlannerSessionService
	Logger  *zap.Logger
}

// NewPlannerHandler creates a PlannerHandler.
func NewPlannerHandler(svc planner.PlannerSessionService, logger *zap.Logger) *PlannerHandler {
	return &PlannerHandler{Service: svc, Logger: logger}
}

// respondSnapshot writes a session snapshot, translating service errors.
func (h *PlannerHandler) respondSnapshot(c *gin.Context, session *models.PlanningSession, err error) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"session": session})
	case errors.Is(err, planner.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "planning session not found or expired"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

// CreateSession starts a new planning session for a destination.
func (h *PlannerHandler) CreateSession(c *gin.Context) {
	var input struct {
		DestinationID int        `json:"destinationId" binding:"required"`
		StartDate     *time.Time `json:"startDate"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.CreateSession(input.DestinationID, input.StartDate)
	if err != nil {
		if errors.Is(err, destinationRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "destination not found"})
			return
		}
		h.Logger.Error("failed to create planning session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create planning session"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": session})
}

// GetSession returns the current snapshot.
func (h *PlannerHandler) GetSession(c *gin.Context) {
	session, err := h.Service.GetSession(c.Param("sessionID"))
	h.respondSnapshot(c, session, err)
}

// SetStartDate records the trip's start date.
func (h *PlannerHandler) SetStartDate(c *gin.Context) {
	var input struct {
		StartDate time.Time `json:"startDate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	session, err := h.Service.SetStartDate(c.Param("sessionID"), input.StartDate)
	h.respondSnapshot(c, session, err)
}

// SetDuration records the trip length. An unparseable or out-of-range value
// is rejected outright; it is never stored as zero.
func (h *PlannerHandler) SetDuration(c *gin.Context) {
	var input struct {
		DurationDays *int `json:"durationDays" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	session, err := h.Service.SetDurationDays(c.Param("sessionID"), *input.DurationDays)
	h.respondSnapshot(c, session, err)
}

// SetMode records the optimization mode.
func (h *PlannerHandler) SetMode(c *gin.Context) {
	var input struct {
		Mode models.OptimizationMode `json:"mode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	session, err := h.Service.SetOptimizationMode(c.Param("sessionID"), input.Mode)
	h.respondSnapshot(c, session, err)
}

// SetTuning records the generator knobs.
func (h *PlannerHandler) SetTuning(c *gin.Context) {
	var input models.Tuning
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	session, err := h.Service.SetTuning(c.Param("sessionID"), input)
	h.respondSnapshot(c, session, err)
}

// UpdateQuery records a starting-point search keystroke. The query is stored
// immediately; the lookup itself is debounced and lands in a later snapshot.
func (h *PlannerHandler) UpdateQuery(c *gin.Context) {
	var input struct {
		Query string `json:"query"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	session, err := h.Service.QueryChanged(c.Param("sessionID"), input.Query)
	h.respondSnapshot(c, session, err)
}

// SelectWaypoint picks a suggestion as the trip's starting point.
func (h *PlannerHandler) SelectWaypoint(c *gin.Context) {
	var input struct {
		Waypoint models.WaypointRef `json:"waypoint" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Waypoint.ID == 0 || input.Waypoint.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: waypoint id and name are required"})
		return
	}
	session, err := h.Service.SelectWaypoint(c.Param("sessionID"), input.Waypoint)
	h.respondSnapshot(c, session, err)
}

// ClearStartingPoint reverts to the destination's default center.
func (h *PlannerHandler) ClearStartingPoint(c *gin.Context) {
	session, err := h.Service.ClearStartingPoint(c.Param("sessionID"))
	h.respondSnapshot(c, session, err)
}

// Submit validates the session and, if it passes, issues the generation
// request. The itinerary id is returned here exactly once.
func (h *PlannerHandler) Submit(c *gin.Context) {
	sessionID := c.Param("sessionID")
	userID := middleware.UserID(c)

	outcome, err := h.Service.Submit(c.Request.Context(), sessionID, userID)
	if err != nil {
		if errors.Is(err, planner.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "planning session not found or expired"})
			return
		}
		h.Logger.Error("submit failed", zap.String("sessionID", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "submission failed unexpectedly"})
		return
	}

	switch outcome.Status {
	case models.StatusSucceeded:
		c.JSON(http.StatusOK, gin.H{"status": outcome.Status, "itineraryId": outcome.ItineraryID})
	case models.StatusSubmitting:
		// A pass is already in flight; this call did nothing.
		c.JSON(http.StatusAccepted, gin.H{"status": outcome.Status})
	case models.StatusIdle:
		if len(outcome.Reasons) == 1 && outcome.Reasons[0] == planner.ReasonNotSignedIn {
			c.JSON(http.StatusUnauthorized, gin.H{"status": outcome.Status, "reasons": outcome.Reasons})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": outcome.Status, "reasons": outcome.Reasons})
	default: // failed
		if outcome.Reason == planner.ReasonMissingProfile {
			c.JSON(http.StatusConflict, gin.H{"status": outcome.Status, "reason": outcome.Reason})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"status": outcome.Status, "reason": outcome.Reason})
	}
}

// CancelSession tears the session down.
func (h *PlannerHandler) CancelSession(c *gin.Context) {
	if err := h.Service.CancelSession(c.Param("sessionID")); err != nil {
		h.Logger.Error("failed to cancel session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel session"})
		return
	}
	c.Status(http.StatusNoContent)
}
