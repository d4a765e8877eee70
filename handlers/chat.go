package handlers

import (
	"net/http"

	"tablebooker/models"
	"tablebooker/services/agent"
	"tablebooker/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChatHandler exposes the conversation agent over HTTP.
type ChatHandler struct {
	Agent  *agent.Service
	Logger *zap.Logger
}

func NewChatHandler(agentSvc *agent.Service, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{Agent: agentSvc, Logger: logger}
}

// HandleChat processes one chat turn. A missing session id starts a new
// conversation; the generated id comes back in the response so the frontend
// can thread subsequent turns.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	result, err := h.Agent.HandleTurn(c.Request.Context(), sessionID, req.Message)
	if err != nil {
		h.Logger.Error("Chat turn failed",
			zap.String("session_id", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process message"})
		return
	}

	c.JSON(http.StatusOK, models.ChatResponse{
		Message:           result.Message,
		SessionID:         result.SessionID,
		Suggestions:       result.Suggestions,
		ConversationState: result.State,
		BookingData:       result.Booking,
		AvailabilityData:  result.Availability,
		AIMode:            result.AIMode,
		Intent:            result.Intent,
	})
}

// ClearSession drops the conversation state for a session id.
func (h *ChatHandler) ClearSession(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session id is required"})
		return
	}
	if err := h.Agent.Store.Expire(c.Request.Context(), sessionID); err != nil {
		h.Logger.Error("Failed to clear session",
			zap.String("session_id", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session cleared", "session_id": sessionID})
}
