package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/eduai-labs/eduai-backend/internal/ai"
	"github.com/eduai-labs/eduai-backend/internal/domain"
	"github.com/eduai-labs/eduai-backend/internal/usecase"
	"github.com/gin-gonic/gin"
)

type aiUsecaser interface {
	Chat(ctx context.Context, history []ai.Message, message string) (string, error)
	GenerateExam(ctx context.Context, req usecase.ExamRequest) (string, error)
}

type AIHandler struct {
	ai     aiUsecaser
	logger *slog.Logger
}

func NewAIHandler(aiUsecase aiUsecaser, logger *slog.Logger) *AIHandler {
	return &AIHandler{ai: aiUsecase, logger: logger.With("component", "ai_handler")}
}

type chatRequest struct {
	Message string       `json:"message" binding:"required"`
	History []ai.Message `json:"history" binding:"omitempty,dive"`
}

// POST /ai/chat
func (h *AIHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.ai.Chat(c.Request.Context(), req.History, req.Message)
	if err != nil {
		h.respondAIError(c, "chat", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   reply,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

type generateExamRequest struct {
	Subject       string `json:"subject"       binding:"required"`
	Difficulty    string `json:"difficulty"    binding:"omitempty,oneof=easy medium hard"`
	QuestionCount int    `json:"questionCount" binding:"omitempty,min=1,max=50"`
}

// POST /ai/generate-exam
func (h *AIHandler) GenerateExam(c *gin.Context) {
	var req generateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exam, err := h.ai.GenerateExam(c.Request.Context(), usecase.ExamRequest{
		Subject:       req.Subject,
		Difficulty:    req.Difficulty,
		QuestionCount: req.QuestionCount,
	})
	if err != nil {
		h.respondAIError(c, "generate exam", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"exam":      exam,
		"subject":   req.Subject,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *AIHandler) respondAIError(c *gin.Context, op string, err error) {
	if errors.Is(err, domain.ErrAINotConfigured) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errAINotConfigured})
		return
	}
	h.logger.ErrorContext(c.Request.Context(), op, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
}
