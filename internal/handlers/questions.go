package handlers

import (
	"errors"
	"net/http"

	"gig-marketplace/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type QuestionHandler struct {
	db              *gorm.DB
	questionService services.QuestionService
}

func NewQuestionHandler(db *gorm.DB, questionService services.QuestionService) *QuestionHandler {
	return &QuestionHandler{db: db, questionService: questionService}
}

type AskQuestionRequest struct {
	TaskID string `json:"taskId" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

func (h *QuestionHandler) AskQuestion(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req AskQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request data", "details": err.Error()})
		return
	}

	taskID, err := uuid.FromString(req.TaskID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid taskId"})
		return
	}

	question, err := h.questionService.AskQuestion(h.db, taskID, userID, req.Text)
	if err != nil {
		handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

func (h *QuestionHandler) GetQuestionsForTask(c *gin.Context) {
	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}

	questions, err := h.questionService.GetQuestionsForTask(h.db, taskID)
	if err != nil {
		handleQuestionError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

type AnswerQuestionRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *QuestionHandler) AnswerQuestion(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	questionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req AnswerQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request data", "details": err.Error()})
		return
	}

	question, err := h.questionService.AnswerQuestion(h.db, questionID, userID, req.Text)
	if err != nil {
		handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

func handleQuestionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrQuestionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to process question request"})
	}
}
