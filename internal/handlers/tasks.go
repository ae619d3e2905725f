package handlers

import (
	"errors"
	"net/http"
	"time"

	"gig-marketplace/backend/internal/models"
	"gig-marketplace/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type TaskHandler struct {
	db          *gorm.DB
	taskService services.TaskService
}

func NewTaskHandler(db *gorm.DB, taskService services.TaskService) *TaskHandler {
	return &TaskHandler{db: db, taskService: taskService}
}

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Location    string     `json:"location"`
	Latitude    float64    `json:"latitude" binding:"required"`
	Longitude   float64    `json:"longitude" binding:"required"`
	Budget      float64    `json:"budget" binding:"required"`
	DueDate     *time.Time `json:"dueDate"`
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request data", "details": err.Error()})
		return
	}

	task := models.Task{
		ID:          uuid.Must(uuid.NewV4()),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Budget:      req.Budget,
		DueDate:     req.DueDate,
		CreatedByID: userID,
		Status:      models.TaskStatusOpen,
	}

	if err := h.taskService.CreateTask(h.db, task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating task"})
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) GetTasks(c *gin.Context) {
	tasks, err := h.taskService.GetTasks(h.db)
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) GetFeaturedTasks(c *gin.Context) {
	tasks, err := h.taskService.GetFeaturedTasks(h.db)
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) GetMyTasks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.GetMyTasks(h.db, userID)
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTaskByID(h.db, taskID, userID)
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

type UpdateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Location    string     `json:"location"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	Budget      *float64   `json:"budget"`
	DueDate     *time.Time `json:"dueDate"`
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request data", "details": err.Error()})
		return
	}

	task, err := h.taskService.UpdateTask(h.db, taskID, userID, services.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Budget:      req.Budget,
		DueDate:     req.DueDate,
	})
	if err != nil {
		handleTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

type AssignTaskRequest struct {
	AssignedTo string `json:"assignedTo" binding:"required"`
}

func (h *TaskHandler) AssignTask(c *gin.Context) {
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request data", "details": err.Error()})
		return
	}

	assigneeID, err := uuid.FromString(req.AssignedTo)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid assignedTo"})
		return
	}

	task, err := h.taskService.AssignTask(h.db, taskID, assigneeID)
	if err != nil {
		handleTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) CancelTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.CancelTask(h.db, taskID, userID)
	if err != nil {
		handleTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task cancelled successfully", "task": task})
}

func handleTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
	case errors.Is(err, services.ErrNotTaskOwner):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrTaskGone):
		c.JSON(http.StatusGone, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrTaskNotOpen):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to process task request"})
	}
}
