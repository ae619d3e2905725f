package services

import (
	"errors"
	"time"

	"gig-marketplace/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const featuredTaskLimit = 8

type TaskUpdate struct {
	Title       string
	Description string
	Category    string
	Location    string
	Latitude    *float64
	Longitude   *float64
	Budget      *float64
	DueDate     *time.Time
}

type TaskService interface {
	CreateTask(db *gorm.DB, task models.Task) error
	GetTasks(db *gorm.DB) ([]models.Task, error)
	GetFeaturedTasks(db *gorm.DB) ([]models.Task, error)
	GetMyTasks(db *gorm.DB, userID uuid.UUID) ([]models.Task, error)
	GetTaskByID(db *gorm.DB, taskID, viewerID uuid.UUID) (*models.Task, error)
	UpdateTask(db *gorm.DB, taskID, callerID uuid.UUID, update TaskUpdate) (*models.Task, error)
	AssignTask(db *gorm.DB, taskID, assigneeID uuid.UUID) (*models.Task, error)
	CancelTask(db *gorm.DB, taskID, callerID uuid.UUID) (*models.Task, error)
}

type TaskServiceImpl struct {
	notifier Notifier
}

func NewTaskService(notifier Notifier) *TaskServiceImpl {
	return &TaskServiceImpl{notifier: notifier}
}

func (s *TaskServiceImpl) CreateTask(db *gorm.DB, task models.Task) error {
	return db.Create(&task).Error
}

// GetTasks returns every non-cancelled task, newest first, with poster and
// assignee projections.
func (s *TaskServiceImpl) GetTasks(db *gorm.DB) ([]models.Task, error) {
	var tasks []models.Task
	err := db.Preload("CreatedBy").Preload("AssignedTo").
		Where("is_cancelled = ?", false).
		Order("created_at desc").
		Find(&tasks).Error
	return tasks, err
}

func (s *TaskServiceImpl) GetFeaturedTasks(db *gorm.DB) ([]models.Task, error) {
	var tasks []models.Task
	err := db.Preload("CreatedBy").
		Where("is_cancelled = ?", false).
		Order("created_at desc").
		Limit(featuredTaskLimit).
		Find(&tasks).Error
	return tasks, err
}

func (s *TaskServiceImpl) GetMyTasks(db *gorm.DB, userID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	err := db.Preload("AssignedTo").
		Where("created_by_id = ?", userID).
		Order("created_at desc").
		Find(&tasks).Error
	return tasks, err
}

// GetTaskByID enforces the cancelled-task visibility rule: the poster and
// anyone who placed an offer still see it, everyone else gets ErrTaskGone.
func (s *TaskServiceImpl) GetTaskByID(db *gorm.DB, taskID, viewerID uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := db.Preload("CreatedBy").Preload("AssignedTo").First(&task, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if task.IsCancelled && !task.IsOwner(viewerID) {
		var offerCount int64
		if err := db.Model(&models.Offer{}).
			Where("task_id = ? AND user_id = ?", taskID, viewerID).
			Count(&offerCount).Error; err != nil {
			return nil, err
		}
		if offerCount == 0 {
			return nil, ErrTaskGone
		}
	}

	return &task, nil
}

// UpdateTask applies the poster's edit and fans out task-edited
// notifications to every offerer.
func (s *TaskServiceImpl) UpdateTask(db *gorm.DB, taskID, callerID uuid.UUID, update TaskUpdate) (*models.Task, error) {
	var task models.Task
	if err := db.First(&task, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if !task.IsOwner(callerID) {
		return nil, ErrNotTaskOwner
	}
	if task.IsCancelled {
		return nil, ErrTaskGone
	}

	if update.Title != "" {
		task.Title = update.Title
	}
	if update.Description != "" {
		task.Description = update.Description
	}
	if update.Category != "" {
		task.Category = update.Category
	}
	if update.Location != "" {
		task.Location = update.Location
	}
	if update.Latitude != nil && update.Longitude != nil {
		task.Latitude = *update.Latitude
		task.Longitude = *update.Longitude
	}
	if update.Budget != nil {
		task.Budget = *update.Budget
	}
	if update.DueDate != nil {
		task.DueDate = update.DueDate
	}

	if err := db.Save(&task).Error; err != nil {
		return nil, err
	}

	s.notifier.NotifyTaskEdited(db, task.ID)

	return &task, nil
}

// AssignTask is the single assignment transition, shared by the direct
// assignment endpoint and by offer acceptance. The conditional update only
// succeeds while the task is still open, so concurrent assignments cannot
// both win.
func (s *TaskServiceImpl) AssignTask(db *gorm.DB, taskID, assigneeID uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := db.First(&task, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	result := db.Model(&models.Task{}).
		Where("id = ? AND status = ?", taskID, models.TaskStatusOpen).
		Updates(map[string]interface{}{
			"status":         models.TaskStatusAssigned,
			"assigned_to_id": assigneeID,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrTaskNotOpen
	}

	task.Status = models.TaskStatusAssigned
	task.AssignedToID = &assigneeID
	return &task, nil
}

// CancelTask is terminal and irreversible. Assignment is cleared so that
// assigned-to only ever accompanies the assigned status, and every offerer
// is notified.
func (s *TaskServiceImpl) CancelTask(db *gorm.DB, taskID, callerID uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := db.First(&task, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if !task.IsOwner(callerID) {
		return nil, ErrNotTaskOwner
	}
	if task.IsCancelled {
		return nil, ErrTaskGone
	}

	if err := db.Model(&task).Updates(map[string]interface{}{
		"status":         models.TaskStatusCancelled,
		"is_cancelled":   true,
		"assigned_to_id": nil,
	}).Error; err != nil {
		return nil, err
	}

	task.Status = models.TaskStatusCancelled
	task.IsCancelled = true
	task.AssignedToID = nil

	s.notifier.NotifyTaskCanceled(db, task.ID)

	return &task, nil
}
