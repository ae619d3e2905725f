package services

import (
	"time"

	"gig-marketplace/backend/internal/cache"
	"gig-marketplace/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const (
	openTasksKey     = "tasks:open"
	featuredTasksKey = "tasks:featured"
	taskKeyPattern   = "tasks:*"
)

// CachedTaskService caches the public listings (open and featured tasks) and
// invalidates them on every write. Everything else passes through.
type CachedTaskService struct {
	taskService TaskService
	cache       *cache.RedisCache
}

func NewCachedTaskService(taskService TaskService, cacheInstance *cache.RedisCache) *CachedTaskService {
	return &CachedTaskService{
		taskService: taskService,
		cache:       cacheInstance,
	}
}

func (s *CachedTaskService) CreateTask(db *gorm.DB, task models.Task) error {
	if err := s.taskService.CreateTask(db, task); err != nil {
		return err
	}
	s.invalidateListings()
	return nil
}

func (s *CachedTaskService) GetTasks(db *gorm.DB) ([]models.Task, error) {
	var cached []models.Task
	if err := s.cache.Get(openTasksKey, &cached); err == nil {
		return cached, nil
	}

	tasks, err := s.taskService.GetTasks(db)
	if err != nil {
		return tasks, err
	}

	s.cache.Set(openTasksKey, tasks, 5*time.Minute)
	return tasks, nil
}

func (s *CachedTaskService) GetFeaturedTasks(db *gorm.DB) ([]models.Task, error) {
	var cached []models.Task
	if err := s.cache.Get(featuredTasksKey, &cached); err == nil {
		return cached, nil
	}

	tasks, err := s.taskService.GetFeaturedTasks(db)
	if err != nil {
		return tasks, err
	}

	s.cache.Set(featuredTasksKey, tasks, 5*time.Minute)
	return tasks, nil
}

func (s *CachedTaskService) GetMyTasks(db *gorm.DB, userID uuid.UUID) ([]models.Task, error) {
	return s.taskService.GetMyTasks(db, userID)
}

func (s *CachedTaskService) GetTaskByID(db *gorm.DB, taskID, viewerID uuid.UUID) (*models.Task, error) {
	return s.taskService.GetTaskByID(db, taskID, viewerID)
}

func (s *CachedTaskService) UpdateTask(db *gorm.DB, taskID, callerID uuid.UUID, update TaskUpdate) (*models.Task, error) {
	task, err := s.taskService.UpdateTask(db, taskID, callerID, update)
	if err != nil {
		return nil, err
	}
	s.invalidateListings()
	return task, nil
}

func (s *CachedTaskService) AssignTask(db *gorm.DB, taskID, assigneeID uuid.UUID) (*models.Task, error) {
	task, err := s.taskService.AssignTask(db, taskID, assigneeID)
	if err != nil {
		return nil, err
	}
	s.invalidateListings()
	return task, nil
}

func (s *CachedTaskService) CancelTask(db *gorm.DB, taskID, callerID uuid.UUID) (*models.Task, error) {
	task, err := s.taskService.CancelTask(db, taskID, callerID)
	if err != nil {
		return nil, err
	}
	s.invalidateListings()
	return task, nil
}

func (s *CachedTaskService) invalidateListings() {
	s.cache.DeletePattern(taskKeyPattern)
}
