package services_test

import (
	"testing"
	"time"

	"gig-marketplace/backend/internal/cache"
	"gig-marketplace/backend/internal/models"
	"gig-marketplace/backend/internal/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCachedTaskService(t *testing.T) (*services.CachedTaskService, *cache.RedisCache) {
	t.Helper()

	mr := miniredis.RunT(t)
	redisCache := cache.NewRedisCache(&cache.CacheConfig{
		Addr:         mr.Addr(),
		PoolSize:     10,
		MinIdleConns: 1,
		DialTimeout:  time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	t.Cleanup(func() { redisCache.Close() })

	svc := services.NewCachedTaskService(newTaskService(), redisCache)
	return svc, redisCache
}

func TestCachedGetTasksServesFromCache(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := setupCachedTaskService(t)
	owner := createTestUser(t, db, "poster@example.com")
	createTestTask(t, db, owner.ID, "Cached task")

	first, err := svc.GetTasks(db)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// write past the service; the cached listing must not see it
	sneaky := models.Task{
		ID:          uuid.Must(uuid.NewV4()),
		Title:       "Uncached task",
		Latitude:    1,
		Longitude:   1,
		Budget:      10,
		CreatedByID: owner.ID,
		Status:      models.TaskStatusOpen,
	}
	require.NoError(t, db.Create(&sneaky).Error)

	second, err := svc.GetTasks(db)
	require.NoError(t, err)
	assert.Len(t, second, 1)
}

func TestCachedTaskWritesInvalidateListings(t *testing.T) {
	db := setupTestDB(t)
	svc, redisCache := setupCachedTaskService(t)
	owner := createTestUser(t, db, "poster@example.com")
	createTestTask(t, db, owner.ID, "Seed task")

	_, err := svc.GetTasks(db)
	require.NoError(t, err)
	_, err = svc.GetFeaturedTasks(db)
	require.NoError(t, err)

	exists, err := redisCache.Exists("tasks:open")
	require.NoError(t, err)
	assert.True(t, exists)

	err = svc.CreateTask(db, models.Task{
		ID:          uuid.Must(uuid.NewV4()),
		Title:       "Fresh task",
		Latitude:    1,
		Longitude:   1,
		Budget:      20,
		CreatedByID: owner.ID,
		Status:      models.TaskStatusOpen,
	})
	require.NoError(t, err)

	exists, err = redisCache.Exists("tasks:open")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = redisCache.Exists("tasks:featured")
	require.NoError(t, err)
	assert.False(t, exists)

	tasks, err := svc.GetTasks(db)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}
