package services_test

import (
	"testing"
	"time"

	"gig-marketplace/backend/internal/database"
	"gig-marketplace/backend/internal/models"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fakeMailer records enqueued OTP codes instead of touching redis.
type fakeMailer struct {
	sent []sentOTP
}

type sentOTP struct {
	Email   string
	Code    string
	Purpose string
}

func (m *fakeMailer) EnqueueOTP(email, code, purpose string) error {
	m.sent = append(m.sent, sentOTP{Email: email, Code: code, Purpose: purpose})
	return nil
}

func (m *fakeMailer) last(t *testing.T) sentOTP {
	t.Helper()
	if len(m.sent) == 0 {
		t.Fatal("expected an OTP email to be enqueued")
	}
	return m.sent[len(m.sent)-1]
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := models.User{
		ID:         uuid.Must(uuid.NewV4()),
		Name:       "Test User",
		Email:      email,
		Password:   "not-a-real-hash",
		Role:       "user",
		IsVerified: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestTask(t *testing.T, db *gorm.DB, ownerID uuid.UUID, title string) *models.Task {
	t.Helper()

	task := models.Task{
		ID:          uuid.Must(uuid.NewV4()),
		Title:       title,
		Description: "some work",
		Latitude:    52.52,
		Longitude:   13.405,
		Budget:      100,
		CreatedByID: ownerID,
		Status:      models.TaskStatusOpen,
	}
	require.NoError(t, db.Create(&task).Error)
	return &task
}

func notificationsFor(t *testing.T, db *gorm.DB, userID uuid.UUID) []models.Notification {
	t.Helper()

	var out []models.Notification
	require.NoError(t, db.Where("user_id = ?", userID).Order("created_at desc").Find(&out).Error)
	return out
}

func pastTime(d time.Duration) *time.Time {
	t := time.Now().Add(-d)
	return &t
}
