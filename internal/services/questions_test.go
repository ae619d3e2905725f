package services_test

import (
	"testing"

	"gig-marketplace/backend/internal/models"
	"gig-marketplace/backend/internal/services"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskAndAnswerQuestion(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewQuestionService()
	owner := createTestUser(t, db, "poster@example.com")
	asker := createTestUser(t, db, "curious@example.com")
	task := createTestTask(t, db, owner.ID, "Tile the bathroom")

	question, err := svc.AskQuestion(db, task.ID, asker.ID, "Are materials included?")
	require.NoError(t, err)
	assert.Equal(t, asker.ID, question.CreatedByID)

	answered, err := svc.AnswerQuestion(db, question.ID, owner.ID, "Yes, everything is on site.")
	require.NoError(t, err)
	require.Len(t, answered.Answers, 1)
	assert.Equal(t, owner.ID, answered.Answers[0].CreatedByID)

	_, err = svc.AnswerQuestion(db, question.ID, asker.ID, "Great, thanks!")
	require.NoError(t, err)

	questions, err := svc.GetQuestionsForTask(db, task.ID)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	require.Len(t, questions[0].Answers, 2)
	assert.Equal(t, "Yes, everything is on site.", questions[0].Answers[0].Text)
	require.NotNil(t, questions[0].CreatedBy)
	assert.Equal(t, asker.ID, questions[0].CreatedBy.ID)
}

func TestAnswerUnknownQuestion(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewQuestionService()
	owner := createTestUser(t, db, "poster@example.com")

	_, err := svc.AnswerQuestion(db, uuid.Must(uuid.NewV4()), owner.ID, "hello?")
	assert.ErrorIs(t, err, services.ErrQuestionNotFound)
}

func TestNotificationLifecycle(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewNotificationService()
	user := createTestUser(t, db, "reader@example.com")

	first := models.Notification{UserID: user.ID, Message: "first"}
	require.NoError(t, svc.CreateNotification(db, &first))
	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.Equal(t, models.NotificationTypeGeneric, first.Type)

	second := models.Notification{UserID: user.ID, Message: "second", Type: models.NotificationTypeNewOffer}
	require.NoError(t, svc.CreateNotification(db, &second))

	list, err := svc.GetUserNotifications(db, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.False(t, list[0].Read)

	read, err := svc.MarkAsRead(db, first.ID)
	require.NoError(t, err)
	assert.True(t, read.Read)

	_, err = svc.MarkAsRead(db, uuid.Must(uuid.NewV4()))
	assert.ErrorIs(t, err, services.ErrNotificationNotFound)
}
