package services

import (
	"errors"

	"gig-marketplace/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type QuestionService interface {
	AskQuestion(db *gorm.DB, taskID, authorID uuid.UUID, text string) (*models.Question, error)
	GetQuestionsForTask(db *gorm.DB, taskID uuid.UUID) ([]models.Question, error)
	AnswerQuestion(db *gorm.DB, questionID, authorID uuid.UUID, text string) (*models.Question, error)
}

type QuestionServiceImpl struct{}

func NewQuestionService() *QuestionServiceImpl {
	return &QuestionServiceImpl{}
}

func (s *QuestionServiceImpl) AskQuestion(db *gorm.DB, taskID, authorID uuid.UUID, text string) (*models.Question, error) {
	question := models.Question{
		ID:          uuid.Must(uuid.NewV4()),
		TaskID:      taskID,
		Text:        text,
		CreatedByID: authorID,
	}
	if err := db.Create(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *QuestionServiceImpl) GetQuestionsForTask(db *gorm.DB, taskID uuid.UUID) ([]models.Question, error) {
	var questions []models.Question
	err := db.Preload("CreatedBy").
		Preload("Answers", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("answers.created_at asc")
		}).
		Preload("Answers.CreatedBy").
		Where("task_id = ?", taskID).
		Order("created_at asc").
		Find(&questions).Error
	return questions, err
}

// AnswerQuestion appends an embedded answer to an existing thread.
func (s *QuestionServiceImpl) AnswerQuestion(db *gorm.DB, questionID, authorID uuid.UUID, text string) (*models.Question, error) {
	var question models.Question
	if err := db.First(&question, "id = ?", questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	answer := models.Answer{
		ID:          uuid.Must(uuid.NewV4()),
		QuestionID:  question.ID,
		Text:        text,
		CreatedByID: authorID,
	}
	if err := db.Create(&answer).Error; err != nil {
		return nil, err
	}

	if err := db.Preload("Answers").First(&question, "id = ?", question.ID).Error; err != nil {
		return nil, err
	}
	return &question, nil
}
