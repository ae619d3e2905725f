package models

import (
	"time"

	"github.com/gofrs/uuid"
)

type Question struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	TaskID      uuid.UUID `json:"task" gorm:"type:uuid;not null;index"`
	Text        string    `json:"text" gorm:"not null"`
	CreatedByID uuid.UUID `json:"created_by" gorm:"type:uuid;not null"`
	CreatedBy   *User     `json:"created_by_user,omitempty" gorm:"foreignKey:CreatedByID"`

	Answers []Answer `json:"answers" gorm:"foreignKey:QuestionID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Answer struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	QuestionID  uuid.UUID `json:"question" gorm:"type:uuid;not null;index"`
	Text        string    `json:"text" gorm:"not null"`
	CreatedByID uuid.UUID `json:"created_by" gorm:"type:uuid;not null"`
	CreatedBy   *User     `json:"created_by_user,omitempty" gorm:"foreignKey:CreatedByID"`

	CreatedAt time.Time `json:"created_at"`
}
