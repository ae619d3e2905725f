package models

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	TaskStatusOpen      = "open"
	TaskStatusAssigned  = "assigned"
	TaskStatusCancelled = "cancelled"
)

type Task struct {
	ID          uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Location    string     `json:"location"`
	Latitude    float64    `json:"latitude" gorm:"not null"`
	Longitude   float64    `json:"longitude" gorm:"not null"`
	Budget      float64    `json:"budget" gorm:"not null"`
	DueDate     *time.Time `json:"due_date"`

	CreatedByID  uuid.UUID  `json:"created_by" gorm:"type:uuid;not null;index"`
	CreatedBy    *User      `json:"created_by_user,omitempty" gorm:"foreignKey:CreatedByID"`
	AssignedToID *uuid.UUID `json:"assigned_to" gorm:"type:uuid"`
	AssignedTo   *User      `json:"assigned_to_user,omitempty" gorm:"foreignKey:AssignedToID"`

	Status      string `json:"status" gorm:"not null;default:'open'"`
	IsCancelled bool   `json:"is_cancelled" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Task) IsOwner(userID uuid.UUID) bool {
	return t.CreatedByID == userID
}
