package models

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	OfferStatusPending   = "pending"
	OfferStatusAccepted  = "accepted"
	OfferStatusDeclined  = "declined"
	OfferStatusWithdrawn = "withdrawn"
)

// Offer is a bid by a tasker on another user's task. A user may hold at most
// one offer per task, enforced both in the service and by the composite index.
type Offer struct {
	ID     uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	TaskID uuid.UUID `json:"task" gorm:"type:uuid;not null;index:idx_offer_task_user,unique"`
	Task   *Task     `json:"task_detail,omitempty" gorm:"foreignKey:TaskID"`
	UserID uuid.UUID `json:"user" gorm:"type:uuid;not null;index:idx_offer_task_user,unique"`
	User   *User     `json:"user_detail,omitempty" gorm:"foreignKey:UserID"`

	Amount  float64 `json:"offer_amount" gorm:"not null"`
	Message string  `json:"message"`
	Status  string  `json:"status" gorm:"not null;default:'pending'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
