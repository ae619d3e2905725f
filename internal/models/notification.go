package models

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	NotificationTypeNewOffer      = "new-offer"
	NotificationTypeOfferAccepted = "offer-accepted"
	NotificationTypeTaskEdited    = "task-edited"
	NotificationTypeTaskCancelled = "task-cancelled"
	NotificationTypeGeneric       = "generic"
)

// Notification is a fire-and-forget projection of a task/offer event. It is
// created by the dispatcher, read by polling clients, and only ever mutated
// by the read-flag toggle.
type Notification struct {
	ID      uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	UserID  uuid.UUID `json:"user" gorm:"type:uuid;not null;index"`
	Message string    `json:"message" gorm:"not null"`
	Type    string    `json:"type" gorm:"default:'generic'"`
	Read    bool      `json:"read" gorm:"default:false"`
	Link    string    `json:"link"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
