package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact - контакт для экстренного оповещения, принадлежит одному подопечному.
// Priority: чем меньше значение, тем важнее контакт (1 - самый важный).
type Contact struct {
	ID        uuid.UUID `json:"id"`
	SubjectID uuid.UUID `json:"subject_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Priority  int       `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
}

// Subject - подопечный, от имени которого срабатывают тревоги
type Subject struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	AutoEscalate bool      `json:"auto_escalate"` // автоматический вызов экстренных служб
	Contacts     []Contact `json:"contacts"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
