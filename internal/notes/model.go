package notes

import (
	"time"

	"github.com/google/uuid"
)

type Priority string

const (
	PriorityBaja   Priority = "baja"
	PriorityNormal Priority = "normal"
	PriorityAlta   Priority = "alta"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityBaja, PriorityNormal, PriorityAlta:
		return true
	}
	return false
}

type Note struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"titulo"`
	Content   string     `json:"contenido,omitempty"`
	Priority  Priority   `json:"prioridad"`
	Reminder  *time.Time `json:"fecha_recordatorio,omitempty"`
	Completed bool       `json:"completado"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
