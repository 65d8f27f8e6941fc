package model

import (
	"time"

	"github.com/google/uuid"
)

// Task is a user-owned unit of work. Position is meaningful only relative
// to other tasks sharing the same (UserID, Status) pair.
type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string    `gorm:"not null"`
	Description string
	Status      string    `gorm:"not null;index:idx_tasks_user_status,priority:2"`
	UserID      string    `gorm:"not null;index:idx_tasks_user_status,priority:1"`
	Position    int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}
