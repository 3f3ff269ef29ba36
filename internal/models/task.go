package models

import (
	"time"
)

type Task struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Reward      int       `json:"reward" db:"reward"` // max StudyCash payout
	Status      string    `json:"status" db:"status"` // active, archived
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type TaskWithStats struct {
	Task
	TotalSubmissions   int `json:"total_submissions" db:"total_submissions"`
	PendingSubmissions int `json:"pending_submissions" db:"pending_submissions"`
}

type TaskStatus string

const (
	TaskStatusActive   TaskStatus = "active"
	TaskStatusArchived TaskStatus = "archived"
)

func (ts TaskStatus) String() string {
	return string(ts)
}

func IsValidTaskStatus(status string) bool {
	switch status {
	case "active", "archived":
		return true
	default:
		return false
	}
}
