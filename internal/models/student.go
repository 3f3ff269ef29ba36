package models

import (
	"time"
)

type Student struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	StudyCash int       `json:"study_cash" db:"study_cash"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type StudentWithStats struct {
	Student
	TotalSubmissions     int `json:"total_submissions" db:"total_submissions"`
	PendingSubmissions   int `json:"pending_submissions" db:"pending_submissions"`
	CorrectedSubmissions int `json:"corrected_submissions" db:"corrected_submissions"`
}
