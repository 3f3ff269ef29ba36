package models

import (
	"time"
)

type Submission struct {
	ID          int64      `json:"id" db:"id"`
	TaskID      int64      `json:"task_id" db:"task_id"`
	StudentID   int64      `json:"student_id" db:"student_id"`
	Answer      string     `json:"answer" db:"answer"`
	Status      string     `json:"status" db:"status"` // pending, corrected
	Feedback    *string    `json:"feedback,omitempty" db:"feedback"`
	EarnedCash  int        `json:"earned_cash" db:"earned_cash"`
	SubmittedAt time.Time  `json:"submitted_at" db:"submitted_at"`
	CorrectedAt *time.Time `json:"corrected_at,omitempty" db:"corrected_at"`
}

type SubmissionWithDetails struct {
	Submission
	StudentName  string `json:"student_name" db:"student_name"`
	StudentEmail string `json:"student_email" db:"student_email"`
	TaskTitle    string `json:"task_title" db:"task_title"`
	TaskReward   int    `json:"task_reward" db:"task_reward"`
}

type SubmissionStatus string

const (
	SubmissionStatusPending   SubmissionStatus = "pending"
	SubmissionStatusCorrected SubmissionStatus = "corrected"
)

func (ss SubmissionStatus) String() string {
	return string(ss)
}
