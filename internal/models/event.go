package models

type SubmissionCreatedEvent struct {
	SubmissionID int64 `json:"submission_id"`
	TaskID       int64 `json:"task_id"`
	StudentID    int64 `json:"student_id"`
	Timestamp    int64 `json:"timestamp"`
}

type SubmissionCorrectedEvent struct {
	SubmissionID int64 `json:"submission_id"`
	TaskID       int64 `json:"task_id"`
	StudentID    int64 `json:"student_id"`
	EarnedCash   int   `json:"earned_cash"`
	Timestamp    int64 `json:"timestamp"`
}
