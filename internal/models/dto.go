package models

// Data Transfer Objects

type RegisterProfessorRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required"`
}

type RegisterStudentRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Role     string `json:"role" validate:"required,oneof=professor student"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Role      string     `json:"role"`
	Professor *Professor `json:"professor,omitempty"`
	Student   *Student   `json:"student,omitempty"`
}

type SessionResponse struct {
	Role        string `json:"role"`
	ProfessorID int64  `json:"professor_id,omitempty"`
	StudentID   int64  `json:"student_id,omitempty"`
	Email       string `json:"email"`
}

type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=255"`
	Description string `json:"description" validate:"required,max=10000"`
	Reward      int    `json:"reward" validate:"gte=0"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=3,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=10000"`
	Reward      *int    `json:"reward,omitempty" validate:"omitempty,gte=0"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=active archived"`
}

type CreateSubmissionRequest struct {
	TaskID    int64  `json:"task_id" validate:"required,gt=0"`
	StudentID int64  `json:"student_id" validate:"required,gt=0"`
	Answer    string `json:"answer" validate:"required"`
}

type CorrectSubmissionRequest struct {
	Feedback   string `json:"feedback" validate:"required"`
	EarnedCash int    `json:"earned_cash" validate:"gte=0"`
}

type TasksResponse struct {
	Tasks []TaskWithStats `json:"tasks"`
	Total int             `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

type StudentsResponse struct {
	Students []StudentWithStats `json:"students"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	Limit    int                `json:"limit"`
}

type SubmissionsResponse struct {
	Submissions []SubmissionWithDetails `json:"submissions"`
	Total       int                     `json:"total"`
	Page        int                     `json:"page"`
	Limit       int                     `json:"limit"`
}
