package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrBadAccessCode      = errors.New("invalid professor access code")

	ErrStudentNotFound = errors.New("student not found")
	ErrTaskNotFound    = errors.New("task not found")

	ErrTaskArchived      = errors.New("task is archived")
	ErrTaskNotArchivable = errors.New("archived tasks cannot be reactivated")

	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAlreadySubmitted   = errors.New("task already submitted by this student")
	ErrAlreadyCorrected   = errors.New("submission already corrected")
	ErrRewardExceeded     = errors.New("earned cash exceeds task reward")
)
