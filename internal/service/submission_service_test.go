package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunomarqs/studycash/internal/models"
)

type submissionFixture struct {
	svc     SubmissionService
	store   *fakeStore
	events  *fakeEventsClient
	task    *models.Task
	student *models.Student
}

func newSubmissionFixture(t *testing.T) *submissionFixture {
	t.Helper()

	store := newFakeStore()
	events := &fakeEventsClient{}
	svc := NewSubmissionService(
		&fakeSubmissionRepo{store: store},
		&fakeStudentRepo{store: store},
		&fakeTaskRepo{store: store},
		events,
		zerolog.Nop(),
	)

	taskRepo := &fakeTaskRepo{store: store}
	task := &models.Task{
		Title:       "HW1",
		Description: "desc",
		Reward:      100,
		Status:      models.TaskStatusActive.String(),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	require.NoError(t, taskRepo.Create(context.Background(), task))

	studentRepo := &fakeStudentRepo{store: store}
	student := &models.Student{
		Name:      "Ana",
		Email:     "ana@x.com",
		Password:  "p1",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, studentRepo.Create(context.Background(), student))

	return &submissionFixture{
		svc:     svc,
		store:   store,
		events:  events,
		task:    task,
		student: student,
	}
}

func TestCreateSubmission(t *testing.T) {
	ctx := context.Background()
	f := newSubmissionFixture(t)

	submission, err := f.svc.CreateSubmission(ctx, &models.CreateSubmissionRequest{
		TaskID:    f.task.ID,
		StudentID: f.student.ID,
		Answer:    "42",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusPending.String(), submission.Status)
	assert.Equal(t, 0, submission.EarnedCash)
	assert.Nil(t, submission.CorrectedAt)
	require.Len(t, f.events.created, 1)
	assert.Equal(t, submission.ID, f.events.created[0].SubmissionID)

	t.Run("second submission for the same pair fails", func(t *testing.T) {
		_, err := f.svc.CreateSubmission(ctx, &models.CreateSubmissionRequest{
			TaskID:    f.task.ID,
			StudentID: f.student.ID,
			Answer:    "43",
		})
		assert.ErrorIs(t, err, ErrAlreadySubmitted)
	})

	t.Run("unknown task fails", func(t *testing.T) {
		_, err := f.svc.CreateSubmission(ctx, &models.CreateSubmissionRequest{
			TaskID:    9999,
			StudentID: f.student.ID,
			Answer:    "42",
		})
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("unknown student fails", func(t *testing.T) {
		_, err := f.svc.CreateSubmission(ctx, &models.CreateSubmissionRequest{
			TaskID:    f.task.ID,
			StudentID: 9999,
			Answer:    "42",
		})
		assert.ErrorIs(t, err, ErrStudentNotFound)
	})
}

func TestCreateSubmissionOnArchivedTask(t *testing.T) {
	ctx := context.Background()
	f := newSubmissionFixture(t)

	f.store.tasks[f.task.ID].Status = models.TaskStatusArchived.String()

	_, err := f.svc.CreateSubmission(ctx, &models.CreateSubmissionRequest{
		TaskID:    f.task.ID,
		StudentID: f.student.ID,
		Answer:    "42",
	})
	assert.ErrorIs(t, err, ErrTaskArchived)
}

func TestCorrectSubmission(t *testing.T) {
	ctx := context.Background()
	f := newSubmissionFixture(t)

	submission, err := f.svc.CreateSubmission(ctx, &models.CreateSubmissionRequest{
		TaskID:    f.task.ID,
		StudentID: f.student.ID,
		Answer:    "42",
	})
	require.NoError(t, err)

	corrected, err := f.svc.CorrectSubmission(ctx, submission.ID, &models.CorrectSubmissionRequest{
		Feedback:   "Good job",
		EarnedCash: 80,
	})
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusCorrected.String(), corrected.Status)
	require.NotNil(t, corrected.Feedback)
	assert.Equal(t, "Good job", *corrected.Feedback)
	assert.Equal(t, 80, corrected.EarnedCash)
	assert.NotNil(t, corrected.CorrectedAt)

	t.Run("credits the student's balance", func(t *testing.T) {
		assert.Equal(t, 80, f.store.students[f.student.ID].StudyCash)
	})

	t.Run("publishes a corrected event", func(t *testing.T) {
		require.Len(t, f.events.corrected, 1)
		assert.Equal(t, 80, f.events.corrected[0].EarnedCash)
	})

	t.Run("grading is applied at most once", func(t *testing.T) {
		_, err := f.svc.CorrectSubmission(ctx, submission.ID, &models.CorrectSubmissionRequest{
			Feedback:   "Again",
			EarnedCash: 80,
		})
		assert.ErrorIs(t, err, ErrAlreadyCorrected)
		assert.Equal(t, 80, f.store.students[f.student.ID].StudyCash)
	})
}

func TestCorrectSubmissionRewardCeiling(t *testing.T) {
	ctx := context.Background()
	f := newSubmissionFixture(t)

	submission, err := f.svc.CreateSubmission(ctx, &models.CreateSubmissionRequest{
		TaskID:    f.task.ID,
		StudentID: f.student.ID,
		Answer:    "42",
	})
	require.NoError(t, err)

	_, err = f.svc.CorrectSubmission(ctx, submission.ID, &models.CorrectSubmissionRequest{
		Feedback:   "Too generous",
		EarnedCash: f.task.Reward + 1,
	})
	assert.ErrorIs(t, err, ErrRewardExceeded)
	assert.Equal(t, 0, f.store.students[f.student.ID].StudyCash)
}

func TestCorrectMissingSubmission(t *testing.T) {
	ctx := context.Background()
	f := newSubmissionFixture(t)

	_, err := f.svc.CorrectSubmission(ctx, 9999, &models.CorrectSubmissionRequest{
		Feedback:   "Nothing here",
		EarnedCash: 10,
	})
	assert.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestBalanceAccumulatesAcrossGradings(t *testing.T) {
	ctx := context.Background()
	f := newSubmissionFixture(t)

	taskRepo := &fakeTaskRepo{store: f.store}
	amounts := []int{10, 25, 40}
	for i, amount := range amounts {
		task := &models.Task{
			Title:       "HW extra",
			Description: "desc",
			Reward:      100,
			Status:      models.TaskStatusActive.String(),
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		require.NoError(t, taskRepo.Create(ctx, task))

		submission, err := f.svc.CreateSubmission(ctx, &models.CreateSubmissionRequest{
			TaskID:    task.ID,
			StudentID: f.student.ID,
			Answer:    "answer",
		})
		require.NoError(t, err, "submission %d", i)

		_, err = f.svc.CorrectSubmission(ctx, submission.ID, &models.CorrectSubmissionRequest{
			Feedback:   "ok",
			EarnedCash: amount,
		})
		require.NoError(t, err, "grading %d", i)
	}

	assert.Equal(t, 75, f.store.students[f.student.ID].StudyCash)
}

func TestListSubmissions(t *testing.T) {
	ctx := context.Background()
	f := newSubmissionFixture(t)

	submission, err := f.svc.CreateSubmission(ctx, &models.CreateSubmissionRequest{
		TaskID:    f.task.ID,
		StudentID: f.student.ID,
		Answer:    "42",
	})
	require.NoError(t, err)

	byTask, err := f.svc.GetSubmissionsByTask(ctx, f.task.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, byTask.Submissions, 1)
	assert.Equal(t, submission.ID, byTask.Submissions[0].ID)
	assert.Equal(t, "Ana", byTask.Submissions[0].StudentName)
	assert.Equal(t, "HW1", byTask.Submissions[0].TaskTitle)
	assert.Equal(t, 100, byTask.Submissions[0].TaskReward)

	byStudent, err := f.svc.GetSubmissionsByStudent(ctx, f.student.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, byStudent.Submissions, 1)

	all, err := f.svc.GetAllSubmissions(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, all.Total)

	t.Run("unknown task 404s", func(t *testing.T) {
		_, err := f.svc.GetSubmissionsByTask(ctx, 9999, 1, 20)
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}
