package service

import (
	"context"
	"sort"
	"time"

	"github.com/brunomarqs/studycash/internal/models"
)

// fakeStore is a shared in-memory backing for the repository fakes, so that
// grading a submission credits the same student the auth fake registered.
type fakeStore struct {
	professors  map[int64]*models.Professor
	students    map[int64]*models.Student
	tasks       map[int64]*models.Task
	submissions map[int64]*models.Submission
	nextID      int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		professors:  make(map[int64]*models.Professor),
		students:    make(map[int64]*models.Student),
		tasks:       make(map[int64]*models.Task),
		submissions: make(map[int64]*models.Submission),
	}
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

type fakeProfessorRepo struct {
	store *fakeStore
}

func (r *fakeProfessorRepo) Create(_ context.Context, professor *models.Professor) error {
	professor.ID = r.store.id()
	copied := *professor
	r.store.professors[professor.ID] = &copied
	return nil
}

func (r *fakeProfessorRepo) GetByID(_ context.Context, id int64) (*models.Professor, error) {
	professor, ok := r.store.professors[id]
	if !ok {
		return nil, nil
	}
	copied := *professor
	return &copied, nil
}

func (r *fakeProfessorRepo) GetByEmail(_ context.Context, email string) (*models.Professor, error) {
	for _, professor := range r.store.professors {
		if professor.Email == email {
			copied := *professor
			return &copied, nil
		}
	}
	return nil, nil
}

type fakeStudentRepo struct {
	store *fakeStore
}

func (r *fakeStudentRepo) Create(_ context.Context, student *models.Student) error {
	student.ID = r.store.id()
	copied := *student
	r.store.students[student.ID] = &copied
	return nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id int64) (*models.StudentWithStats, error) {
	student, ok := r.store.students[id]
	if !ok {
		return nil, nil
	}

	stats := &models.StudentWithStats{Student: *student}
	for _, submission := range r.store.submissions {
		if submission.StudentID != id {
			continue
		}
		stats.TotalSubmissions++
		if submission.Status == models.SubmissionStatusPending.String() {
			stats.PendingSubmissions++
		} else {
			stats.CorrectedSubmissions++
		}
	}
	return stats, nil
}

func (r *fakeStudentRepo) GetByEmail(_ context.Context, email string) (*models.Student, error) {
	for _, student := range r.store.students {
		if student.Email == email {
			copied := *student
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeStudentRepo) GetAll(ctx context.Context, limit, offset int) ([]models.StudentWithStats, int, error) {
	ids := make([]int64, 0, len(r.store.students))
	for id := range r.store.students {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	var students []models.StudentWithStats
	for _, id := range ids {
		stats, _ := r.GetByID(ctx, id)
		students = append(students, *stats)
	}

	total := len(students)
	students = paginate(students, limit, offset)
	return students, total, nil
}

func (r *fakeStudentRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.store.students[id]
	return ok, nil
}

type fakeTaskRepo struct {
	store *fakeStore
}

func (r *fakeTaskRepo) Create(_ context.Context, task *models.Task) error {
	task.ID = r.store.id()
	copied := *task
	r.store.tasks[task.ID] = &copied
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id int64) (*models.Task, error) {
	task, ok := r.store.tasks[id]
	if !ok {
		return nil, nil
	}
	copied := *task
	return &copied, nil
}

func (r *fakeTaskRepo) GetAll(_ context.Context, limit, offset int) ([]models.TaskWithStats, int, error) {
	ids := r.sortedIDs(false)

	var tasks []models.TaskWithStats
	for _, id := range ids {
		stats := models.TaskWithStats{Task: *r.store.tasks[id]}
		for _, submission := range r.store.submissions {
			if submission.TaskID != id {
				continue
			}
			stats.TotalSubmissions++
			if submission.Status == models.SubmissionStatusPending.String() {
				stats.PendingSubmissions++
			}
		}
		tasks = append(tasks, stats)
	}

	total := len(tasks)
	tasks = paginate(tasks, limit, offset)
	return tasks, total, nil
}

func (r *fakeTaskRepo) GetActive(_ context.Context, limit, offset int) ([]models.Task, int, error) {
	ids := r.sortedIDs(true)

	var tasks []models.Task
	for _, id := range ids {
		tasks = append(tasks, *r.store.tasks[id])
	}

	total := len(tasks)
	tasks = paginate(tasks, limit, offset)
	return tasks, total, nil
}

func (r *fakeTaskRepo) sortedIDs(activeOnly bool) []int64 {
	var ids []int64
	for id, task := range r.store.tasks {
		if activeOnly && task.Status != models.TaskStatusActive.String() {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	return ids
}

func (r *fakeTaskRepo) Update(_ context.Context, task *models.Task) error {
	if _, ok := r.store.tasks[task.ID]; !ok {
		return nil
	}
	copied := *task
	r.store.tasks[task.ID] = &copied
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	delete(r.store.tasks, id)
	for subID, submission := range r.store.submissions {
		if submission.TaskID == id {
			delete(r.store.submissions, subID)
		}
	}
	return nil
}

func (r *fakeTaskRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.store.tasks[id]
	return ok, nil
}

type fakeSubmissionRepo struct {
	store *fakeStore
}

func (r *fakeSubmissionRepo) Create(_ context.Context, submission *models.Submission) error {
	submission.ID = r.store.id()
	copied := *submission
	r.store.submissions[submission.ID] = &copied
	return nil
}

func (r *fakeSubmissionRepo) GetByID(_ context.Context, id int64) (*models.Submission, error) {
	submission, ok := r.store.submissions[id]
	if !ok {
		return nil, nil
	}
	copied := *submission
	return &copied, nil
}

func (r *fakeSubmissionRepo) GetByStudentAndTask(_ context.Context, studentID, taskID int64) (*models.Submission, error) {
	for _, submission := range r.store.submissions {
		if submission.StudentID == studentID && submission.TaskID == taskID {
			copied := *submission
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeSubmissionRepo) GetByTaskID(ctx context.Context, taskID int64, limit, offset int) ([]models.SubmissionWithDetails, int, error) {
	return r.collect(func(s *models.Submission) bool { return s.TaskID == taskID }, limit, offset)
}

func (r *fakeSubmissionRepo) GetByStudentID(ctx context.Context, studentID int64, limit, offset int) ([]models.SubmissionWithDetails, int, error) {
	return r.collect(func(s *models.Submission) bool { return s.StudentID == studentID }, limit, offset)
}

func (r *fakeSubmissionRepo) GetAll(ctx context.Context, limit, offset int) ([]models.SubmissionWithDetails, int, error) {
	return r.collect(func(*models.Submission) bool { return true }, limit, offset)
}

func (r *fakeSubmissionRepo) collect(match func(*models.Submission) bool, limit, offset int) ([]models.SubmissionWithDetails, int, error) {
	var ids []int64
	for id, submission := range r.store.submissions {
		if match(submission) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	var details []models.SubmissionWithDetails
	for _, id := range ids {
		submission := r.store.submissions[id]
		detail := models.SubmissionWithDetails{Submission: *submission}
		if student, ok := r.store.students[submission.StudentID]; ok {
			detail.StudentName = student.Name
			detail.StudentEmail = student.Email
		}
		if task, ok := r.store.tasks[submission.TaskID]; ok {
			detail.TaskTitle = task.Title
			detail.TaskReward = task.Reward
		}
		details = append(details, detail)
	}

	total := len(details)
	details = paginate(details, limit, offset)
	return details, total, nil
}

func (r *fakeSubmissionRepo) Correct(_ context.Context, id, studentID int64, feedback string, earnedCash int, correctedAt time.Time) (bool, error) {
	submission, ok := r.store.submissions[id]
	if !ok || submission.Status != models.SubmissionStatusPending.String() {
		return false, nil
	}

	submission.Status = models.SubmissionStatusCorrected.String()
	submission.Feedback = &feedback
	submission.EarnedCash = earnedCash
	submission.CorrectedAt = &correctedAt

	if student, ok := r.store.students[studentID]; ok {
		student.StudyCash += earnedCash
		student.UpdatedAt = correctedAt
	}

	return true, nil
}

type fakeEventsClient struct {
	created   []*models.SubmissionCreatedEvent
	corrected []*models.SubmissionCorrectedEvent
}

func (c *fakeEventsClient) PublishSubmissionCreated(_ context.Context, event *models.SubmissionCreatedEvent) error {
	c.created = append(c.created, event)
	return nil
}

func (c *fakeEventsClient) PublishSubmissionCorrected(_ context.Context, event *models.SubmissionCorrectedEvent) error {
	c.corrected = append(c.corrected, event)
	return nil
}

func (c *fakeEventsClient) Close() error { return nil }

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
