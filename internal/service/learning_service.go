package service

import (
	"code_plus_backend/internal/model"
	"code_plus_backend/internal/repository"
	"code_plus_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

// LearningService tracks a student's journey through lessons: progress,
// notes and exercise submissions.
type LearningService struct {
	LessonRepo     *repository.LessonRepository
	ContentRepo    *repository.LessonContentRepository
	ProgressRepo   *repository.ProgressRepository
	NoteRepo       *repository.NoteRepository
	SubmissionRepo *repository.SubmissionRepository
}

func NewLearningService(
	lessonRepo *repository.LessonRepository,
	contentRepo *repository.LessonContentRepository,
	progressRepo *repository.ProgressRepository,
	noteRepo *repository.NoteRepository,
	submissionRepo *repository.SubmissionRepository,
) *LearningService {
	return &LearningService{
		LessonRepo:     lessonRepo,
		ContentRepo:    contentRepo,
		ProgressRepo:   progressRepo,
		NoteRepo:       noteRepo,
		SubmissionRepo: submissionRepo,
	}
}

func (s *LearningService) StartLesson(userID, lessonID uint) (*model.LessonProgress, error) {
	if _, err := s.LessonRepo.FindByID(lessonID); err != nil {
		return nil, util.ErrLessonNotFound
	}
	return s.ProgressRepo.MarkStarted(userID, lessonID)
}

func (s *LearningService) CompleteLesson(userID, lessonID uint) error {
	if _, err := s.LessonRepo.FindByID(lessonID); err != nil {
		return util.ErrLessonNotFound
	}
	return s.ProgressRepo.MarkCompleted(userID, lessonID)
}

type CourseProgress struct {
	CourseID         uint    `json:"courseId"`
	LessonsTotal     int64   `json:"lessonsTotal"`
	LessonsCompleted int64   `json:"lessonsCompleted"`
	Percent          float64 `json:"percent"`
}

func (s *LearningService) GetCourseProgress(userID, courseID uint) (*CourseProgress, error) {
	total, err := s.ProgressRepo.CountLessonsInCourse(courseID)
	if err != nil {
		return nil, err
	}
	completed, err := s.ProgressRepo.CountCompletedInCourse(userID, courseID)
	if err != nil {
		return nil, err
	}

	progress := &CourseProgress{
		CourseID:         courseID,
		LessonsTotal:     total,
		LessonsCompleted: completed,
	}
	if total > 0 {
		progress.Percent = float64(completed) / float64(total) * 100
	}
	return progress, nil
}

type NoteReq struct {
	LessonID uint   `json:"lessonId" binding:"required"`
	Body     string `json:"body" binding:"required"`
}

func (s *LearningService) CreateNote(userID uint, req NoteReq) (*model.Note, error) {
	if _, err := s.LessonRepo.FindByID(req.LessonID); err != nil {
		return nil, util.ErrLessonNotFound
	}

	note := &model.Note{
		UserID:   userID,
		LessonID: req.LessonID,
		Body:     req.Body,
	}
	if err := s.NoteRepo.Create(note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *LearningService) ListLessonNotes(userID, lessonID uint) ([]model.Note, error) {
	return s.NoteRepo.ListByUserAndLesson(userID, lessonID)
}

func (s *LearningService) UpdateNote(userID, noteID uint, body string) (*model.Note, error) {
	note, err := s.NoteRepo.FindByID(noteID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPermissionDenied
	}
	if err != nil {
		return nil, err
	}
	if note.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	note.Body = body
	if err := s.NoteRepo.Update(note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *LearningService) DeleteNote(userID, noteID uint) error {
	note, err := s.NoteRepo.FindByID(noteID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrPermissionDenied
	}
	if err != nil {
		return err
	}
	if note.UserID != userID {
		return util.ErrPermissionDenied
	}
	return s.NoteRepo.Delete(noteID)
}

type SubmissionReq struct {
	ContentID uint   `json:"contentId" binding:"required"`
	Answer    string `json:"answer" binding:"required"`
}

func (s *LearningService) SubmitExercise(userID uint, req SubmissionReq) (*model.ExerciseSubmission, error) {
	content, err := s.ContentRepo.FindByID(req.ContentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrContentNotFound
	}
	if err != nil {
		return nil, err
	}
	if content.Type != model.ContentExercise {
		return nil, util.ErrContentNotFound
	}

	submission := &model.ExerciseSubmission{
		UserID:    userID,
		ContentID: req.ContentID,
		Answer:    req.Answer,
		Status:    model.SubmissionSubmitted,
	}
	if err := s.SubmissionRepo.Create(submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *LearningService) ListMySubmissions(userID uint, page, limit int) ([]model.ExerciseSubmission, int64, error) {
	return s.SubmissionRepo.ListByUser(userID, page, limit)
}

func (s *LearningService) ReviewSubmission(submissionID uint, feedback string) (*model.ExerciseSubmission, error) {
	submission, err := s.SubmissionRepo.FindByID(submissionID)
	if err != nil {
		return nil, err
	}
	submission.Status = model.SubmissionReviewed
	submission.Feedback = feedback
	if err := s.SubmissionRepo.Update(submission); err != nil {
		return nil, err
	}
	return submission, nil
}
