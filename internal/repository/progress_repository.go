package repository

import (
	"code_plus_backend/internal/model"
	"errors"
	"time"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByUserAndLesson(userID, lessonID uint) (*model.LessonProgress, error) {
	var progress model.LessonProgress
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// MarkStarted records the first touch of a lesson; repeated calls keep the
// original StartedAt.
func (r *ProgressRepository) MarkStarted(userID, lessonID uint) (*model.LessonProgress, error) {
	existing, err := r.FindByUserAndLesson(userID, lessonID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	progress := &model.LessonProgress{
		UserID:    userID,
		LessonID:  lessonID,
		StartedAt: time.Now(),
	}
	if err := r.DB.Create(progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

func (r *ProgressRepository) MarkCompleted(userID, lessonID uint) error {
	progress, err := r.MarkStarted(userID, lessonID)
	if err != nil {
		return err
	}
	now := time.Now()
	progress.Completed = true
	progress.CompletedAt = &now
	return r.DB.Save(progress).Error
}

// CountCompletedInCourse counts a user's completed lessons across all modules
// of a course.
func (r *ProgressRepository) CountCompletedInCourse(userID, courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progress.lesson_id").
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("lesson_progress.user_id = ? AND modules.course_id = ? AND lesson_progress.completed = ?",
			userID, courseID, true).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) CountLessonsInCourse(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Lesson{}).
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("modules.course_id = ?", courseID).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) ListByUser(userID uint) ([]model.LessonProgress, error) {
	var rows []model.LessonProgress
	err := r.DB.Where("user_id = ?", userID).Find(&rows).Error
	return rows, err
}
