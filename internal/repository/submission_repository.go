package repository

import (
	"code_plus_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(submission *model.ExerciseSubmission) error {
	return r.DB.Create(submission).Error
}

func (r *SubmissionRepository) FindByID(id uint) (*model.ExerciseSubmission, error) {
	var submission model.ExerciseSubmission
	err := r.DB.First(&submission, id).Error
	return &submission, err
}

func (r *SubmissionRepository) ListByUser(userID uint, page, limit int) ([]model.ExerciseSubmission, int64, error) {
	query := r.DB.Model(&model.ExerciseSubmission{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var submissions []model.ExerciseSubmission
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).
		Find(&submissions).Error
	return submissions, total, err
}

func (r *SubmissionRepository) ListByContent(contentID uint, page, limit int) ([]model.ExerciseSubmission, int64, error) {
	query := r.DB.Model(&model.ExerciseSubmission{}).Where("content_id = ?", contentID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var submissions []model.ExerciseSubmission
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).
		Find(&submissions).Error
	return submissions, total, err
}

func (r *SubmissionRepository) Update(submission *model.ExerciseSubmission) error {
	return r.DB.Save(submission).Error
}
