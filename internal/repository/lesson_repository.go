package repository

import (
	"code_plus_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	return &lesson, err
}

func (r *LessonRepository) FindByIDWithContents(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.Preload("Contents", func(db *gorm.DB) *gorm.DB {
		return db.Order("lesson_contents.order_index asc")
	}).First(&lesson, id).Error
	return &lesson, err
}

// FindByModuleAndTitle matches lesson titles case-insensitively within a
// module. Returns (nil, nil) when no lesson matches.
func (r *LessonRepository) FindByModuleAndTitle(moduleID uint, title string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.Where("module_id = ? AND LOWER(title) = LOWER(?)", moduleID, title).
		First(&lesson).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *LessonRepository) MaxOrder(moduleID uint) (int, error) {
	var max int
	err := r.DB.Model(&model.Lesson{}).Where("module_id = ?", moduleID).
		Select("COALESCE(MAX(`order`), 0)").Scan(&max).Error
	return max, err
}

func (r *LessonRepository) ListByModule(moduleID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("module_id = ?", moduleID).
		Order("`order` asc, created_at asc").Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *LessonRepository) UpdateContentCount(id uint, count int) error {
	return r.DB.Model(&model.Lesson{}).Where("id = ?", id).
		Update("content_count", count).Error
}

func (r *LessonRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lesson_id = ?", id).
			Delete(&model.LessonContent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Lesson{}, id).Error
	})
}

func (r *LessonRepository) UpdateOrder(id uint, order int) error {
	return r.DB.Model(&model.Lesson{}).Where("id = ?", id).
		Update("order", order).Error
}

func (r *LessonRepository) CountByModule(moduleID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Lesson{}).Where("module_id = ?", moduleID).
		Count(&count).Error
	return count, err
}
