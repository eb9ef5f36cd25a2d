package repository

import (
	"code_plus_backend/internal/model"

	"gorm.io/gorm"
)

type LessonContentRepository struct {
	DB *gorm.DB
}

func NewLessonContentRepository(db *gorm.DB) *LessonContentRepository {
	return &LessonContentRepository{DB: db}
}

func (r *LessonContentRepository) Create(content *model.LessonContent) error {
	return r.DB.Create(content).Error
}

func (r *LessonContentRepository) FindByID(id uint) (*model.LessonContent, error) {
	var content model.LessonContent
	err := r.DB.First(&content, id).Error
	return &content, err
}

func (r *LessonContentRepository) ListByLesson(lessonID uint) ([]model.LessonContent, error) {
	var contents []model.LessonContent
	err := r.DB.Where("lesson_id = ?", lessonID).
		Order("order_index asc").Find(&contents).Error
	return contents, err
}

// MaxOrderIndex returns the highest order_index among a lesson's content rows,
// 0 when the lesson is empty. Imported content is appended after this offset.
func (r *LessonContentRepository) MaxOrderIndex(lessonID uint) (int, error) {
	var max int
	err := r.DB.Model(&model.LessonContent{}).Where("lesson_id = ?", lessonID).
		Select("COALESCE(MAX(order_index), 0)").Scan(&max).Error
	return max, err
}

func (r *LessonContentRepository) Update(content *model.LessonContent) error {
	return r.DB.Save(content).Error
}

func (r *LessonContentRepository) Delete(id uint) error {
	return r.DB.Delete(&model.LessonContent{}, id).Error
}

func (r *LessonContentRepository) UpdateOrderIndex(id uint, orderIndex int) error {
	return r.DB.Model(&model.LessonContent{}).Where("id = ?", id).
		Update("order_index", orderIndex).Error
}

func (r *LessonContentRepository) CountByLesson(lessonID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LessonContent{}).Where("lesson_id = ?", lessonID).
		Count(&count).Error
	return count, err
}
