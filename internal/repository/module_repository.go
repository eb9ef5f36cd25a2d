package repository

import (
	"code_plus_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) Create(module *model.Module) error {
	return r.DB.Create(module).Error
}

func (r *ModuleRepository) FindByID(id uint) (*model.Module, error) {
	var module model.Module
	err := r.DB.First(&module, id).Error
	return &module, err
}

// FindByCourseAndName matches module names case-insensitively within a course.
// Returns (nil, nil) when no module matches.
func (r *ModuleRepository) FindByCourseAndName(courseID uint, name string) (*model.Module, error) {
	var module model.Module
	err := r.DB.Where("course_id = ? AND LOWER(name) = LOWER(?)", courseID, name).
		First(&module).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &module, nil
}

// MaxOrder returns the highest order value among a course's modules, 0 when
// the course has none.
func (r *ModuleRepository) MaxOrder(courseID uint) (int, error) {
	var max int
	err := r.DB.Model(&model.Module{}).Where("course_id = ?", courseID).
		Select("COALESCE(MAX(`order`), 0)").Scan(&max).Error
	return max, err
}

func (r *ModuleRepository) ListByCourse(courseID uint) ([]model.Module, error) {
	var modules []model.Module
	err := r.DB.Where("course_id = ?", courseID).
		Order("`order` asc, created_at asc").Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) Update(module *model.Module) error {
	return r.DB.Save(module).Error
}

func (r *ModuleRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var lessonIDs []uint
		if err := tx.Model(&model.Lesson{}).Where("module_id = ?", id).
			Pluck("id", &lessonIDs).Error; err != nil {
			return err
		}
		if len(lessonIDs) > 0 {
			if err := tx.Where("lesson_id IN ?", lessonIDs).
				Delete(&model.LessonContent{}).Error; err != nil {
				return err
			}
			if err := tx.Where("module_id = ?", id).
				Delete(&model.Lesson{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Module{}, id).Error
	})
}

func (r *ModuleRepository) UpdateOrder(id uint, order int) error {
	return r.DB.Model(&model.Module{}).Where("id = ?", id).
		Update("order", order).Error
}
