package service

import (
	"code_plus_backend/internal/model"
	"code_plus_backend/internal/repository"
	"code_plus_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

// CatalogService serves the student-facing course catalog: published courses,
// their modules, lessons and ordered contents.
type CatalogService struct {
	CourseRepo  *repository.CourseRepository
	ModuleRepo  *repository.ModuleRepository
	LessonRepo  *repository.LessonRepository
	ContentRepo *repository.LessonContentRepository
}

func NewCatalogService(
	courseRepo *repository.CourseRepository,
	moduleRepo *repository.ModuleRepository,
	lessonRepo *repository.LessonRepository,
	contentRepo *repository.LessonContentRepository,
) *CatalogService {
	return &CatalogService{
		CourseRepo:  courseRepo,
		ModuleRepo:  moduleRepo,
		LessonRepo:  lessonRepo,
		ContentRepo: contentRepo,
	}
}

func (s *CatalogService) ListCourses() ([]model.Course, error) {
	return s.CourseRepo.ListPublished()
}

func (s *CatalogService) GetCourse(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByIDWithModules(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	if course.Status != model.CoursePublished {
		return nil, util.ErrCourseNotFound
	}
	return course, nil
}

func (s *CatalogService) GetModuleLessons(moduleID uint) ([]model.Lesson, error) {
	if _, err := s.ModuleRepo.FindByID(moduleID); err != nil {
		return nil, util.ErrModuleNotFound
	}
	return s.LessonRepo.ListByModule(moduleID)
}

func (s *CatalogService) GetLesson(lessonID uint) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByIDWithContents(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	return lesson, err
}
