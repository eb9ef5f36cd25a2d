package service

import (
	"code_plus_backend/internal/config"
	"code_plus_backend/internal/model"
	"code_plus_backend/internal/repository"
	"code_plus_backend/internal/util"
	"code_plus_backend/pkg/logger"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthoringService is the admin-side content editor: CRUD over courses,
// modules, lessons and contents, list reordering, and media uploads.
type AuthoringService struct {
	CourseRepo  *repository.CourseRepository
	ModuleRepo  *repository.ModuleRepository
	LessonRepo  *repository.LessonRepository
	ContentRepo *repository.LessonContentRepository
	Storage     *StorageService
	Cfg         *config.Config
}

func NewAuthoringService(
	courseRepo *repository.CourseRepository,
	moduleRepo *repository.ModuleRepository,
	lessonRepo *repository.LessonRepository,
	contentRepo *repository.LessonContentRepository,
	storage *StorageService,
	cfg *config.Config,
) *AuthoringService {
	return &AuthoringService{
		CourseRepo:  courseRepo,
		ModuleRepo:  moduleRepo,
		LessonRepo:  lessonRepo,
		ContentRepo: contentRepo,
		Storage:     storage,
		Cfg:         cfg,
	}
}

type CourseReq struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	Status      model.CourseStatus `json:"status"`
	Order       int                `json:"order"`
}

func (s *AuthoringService) CreateCourse(req CourseReq) (*model.Course, error) {
	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Order:       req.Order,
	}
	if course.Status == "" {
		course.Status = model.CourseDraft
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *AuthoringService) UpdateCourse(id uint, req CourseReq) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	course.Title = req.Title
	course.Description = req.Description
	if req.Status != "" {
		course.Status = req.Status
	}
	course.Order = req.Order

	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *AuthoringService) DeleteCourse(id uint) error {
	return s.CourseRepo.Delete(id)
}

func (s *AuthoringService) ListCourses(page, limit int) ([]model.Course, int64, error) {
	return s.CourseRepo.ListAll(page, limit)
}

type ModuleReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

func (s *AuthoringService) CreateModule(courseID uint, req ModuleReq) (*model.Module, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, util.ErrCourseNotFound
	}

	order := req.Order
	if order == 0 {
		max, err := s.ModuleRepo.MaxOrder(courseID)
		if err != nil {
			return nil, err
		}
		order = max + 1
	}

	module := &model.Module{
		CourseID:    courseID,
		Name:        req.Name,
		Description: req.Description,
		Order:       order,
	}
	if err := s.ModuleRepo.Create(module); err != nil {
		return nil, err
	}
	return module, nil
}

func (s *AuthoringService) UpdateModule(id uint, req ModuleReq) (*model.Module, error) {
	module, err := s.ModuleRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrModuleNotFound
	}
	if err != nil {
		return nil, err
	}

	module.Name = req.Name
	module.Description = req.Description
	if req.Order != 0 {
		module.Order = req.Order
	}

	if err := s.ModuleRepo.Update(module); err != nil {
		return nil, err
	}
	return module, nil
}

func (s *AuthoringService) DeleteModule(id uint) error {
	return s.ModuleRepo.Delete(id)
}

type LessonReq struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Order       int    `json:"order"`
}

func (s *AuthoringService) CreateLesson(moduleID uint, req LessonReq) (*model.Lesson, error) {
	if _, err := s.ModuleRepo.FindByID(moduleID); err != nil {
		return nil, util.ErrModuleNotFound
	}

	order := req.Order
	if order == 0 {
		max, err := s.LessonRepo.MaxOrder(moduleID)
		if err != nil {
			return nil, err
		}
		order = max + 1
	}

	lesson := &model.Lesson{
		ModuleID:    moduleID,
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		Order:       order,
	}
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *AuthoringService) UpdateLesson(id uint, req LessonReq) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}

	lesson.Title = req.Title
	lesson.Description = req.Description
	lesson.Duration = req.Duration
	if req.Order != 0 {
		lesson.Order = req.Order
	}

	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *AuthoringService) DeleteLesson(id uint) error {
	lesson, err := s.LessonRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrLessonNotFound
	}
	if err != nil {
		return err
	}
	return s.LessonRepo.Delete(lesson.ID)
}

type ContentReq struct {
	Type        model.ContentType `json:"type" binding:"required"`
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	OrderIndex  int               `json:"orderIndex"`
	Content     *string           `json:"content"`
	Duration    string            `json:"duration"`
	YoutubeID   string            `json:"youtubeId"`
	QuizData    *string           `json:"quizData"`
}

func (s *AuthoringService) CreateContent(lessonID uint, req ContentReq) (*model.LessonContent, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}

	orderIndex := req.OrderIndex
	if orderIndex == 0 {
		max, err := s.ContentRepo.MaxOrderIndex(lessonID)
		if err != nil {
			return nil, err
		}
		orderIndex = max + 1
	}

	content := &model.LessonContent{
		LessonID:    lessonID,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		OrderIndex:  orderIndex,
		Content:     req.Content,
		Duration:    req.Duration,
		YoutubeID:   req.YoutubeID,
		QuizData:    req.QuizData,
	}
	if err := s.ContentRepo.Create(content); err != nil {
		return nil, err
	}

	count, err := s.ContentRepo.CountByLesson(lessonID)
	if err == nil {
		s.LessonRepo.UpdateContentCount(lesson.ID, int(count))
	}
	return content, nil
}

func (s *AuthoringService) UpdateContent(id uint, req ContentReq) (*model.LessonContent, error) {
	content, err := s.ContentRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrContentNotFound
	}
	if err != nil {
		return nil, err
	}

	content.Type = req.Type
	content.Title = req.Title
	content.Description = req.Description
	if req.OrderIndex != 0 {
		content.OrderIndex = req.OrderIndex
	}
	content.Content = req.Content
	content.Duration = req.Duration
	content.YoutubeID = req.YoutubeID
	content.QuizData = req.QuizData

	if err := s.ContentRepo.Update(content); err != nil {
		return nil, err
	}
	return content, nil
}

func (s *AuthoringService) DeleteContent(id uint) error {
	content, err := s.ContentRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrContentNotFound
	}
	if err != nil {
		return err
	}

	if err := s.ContentRepo.Delete(id); err != nil {
		return err
	}

	count, err := s.ContentRepo.CountByLesson(content.LessonID)
	if err == nil {
		s.LessonRepo.UpdateContentCount(content.LessonID, int(count))
	}
	return nil
}

// ReorderContents fans the row updates out concurrently; each update touches
// a distinct row, so no ordering between them is required.
func (s *AuthoringService) ReorderContents(lessonID uint, orderedIDs []uint) error {
	if _, err := s.LessonRepo.FindByID(lessonID); err != nil {
		return util.ErrLessonNotFound
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i, id := range orderedIDs {
		wg.Add(1)
		go func(id uint, orderIndex int) {
			defer wg.Done()
			if err := s.ContentRepo.UpdateOrderIndex(id, orderIndex); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(id, i+1)
	}
	wg.Wait()

	return firstErr
}

// UploadLessonVideo stores an uploaded video file, probes its duration and
// generates a thumbnail, mirroring what the lesson player expects.
type UploadedVideo struct {
	URL       string  `json:"url"`
	Thumbnail string  `json:"thumbnail"`
	Duration  float64 `json:"duration"`
}

func (s *AuthoringService) UploadLessonVideo(ctx context.Context, file *multipart.FileHeader) (*UploadedVideo, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	isValidType := false
	for _, e := range util.AllowedVideoExtensions {
		if ext == e {
			isValidType = true
			break
		}
	}
	if !isValidType {
		return nil, util.ErrInvalidVideoExt
	}

	videoFilename := "videos/" + time.Now().Format("20060102150405") + "-" +
		strings.ReplaceAll(file.Filename, " ", "-")

	tempDir := filepath.Join(s.Cfg.Storage.LocalPath, "temp")
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, err
	}

	tempFilename := fmt.Sprintf("temp_video_%d%s", time.Now().UnixNano(), ext)
	videoPath := filepath.Join(tempDir, tempFilename)
	defer os.Remove(videoPath)

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if _, err := util.ValidateMimeType(src, []string{util.MimeVideo}); err != nil {
		return nil, fmt.Errorf("invalid file content, only video formats allowed: %v", err)
	}
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	dst, err := os.Create(videoPath)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, err
	}

	videoURL, err := s.Storage.UploadFile(ctx, videoFilename, videoPath, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	thumbnailFilename := "thumbnails/" + time.Now().Format("20060102150405") + "-" +
		util.GenerateRandomString(6) + ".jpg"
	thumbnailPath := filepath.Join(s.Cfg.Storage.LocalPath, "thumbnails", filepath.Base(thumbnailFilename))
	defer os.Remove(thumbnailPath)

	var thumbnailURL string
	if err := util.GenerateThumbnail(videoPath, thumbnailPath, "3"); err != nil {
		logger.Log.Error("failed to generate thumbnail", zap.Error(err))
		thumbnailURL = s.Storage.GetURL("thumbnails/default-video-thumbnail.jpg")
	} else {
		thumbnailURL, err = s.Storage.UploadFile(ctx, thumbnailFilename, thumbnailPath, "image/jpeg")
		if err != nil {
			thumbnailURL = s.Storage.GetURL("thumbnails/default-video-thumbnail.jpg")
		}
	}

	var duration float64
	if info, err := util.GetVideoInfo(videoPath); err == nil {
		duration = info.Duration
	}

	return &UploadedVideo{
		URL:       videoURL,
		Thumbnail: thumbnailURL,
		Duration:  duration,
	}, nil
}
