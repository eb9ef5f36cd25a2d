package service

import (
	"code_plus_backend/internal/config"
	"code_plus_backend/internal/model"
	"code_plus_backend/internal/repository"
	"code_plus_backend/internal/util"
	"code_plus_backend/pkg/logger"
	"code_plus_backend/pkg/monitoring"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ImportService implements the bulk lesson content import pipeline:
// parse -> validate -> preview (summary + existence check) -> ingest.
// Ingestion runs inside a single transaction so a failed import leaves no
// partial module/lesson/content rows behind.
type ImportService struct {
	CourseRepo  *repository.CourseRepository
	ModuleRepo  *repository.ModuleRepository
	LessonRepo  *repository.LessonRepository
	ContentRepo *repository.LessonContentRepository
	DB          *gorm.DB
	Redis       *redis.Client
	Cfg         *config.Config
}

func NewImportService(
	courseRepo *repository.CourseRepository,
	moduleRepo *repository.ModuleRepository,
	lessonRepo *repository.LessonRepository,
	contentRepo *repository.LessonContentRepository,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
) *ImportService {
	return &ImportService{
		CourseRepo:  courseRepo,
		ModuleRepo:  moduleRepo,
		LessonRepo:  lessonRepo,
		ContentRepo: contentRepo,
		DB:          db,
		Redis:       rdb,
		Cfg:         cfg,
	}
}

const importSessionKeyPrefix = "import_session:"

// articleMinLength rejects article bodies that look like truncated imports.
const articleMinLength = 100

// ImportPreview is what the operator sees before confirming an import.
type ImportPreview struct {
	Valid      bool                    `json:"valid"`
	ParseError string                  `json:"parseError,omitempty"`
	Errors     []model.ValidationError `json:"errors,omitempty"`
	Summary    *model.ImportSummary    `json:"summary,omitempty"`
	SessionID  string                  `json:"sessionId,omitempty"`
}

// ParsePayload decodes raw operator input into an ImportPayload. On malformed
// JSON it returns a single readable error and no payload; field-level checks
// are a separate pass.
func (s *ImportService) ParsePayload(raw string) (*model.ImportPayload, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("payload is empty")
	}

	var payload model.ImportPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("invalid JSON: %v", err)
	}
	return &payload, nil
}

// ValidatePayload walks the whole payload and accumulates every field-level
// problem; it never stops at the first error. The summary is only computed
// when the payload is fully valid.
func (s *ImportService) ValidatePayload(p *model.ImportPayload) (bool, []model.ValidationError, *model.ImportSummary) {
	var errs []model.ValidationError
	add := func(field, message string) {
		errs = append(errs, model.ValidationError{Field: field, Message: message})
	}

	if p.Version != nil && *p.Version != model.ImportPayloadVersion {
		add("version", fmt.Sprintf("unsupported payload version %d, expected %d", *p.Version, model.ImportPayloadVersion))
	}

	if strings.TrimSpace(p.Module.Name) == "" {
		add("module.name", "module name is required")
	}

	if strings.TrimSpace(p.Lesson.Title) == "" {
		add("lesson.title", "lesson title is required")
	}

	if strings.TrimSpace(p.Block.Title) == "" {
		add("block.title", "block title is required")
	}
	if p.Block.Order < 1 {
		add("block.order", "block order must be 1 or greater")
	}

	if len(p.Contents) == 0 {
		add("contents", "at least one content item is required")
	}

	for i, item := range p.Contents {
		prefix := fmt.Sprintf("contents[%d]", i)

		if strings.TrimSpace(item.Title) == "" {
			add(prefix+".title", "title is required")
		}
		if item.Order < 1 {
			add(prefix+".order", "order must be 1 or greater")
		}

		switch item.Type {
		case model.ImportVideo:
			s.validateVideo(prefix, item, add)
		case model.ImportArticle:
			s.validateArticle(prefix, item, add)
		case model.ImportExercise:
			s.validateExercise(prefix, item, add)
		case model.ImportQuiz:
			s.validateQuiz(prefix, item, add)
		default:
			add(prefix+".type", fmt.Sprintf("unknown content type %q, expected VIDEO, ARTICLE, EXERCISE or QUIZ", string(item.Type)))
		}
	}

	if len(errs) > 0 {
		return false, errs, nil
	}
	return true, nil, s.BuildSummary(p)
}

func (s *ImportService) validateVideo(prefix string, item model.ImportContent, add func(field, message string)) {
	if strings.TrimSpace(item.Content) == "" {
		add(prefix+".content", "video script content is required")
	}
}

func (s *ImportService) validateArticle(prefix string, item model.ImportContent, add func(field, message string)) {
	if strings.TrimSpace(item.Content) == "" {
		add(prefix+".content", "article content is required")
		return
	}
	if utf8.RuneCountInString(item.Content) < articleMinLength {
		add(prefix+".content", fmt.Sprintf("article content must be at least %d characters", articleMinLength))
	}
}

func (s *ImportService) validateExercise(prefix string, item model.ImportContent, add func(field, message string)) {
	if strings.TrimSpace(item.Content) == "" {
		add(prefix+".content", "exercise instruction content is required")
	}
	if strings.TrimSpace(item.Answer) == "" {
		add(prefix+".answer", "answer explanation is required")
	}

	switch item.Difficulty {
	case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
	default:
		add(prefix+".difficulty", fmt.Sprintf("invalid difficulty %q, expected easy, medium or hard", string(item.Difficulty)))
	}

	switch item.ExerciseType {
	case model.ExerciseOrdering:
		if len(item.OrderingItems) < 2 {
			add(prefix+".ordering_items", "ordering exercises need at least 2 items")
		}
	case model.ExerciseTrueFalse:
		if len(item.TrueFalseStatements) < 1 {
			add(prefix+".true_false_statements", "true/false exercises need at least 1 statement")
		}
	case model.ExerciseFillBlank:
		if item.FillBlankData == nil || strings.TrimSpace(item.FillBlankData.Text) == "" {
			add(prefix+".fill_blank_data", "fill-blank exercises need fill_blank_data with text")
		}
	case model.ExerciseCode, model.ExerciseText, model.ExerciseOpen:
	default:
		add(prefix+".exercise_type", fmt.Sprintf("invalid exercise_type %q", string(item.ExerciseType)))
	}
}

func (s *ImportService) validateQuiz(prefix string, item model.ImportContent, add func(field, message string)) {
	if len(item.Questions) == 0 {
		add(prefix+".questions", "quizzes need at least 1 question")
		return
	}

	for j, q := range item.Questions {
		qPrefix := fmt.Sprintf("%s.questions[%d]", prefix, j)
		if strings.TrimSpace(q.Question) == "" {
			add(qPrefix+".question", "question text is required")
		}
		if len(q.Options) < 2 {
			add(qPrefix+".options", "questions need at least 2 options")
		}
		if q.Correct < 0 || q.Correct >= len(q.Options) {
			add(qPrefix+".correct", fmt.Sprintf("correct index %d is out of range for %d options", q.Correct, len(q.Options)))
		}
	}
}

// BuildSummary tallies content per type for the pre-import preview. Existence
// booleans are filled separately by CheckExistence.
func (s *ImportService) BuildSummary(p *model.ImportPayload) *model.ImportSummary {
	summary := &model.ImportSummary{
		ModuleName:  p.Module.Name,
		LessonTitle: p.Lesson.Title,
		BlockTitle:  p.Block.Title,
	}

	for _, item := range p.Contents {
		switch item.Type {
		case model.ImportVideo:
			summary.VideoCount++
		case model.ImportArticle:
			summary.ArticleCount++
		case model.ImportExercise:
			summary.ExerciseCount++
		case model.ImportQuiz:
			summary.QuizCount++
			summary.QuizQuestions += len(item.Questions)
		}
	}
	summary.TotalContents = len(p.Contents)

	return summary
}

// CheckExistence probes whether the payload's module and lesson already exist
// under the given course, both matched case-insensitively. Read-only; safe to
// call repeatedly for preview refresh.
func (s *ImportService) CheckExistence(courseID uint, p *model.ImportPayload) (moduleExists, lessonExists bool, err error) {
	module, err := s.ModuleRepo.FindByCourseAndName(courseID, p.Module.Name)
	if err != nil {
		return false, false, err
	}
	if module == nil {
		return false, false, nil
	}

	lesson, err := s.LessonRepo.FindByModuleAndTitle(module.ID, p.Lesson.Title)
	if err != nil {
		return true, false, err
	}
	return true, lesson != nil, nil
}

// Preview runs parse + validate + summary + existence check without writing
// anything. A valid payload is cached under a fresh session ID so Confirm
// commits exactly what was previewed.
func (s *ImportService) Preview(ctx context.Context, courseID uint, raw string) (*ImportPreview, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	payload, err := s.ParsePayload(raw)
	if err != nil {
		return &ImportPreview{Valid: false, ParseError: err.Error()}, nil
	}

	valid, validationErrs, summary := s.ValidatePayload(payload)
	if !valid {
		monitoring.ImportValidationFailures.Inc()
		return &ImportPreview{Valid: false, Errors: validationErrs}, nil
	}

	moduleExists, lessonExists, err := s.CheckExistence(courseID, payload)
	if err != nil {
		return nil, err
	}
	summary.ModuleExists = moduleExists
	summary.LessonExists = lessonExists

	sessionID := uuid.New().String()
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	ttl := time.Duration(s.Cfg.Import.SessionTTLMinutes) * time.Minute
	if err := s.Redis.Set(ctx, importSessionKeyPrefix+sessionID, encoded, ttl).Err(); err != nil {
		return nil, err
	}

	return &ImportPreview{Valid: true, Summary: summary, SessionID: sessionID}, nil
}

// ExecuteSession commits a previously previewed payload. The session is
// consumed on use so a double confirm cannot import twice.
func (s *ImportService) ExecuteSession(ctx context.Context, courseID uint, sessionID string) (*model.ImportResult, error) {
	key := importSessionKeyPrefix + sessionID
	val, err := s.Redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, util.ErrImportSessionExpired
	} else if err != nil {
		return nil, err
	}
	s.Redis.Del(ctx, key)

	var payload model.ImportPayload
	if err := json.Unmarshal([]byte(val), &payload); err != nil {
		return nil, err
	}

	return s.Execute(courseID, &payload), nil
}

// Execute runs the ingestion: resolve module, resolve lesson, insert contents
// appended after the lesson's existing rows, refresh the lesson's content
// counter. The whole sequence is one transaction; any failure rolls back and
// is reported in the result's error list.
func (s *ImportService) Execute(courseID uint, p *model.ImportPayload) *model.ImportResult {
	result := &model.ImportResult{}

	valid, validationErrs, _ := s.ValidatePayload(p)
	if !valid {
		monitoring.ImportValidationFailures.Inc()
		for _, ve := range validationErrs {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", ve.Field, ve.Message))
		}
		return result
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var course model.Course
		if err := tx.First(&course, courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrCourseNotFound
			}
			return err
		}

		module, created, err := s.resolveModule(tx, course.ID, p)
		if err != nil {
			return err
		}
		result.ModuleID = module.ID
		result.ModuleCreated = created

		lesson, created, err := s.resolveLesson(tx, module.ID, p)
		if err != nil {
			return err
		}
		result.LessonID = lesson.ID
		result.LessonCreated = created

		var base int
		if err := tx.Model(&model.LessonContent{}).Where("lesson_id = ?", lesson.ID).
			Select("COALESCE(MAX(order_index), 0)").Scan(&base).Error; err != nil {
			return err
		}

		for _, item := range p.Contents {
			row, err := buildContentRow(item)
			if err != nil {
				return fmt.Errorf("content %q: %w", item.Title, err)
			}
			row.LessonID = lesson.ID
			row.OrderIndex = base + item.Order

			if err := tx.Create(row).Error; err != nil {
				return fmt.Errorf("failed to insert content %q: %w", item.Title, err)
			}
			result.ContentsCreated++
		}

		var total int64
		if err := tx.Model(&model.LessonContent{}).Where("lesson_id = ?", lesson.ID).
			Count(&total).Error; err != nil {
			return err
		}
		return tx.Model(&model.Lesson{}).Where("id = ?", lesson.ID).
			Update("content_count", total).Error
	})

	if err != nil {
		// Rolled back: report the failure but no partial rows remain.
		result.ModuleID = 0
		result.LessonID = 0
		result.ModuleCreated = false
		result.LessonCreated = false
		result.ContentsCreated = 0
		result.Errors = append(result.Errors, err.Error())
		monitoring.ImportRuns.WithLabelValues("error").Inc()
		logger.Log.Error("content import failed",
			zap.Uint("courseId", courseID),
			zap.String("module", p.Module.Name),
			zap.String("lesson", p.Lesson.Title),
			zap.Error(err))
		return result
	}

	monitoring.ImportRuns.WithLabelValues("success").Inc()
	monitoring.ImportContentsCreated.Add(float64(result.ContentsCreated))
	logger.Log.Info("content import completed",
		zap.Uint("courseId", courseID),
		zap.Uint("moduleId", result.ModuleID),
		zap.Uint("lessonId", result.LessonID),
		zap.Int("contentsCreated", result.ContentsCreated))
	return result
}

func (s *ImportService) resolveModule(tx *gorm.DB, courseID uint, p *model.ImportPayload) (*model.Module, bool, error) {
	var existing model.Module
	err := tx.Where("course_id = ? AND LOWER(name) = LOWER(?)", courseID, p.Module.Name).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if !p.Module.CreateIfNotExists {
		return nil, false, fmt.Errorf("module %q not found and creation disabled", p.Module.Name)
	}

	var maxOrder int
	if err := tx.Model(&model.Module{}).Where("course_id = ?", courseID).
		Select("COALESCE(MAX(`order`), 0)").Scan(&maxOrder).Error; err != nil {
		return nil, false, err
	}

	module := &model.Module{
		CourseID:    courseID,
		Name:        p.Module.Name,
		Description: p.Module.Description,
		Order:       maxOrder + 1,
	}
	if err := tx.Create(module).Error; err != nil {
		return nil, false, err
	}
	return module, true, nil
}

func (s *ImportService) resolveLesson(tx *gorm.DB, moduleID uint, p *model.ImportPayload) (*model.Lesson, bool, error) {
	var existing model.Lesson
	err := tx.Where("module_id = ? AND LOWER(title) = LOWER(?)", moduleID, p.Lesson.Title).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if !p.Lesson.CreateIfNotExists {
		return nil, false, fmt.Errorf("lesson %q not found and creation disabled", p.Lesson.Title)
	}

	var maxOrder int
	if err := tx.Model(&model.Lesson{}).Where("module_id = ?", moduleID).
		Select("COALESCE(MAX(`order`), 0)").Scan(&maxOrder).Error; err != nil {
		return nil, false, err
	}

	lesson := &model.Lesson{
		ModuleID:    moduleID,
		Title:       p.Lesson.Title,
		Description: p.Lesson.Description,
		Duration:    p.Lesson.Duration,
		Order:       maxOrder + 1,
	}
	if err := tx.Create(lesson).Error; err != nil {
		return nil, false, err
	}
	return lesson, true, nil
}

// buildContentRow maps one payload item onto the stored content row shape.
func buildContentRow(item model.ImportContent) (*model.LessonContent, error) {
	row := &model.LessonContent{
		Title: item.Title,
	}

	switch item.Type {
	case model.ImportVideo:
		row.Type = model.ContentVideo
		content := item.Content
		row.Content = &content
		if item.DurationMinutes != nil {
			row.Duration = fmt.Sprintf("%d min", *item.DurationMinutes)
		}
		row.YoutubeID = item.VideoRef

	case model.ImportArticle:
		row.Type = model.ContentArticle
		content := item.Content
		row.Content = &content

	case model.ImportExercise:
		row.Type = model.ContentExercise
		stored := model.StoredExercise{
			ExerciseType:        item.ExerciseType,
			Difficulty:          item.Difficulty,
			Instruction:         item.Content,
			AnswerExplanation:   item.Answer,
			OrderingItems:       item.OrderingItems,
			TrueFalseStatements: item.TrueFalseStatements,
			FillBlankData:       item.FillBlankData,
		}
		encoded, err := json.Marshal(stored)
		if err != nil {
			return nil, err
		}
		blob := string(encoded)
		row.Content = &blob
		// Render-time tag distinguishing exercise subtypes.
		row.Description = "interactive:" + string(item.ExerciseType)

	case model.ImportQuiz:
		row.Type = model.ContentQuiz
		questions := make([]model.StoredQuizQuestion, 0, len(item.Questions))
		for _, q := range item.Questions {
			options := make([]model.StoredQuizOption, 0, len(q.Options))
			for idx, text := range q.Options {
				options = append(options, model.StoredQuizOption{
					ID:      uuid.New().String(),
					Text:    text,
					Correct: idx == q.Correct,
				})
			}
			questions = append(questions, model.StoredQuizQuestion{
				Question: q.Question,
				Options:  options,
			})
		}
		encoded, err := json.Marshal(questions)
		if err != nil {
			return nil, err
		}
		blob := string(encoded)
		row.QuizData = &blob

	default:
		return nil, fmt.Errorf("unknown content type %q", string(item.Type))
	}

	return row, nil
}
