package service

import (
	"code_plus_backend/internal/model"
	"code_plus_backend/internal/repository"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newLearningTestService(t *testing.T) (*LearningService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Module{},
		&model.Lesson{},
		&model.LessonContent{},
		&model.Note{},
		&model.LessonProgress{},
		&model.ExerciseSubmission{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	s := NewLearningService(
		repository.NewLessonRepository(db),
		repository.NewLessonContentRepository(db),
		repository.NewProgressRepository(db),
		repository.NewNoteRepository(db),
		repository.NewSubmissionRepository(db),
	)
	return s, db
}

func seedLessons(t *testing.T, db *gorm.DB, count int) (uint, []uint) {
	t.Helper()

	course := &model.Course{Title: "Go", Status: model.CoursePublished}
	if err := db.Create(course).Error; err != nil {
		t.Fatal(err)
	}
	module := &model.Module{CourseID: course.ID, Name: "Basics", Order: 1}
	if err := db.Create(module).Error; err != nil {
		t.Fatal(err)
	}

	ids := make([]uint, 0, count)
	for i := 1; i <= count; i++ {
		lesson := &model.Lesson{ModuleID: module.ID, Title: "L", Order: i}
		if err := db.Create(lesson).Error; err != nil {
			t.Fatal(err)
		}
		ids = append(ids, lesson.ID)
	}
	return course.ID, ids
}

func TestStartLessonIsIdempotent(t *testing.T) {
	s, db := newLearningTestService(t)
	_, lessons := seedLessons(t, db, 1)

	first, err := s.StartLesson(1, lessons[0])
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.StartLesson(1, lessons[0])
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != second.ID {
		t.Fatalf("repeat start created a new row: %d vs %d", first.ID, second.ID)
	}
	if !first.StartedAt.Equal(second.StartedAt) {
		t.Fatal("repeat start changed StartedAt")
	}

	var count int64
	db.Model(&model.LessonProgress{}).Where("user_id = ? AND lesson_id = ?", 1, lessons[0]).Count(&count)
	if count != 1 {
		t.Fatalf("progress rows = %d, want 1", count)
	}
}

func TestCourseProgressPercent(t *testing.T) {
	s, db := newLearningTestService(t)
	courseID, lessons := seedLessons(t, db, 4)

	for _, id := range lessons[:3] {
		if err := s.CompleteLesson(1, id); err != nil {
			t.Fatal(err)
		}
	}

	progress, err := s.GetCourseProgress(1, courseID)
	if err != nil {
		t.Fatal(err)
	}
	if progress.LessonsTotal != 4 || progress.LessonsCompleted != 3 {
		t.Fatalf("progress = %+v", progress)
	}
	if progress.Percent != 75 {
		t.Fatalf("percent = %v, want 75", progress.Percent)
	}

	// Another user has touched nothing.
	other, err := s.GetCourseProgress(2, courseID)
	if err != nil {
		t.Fatal(err)
	}
	if other.LessonsCompleted != 0 || other.Percent != 0 {
		t.Fatalf("untouched user progress = %+v", other)
	}
}

func TestNoteOwnership(t *testing.T) {
	s, db := newLearningTestService(t)
	_, lessons := seedLessons(t, db, 1)

	note, err := s.CreateNote(1, NoteReq{LessonID: lessons[0], Body: "remember this"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.UpdateNote(2, note.ID, "hijack"); err == nil {
		t.Fatal("expected permission error for foreign note update")
	}
	if err := s.DeleteNote(2, note.ID); err == nil {
		t.Fatal("expected permission error for foreign note delete")
	}

	updated, err := s.UpdateNote(1, note.ID, "edited")
	if err != nil {
		t.Fatal(err)
	}
	if updated.Body != "edited" {
		t.Fatalf("body = %q", updated.Body)
	}
	if err := s.DeleteNote(1, note.ID); err != nil {
		t.Fatal(err)
	}
}

func TestSubmitExerciseChecksContentType(t *testing.T) {
	s, db := newLearningTestService(t)
	_, lessons := seedLessons(t, db, 1)

	body := "read me"
	article := &model.LessonContent{LessonID: lessons[0], Type: model.ContentArticle, Title: "a", OrderIndex: 1, Content: &body}
	if err := db.Create(article).Error; err != nil {
		t.Fatal(err)
	}
	blob := `{"exercise_type":"code"}`
	exercise := &model.LessonContent{LessonID: lessons[0], Type: model.ContentExercise, Title: "e", OrderIndex: 2, Content: &blob}
	if err := db.Create(exercise).Error; err != nil {
		t.Fatal(err)
	}

	if _, err := s.SubmitExercise(1, SubmissionReq{ContentID: article.ID, Answer: "x"}); err == nil {
		t.Fatal("expected error for submitting against a non-exercise content")
	}

	submission, err := s.SubmitExercise(1, SubmissionReq{ContentID: exercise.ID, Answer: "fmt.Println"})
	if err != nil {
		t.Fatal(err)
	}
	if submission.Status != model.SubmissionSubmitted {
		t.Fatalf("status = %q", submission.Status)
	}
}
