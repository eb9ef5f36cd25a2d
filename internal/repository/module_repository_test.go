package repository

import (
	"code_plus_backend/internal/model"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Course{},
		&model.Module{},
		&model.Lesson{},
		&model.LessonContent{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCourse(t *testing.T, db *gorm.DB) *model.Course {
	t.Helper()
	course := &model.Course{Title: "Go", Status: model.CoursePublished}
	if err := db.Create(course).Error; err != nil {
		t.Fatal(err)
	}
	return course
}

func TestFindByCourseAndNameCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	repo := NewModuleRepository(db)
	course := seedCourse(t, db)

	if err := repo.Create(&model.Module{CourseID: course.ID, Name: "Control Flow", Order: 1}); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"Control Flow", "control flow", "CONTROL FLOW"} {
		module, err := repo.FindByCourseAndName(course.ID, name)
		if err != nil {
			t.Fatal(err)
		}
		if module == nil {
			t.Fatalf("lookup %q returned nil", name)
		}
	}

	module, err := repo.FindByCourseAndName(course.ID, "Pointers")
	if err != nil {
		t.Fatal(err)
	}
	if module != nil {
		t.Fatalf("expected nil for missing module, got %+v", module)
	}
}

func TestModuleMaxOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewModuleRepository(db)
	course := seedCourse(t, db)

	max, err := repo.MaxOrder(course.ID)
	if err != nil {
		t.Fatal(err)
	}
	if max != 0 {
		t.Fatalf("empty course MaxOrder = %d, want 0", max)
	}

	for i := 1; i <= 3; i++ {
		if err := repo.Create(&model.Module{CourseID: course.ID, Name: "m", Order: i}); err != nil {
			t.Fatal(err)
		}
	}

	max, err = repo.MaxOrder(course.ID)
	if err != nil {
		t.Fatal(err)
	}
	if max != 3 {
		t.Fatalf("MaxOrder = %d, want 3", max)
	}
}

func TestModuleDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	repo := NewModuleRepository(db)
	course := seedCourse(t, db)

	module := &model.Module{CourseID: course.ID, Name: "Basics", Order: 1}
	if err := repo.Create(module); err != nil {
		t.Fatal(err)
	}
	lesson := &model.Lesson{ModuleID: module.ID, Title: "Intro", Order: 1}
	if err := db.Create(lesson).Error; err != nil {
		t.Fatal(err)
	}
	body := "text"
	content := &model.LessonContent{LessonID: lesson.ID, Type: model.ContentArticle, Title: "a", OrderIndex: 1, Content: &body}
	if err := db.Create(content).Error; err != nil {
		t.Fatal(err)
	}

	if err := repo.Delete(module.ID); err != nil {
		t.Fatal(err)
	}

	var lessons, contents int64
	db.Model(&model.Lesson{}).Where("module_id = ?", module.ID).Count(&lessons)
	db.Model(&model.LessonContent{}).Where("lesson_id = ?", lesson.ID).Count(&contents)
	if lessons != 0 || contents != 0 {
		t.Fatalf("cascade incomplete: lessons=%d contents=%d", lessons, contents)
	}
}
