package service

import (
	"code_plus_backend/internal/config"
	"code_plus_backend/internal/model"
	"code_plus_backend/internal/repository"
	"code_plus_backend/pkg/logger"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newImportTestDB(t *testing.T) *gorm.DB {
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

func newImportService(t *testing.T, db *gorm.DB) *ImportService {
	t.Helper()
	logger.Log = zap.NewNop()

	return NewImportService(
		repository.NewCourseRepository(db),
		repository.NewModuleRepository(db),
		repository.NewLessonRepository(db),
		repository.NewLessonContentRepository(db),
		db,
		nil,
		&config.Config{},
	)
}

func intPtr(v int) *int { return &v }

func validPayload() *model.ImportPayload {
	return &model.ImportPayload{
		Module: model.ImportModule{Name: "Go Basics", CreateIfNotExists: true},
		Lesson: model.ImportLesson{Title: "Hello World", CreateIfNotExists: true},
		Block:  model.ImportBlock{Title: "Warmup", Order: 1},
		Contents: []model.ImportContent{
			{
				Type:            model.ImportVideo,
				Title:           "Intro video",
				Order:           1,
				Content:         "Welcome to the course.",
				DurationMinutes: intPtr(7),
				VideoRef:        "dQw4w9WgXcQ",
			},
		},
	}
}

func TestParsePayload(t *testing.T) {
	s := newImportService(t, newImportTestDB(t))

	if _, err := s.ParsePayload("   "); err == nil {
		t.Fatal("expected error for empty payload")
	}

	if _, err := s.ParsePayload("{not json"); err == nil {
		t.Fatal("expected error for malformed JSON")
	} else if !strings.Contains(err.Error(), "invalid JSON") {
		t.Fatalf("unexpected parse error: %v", err)
	}

	raw, _ := json.Marshal(validPayload())
	payload, err := s.ParsePayload(string(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Module.Name != "Go Basics" {
		t.Fatalf("module name = %q", payload.Module.Name)
	}
}

func TestValidatePayloadAccumulatesErrors(t *testing.T) {
	s := newImportService(t, newImportTestDB(t))

	p := &model.ImportPayload{
		Version: intPtr(2),
		Block:   model.ImportBlock{Order: 0},
		Contents: []model.ImportContent{
			{Type: "PODCAST", Title: "", Order: 0},
		},
	}

	valid, errs, summary := s.ValidatePayload(p)
	if valid {
		t.Fatal("expected invalid payload")
	}
	if summary != nil {
		t.Fatal("summary must be nil for invalid payload")
	}

	want := []string{
		"version",
		"module.name",
		"lesson.title",
		"block.title",
		"block.order",
		"contents[0].title",
		"contents[0].order",
		"contents[0].type",
	}
	if len(errs) != len(want) {
		t.Fatalf("got %d errors, want %d: %+v", len(errs), len(want), errs)
	}
	for i, field := range want {
		if errs[i].Field != field {
			t.Errorf("errs[%d].Field = %q, want %q", i, errs[i].Field, field)
		}
	}
}

func TestValidatePayloadVersionHandling(t *testing.T) {
	s := newImportService(t, newImportTestDB(t))

	p := validPayload()
	if valid, errs, _ := s.ValidatePayload(p); !valid {
		t.Fatalf("payload without version should be accepted: %+v", errs)
	}

	p.Version = intPtr(1)
	if valid, errs, _ := s.ValidatePayload(p); !valid {
		t.Fatalf("version 1 should be accepted: %+v", errs)
	}

	p.Version = intPtr(3)
	if valid, _, _ := s.ValidatePayload(p); valid {
		t.Fatal("version 3 should be rejected")
	}
}

func TestValidateArticleLengthBoundary(t *testing.T) {
	s := newImportService(t, newImportTestDB(t))

	cases := []struct {
		name    string
		content string
		valid   bool
	}{
		{"empty", "", false},
		{"just under", strings.Repeat("a", 99), false},
		{"exactly at", strings.Repeat("a", 100), true},
		{"multibyte runes count as one", strings.Repeat("字", 100), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPayload()
			p.Contents = []model.ImportContent{{
				Type:    model.ImportArticle,
				Title:   "Article",
				Order:   1,
				Content: tc.content,
			}}

			valid, errs, _ := s.ValidatePayload(p)
			if valid != tc.valid {
				t.Fatalf("valid = %v, want %v (errors: %+v)", valid, tc.valid, errs)
			}
		})
	}
}

func TestValidateQuizCorrectIndexBounds(t *testing.T) {
	s := newImportService(t, newImportTestDB(t))

	cases := []struct {
		name    string
		correct int
		valid   bool
	}{
		{"negative", -1, false},
		{"first option", 0, true},
		{"last option", 2, true},
		{"one past the end", 3, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPayload()
			p.Contents = []model.ImportContent{{
				Type:  model.ImportQuiz,
				Title: "Checkpoint",
				Order: 1,
				Questions: []model.ImportQuizQuestion{{
					Question: "Pick one",
					Options:  []string{"a", "b", "c"},
					Correct:  tc.correct,
				}},
			}}

			valid, errs, _ := s.ValidatePayload(p)
			if valid != tc.valid {
				t.Fatalf("valid = %v, want %v (errors: %+v)", valid, tc.valid, errs)
			}
		})
	}
}

func TestValidateExerciseConditionalFields(t *testing.T) {
	s := newImportService(t, newImportTestDB(t))

	base := model.ImportContent{
		Type:       model.ImportExercise,
		Title:      "Exercise",
		Order:      1,
		Content:    "Do the thing",
		Answer:     "Because",
		Difficulty: model.DifficultyEasy,
	}

	cases := []struct {
		name   string
		mutate func(*model.ImportContent)
		valid  bool
	}{
		{"code needs no extras", func(c *model.ImportContent) {
			c.ExerciseType = model.ExerciseCode
		}, true},
		{"ordering with one item", func(c *model.ImportContent) {
			c.ExerciseType = model.ExerciseOrdering
			c.OrderingItems = []string{"only"}
		}, false},
		{"ordering with two items", func(c *model.ImportContent) {
			c.ExerciseType = model.ExerciseOrdering
			c.OrderingItems = []string{"first", "second"}
		}, true},
		{"true/false without statements", func(c *model.ImportContent) {
			c.ExerciseType = model.ExerciseTrueFalse
		}, false},
		{"true/false with a statement", func(c *model.ImportContent) {
			c.ExerciseType = model.ExerciseTrueFalse
			c.TrueFalseStatements = []model.TrueFalseStatement{{Statement: "Go has classes", IsTrue: false}}
		}, true},
		{"fill-blank without data", func(c *model.ImportContent) {
			c.ExerciseType = model.ExerciseFillBlank
		}, false},
		{"fill-blank with data", func(c *model.ImportContent) {
			c.ExerciseType = model.ExerciseFillBlank
			c.FillBlankData = &model.FillBlankData{Text: "Go is ___", Blanks: []string{"fun"}}
		}, true},
		{"unknown exercise type", func(c *model.ImportContent) {
			c.ExerciseType = "puzzle"
		}, false},
		{"bad difficulty", func(c *model.ImportContent) {
			c.ExerciseType = model.ExerciseCode
			c.Difficulty = "impossible"
		}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := base
			tc.mutate(&item)

			p := validPayload()
			p.Contents = []model.ImportContent{item}

			valid, errs, _ := s.ValidatePayload(p)
			if valid != tc.valid {
				t.Fatalf("valid = %v, want %v (errors: %+v)", valid, tc.valid, errs)
			}
		})
	}
}

func TestBuildSummaryTallies(t *testing.T) {
	s := newImportService(t, newImportTestDB(t))

	p := validPayload()
	p.Contents = []model.ImportContent{
		{Type: model.ImportVideo, Title: "v1", Order: 1, Content: "s"},
		{Type: model.ImportVideo, Title: "v2", Order: 2, Content: "s"},
		{Type: model.ImportArticle, Title: "a1", Order: 3, Content: strings.Repeat("x", 100)},
		{Type: model.ImportQuiz, Title: "q1", Order: 4, Questions: []model.ImportQuizQuestion{
			{Question: "1", Options: []string{"a", "b"}, Correct: 0},
			{Question: "2", Options: []string{"a", "b"}, Correct: 1},
		}},
		{Type: model.ImportQuiz, Title: "q2", Order: 5, Questions: []model.ImportQuizQuestion{
			{Question: "3", Options: []string{"a", "b"}, Correct: 0},
		}},
	}

	summary := s.BuildSummary(p)
	if summary.VideoCount != 2 || summary.ArticleCount != 1 || summary.ExerciseCount != 0 || summary.QuizCount != 2 {
		t.Fatalf("per-type counts wrong: %+v", summary)
	}
	if summary.QuizQuestions != 3 {
		t.Fatalf("QuizQuestions = %d, want 3", summary.QuizQuestions)
	}
	if summary.TotalContents != 5 {
		t.Fatalf("TotalContents = %d, want 5", summary.TotalContents)
	}
	if summary.ModuleName != "Go Basics" || summary.LessonTitle != "Hello World" || summary.BlockTitle != "Warmup" {
		t.Fatalf("labels wrong: %+v", summary)
	}
}

func TestCheckExistenceIsCaseInsensitive(t *testing.T) {
	db := newImportTestDB(t)
	s := newImportService(t, db)

	course := &model.Course{Title: "Go", Status: model.CoursePublished}
	if err := db.Create(course).Error; err != nil {
		t.Fatal(err)
	}
	module := &model.Module{CourseID: course.ID, Name: "Go Basics", Order: 1}
	if err := db.Create(module).Error; err != nil {
		t.Fatal(err)
	}
	lesson := &model.Lesson{ModuleID: module.ID, Title: "Hello World", Order: 1}
	if err := db.Create(lesson).Error; err != nil {
		t.Fatal(err)
	}

	p := validPayload()
	p.Module.Name = "go basics"
	p.Lesson.Title = "HELLO WORLD"

	moduleExists, lessonExists, err := s.CheckExistence(course.ID, p)
	if err != nil {
		t.Fatal(err)
	}
	if !moduleExists || !lessonExists {
		t.Fatalf("moduleExists=%v lessonExists=%v, want both true", moduleExists, lessonExists)
	}

	p.Module.Name = "Rust Basics"
	moduleExists, lessonExists, err = s.CheckExistence(course.ID, p)
	if err != nil {
		t.Fatal(err)
	}
	if moduleExists || lessonExists {
		t.Fatalf("moduleExists=%v lessonExists=%v, want both false", moduleExists, lessonExists)
	}
}

func TestExecuteCreatesModuleLessonAndContents(t *testing.T) {
	db := newImportTestDB(t)
	s := newImportService(t, db)

	course := &model.Course{Title: "Go", Status: model.CoursePublished}
	if err := db.Create(course).Error; err != nil {
		t.Fatal(err)
	}

	p := validPayload()
	p.Contents = append(p.Contents,
		model.ImportContent{
			Type: model.ImportExercise, Title: "Try it", Order: 2,
			Content: "Write hello world", Answer: "Use fmt.Println",
			Difficulty: model.DifficultyEasy, ExerciseType: model.ExerciseCode,
		},
		model.ImportContent{
			Type: model.ImportQuiz, Title: "Checkpoint", Order: 3,
			Questions: []model.ImportQuizQuestion{{
				Question: "What prints output?",
				Options:  []string{"fmt.Println", "os.Exit", "panic"},
				Correct:  0,
			}},
		},
	)

	result := s.Execute(course.ID, p)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if !result.ModuleCreated || !result.LessonCreated {
		t.Fatalf("expected module and lesson creation: %+v", result)
	}
	if result.ContentsCreated != 3 {
		t.Fatalf("ContentsCreated = %d, want 3", result.ContentsCreated)
	}

	var contents []model.LessonContent
	if err := db.Where("lesson_id = ?", result.LessonID).Order("order_index asc").Find(&contents).Error; err != nil {
		t.Fatal(err)
	}
	if len(contents) != 3 {
		t.Fatalf("got %d rows, want 3", len(contents))
	}

	video := contents[0]
	if video.Type != model.ContentVideo || video.OrderIndex != 1 {
		t.Fatalf("video row wrong: %+v", video)
	}
	if video.Duration != "7 min" {
		t.Fatalf("video duration = %q, want %q", video.Duration, "7 min")
	}
	if video.YoutubeID != "dQw4w9WgXcQ" {
		t.Fatalf("video youtube id = %q", video.YoutubeID)
	}
	if video.Content == nil || *video.Content != "Welcome to the course." {
		t.Fatalf("video content = %v", video.Content)
	}

	exercise := contents[1]
	if exercise.Type != model.ContentExercise || exercise.Description != "interactive:code" {
		t.Fatalf("exercise row wrong: %+v", exercise)
	}
	var stored model.StoredExercise
	if err := json.Unmarshal([]byte(*exercise.Content), &stored); err != nil {
		t.Fatalf("exercise blob: %v", err)
	}
	if stored.Instruction != "Write hello world" || stored.AnswerExplanation != "Use fmt.Println" {
		t.Fatalf("exercise blob wrong: %+v", stored)
	}

	quiz := contents[2]
	if quiz.Type != model.ContentQuiz || quiz.Content != nil || quiz.QuizData == nil {
		t.Fatalf("quiz row wrong: %+v", quiz)
	}
	var questions []model.StoredQuizQuestion
	if err := json.Unmarshal([]byte(*quiz.QuizData), &questions); err != nil {
		t.Fatalf("quiz blob: %v", err)
	}
	if len(questions) != 1 || len(questions[0].Options) != 3 {
		t.Fatalf("quiz blob wrong: %+v", questions)
	}
	correct := 0
	for _, opt := range questions[0].Options {
		if opt.ID == "" {
			t.Fatal("option missing generated ID")
		}
		if opt.Correct {
			correct++
			if opt.Text != "fmt.Println" {
				t.Fatalf("wrong option marked correct: %+v", opt)
			}
		}
	}
	if correct != 1 {
		t.Fatalf("%d options marked correct, want 1", correct)
	}

	var lesson model.Lesson
	if err := db.First(&lesson, result.LessonID).Error; err != nil {
		t.Fatal(err)
	}
	if lesson.ContentCount != 3 {
		t.Fatalf("ContentCount = %d, want 3", lesson.ContentCount)
	}
}

func TestExecuteAppendsAfterExistingContents(t *testing.T) {
	db := newImportTestDB(t)
	s := newImportService(t, db)

	course := &model.Course{Title: "Go", Status: model.CoursePublished}
	if err := db.Create(course).Error; err != nil {
		t.Fatal(err)
	}
	module := &model.Module{CourseID: course.ID, Name: "Go Basics", Order: 1}
	if err := db.Create(module).Error; err != nil {
		t.Fatal(err)
	}
	lesson := &model.Lesson{ModuleID: module.ID, Title: "Hello World", Order: 1, ContentCount: 2}
	if err := db.Create(lesson).Error; err != nil {
		t.Fatal(err)
	}
	existing := "keep me"
	for i := 1; i <= 2; i++ {
		row := &model.LessonContent{
			LessonID: lesson.ID, Type: model.ContentArticle,
			Title: "old", OrderIndex: i, Content: &existing,
		}
		if err := db.Create(row).Error; err != nil {
			t.Fatal(err)
		}
	}

	p := validPayload()
	p.Contents = []model.ImportContent{
		{Type: model.ImportVideo, Title: "new 1", Order: 1, Content: "s"},
		{Type: model.ImportVideo, Title: "new 2", Order: 2, Content: "s"},
	}

	result := s.Execute(course.ID, p)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.ModuleCreated || result.LessonCreated {
		t.Fatalf("existing module/lesson should be reused: %+v", result)
	}
	if result.ModuleID != module.ID || result.LessonID != lesson.ID {
		t.Fatalf("resolved wrong rows: %+v", result)
	}

	var orders []int
	if err := db.Model(&model.LessonContent{}).Where("lesson_id = ? AND title LIKE ?", lesson.ID, "new%").
		Order("order_index asc").Pluck("order_index", &orders).Error; err != nil {
		t.Fatal(err)
	}
	if len(orders) != 2 || orders[0] != 3 || orders[1] != 4 {
		t.Fatalf("new rows got order indexes %v, want [3 4]", orders)
	}

	var untouched int64
	if err := db.Model(&model.LessonContent{}).
		Where("lesson_id = ? AND title = ? AND order_index IN ?", lesson.ID, "old", []int{1, 2}).
		Count(&untouched).Error; err != nil {
		t.Fatal(err)
	}
	if untouched != 2 {
		t.Fatalf("existing rows were disturbed, found %d", untouched)
	}

	var updated model.Lesson
	if err := db.First(&updated, lesson.ID).Error; err != nil {
		t.Fatal(err)
	}
	if updated.ContentCount != 4 {
		t.Fatalf("ContentCount = %d, want 4", updated.ContentCount)
	}
}

func TestExecuteCreationDisabledLeavesNothingBehind(t *testing.T) {
	db := newImportTestDB(t)
	s := newImportService(t, db)

	course := &model.Course{Title: "Go", Status: model.CoursePublished}
	if err := db.Create(course).Error; err != nil {
		t.Fatal(err)
	}

	p := validPayload()
	p.Module.CreateIfNotExists = false

	result := s.Execute(course.ID, p)
	if len(result.Errors) == 0 {
		t.Fatal("expected an error when module creation is disabled")
	}
	if !strings.Contains(result.Errors[0], "creation disabled") {
		t.Fatalf("unexpected error: %v", result.Errors)
	}
	if result.ContentsCreated != 0 || result.ModuleID != 0 || result.LessonID != 0 {
		t.Fatalf("failed import must report nothing created: %+v", result)
	}

	var modules, lessons, contents int64
	db.Model(&model.Module{}).Count(&modules)
	db.Model(&model.Lesson{}).Count(&lessons)
	db.Model(&model.LessonContent{}).Count(&contents)
	if modules != 0 || lessons != 0 || contents != 0 {
		t.Fatalf("rollback left rows behind: modules=%d lessons=%d contents=%d", modules, lessons, contents)
	}
}

func TestExecuteRejectsInvalidPayload(t *testing.T) {
	db := newImportTestDB(t)
	s := newImportService(t, db)

	course := &model.Course{Title: "Go", Status: model.CoursePublished}
	if err := db.Create(course).Error; err != nil {
		t.Fatal(err)
	}

	p := validPayload()
	p.Contents = nil

	result := s.Execute(course.ID, p)
	if len(result.Errors) == 0 {
		t.Fatal("expected validation errors")
	}
	if result.ContentsCreated != 0 {
		t.Fatalf("ContentsCreated = %d, want 0", result.ContentsCreated)
	}
}

func TestExecuteUnknownCourse(t *testing.T) {
	db := newImportTestDB(t)
	s := newImportService(t, db)

	result := s.Execute(999, validPayload())
	if len(result.Errors) == 0 {
		t.Fatal("expected course lookup failure")
	}
}
