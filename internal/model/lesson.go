package model

type ContentType string

const (
	ContentVideo    ContentType = "video"
	ContentArticle  ContentType = "article"
	ContentExercise ContentType = "exercise"
	ContentQuiz     ContentType = "quiz"
)

// swagger:model Lesson
type Lesson struct {
	BaseModel
	ModuleID     uint            `gorm:"index;not null" json:"moduleId"`
	Title        string          `gorm:"size:255;not null" json:"title"`
	Description  string          `gorm:"type:text" json:"description"`
	Duration     string          `gorm:"size:50" json:"duration"`
	Order        int             `gorm:"default:0" json:"order"`
	Status       string          `gorm:"size:20;default:'active'" json:"status"`
	ContentCount int             `gorm:"default:0" json:"contentCount"` // denormalized, maintained on import/authoring
	Contents     []LessonContent `gorm:"foreignKey:LessonID" json:"contents,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// LessonContent is one ordered content row inside a lesson. Per-type payload
// fields: videos use Content (script) + Duration + YoutubeID, articles use
// Content, exercises store an encoded blob in Content and tag Description with
// "interactive:<exercise_type>", quizzes store QuizData and leave Content empty.
// swagger:model LessonContent
type LessonContent struct {
	BaseModel
	LessonID    uint        `gorm:"index;not null" json:"lessonId"`
	Type        ContentType `gorm:"size:20;not null" json:"type"`
	Title       string      `gorm:"size:255;not null" json:"title"`
	Description string      `gorm:"size:255" json:"description"`
	OrderIndex  int         `gorm:"default:0" json:"orderIndex"`
	Content     *string     `gorm:"type:text" json:"content,omitempty"`
	Duration    string      `gorm:"size:50" json:"duration"`
	YoutubeID   string      `gorm:"size:100" json:"youtubeId"`
	QuizData    *string     `gorm:"type:text" json:"quizData,omitempty"`
}

func (LessonContent) TableName() string {
	return "lesson_contents"
}
