package model

import "time"

// swagger:model LessonProgress
type LessonProgress struct {
	BaseModel
	UserID      uint       `gorm:"index;not null" json:"userId"`
	LessonID    uint       `gorm:"index;not null" json:"lessonId"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
