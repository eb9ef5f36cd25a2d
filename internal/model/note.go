package model

// swagger:model Note
type Note struct {
	BaseModel
	UserID   uint   `gorm:"index;not null" json:"userId"`
	LessonID uint   `gorm:"index;not null" json:"lessonId"`
	Body     string `gorm:"type:text;not null" json:"body"`
}

func (Note) TableName() string {
	return "notes"
}
