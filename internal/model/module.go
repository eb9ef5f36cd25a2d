package model

// swagger:model Module
type Module struct {
	BaseModel
	CourseID    uint     `gorm:"index;not null" json:"courseId"`
	Name        string   `gorm:"size:255;not null" json:"name"`
	Description string   `gorm:"type:text" json:"description"`
	Order       int      `gorm:"default:0" json:"order"`
	Status      string   `gorm:"size:20;default:'active'" json:"status"`
	Lessons     []Lesson `gorm:"foreignKey:ModuleID" json:"lessons,omitempty"`
}

func (Module) TableName() string {
	return "modules"
}
