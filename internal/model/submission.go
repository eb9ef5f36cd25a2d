package model

type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionReviewed  SubmissionStatus = "reviewed"
)

// swagger:model ExerciseSubmission
type ExerciseSubmission struct {
	BaseModel
	UserID    uint             `gorm:"index;not null" json:"userId"`
	ContentID uint             `gorm:"index;not null" json:"contentId"`
	Answer    string           `gorm:"type:text;not null" json:"answer"`
	Status    SubmissionStatus `gorm:"size:20;default:'submitted'" json:"status"`
	Feedback  string           `gorm:"type:text" json:"feedback"`
}

func (ExerciseSubmission) TableName() string {
	return "exercise_submissions"
}
