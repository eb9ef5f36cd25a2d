package model

type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadConverted LeadStatus = "converted"
	LeadLost      LeadStatus = "lost"
)

// swagger:model Lead
type Lead struct {
	BaseModel
	Name   string     `gorm:"size:100;not null" json:"name"`
	Email  string     `gorm:"size:100" json:"email"`
	Phone  string     `gorm:"size:30" json:"phone"`
	Status LeadStatus `gorm:"size:20;default:'new'" json:"status"`
	Notes  string     `gorm:"type:text" json:"notes"`
}

func (Lead) TableName() string {
	return "leads"
}
