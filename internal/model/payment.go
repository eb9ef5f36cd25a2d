package model

import "time"

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// swagger:model Payment
type Payment struct {
	BaseModel
	UserID      uint          `gorm:"index;not null" json:"userId"`
	Reference   string        `gorm:"size:36;uniqueIndex;not null" json:"reference"`
	AmountCents int64         `gorm:"not null" json:"amountCents"`
	Currency    string        `gorm:"size:3;default:'USD'" json:"currency"`
	Status      PaymentStatus `gorm:"size:20;default:'pending'" json:"status"`
	Method      string        `gorm:"size:30" json:"method"`
	PaidAt      *time.Time    `json:"paidAt,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}
