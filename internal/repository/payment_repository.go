package repository

import (
	"code_plus_backend/internal/model"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(payment *model.Payment) error {
	return r.DB.Create(payment).Error
}

func (r *PaymentRepository) FindByID(id uint) (*model.Payment, error) {
	var payment model.Payment
	err := r.DB.First(&payment, id).Error
	return &payment, err
}

func (r *PaymentRepository) FindByReference(reference string) (*model.Payment, error) {
	var payment model.Payment
	err := r.DB.Where("reference = ?", reference).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) Update(payment *model.Payment) error {
	return r.DB.Save(payment).Error
}

func (r *PaymentRepository) List(userID uint, status string, page, limit int) ([]model.Payment, int64, error) {
	query := r.DB.Model(&model.Payment{})
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []model.Payment
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).
		Find(&payments).Error
	return payments, total, err
}

type RevenueRow struct {
	Month       string `json:"month"`
	AmountCents int64  `json:"amountCents"`
	Count       int64  `json:"count"`
}

// MonthlyRevenue sums paid payments grouped by calendar month
// (format "YYYY-MM").
func (r *PaymentRepository) MonthlyRevenue() ([]RevenueRow, error) {
	var rows []RevenueRow
	err := r.DB.Model(&model.Payment{}).
		Select("DATE_FORMAT(paid_at, '%Y-%m') as month, SUM(amount_cents) as amount_cents, COUNT(*) as count").
		Where("status = ?", model.PaymentPaid).
		Group("month").Order("month asc").Scan(&rows).Error
	return rows, err
}

func (r *PaymentRepository) TotalRevenue() (int64, error) {
	var total int64
	err := r.DB.Model(&model.Payment{}).
		Where("status = ?", model.PaymentPaid).
		Select("COALESCE(SUM(amount_cents), 0)").Scan(&total).Error
	return total, err
}
