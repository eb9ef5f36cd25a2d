package repository

import (
	"code_plus_backend/internal/model"

	"gorm.io/gorm"
)

type LeadRepository struct {
	DB *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(lead *model.Lead) error {
	return r.DB.Create(lead).Error
}

func (r *LeadRepository) FindByID(id uint) (*model.Lead, error) {
	var lead model.Lead
	err := r.DB.First(&lead, id).Error
	return &lead, err
}

func (r *LeadRepository) Update(lead *model.Lead) error {
	return r.DB.Save(lead).Error
}

func (r *LeadRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Lead{}, id).Error
}

func (r *LeadRepository) List(status string, search string, page, limit int) ([]model.Lead, int64, error) {
	query := r.DB.Model(&model.Lead{})
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leads []model.Lead
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&leads).Error
	return leads, total, err
}

func (r *LeadRepository) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.DB.Model(&model.Lead{}).
		Select("status, COUNT(*) as count").
		Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}
