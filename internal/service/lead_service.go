package service

import (
	"code_plus_backend/internal/model"
	"code_plus_backend/internal/repository"
	"code_plus_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

// LeadService manages prospective-student enquiries worked by admins.
type LeadService struct {
	LeadRepo *repository.LeadRepository
}

func NewLeadService(leadRepo *repository.LeadRepository) *LeadService {
	return &LeadService{LeadRepo: leadRepo}
}

type LeadReq struct {
	Name   string           `json:"name" binding:"required"`
	Email  string           `json:"email"`
	Phone  string           `json:"phone"`
	Status model.LeadStatus `json:"status"`
	Notes  string           `json:"notes"`
}

func (s *LeadService) CreateLead(req LeadReq) (*model.Lead, error) {
	lead := &model.Lead{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Status: req.Status,
		Notes:  req.Notes,
	}
	if lead.Status == "" {
		lead.Status = model.LeadNew
	}
	if err := s.LeadRepo.Create(lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *LeadService) UpdateLead(id uint, req LeadReq) (*model.Lead, error) {
	lead, err := s.LeadRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}

	lead.Name = req.Name
	lead.Email = req.Email
	lead.Phone = req.Phone
	if req.Status != "" {
		lead.Status = req.Status
	}
	lead.Notes = req.Notes

	if err := s.LeadRepo.Update(lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *LeadService) DeleteLead(id uint) error {
	if _, err := s.LeadRepo.FindByID(id); err != nil {
		return util.ErrLeadNotFound
	}
	return s.LeadRepo.Delete(id)
}

func (s *LeadService) ListLeads(status, search string, page, limit int) ([]model.Lead, int64, error) {
	return s.LeadRepo.List(status, search, page, limit)
}

func (s *LeadService) LeadFunnel() (map[string]int64, error) {
	return s.LeadRepo.CountByStatus()
}
