package service

import (
	"code_plus_backend/internal/model"
	"code_plus_backend/internal/repository"
	"code_plus_backend/internal/util"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentService records tuition payments. References are opaque UUIDs so
// receipts can be reconciled against external gateways.
type PaymentService struct {
	PaymentRepo *repository.PaymentRepository
	UserRepo    *repository.UserRepository
}

func NewPaymentService(paymentRepo *repository.PaymentRepository, userRepo *repository.UserRepository) *PaymentService {
	return &PaymentService{PaymentRepo: paymentRepo, UserRepo: userRepo}
}

type PaymentReq struct {
	UserID      uint   `json:"userId" binding:"required"`
	AmountCents int64  `json:"amountCents" binding:"required"`
	Currency    string `json:"currency"`
	Method      string `json:"method"`
}

func (s *PaymentService) CreatePayment(req PaymentReq) (*model.Payment, error) {
	if _, err := s.UserRepo.FindByID(req.UserID); err != nil {
		return nil, util.ErrUserNotFound
	}

	payment := &model.Payment{
		UserID:      req.UserID,
		Reference:   uuid.New().String(),
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		Status:      model.PaymentPending,
		Method:      req.Method,
	}
	if payment.Currency == "" {
		payment.Currency = "USD"
	}
	if err := s.PaymentRepo.Create(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) MarkPaid(reference string) (*model.Payment, error) {
	payment, err := s.PaymentRepo.FindByReference(reference)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	payment.Status = model.PaymentPaid
	payment.PaidAt = &now
	if err := s.PaymentRepo.Update(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) Refund(reference string) (*model.Payment, error) {
	payment, err := s.PaymentRepo.FindByReference(reference)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	if payment.Status != model.PaymentPaid {
		return nil, util.ErrPaymentNotFound
	}

	payment.Status = model.PaymentRefunded
	if err := s.PaymentRepo.Update(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) ListPayments(userID uint, status string, page, limit int) ([]model.Payment, int64, error) {
	return s.PaymentRepo.List(userID, status, page, limit)
}
