package controller

import (
	"code_plus_backend/internal/service"
	"code_plus_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	PaymentService *service.PaymentService
}

func NewPaymentController(paymentService *service.PaymentService) *PaymentController {
	return &PaymentController{PaymentService: paymentService}
}

// CreatePayment godoc
// @Summary Record a pending payment
// @Tags payments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.PaymentReq true "payment"
// @Success 201 {object} util.Response{data=model.Payment}
// @Failure 404 {object} util.Response "user not found"
// @Router /api/admin/payments [post]
func (c *PaymentController) CreatePayment(ctx *gin.Context) {
	var req service.PaymentReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	payment, err := c.PaymentService.CreatePayment(req)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, payment)
}

// MarkPaid godoc
// @Summary Mark a payment as paid
// @Tags payments
// @Produce  json
// @Security BearerAuth
// @Param   reference path string true "payment reference"
// @Success 200 {object} util.Response{data=model.Payment}
// @Failure 404 {object} util.Response
// @Router /api/admin/payments/{reference}/paid [put]
func (c *PaymentController) MarkPaid(ctx *gin.Context) {
	payment, err := c.PaymentService.MarkPaid(ctx.Param("reference"))
	if err != nil {
		if errors.Is(err, util.ErrPaymentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, payment)
}

// Refund godoc
// @Summary Refund a paid payment
// @Tags payments
// @Produce  json
// @Security BearerAuth
// @Param   reference path string true "payment reference"
// @Success 200 {object} util.Response{data=model.Payment}
// @Failure 404 {object} util.Response
// @Router /api/admin/payments/{reference}/refund [put]
func (c *PaymentController) Refund(ctx *gin.Context) {
	payment, err := c.PaymentService.Refund(ctx.Param("reference"))
	if err != nil {
		if errors.Is(err, util.ErrPaymentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, payment)
}

// ListPayments godoc
// @Summary List payments
// @Tags payments
// @Produce  json
// @Security BearerAuth
// @Param   userId query int false "filter by student"
// @Param   status query string false "pending|paid|refunded|all"
// @Param   page query int false "page number"
// @Param   limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/payments [get]
func (c *PaymentController) ListPayments(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Query("userId"))
	status := ctx.Query("status")
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	payments, total, err := c.PaymentService.ListPayments(userID, status, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: payments, Total: total, Page: page, Limit: limit})
}
