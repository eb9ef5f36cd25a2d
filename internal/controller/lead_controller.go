package controller

import (
	"code_plus_backend/internal/service"
	"code_plus_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type LeadController struct {
	LeadService *service.LeadService
}

func NewLeadController(leadService *service.LeadService) *LeadController {
	return &LeadController{LeadService: leadService}
}

// CreateLead godoc
// @Summary Record a prospective-student enquiry
// @Tags leads
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.LeadReq true "lead"
// @Success 201 {object} util.Response{data=model.Lead}
// @Router /api/admin/leads [post]
func (c *LeadController) CreateLead(ctx *gin.Context) {
	var req service.LeadReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lead, err := c.LeadService.CreateLead(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, lead)
}

// UpdateLead godoc
// @Summary Update a lead
// @Tags leads
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "lead ID"
// @Param   body body service.LeadReq true "lead"
// @Success 200 {object} util.Response{data=model.Lead}
// @Failure 404 {object} util.Response
// @Router /api/admin/leads/{id} [put]
func (c *LeadController) UpdateLead(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req service.LeadReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lead, err := c.LeadService.UpdateLead(id, req)
	if err != nil {
		if errors.Is(err, util.ErrLeadNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lead)
}

// DeleteLead godoc
// @Summary Delete a lead
// @Tags leads
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "lead ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/leads/{id} [delete]
func (c *LeadController) DeleteLead(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.LeadService.DeleteLead(id); err != nil {
		if errors.Is(err, util.ErrLeadNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// ListLeads godoc
// @Summary List leads with status and text filters
// @Tags leads
// @Produce  json
// @Security BearerAuth
// @Param   status query string false "new|contacted|converted|lost|all"
// @Param   search query string false "name, email or phone substring"
// @Param   page query int false "page number"
// @Param   limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/leads [get]
func (c *LeadController) ListLeads(ctx *gin.Context) {
	status := ctx.Query("status")
	search := ctx.Query("search")
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	leads, total, err := c.LeadService.ListLeads(status, search, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: leads, Total: total, Page: page, Limit: limit})
}

// LeadFunnel godoc
// @Summary Lead counts by status
// @Tags leads
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=object}
// @Router /api/admin/leads/funnel [get]
func (c *LeadController) LeadFunnel(ctx *gin.Context) {
	funnel, err := c.LeadService.LeadFunnel()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, funnel)
}
