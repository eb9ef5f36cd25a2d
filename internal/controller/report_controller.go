package controller

import (
	"code_plus_backend/internal/service"
	"code_plus_backend/internal/util"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// Dashboard godoc
// @Summary Admin dashboard aggregates
// @Description Student, course, lead and revenue totals; cached briefly
// @Tags reports
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.Dashboard}
// @Router /api/admin/reports/dashboard [get]
func (c *ReportController) Dashboard(ctx *gin.Context) {
	dash, err := c.ReportService.GetDashboard(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dash)
}

// CourseProgress godoc
// @Summary Per-student completion for a course
// @Tags reports
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "course ID"
// @Success 200 {object} util.Response{data=[]service.CourseProgressRow}
// @Router /api/admin/reports/courses/{id}/progress [get]
func (c *ReportController) CourseProgress(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	rows, err := c.ReportService.CourseProgressReport(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// ExportProgressCSV godoc
// @Summary Download a course progress report as CSV
// @Tags reports
// @Produce  text/csv
// @Security BearerAuth
// @Param   id path int true "course ID"
// @Success 200 {string} string "CSV file"
// @Router /api/admin/reports/courses/{id}/progress.csv [get]
func (c *ReportController) ExportProgressCSV(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	header, rows, err := c.ReportService.ProgressCSV(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := fmt.Sprintf("course-%d-progress-%s.csv", id, time.Now().Format("20060102"))
	if err := util.WriteCSV(ctx, filename, header, rows); err != nil {
		util.LogInternalError(ctx, err)
	}
}

// ExportRevenueCSV godoc
// @Summary Download monthly revenue as CSV
// @Tags reports
// @Produce  text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV file"
// @Router /api/admin/reports/revenue.csv [get]
func (c *ReportController) ExportRevenueCSV(ctx *gin.Context) {
	header, rows, err := c.ReportService.RevenueCSV()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := "revenue-" + time.Now().Format("20060102") + ".csv"
	if err := util.WriteCSV(ctx, filename, header, rows); err != nil {
		util.LogInternalError(ctx, err)
	}
}
