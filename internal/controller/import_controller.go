package controller

import (
	"code_plus_backend/internal/service"
	"code_plus_backend/internal/util"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ImportController exposes the two-step bulk content import: preview the
// payload, then execute the previewed session.
type ImportController struct {
	ImportService *service.ImportService
}

func NewImportController(importService *service.ImportService) *ImportController {
	return &ImportController{ImportService: importService}
}

// Preview godoc
// @Summary Preview a bulk content import
// @Description Parses and validates the raw JSON payload, reports every
// @Description problem found, and for a valid payload returns a summary plus
// @Description a session ID to execute with
// @Tags import
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "course ID"
// @Param   body body model.ImportPayload true "import payload"
// @Success 200 {object} util.Response{data=service.ImportPreview}
// @Failure 404 {object} util.Response "course not found"
// @Router /api/admin/courses/{id}/import/preview [post]
func (c *ImportController) Preview(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))

	raw, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		util.BadRequest(ctx, "failed to read request body")
		return
	}

	preview, err := c.ImportService.Preview(ctx.Request.Context(), courseID, string(raw))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, preview)
}

// swagger:model ExecuteImportRequest
type ExecuteImportRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// Execute godoc
// @Summary Execute a previewed import
// @Description Commits the payload cached under the session ID. Sessions are
// @Description single-use and expire; a failed ingestion rolls back completely
// @Tags import
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "course ID"
// @Param   body body ExecuteImportRequest true "session to commit"
// @Success 200 {object} util.Response{data=model.ImportResult}
// @Failure 410 {object} util.Response "session not found or expired"
// @Router /api/admin/courses/{id}/import/execute [post]
func (c *ImportController) Execute(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))

	var req ExecuteImportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ImportService.ExecuteSession(ctx.Request.Context(), courseID, req.SessionID)
	if err != nil {
		if errors.Is(err, util.ErrImportSessionExpired) {
			util.Error(ctx, http.StatusGone, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}
