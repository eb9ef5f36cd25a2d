package controller

import (
	"code_plus_backend/internal/service"
	"code_plus_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type LearningController struct {
	LearningService *service.LearningService
}

func NewLearningController(learningService *service.LearningService) *LearningController {
	return &LearningController{LearningService: learningService}
}

// StartLesson godoc
// @Summary Mark a lesson as started
// @Tags learning
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "lesson ID"
// @Success 200 {object} util.Response{data=model.LessonProgress}
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id}/start [post]
func (c *LearningController) StartLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id := util.MustParseUint(ctx.Param("id"))

	progress, err := c.LearningService.StartLesson(claims.UserID, id)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, progress)
}

// CompleteLesson godoc
// @Summary Mark a lesson as completed
// @Tags learning
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "lesson ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id}/complete [post]
func (c *LearningController) CompleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.LearningService.CompleteLesson(claims.UserID, id); err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// GetCourseProgress godoc
// @Summary Get own progress through a course
// @Tags learning
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "course ID"
// @Success 200 {object} util.Response{data=service.CourseProgress}
// @Router /api/courses/{id}/progress [get]
func (c *LearningController) GetCourseProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id := util.MustParseUint(ctx.Param("id"))

	progress, err := c.LearningService.GetCourseProgress(claims.UserID, id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// CreateNote godoc
// @Summary Create a lesson note
// @Tags learning
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.NoteReq true "note"
// @Success 201 {object} util.Response{data=model.Note}
// @Failure 404 {object} util.Response
// @Router /api/notes [post]
func (c *LearningController) CreateNote(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.NoteReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	note, err := c.LearningService.CreateNote(claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, note)
}

// ListLessonNotes godoc
// @Summary List own notes for a lesson
// @Tags learning
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "lesson ID"
// @Success 200 {object} util.Response{data=[]model.Note}
// @Router /api/lessons/{id}/notes [get]
func (c *LearningController) ListLessonNotes(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id := util.MustParseUint(ctx.Param("id"))

	notes, err := c.LearningService.ListLessonNotes(claims.UserID, id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, notes)
}

// swagger:model NoteUpdateRequest
type NoteUpdateRequest struct {
	Body string `json:"body" binding:"required"`
}

// UpdateNote godoc
// @Summary Update an own note
// @Tags learning
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "note ID"
// @Param   body body NoteUpdateRequest true "new body"
// @Success 200 {object} util.Response{data=model.Note}
// @Failure 403 {object} util.Response
// @Router /api/notes/{id} [put]
func (c *LearningController) UpdateNote(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id := util.MustParseUint(ctx.Param("id"))

	var req NoteUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	note, err := c.LearningService.UpdateNote(claims.UserID, id, req.Body)
	if err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, note)
}

// DeleteNote godoc
// @Summary Delete an own note
// @Tags learning
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "note ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/notes/{id} [delete]
func (c *LearningController) DeleteNote(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.LearningService.DeleteNote(claims.UserID, id); err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// SubmitExercise godoc
// @Summary Submit an exercise answer
// @Tags learning
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.SubmissionReq true "submission"
// @Success 201 {object} util.Response{data=model.ExerciseSubmission}
// @Failure 404 {object} util.Response
// @Router /api/submissions [post]
func (c *LearningController) SubmitExercise(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmissionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.LearningService.SubmitExercise(claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrContentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, submission)
}

// ListMySubmissions godoc
// @Summary List own exercise submissions
// @Tags learning
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "page number"
// @Param   limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/submissions [get]
func (c *LearningController) ListMySubmissions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	submissions, total, err := c.LearningService.ListMySubmissions(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{
		List:  submissions,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// swagger:model ReviewRequest
type ReviewRequest struct {
	Feedback string `json:"feedback" binding:"required"`
}

// ReviewSubmission godoc
// @Summary Review a student submission
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "submission ID"
// @Param   body body ReviewRequest true "feedback"
// @Success 200 {object} util.Response{data=model.ExerciseSubmission}
// @Router /api/admin/submissions/{id}/review [put]
func (c *LearningController) ReviewSubmission(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.LearningService.ReviewSubmission(id, req.Feedback)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, submission)
}
