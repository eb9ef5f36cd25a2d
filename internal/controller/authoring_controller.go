package controller

import (
	"code_plus_backend/internal/service"
	"code_plus_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AuthoringController struct {
	AuthoringService *service.AuthoringService
}

func NewAuthoringController(authoringService *service.AuthoringService) *AuthoringController {
	return &AuthoringController{AuthoringService: authoringService}
}

// ListCourses godoc
// @Summary List all courses including drafts
// @Tags authoring
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "page number"
// @Param   limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/courses [get]
func (c *AuthoringController) ListCourses(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	courses, total, err := c.AuthoringService.ListCourses(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// CreateCourse godoc
// @Summary Create a course
// @Tags authoring
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CourseReq true "course"
// @Success 201 {object} util.Response{data=model.Course}
// @Router /api/admin/courses [post]
func (c *AuthoringController) CreateCourse(ctx *gin.Context) {
	var req service.CourseReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.AuthoringService.CreateCourse(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary Update a course
// @Tags authoring
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "course ID"
// @Param   body body service.CourseReq true "course"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response
// @Router /api/admin/courses/{id} [put]
func (c *AuthoringController) UpdateCourse(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req service.CourseReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.AuthoringService.UpdateCourse(id, req)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary Delete a course
// @Tags authoring
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "course ID"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id} [delete]
func (c *AuthoringController) DeleteCourse(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.AuthoringService.DeleteCourse(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CreateModule godoc
// @Summary Create a module in a course
// @Tags authoring
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "course ID"
// @Param   body body service.ModuleReq true "module"
// @Success 201 {object} util.Response{data=model.Module}
// @Failure 404 {object} util.Response
// @Router /api/admin/courses/{id}/modules [post]
func (c *AuthoringController) CreateModule(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))

	var req service.ModuleReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.AuthoringService.CreateModule(courseID, req)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, module)
}

// UpdateModule godoc
// @Summary Update a module
// @Tags authoring
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "module ID"
// @Param   body body service.ModuleReq true "module"
// @Success 200 {object} util.Response{data=model.Module}
// @Failure 404 {object} util.Response
// @Router /api/admin/modules/{id} [put]
func (c *AuthoringController) UpdateModule(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req service.ModuleReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.AuthoringService.UpdateModule(id, req)
	if err != nil {
		if errors.Is(err, util.ErrModuleNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, module)
}

// DeleteModule godoc
// @Summary Delete a module and everything under it
// @Tags authoring
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "module ID"
// @Success 200 {object} util.Response
// @Router /api/admin/modules/{id} [delete]
func (c *AuthoringController) DeleteModule(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.AuthoringService.DeleteModule(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CreateLesson godoc
// @Summary Create a lesson in a module
// @Tags authoring
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "module ID"
// @Param   body body service.LessonReq true "lesson"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response
// @Router /api/admin/modules/{id}/lessons [post]
func (c *AuthoringController) CreateLesson(ctx *gin.Context) {
	moduleID := util.MustParseUint(ctx.Param("id"))

	var req service.LessonReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.AuthoringService.CreateLesson(moduleID, req)
	if err != nil {
		if errors.Is(err, util.ErrModuleNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, lesson)
}

// UpdateLesson godoc
// @Summary Update a lesson
// @Tags authoring
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "lesson ID"
// @Param   body body service.LessonReq true "lesson"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response
// @Router /api/admin/lessons/{id} [put]
func (c *AuthoringController) UpdateLesson(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req service.LessonReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.AuthoringService.UpdateLesson(id, req)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lesson)
}

// DeleteLesson godoc
// @Summary Delete a lesson and its contents
// @Tags authoring
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "lesson ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/lessons/{id} [delete]
func (c *AuthoringController) DeleteLesson(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.AuthoringService.DeleteLesson(id); err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// CreateContent godoc
// @Summary Add a content block to a lesson
// @Tags authoring
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "lesson ID"
// @Param   body body service.ContentReq true "content"
// @Success 201 {object} util.Response{data=model.LessonContent}
// @Failure 404 {object} util.Response
// @Router /api/admin/lessons/{id}/contents [post]
func (c *AuthoringController) CreateContent(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("id"))

	var req service.ContentReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	content, err := c.AuthoringService.CreateContent(lessonID, req)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, content)
}

// UpdateContent godoc
// @Summary Update a content block
// @Tags authoring
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "content ID"
// @Param   body body service.ContentReq true "content"
// @Success 200 {object} util.Response{data=model.LessonContent}
// @Failure 404 {object} util.Response
// @Router /api/admin/contents/{id} [put]
func (c *AuthoringController) UpdateContent(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req service.ContentReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	content, err := c.AuthoringService.UpdateContent(id, req)
	if err != nil {
		if errors.Is(err, util.ErrContentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, content)
}

// DeleteContent godoc
// @Summary Delete a content block
// @Tags authoring
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "content ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/contents/{id} [delete]
func (c *AuthoringController) DeleteContent(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.AuthoringService.DeleteContent(id); err != nil {
		if errors.Is(err, util.ErrContentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// swagger:model ReorderRequest
type ReorderRequest struct {
	OrderedIDs []uint `json:"orderedIds" binding:"required"`
}

// ReorderContents godoc
// @Summary Reorder a lesson's content blocks
// @Description Assigns order 1..n following the given ID sequence
// @Tags authoring
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "lesson ID"
// @Param   body body ReorderRequest true "content IDs in new order"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/lessons/{id}/contents/reorder [put]
func (c *AuthoringController) ReorderContents(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("id"))

	var req ReorderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AuthoringService.ReorderContents(lessonID, req.OrderedIDs); err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// UploadVideo godoc
// @Summary Upload a lesson video
// @Description Stores the file, probes its duration and generates a thumbnail
// @Tags authoring
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   file formData file true "video file"
// @Success 200 {object} util.Response{data=service.UploadedVideo}
// @Failure 400 {object} util.Response
// @Router /api/admin/uploads/video [post]
func (c *AuthoringController) UploadVideo(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	uploaded, err := c.AuthoringService.UploadLessonVideo(ctx.Request.Context(), file)
	if err != nil {
		if errors.Is(err, util.ErrInvalidVideoExt) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, uploaded)
}
