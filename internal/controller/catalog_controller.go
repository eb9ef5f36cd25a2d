package controller

import (
	"code_plus_backend/internal/service"
	"code_plus_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	CatalogService *service.CatalogService
}

func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{CatalogService: catalogService}
}

// ListCourses godoc
// @Summary List published courses
// @Tags catalog
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/courses [get]
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	courses, err := c.CatalogService.ListCourses()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary Get a published course with its modules
// @Tags catalog
// @Produce  json
// @Param   id path int true "course ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CatalogController) GetCourse(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	course, err := c.CatalogService.GetCourse(id)
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

// GetModuleLessons godoc
// @Summary List a module's lessons in order
// @Tags catalog
// @Produce  json
// @Param   id path int true "module ID"
// @Success 200 {object} util.Response{data=[]model.Lesson}
// @Failure 404 {object} util.Response
// @Router /api/modules/{id}/lessons [get]
func (c *CatalogController) GetModuleLessons(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	lessons, err := c.CatalogService.GetModuleLessons(id)
	if err != nil {
		if errors.Is(err, util.ErrModuleNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lessons)
}

// GetLesson godoc
// @Summary Get a lesson with its ordered contents
// @Tags catalog
// @Produce  json
// @Param   id path int true "lesson ID"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id} [get]
func (c *CatalogController) GetLesson(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	lesson, err := c.CatalogService.GetLesson(id)
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
