package controller

import (
	"errors"

	"venus_handbook_backend/internal/model"
	"venus_handbook_backend/internal/service"
	"venus_handbook_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MissionController struct {
	Service *service.MissionService
}

func NewMissionController(svc *service.MissionService) *MissionController {
	return &MissionController{Service: svc}
}

// List godoc
// @Summary 任务目录
// @Description 按任务类型与状态筛选任务列表
// @Tags 任务
// @Produce json
// @Param category query string false "任务类型 daily/weekly/event/main"
// @Param status query string false "状态 open/closed"
// @Param flags query string false "布尔筛选键，如 limited"
// @Param page query int false "页码"
// @Param limit query int false "每页条数，上限 100"
// @Success 200 {object} util.Response{data=util.ListResponse}
// @Router /api/missions [get]
func (c *MissionController) List(ctx *gin.Context) {
	st, page := ParseFilterState(ctx)
	filtered, pg, err := c.Service.List(st, page, PerPage(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.NewListResponse(filtered, pg, st))
}

// Filters godoc
// @Summary 任务筛选项
// @Tags 任务
// @Produce json
// @Success 200 {object} util.Response{data=filter.ResolvedConfig}
// @Router /api/missions/filters [get]
func (c *MissionController) Filters(ctx *gin.Context) {
	rc, err := c.Service.Filters(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rc)
}

// Get godoc
// @Summary 任务详情
// @Tags 任务
// @Produce json
// @Param id path int true "任务 ID"
// @Success 200 {object} util.Response{data=model.Mission}
// @Failure 404 {object} util.Response "任务不存在"
// @Router /api/missions/{id} [get]
func (c *MissionController) Get(ctx *gin.Context) {
	mission, err := c.Service.GetByID(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, mission)
}

// Create godoc
// @Summary 新建任务
// @Tags 任务
// @Accept json
// @Produce json
// @Param body body model.Mission true "任务信息"
// @Success 201 {object} util.Response{data=model.Mission}
// @Router /api/admin/missions [post]
func (c *MissionController) Create(ctx *gin.Context) {
	var mission model.Mission
	if err := ctx.ShouldBindJSON(&mission); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.Service.Create(ctx.Request.Context(), &mission); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, mission)
}

// Update godoc
// @Summary 更新任务
// @Tags 任务
// @Accept json
// @Produce json
// @Param id path int true "任务 ID"
// @Param body body model.Mission true "任务信息"
// @Success 200 {object} util.Response{data=model.Mission}
// @Router /api/admin/missions/{id} [put]
func (c *MissionController) Update(ctx *gin.Context) {
	var mission model.Mission
	if err := ctx.ShouldBindJSON(&mission); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	mission.ID = util.MustParseUint(ctx.Param("id"))
	if err := c.Service.Update(ctx.Request.Context(), &mission); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, mission)
}

// Delete godoc
// @Summary 删除任务
// @Tags 任务
// @Produce json
// @Param id path int true "任务 ID"
// @Success 200 {object} util.Response
// @Router /api/admin/missions/{id} [delete]
func (c *MissionController) Delete(ctx *gin.Context) {
	if err := c.Service.Delete(ctx.Request.Context(), util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
