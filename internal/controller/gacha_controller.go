package controller

import (
	"errors"

	"venus_handbook_backend/internal/model"
	"venus_handbook_backend/internal/service"
	"venus_handbook_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type GachaController struct {
	Service *service.GachaService
}

func NewGachaController(svc *service.GachaService) *GachaController {
	return &GachaController{Service: svc}
}

// List godoc
// @Summary 卡池目录
// @Description 按状态/类型筛选卡池，支持开池时间区间
// @Tags 卡池
// @Produce json
// @Param status query string false "状态 upcoming/active/ended"
// @Param type query string false "卡池类型"
// @Param from query string false "开池起始日期 2006-01-02"
// @Param to query string false "开池截止日期 2006-01-02"
// @Param page query int false "页码"
// @Param limit query int false "每页条数，上限 100"
// @Success 200 {object} util.Response{data=util.ListResponse}
// @Router /api/gachas [get]
func (c *GachaController) List(ctx *gin.Context) {
	st, page := ParseFilterState(ctx)
	filtered, pg, err := c.Service.List(st, page, PerPage(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.NewListResponse(filtered, pg, st))
}

// Filters godoc
// @Summary 卡池筛选项
// @Tags 卡池
// @Produce json
// @Success 200 {object} util.Response{data=filter.ResolvedConfig}
// @Router /api/gachas/filters [get]
func (c *GachaController) Filters(ctx *gin.Context) {
	rc, err := c.Service.Filters(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rc)
}

// Get godoc
// @Summary 卡池详情
// @Tags 卡池
// @Produce json
// @Param id path int true "卡池 ID"
// @Success 200 {object} util.Response{data=model.Gacha}
// @Failure 404 {object} util.Response "卡池不存在"
// @Router /api/gachas/{id} [get]
func (c *GachaController) Get(ctx *gin.Context) {
	gacha, err := c.Service.GetByID(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gacha)
}

// Create godoc
// @Summary 新建卡池
// @Tags 卡池
// @Accept json
// @Produce json
// @Param body body model.Gacha true "卡池信息"
// @Success 201 {object} util.Response{data=model.Gacha}
// @Router /api/admin/gachas [post]
func (c *GachaController) Create(ctx *gin.Context) {
	var gacha model.Gacha
	if err := ctx.ShouldBindJSON(&gacha); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.Service.Create(ctx.Request.Context(), &gacha); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, gacha)
}

// Update godoc
// @Summary 更新卡池
// @Tags 卡池
// @Accept json
// @Produce json
// @Param id path int true "卡池 ID"
// @Param body body model.Gacha true "卡池信息"
// @Success 200 {object} util.Response{data=model.Gacha}
// @Router /api/admin/gachas/{id} [put]
func (c *GachaController) Update(ctx *gin.Context) {
	var gacha model.Gacha
	if err := ctx.ShouldBindJSON(&gacha); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	gacha.ID = util.MustParseUint(ctx.Param("id"))
	if err := c.Service.Update(ctx.Request.Context(), &gacha); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gacha)
}

// Delete godoc
// @Summary 删除卡池
// @Tags 卡池
// @Produce json
// @Param id path int true "卡池 ID"
// @Success 200 {object} util.Response
// @Router /api/admin/gachas/{id} [delete]
func (c *GachaController) Delete(ctx *gin.Context) {
	if err := c.Service.Delete(ctx.Request.Context(), util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
