package controller

import (
	"errors"

	"venus_handbook_backend/internal/model"
	"venus_handbook_backend/internal/service"
	"venus_handbook_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type GuideController struct {
	Service *service.GuideService
}

func NewGuideController(svc *service.GuideService) *GuideController {
	return &GuideController{Service: svc}
}

// List godoc
// @Summary 攻略目录
// @Description 已发布攻略的列表，支持分类/标签筛选与搜索
// @Tags 攻略
// @Produce json
// @Param search query string false "搜索词"
// @Param category query string false "分类 beginner/festival/gacha/misc"
// @Param page query int false "页码"
// @Param limit query int false "每页条数，上限 100"
// @Success 200 {object} util.Response{data=util.ListResponse}
// @Router /api/guides [get]
func (c *GuideController) List(ctx *gin.Context) {
	st, page := ParseFilterState(ctx)
	filtered, pg, err := c.Service.List(st, page, PerPage(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.NewListResponse(filtered, pg, st))
}

// Filters godoc
// @Summary 攻略筛选项
// @Tags 攻略
// @Produce json
// @Success 200 {object} util.Response{data=filter.ResolvedConfig}
// @Router /api/guides/filters [get]
func (c *GuideController) Filters(ctx *gin.Context) {
	rc, err := c.Service.Filters(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rc)
}

// Get godoc
// @Summary 攻略正文
// @Description 通过 slug 获取攻略 Markdown 正文，渲染由前端负责
// @Tags 攻略
// @Produce json
// @Param slug path string true "攻略 slug"
// @Success 200 {object} util.Response{data=model.Guide}
// @Failure 404 {object} util.Response "攻略不存在"
// @Router /api/guides/{slug} [get]
func (c *GuideController) Get(ctx *gin.Context) {
	guide, err := c.Service.GetBySlug(ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	if !guide.IsPublished {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, guide)
}

// Create godoc
// @Summary 新建攻略
// @Tags 攻略
// @Accept json
// @Produce json
// @Param body body model.Guide true "攻略内容"
// @Success 201 {object} util.Response{data=model.Guide}
// @Router /api/admin/guides [post]
func (c *GuideController) Create(ctx *gin.Context) {
	var guide model.Guide
	if err := ctx.ShouldBindJSON(&guide); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if claims := util.GetUserFromContext(ctx); claims != nil {
		guide.AuthorID = claims.UserID
	}
	if err := c.Service.Create(ctx.Request.Context(), &guide); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, guide)
}

// Update godoc
// @Summary 更新攻略
// @Tags 攻略
// @Accept json
// @Produce json
// @Param id path int true "攻略 ID"
// @Param body body model.Guide true "攻略内容"
// @Success 200 {object} util.Response{data=model.Guide}
// @Router /api/admin/guides/{id} [put]
func (c *GuideController) Update(ctx *gin.Context) {
	var guide model.Guide
	if err := ctx.ShouldBindJSON(&guide); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	guide.ID = util.MustParseUint(ctx.Param("id"))
	if err := c.Service.Update(ctx.Request.Context(), &guide); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, guide)
}

// Delete godoc
// @Summary 删除攻略
// @Tags 攻略
// @Produce json
// @Param id path int true "攻略 ID"
// @Success 200 {object} util.Response
// @Router /api/admin/guides/{id} [delete]
func (c *GuideController) Delete(ctx *gin.Context) {
	if err := c.Service.Delete(ctx.Request.Context(), util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadAsset godoc
// @Summary 上传攻略附件
// @Description 上传 PDF 或图片附件，校验真实 MIME 类型
// @Tags 攻略
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "攻略 ID"
// @Param file formData file true "附件"
// @Success 200 {object} util.Response{data=object} "附件 URL"
// @Failure 400 {object} util.Response "文件类型不允许"
// @Router /api/admin/guides/{id}/asset [post]
func (c *GuideController) UploadAsset(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	url, err := c.Service.UploadAsset(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), file)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, gin.H{"url": url})
}

// UploadVideo godoc
// @Summary 上传攻略视频
// @Description 上传视频并自动生成首帧缩略图
// @Tags 攻略
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "攻略 ID"
// @Param file formData file true "视频文件 mp4/webm/mov"
// @Success 200 {object} util.Response{data=object} "视频 URL"
// @Failure 400 {object} util.Response "视频格式不支持"
// @Router /api/admin/guides/{id}/video [post]
func (c *GuideController) UploadVideo(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	url, err := c.Service.UploadVideo(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), file)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidVideoExt):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"url": url})
}
