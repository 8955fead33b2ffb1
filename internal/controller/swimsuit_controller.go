package controller

import (
	"errors"
	"os"
	"path/filepath"

	"venus_handbook_backend/internal/model"
	"venus_handbook_backend/internal/service"
	"venus_handbook_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SwimsuitController struct {
	Service   *service.SwimsuitService
	Favorites *service.FavoriteService
	Importer  *service.ImportService
}

func NewSwimsuitController(svc *service.SwimsuitService, favorites *service.FavoriteService, importer *service.ImportService) *SwimsuitController {
	return &SwimsuitController{
		Service:   svc,
		Favorites: favorites,
		Importer:  importer,
	}
}

// List godoc
// @Summary 泳装目录
// @Description 按筛选条件返回泳装列表，支持搜索、稀有度/类型/途径筛选、属性区间与分页
// @Tags 泳装
// @Produce json
// @Param search query string false "搜索词，匹配泳装名或角色名"
// @Param rarity query string false "稀有度 SSR/SR/R/N"
// @Param type query string false "类型 POW/TEC/STM"
// @Param category query string false "获取途径"
// @Param tags query string false "标签，逗号分隔"
// @Param flags query string false "布尔筛选键，逗号分隔，如 malfunction"
// @Param sort query string false "排序键"
// @Param page query int false "页码"
// @Param limit query int false "每页条数，上限 100"
// @Success 200 {object} util.Response{data=util.ListResponse} "列表与分页信息"
// @Router /api/swimsuits [get]
func (c *SwimsuitController) List(ctx *gin.Context) {
	st, page := ParseFilterState(ctx)
	filtered, pg, err := c.Service.List(st, page, PerPage(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.NewListResponse(filtered, pg, st))
}

// Filters godoc
// @Summary 泳装筛选项
// @Description 当前数据集可用的筛选维度与取值，供前端渲染筛选控件
// @Tags 泳装
// @Produce json
// @Success 200 {object} util.Response{data=filter.ResolvedConfig}
// @Router /api/swimsuits/filters [get]
func (c *SwimsuitController) Filters(ctx *gin.Context) {
	rc, err := c.Service.Filters(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rc)
}

// Get godoc
// @Summary 泳装详情
// @Tags 泳装
// @Produce json
// @Param id path int true "泳装 ID"
// @Success 200 {object} util.Response{data=model.Swimsuit}
// @Failure 404 {object} util.Response "泳装不存在"
// @Router /api/swimsuits/{id} [get]
func (c *SwimsuitController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	suit, err := c.Service.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	resp := gin.H{"swimsuit": suit}
	if claims := util.GetUserFromContext(ctx); claims != nil {
		ids, err := c.Favorites.IDSet(claims.UserID, model.FavSwimsuit)
		if err == nil {
			resp["favorited"] = ids[ctx.Param("id")]
		}
	}
	util.Success(ctx, resp)
}

// Create godoc
// @Summary 新建泳装条目
// @Tags 泳装
// @Accept json
// @Produce json
// @Param body body model.Swimsuit true "泳装信息"
// @Success 201 {object} util.Response{data=model.Swimsuit}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/admin/swimsuits [post]
func (c *SwimsuitController) Create(ctx *gin.Context) {
	var suit model.Swimsuit
	if err := ctx.ShouldBindJSON(&suit); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.Service.Create(ctx.Request.Context(), &suit); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, suit)
}

// Update godoc
// @Summary 更新泳装条目
// @Tags 泳装
// @Accept json
// @Produce json
// @Param id path int true "泳装 ID"
// @Param body body model.Swimsuit true "泳装信息"
// @Success 200 {object} util.Response{data=model.Swimsuit}
// @Router /api/admin/swimsuits/{id} [put]
func (c *SwimsuitController) Update(ctx *gin.Context) {
	var suit model.Swimsuit
	if err := ctx.ShouldBindJSON(&suit); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	suit.ID = util.MustParseUint(ctx.Param("id"))
	if err := c.Service.Update(ctx.Request.Context(), &suit); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, suit)
}

// Delete godoc
// @Summary 删除泳装条目
// @Tags 泳装
// @Produce json
// @Param id path int true "泳装 ID"
// @Success 200 {object} util.Response
// @Router /api/admin/swimsuits/{id} [delete]
func (c *SwimsuitController) Delete(ctx *gin.Context) {
	if err := c.Service.Delete(ctx.Request.Context(), util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Import godoc
// @Summary 批量导入泳装
// @Description 上传 Excel 工作簿批量导入泳装条目，逐行校验，失败行跳过
// @Tags 泳装
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Excel 工作簿"
// @Success 200 {object} util.Response{data=service.ImportResult} "导入汇总"
// @Failure 400 {object} util.Response "文件缺失或格式错误"
// @Router /api/admin/swimsuits/import [post]
func (c *SwimsuitController) Import(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing workbook file")
		return
	}

	tmp := filepath.Join(os.TempDir(), "import-"+util.GenerateRandomString(8)+".xlsx")
	if err := ctx.SaveUploadedFile(file, tmp); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmp)

	result, err := c.Importer.ImportSwimsuits(ctx.Request.Context(), tmp, service.DefaultImportConfig())
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, result)
}
