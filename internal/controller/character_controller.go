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

type CharacterController struct {
	Service   *service.CharacterService
	Swimsuits *service.SwimsuitService
	Importer  *service.ImportService
}

func NewCharacterController(svc *service.CharacterService, swimsuits *service.SwimsuitService, importer *service.ImportService) *CharacterController {
	return &CharacterController{
		Service:   svc,
		Swimsuits: swimsuits,
		Importer:  importer,
	}
}

// List godoc
// @Summary 角色目录
// @Description 按筛选条件返回角色列表，支持按姓名/CV 搜索、标签与身高区间筛选
// @Tags 角色
// @Produce json
// @Param search query string false "搜索词"
// @Param tags query string false "标签，逗号分隔"
// @Param sort query string false "排序键"
// @Param page query int false "页码"
// @Param limit query int false "每页条数，上限 100"
// @Success 200 {object} util.Response{data=util.ListResponse}
// @Router /api/characters [get]
func (c *CharacterController) List(ctx *gin.Context) {
	st, page := ParseFilterState(ctx)
	filtered, pg, err := c.Service.List(st, page, PerPage(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.NewListResponse(filtered, pg, st))
}

// Filters godoc
// @Summary 角色筛选项
// @Tags 角色
// @Produce json
// @Success 200 {object} util.Response{data=filter.ResolvedConfig}
// @Router /api/characters/filters [get]
func (c *CharacterController) Filters(ctx *gin.Context) {
	rc, err := c.Service.Filters(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rc)
}

// Get godoc
// @Summary 角色详情
// @Description 角色信息及其全部泳装
// @Tags 角色
// @Produce json
// @Param id path int true "角色 ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response "角色不存在"
// @Router /api/characters/{id} [get]
func (c *CharacterController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	character, err := c.Service.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	suits, err := c.Swimsuits.ListByCharacter(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"character": character, "swimsuits": suits})
}

// Create godoc
// @Summary 新建角色
// @Tags 角色
// @Accept json
// @Produce json
// @Param body body model.Character true "角色信息"
// @Success 201 {object} util.Response{data=model.Character}
// @Router /api/admin/characters [post]
func (c *CharacterController) Create(ctx *gin.Context) {
	var character model.Character
	if err := ctx.ShouldBindJSON(&character); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.Service.Create(ctx.Request.Context(), &character); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, character)
}

// Update godoc
// @Summary 更新角色
// @Tags 角色
// @Accept json
// @Produce json
// @Param id path int true "角色 ID"
// @Param body body model.Character true "角色信息"
// @Success 200 {object} util.Response{data=model.Character}
// @Router /api/admin/characters/{id} [put]
func (c *CharacterController) Update(ctx *gin.Context) {
	var character model.Character
	if err := ctx.ShouldBindJSON(&character); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	character.ID = util.MustParseUint(ctx.Param("id"))
	if err := c.Service.Update(ctx.Request.Context(), &character); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, character)
}

// Import godoc
// @Summary 批量导入角色
// @Description 上传 Excel 工作簿批量导入角色条目，逐行校验，重名与失败行跳过
// @Tags 角色
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Excel 工作簿"
// @Success 200 {object} util.Response{data=service.ImportResult} "导入汇总"
// @Failure 400 {object} util.Response "文件缺失或格式错误"
// @Router /api/admin/characters/import [post]
func (c *CharacterController) Import(ctx *gin.Context) {
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

	result, err := c.Importer.ImportCharacters(ctx.Request.Context(), tmp, service.DefaultImportConfig())
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, result)
}

// Delete godoc
// @Summary 删除角色
// @Tags 角色
// @Produce json
// @Param id path int true "角色 ID"
// @Success 200 {object} util.Response
// @Router /api/admin/characters/{id} [delete]
func (c *CharacterController) Delete(ctx *gin.Context) {
	if err := c.Service.Delete(ctx.Request.Context(), util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
