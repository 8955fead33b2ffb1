package controller

import (
	"errors"

	"venus_handbook_backend/internal/service"
	"venus_handbook_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FavoriteController struct {
	Service *service.FavoriteService
}

func NewFavoriteController(svc *service.FavoriteService) *FavoriteController {
	return &FavoriteController{Service: svc}
}

// ToggleRequest 收藏切换请求
type ToggleRequest struct {
	ItemType string `json:"itemType" binding:"required"`
	ItemID   string `json:"itemId" binding:"required"`
}

// Toggle godoc
// @Summary 收藏/取消收藏
// @Description 已收藏则取消，未收藏则添加，返回操作后的状态
// @Tags 收藏
// @Accept json
// @Produce json
// @Param body body ToggleRequest true "条目类型与 ID"
// @Success 200 {object} util.Response{data=object} "favorited 字段为操作后状态"
// @Failure 400 {object} util.Response "条目类型无效"
// @Router /api/favorites/toggle [post]
func (c *FavoriteController) Toggle(ctx *gin.Context) {
	var req ToggleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	favorited, err := c.Service.Toggle(claims.UserID, req.ItemType, req.ItemID)
	if err != nil {
		if errors.Is(err, util.ErrInvalidItemType) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"favorited": favorited})
}

// List godoc
// @Summary 我的收藏
// @Tags 收藏
// @Produce json
// @Param type query string false "条目类型，缺省为全部"
// @Success 200 {object} util.Response{data=object}
// @Router /api/favorites [get]
func (c *FavoriteController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	favorites, err := c.Service.List(claims.UserID, ctx.Query("type"))
	if err != nil {
		if errors.Is(err, util.ErrInvalidItemType) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"favorites": favorites})
}
