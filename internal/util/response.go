package util

import (
	"net/http"
	"venus_handbook_backend/pkg/filter"
	"venus_handbook_backend/pkg/logger"
	"venus_handbook_backend/pkg/pagination"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse 目录列表响应：当前页条目 + 分页视图 + 激活筛选维度数
type ListResponse struct {
	List          interface{}     `json:"list"`
	Page          pagination.Page `json:"page"`
	ActiveFilters int             `json:"activeFilters"`
}

// NewListResponse 按分页视图从筛选后的完整结果集裁出当前页
func NewListResponse[T any](filtered []T, pg pagination.Page, st filter.State) ListResponse {
	return ListResponse{
		List:          filtered[pg.StartIndex:pg.EndIndex],
		Page:          pg,
		ActiveFilters: st.ActiveCount(),
	}
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}
