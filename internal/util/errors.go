package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrQuizNotPublished   = errors.New("quiz not published or not accessible")
	ErrSessionNotFound    = errors.New("quiz session not found or expired")
	ErrGuideNotFound      = errors.New("guide not found")
	ErrInvalidItemType    = errors.New("invalid favorite item type")
	ErrInvalidVideoExt    = errors.New("invalid video file extension")
)
