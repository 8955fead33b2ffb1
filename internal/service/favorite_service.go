package service

import (
	"venus_handbook_backend/internal/model"
	"venus_handbook_backend/internal/repository"
	"venus_handbook_backend/internal/util"
)

var validFavTypes = map[string]bool{
	model.FavCharacter: true,
	model.FavSwimsuit:  true,
	model.FavGacha:     true,
	model.FavGuide:     true,
	model.FavMission:   true,
	model.FavQuiz:      true,
}

type FavoriteService struct {
	Repo *repository.FavoriteRepository
}

func NewFavoriteService(repo *repository.FavoriteRepository) *FavoriteService {
	return &FavoriteService{Repo: repo}
}

// Toggle 收藏/取消收藏，返回操作后的收藏状态
func (s *FavoriteService) Toggle(userID uint, itemType, itemID string) (bool, error) {
	if !validFavTypes[itemType] {
		return false, util.ErrInvalidItemType
	}
	return s.Repo.Toggle(userID, itemType, itemID)
}

func (s *FavoriteService) List(userID uint, itemType string) ([]model.Favorite, error) {
	if itemType != "" && !validFavTypes[itemType] {
		return nil, util.ErrInvalidItemType
	}
	return s.Repo.ListByUser(userID, itemType)
}

// IDSet 某一类目下用户已收藏的条目 id 集合，目录页据此渲染收藏标记
func (s *FavoriteService) IDSet(userID uint, itemType string) (map[string]bool, error) {
	if !validFavTypes[itemType] {
		return nil, util.ErrInvalidItemType
	}
	return s.Repo.IDSet(userID, itemType)
}
