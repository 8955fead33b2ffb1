package repository

import (
	"errors"
	"venus_handbook_backend/internal/model"

	"gorm.io/gorm"
)

type FavoriteRepository struct {
	DB *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{DB: db}
}

// Toggle 切换收藏状态，返回切换后是否处于已收藏
func (r *FavoriteRepository) Toggle(userID uint, itemType, itemID string) (bool, error) {
	var fav model.Favorite
	err := r.DB.Where("user_id = ? AND item_type = ? AND item_id = ?", userID, itemType, itemID).First(&fav).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		fav = model.Favorite{UserID: userID, ItemType: itemType, ItemID: itemID}
		if err := r.DB.Create(&fav).Error; err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	if err := r.DB.Unscoped().Delete(&fav).Error; err != nil {
		return false, err
	}
	return false, nil
}

func (r *FavoriteRepository) ListByUser(userID uint, itemType string) ([]model.Favorite, error) {
	query := r.DB.Where("user_id = ?", userID)
	if itemType != "" {
		query = query.Where("item_type = ?", itemType)
	}
	var fs []model.Favorite
	err := query.Order("created_at desc").Find(&fs).Error
	return fs, err
}

// IDSet 某一类型下用户收藏的条目 id 集合，列表页标记已收藏用
func (r *FavoriteRepository) IDSet(userID uint, itemType string) (map[string]bool, error) {
	var ids []string
	err := r.DB.Model(&model.Favorite{}).
		Where("user_id = ? AND item_type = ?", userID, itemType).
		Pluck("item_id", &ids).Error
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
