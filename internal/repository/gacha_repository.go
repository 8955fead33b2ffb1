package repository

import (
	"time"
	"venus_handbook_backend/internal/model"

	"gorm.io/gorm"
)

type GachaRepository struct {
	DB *gorm.DB
}

func NewGachaRepository(db *gorm.DB) *GachaRepository {
	return &GachaRepository{DB: db}
}

func (r *GachaRepository) ListAll() ([]model.Gacha, error) {
	var gs []model.Gacha
	err := r.DB.Order("updated_at desc").Find(&gs).Error
	return gs, err
}

func (r *GachaRepository) FindByID(id uint) (*model.Gacha, error) {
	var g model.Gacha
	err := r.DB.First(&g, id).Error
	return &g, err
}

func (r *GachaRepository) Create(g *model.Gacha) error {
	return r.DB.Create(g).Error
}

func (r *GachaRepository) Update(g *model.Gacha) error {
	return r.DB.Save(g).Error
}

func (r *GachaRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Gacha{}, id).Error
}

// RefreshStatuses 按运营窗口批量刷新卡池状态，返回发生变化的行数。
// 由后台定时任务调用。
func (r *GachaRepository) RefreshStatuses(now time.Time) (int64, error) {
	var changed int64

	res := r.DB.Model(&model.Gacha{}).
		Where("status <> ? AND start_at IS NOT NULL AND start_at <= ? AND (end_at IS NULL OR end_at > ?)", model.GachaActive, now, now).
		Update("status", model.GachaActive)
	if res.Error != nil {
		return changed, res.Error
	}
	changed += res.RowsAffected

	res = r.DB.Model(&model.Gacha{}).
		Where("status <> ? AND end_at IS NOT NULL AND end_at <= ?", model.GachaEnded, now).
		Update("status", model.GachaEnded)
	if res.Error != nil {
		return changed, res.Error
	}
	changed += res.RowsAffected

	return changed, nil
}
