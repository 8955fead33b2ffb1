package repository

import (
	"venus_handbook_backend/internal/model"

	"gorm.io/gorm"
)

type GuideRepository struct {
	DB *gorm.DB
}

func NewGuideRepository(db *gorm.DB) *GuideRepository {
	return &GuideRepository{DB: db}
}

// ListPublished 已发布攻略，按更新时间倒序
func (r *GuideRepository) ListPublished() ([]model.Guide, error) {
	var gs []model.Guide
	err := r.DB.Where("is_published = ?", true).Order("updated_at desc").Find(&gs).Error
	return gs, err
}

// ListAll 全量（含未发布），供编辑后台使用
func (r *GuideRepository) ListAll() ([]model.Guide, error) {
	var gs []model.Guide
	err := r.DB.Order("updated_at desc").Find(&gs).Error
	return gs, err
}

func (r *GuideRepository) FindByID(id uint) (*model.Guide, error) {
	var g model.Guide
	err := r.DB.First(&g, id).Error
	return &g, err
}

func (r *GuideRepository) FindBySlug(slug string) (*model.Guide, error) {
	var g model.Guide
	err := r.DB.Where("slug = ?", slug).First(&g).Error
	return &g, err
}

func (r *GuideRepository) Create(g *model.Guide) error {
	return r.DB.Create(g).Error
}

func (r *GuideRepository) Update(g *model.Guide) error {
	return r.DB.Save(g).Error
}

func (r *GuideRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Guide{}, id).Error
}
