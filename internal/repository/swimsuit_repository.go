package repository

import (
	"venus_handbook_backend/internal/model"

	"gorm.io/gorm"
)

type SwimsuitRepository struct {
	DB *gorm.DB
}

func NewSwimsuitRepository(db *gorm.DB) *SwimsuitRepository {
	return &SwimsuitRepository{DB: db}
}

// ListAll 加载完整泳装目录（含所属角色），按更新时间倒序
func (r *SwimsuitRepository) ListAll() ([]model.Swimsuit, error) {
	var ss []model.Swimsuit
	err := r.DB.Preload("Character").Order("updated_at desc").Find(&ss).Error
	return ss, err
}

func (r *SwimsuitRepository) FindByID(id uint) (*model.Swimsuit, error) {
	var s model.Swimsuit
	err := r.DB.Preload("Character").First(&s, id).Error
	return &s, err
}

func (r *SwimsuitRepository) ListByCharacter(characterID uint) ([]model.Swimsuit, error) {
	var ss []model.Swimsuit
	err := r.DB.Where("character_id = ?", characterID).Order("updated_at desc").Find(&ss).Error
	return ss, err
}

func (r *SwimsuitRepository) Create(s *model.Swimsuit) error {
	return r.DB.Create(s).Error
}

// BatchCreate 批量导入（Excel 导入管线使用）
func (r *SwimsuitRepository) BatchCreate(ss []model.Swimsuit) error {
	if len(ss) == 0 {
		return nil
	}
	return r.DB.CreateInBatches(ss, 100).Error
}

func (r *SwimsuitRepository) Update(s *model.Swimsuit) error {
	return r.DB.Save(s).Error
}

func (r *SwimsuitRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Swimsuit{}, id).Error
}
