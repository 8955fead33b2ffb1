package repository

import (
	"venus_handbook_backend/internal/model"

	"gorm.io/gorm"
)

type MissionRepository struct {
	DB *gorm.DB
}

func NewMissionRepository(db *gorm.DB) *MissionRepository {
	return &MissionRepository{DB: db}
}

func (r *MissionRepository) ListAll() ([]model.Mission, error) {
	var ms []model.Mission
	err := r.DB.Order("updated_at desc").Find(&ms).Error
	return ms, err
}

func (r *MissionRepository) FindByID(id uint) (*model.Mission, error) {
	var m model.Mission
	err := r.DB.First(&m, id).Error
	return &m, err
}

func (r *MissionRepository) Create(m *model.Mission) error {
	return r.DB.Create(m).Error
}

func (r *MissionRepository) Update(m *model.Mission) error {
	return r.DB.Save(m).Error
}

func (r *MissionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Mission{}, id).Error
}
