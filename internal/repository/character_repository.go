package repository

import (
	"venus_handbook_backend/internal/model"

	"gorm.io/gorm"
)

type CharacterRepository struct {
	DB *gorm.DB
}

func NewCharacterRepository(db *gorm.DB) *CharacterRepository {
	return &CharacterRepository{DB: db}
}

// ListAll 加载完整角色目录，展示顺序优先，其次按更新时间倒序（"newest" 即该顺序）
func (r *CharacterRepository) ListAll() ([]model.Character, error) {
	var cs []model.Character
	err := r.DB.Order("`order` asc, updated_at desc").Find(&cs).Error
	return cs, err
}

func (r *CharacterRepository) FindByID(id uint) (*model.Character, error) {
	var c model.Character
	err := r.DB.First(&c, id).Error
	return &c, err
}

func (r *CharacterRepository) Create(c *model.Character) error {
	return r.DB.Create(c).Error
}

func (r *CharacterRepository) BatchCreate(cs []model.Character) error {
	return r.DB.Create(&cs).Error
}

func (r *CharacterRepository) Update(c *model.Character) error {
	return r.DB.Save(c).Error
}

func (r *CharacterRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Character{}, id).Error
}
