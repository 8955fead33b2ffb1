package model

import "time"

// Swimsuit 泳装图鉴条目
// swagger:model Swimsuit
type Swimsuit struct {
	BaseModel
	Name           string     `gorm:"size:255;not null" json:"name"`
	CharacterID    uint       `gorm:"index;type:bigint unsigned" json:"characterId"`
	Character      *Character `gorm:"foreignKey:CharacterID" json:"character,omitempty"`
	Rarity         string     `gorm:"size:10;not null" json:"rarity"`  // SSR, SR, R, N
	SuitType       string     `gorm:"size:10" json:"suitType"`         // POW, TEC, STM
	Source         string     `gorm:"size:50" json:"source"`           // gacha, event, shop, login
	Pow            int        `gorm:"default:0" json:"pow"`
	Tec            int        `gorm:"default:0" json:"tec"`
	Stm            int        `gorm:"default:0" json:"stm"`
	Apl            int        `gorm:"default:0" json:"apl"`
	HasMalfunction bool       `gorm:"default:false" json:"hasMalfunction"`
	ReleaseDate    *time.Time `json:"releaseDate,omitempty"`
	ImageURL       string     `gorm:"size:255" json:"imageUrl"`
	Tags           string     `gorm:"size:500;default:''" json:"tags"` // 逗号分隔
}

func (Swimsuit) TableName() string {
	return "swimsuits"
}
