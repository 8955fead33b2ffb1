package model

import "time"

// Character 游戏角色图鉴条目
// swagger:model Character
type Character struct {
	BaseModel
	Name      string     `gorm:"size:100;not null" json:"name"`
	NameEn    string     `gorm:"size:100" json:"nameEn"`
	CV        string     `gorm:"size:100" json:"cv"`
	Birthday  *time.Time `json:"birthday,omitempty"`
	Height    int        `gorm:"default:0" json:"height"` // 厘米
	Hobby     string     `gorm:"size:255" json:"hobby"`
	Bio       string     `gorm:"type:text" json:"bio"`
	AvatarURL string     `gorm:"size:255" json:"avatarUrl"`
	Tags      string     `gorm:"size:500;default:''" json:"tags"` // 逗号分隔
	Order     int        `gorm:"default:0" json:"order"`
}

func (Character) TableName() string {
	return "characters"
}
