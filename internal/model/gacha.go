package model

import "time"

const (
	GachaUpcoming = "upcoming"
	GachaActive   = "active"
	GachaEnded    = "ended"
)

// Gacha 卡池条目。Status 由后台任务按运营窗口刷新。
// swagger:model Gacha
type Gacha struct {
	BaseModel
	Name        string     `gorm:"size:255;not null" json:"name"`
	GachaType   string     `gorm:"size:50" json:"gachaType"` // trendy, nostalgic, birthday, collab
	Status      string     `gorm:"size:20;default:'upcoming'" json:"status"`
	StartAt     *time.Time `json:"startAt,omitempty"`
	EndAt       *time.Time `json:"endAt,omitempty"`
	HasStepUp   bool       `gorm:"default:false" json:"hasStepUp"`
	Description string     `gorm:"type:text" json:"description"`
	BannerURL   string     `gorm:"size:255" json:"bannerUrl"`
	Tags        string     `gorm:"size:500;default:''" json:"tags"`
}

func (Gacha) TableName() string {
	return "gachas"
}
