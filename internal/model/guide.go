package model

// Guide 攻略文档：Markdown 正文，可附 PDF/图片资源。渲染由前端负责。
// swagger:model Guide
type Guide struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Slug        string `gorm:"size:255;uniqueIndex" json:"slug"`
	Category    string `gorm:"size:50" json:"category"` // beginner, festival, gacha, misc
	Body        string `gorm:"type:longtext" json:"body"`
	AssetURL    string `gorm:"size:255" json:"assetUrl"` // 附件（PDF 等）
	VideoURL    string `gorm:"size:255" json:"videoUrl"`
	ThumbURL    string `gorm:"size:255" json:"thumbUrl"`
	AuthorID    uint   `gorm:"index;type:bigint unsigned" json:"authorId"`
	IsPublished bool   `gorm:"default:false" json:"isPublished"`
	Tags        string `gorm:"size:500;default:''" json:"tags"`
}

func (Guide) TableName() string {
	return "guides"
}
