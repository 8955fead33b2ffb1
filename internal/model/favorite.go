package model

// 可收藏的条目类型
const (
	FavCharacter = "character"
	FavSwimsuit  = "swimsuit"
	FavGacha     = "gacha"
	FavGuide     = "guide"
	FavMission   = "mission"
	FavQuiz      = "quiz"
)

// Favorite 用户收藏，跨目录通用
// swagger:model Favorite
type Favorite struct {
	BaseModel
	UserID   uint   `gorm:"index:idx_fav_user_item,unique;type:bigint unsigned" json:"userId"`
	ItemType string `gorm:"index:idx_fav_user_item,unique;size:20;not null" json:"itemType"`
	ItemID   string `gorm:"index:idx_fav_user_item,unique;size:36;not null" json:"itemId"`
}

func (Favorite) TableName() string {
	return "favorites"
}
