package model

import "time"

// Mission 任务条目
// swagger:model Mission
type Mission struct {
	BaseModel
	Title       string     `gorm:"size:255;not null" json:"title"`
	MissionType string     `gorm:"size:50" json:"missionType"` // daily, weekly, event, main
	Status      string     `gorm:"size:20;default:'open'" json:"status"` // open, closed
	Description string     `gorm:"type:text" json:"description"`
	Reward      string     `gorm:"size:255" json:"reward"`
	IsLimited   bool       `gorm:"default:false" json:"isLimited"`
	StartAt     *time.Time `json:"startAt,omitempty"`
	EndAt       *time.Time `json:"endAt,omitempty"`
	Tags        string     `gorm:"size:500;default:''" json:"tags"`
}

func (Mission) TableName() string {
	return "missions"
}
