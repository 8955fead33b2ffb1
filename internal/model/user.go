package model

import "time"

type UserRole string

const (
	Admin  UserRole = "admin"
	Editor UserRole = "editor"
	Member UserRole = "member"
)

// swagger:model User
type User struct {
	BaseModel
	Name       string     `gorm:"size:100;not null" json:"name"`
	Email      string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password   string     `gorm:"size:255;not null" json:"-"`
	Role       UserRole   `gorm:"size:20;default:'member'" json:"role"`
	AvatarURL  string     `gorm:"size:255" json:"avatarUrl"`
	LastSeenAt *time.Time `json:"lastSeenAt,omitempty"`
}

func (User) TableName() string {
	return "users"
}
