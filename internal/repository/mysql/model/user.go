package model

import (
	"time"

	"github.com/pulseapp/pulse/domain"
)

type User struct {
	ID             int64     `gorm:"primaryKey;autoIncrement:false"`
	Name           string    `gorm:"type:varchar(45);not null"`
	Username       string    `gorm:"type:varchar(45);uniqueIndex;not null"`
	Password       string    `gorm:"type:varchar(100);not null"`
	Bio            string    `gorm:"type:varchar(255)"`
	AvatarURL      string    `gorm:"column:avatar_url;type:varchar(255)"`
	FollowersCount int64     `gorm:"default:0"`
	FollowingCount int64     `gorm:"default:0"`
	IsBanned       bool      `gorm:"default:false"`
	CreatedAt      time.Time `gorm:"type:datetime"`
	UpdatedAt      time.Time `gorm:"type:datetime"`
}

func (User) TableName() string {
	return "users"
}

func (m *User) ToDomain() domain.User {
	return domain.User{
		ID:             m.ID,
		Name:           m.Name,
		Username:       m.Username,
		Password:       m.Password,
		Bio:            m.Bio,
		AvatarURL:      m.AvatarURL,
		FollowersCount: m.FollowersCount,
		FollowingCount: m.FollowingCount,
		IsBanned:       m.IsBanned,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func NewUserFromDomain(u *domain.User) *User {
	return &User{
		ID:             u.ID,
		Name:           u.Name,
		Username:       u.Username,
		Password:       u.Password,
		Bio:            u.Bio,
		AvatarURL:      u.AvatarURL,
		FollowersCount: u.FollowersCount,
		FollowingCount: u.FollowingCount,
		IsBanned:       u.IsBanned,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
