package model

import (
	"time"

	"github.com/pulseapp/pulse/domain"
)

// Settings singleton row, always id = 1.
type Settings struct {
	ID               int64     `gorm:"primaryKey;autoIncrement:false"`
	RegistrationOpen bool      `gorm:"default:true"`
	MaxPostLength    int64     `gorm:"default:0"`
	UpdatedAt        time.Time `gorm:"type:datetime"`
}

func (Settings) TableName() string {
	return "settings"
}

func (m *Settings) ToDomain() domain.Settings {
	s := domain.Settings{
		RegistrationOpen: m.RegistrationOpen,
		MaxPostLength:    m.MaxPostLength,
	}
	if s.MaxPostLength <= 0 {
		s.MaxPostLength = domain.DefaultMaxPostLength
	}
	return s
}
