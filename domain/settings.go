package domain

import "context"

// Settings is the singleton system configuration row, cached under a
// dedicated key and invalidated on update.
type Settings struct {
	RegistrationOpen bool  `json:"registration_open"`
	MaxPostLength    int64 `json:"max_post_length"`
}

// DefaultMaxPostLength applies when the settings row has no explicit limit.
const DefaultMaxPostLength = 2000

// SettingsRepository defines the contract for the settings singleton.
type SettingsRepository interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, s Settings) error
}

// SettingsProvider serves settings cache-aside and invalidates on update.
type SettingsProvider interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, s Settings) error
}
