package request

import "github.com/pulseapp/pulse/domain"

type Settings struct {
	RegistrationOpen bool  `json:"registration_open"`
	MaxPostLength    int64 `json:"max_post_length" binding:"omitempty,min=1,max=10000"`
}

func (r *Settings) ToDomain() domain.Settings {
	return domain.Settings{
		RegistrationOpen: r.RegistrationOpen,
		MaxPostLength:    r.MaxPostLength,
	}
}
