package response

import "github.com/pulseapp/pulse/domain"

type Profile struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Username       string `json:"username"`
	Bio            string `json:"bio"`
	AvatarURL      string `json:"avatar_url"`
	FollowersCount int64  `json:"followers_count"`
	FollowingCount int64  `json:"following_count"`
}

// NewProfileFromDomain: Domain -> Response
func NewProfileFromDomain(p *domain.Profile) *Profile {
	if p == nil {
		return nil
	}
	return &Profile{
		ID:             p.ID,
		Name:           p.Name,
		Username:       p.Username,
		Bio:            p.Bio,
		AvatarURL:      p.AvatarURL,
		FollowersCount: p.FollowersCount,
		FollowingCount: p.FollowingCount,
	}
}

func NewProfilesFromDomain(list []domain.Profile) []Profile {
	out := make([]Profile, len(list))
	for i := range list {
		out[i] = *NewProfileFromDomain(&list[i])
	}
	return out
}
