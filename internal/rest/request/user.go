package request

type Register struct {
	Name     string `json:"name" binding:"required,max=50"`
	Username string `json:"username" binding:"required,username,min=3,max=30"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type Login struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfile struct {
	Name      string `json:"name" binding:"omitempty,max=50"`
	Bio       string `json:"bio" binding:"omitempty,max=200"`
	AvatarURL string `json:"avatar_url" binding:"omitempty,url"`
}
