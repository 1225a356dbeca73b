package user

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/pulseapp/pulse/domain"
	"github.com/pulseapp/pulse/internal/idgen"
)

type Service struct {
	userRepo domain.UserRepository
	profiles domain.ProfileProvider
	settings domain.SettingsProvider
	ids      *idgen.Generator

	jwtSecret []byte
	tokenTTL  time.Duration
}

var _ domain.UserUsecase = (*Service)(nil)

// NewService will create a new user service object
func NewService(
	userRepo domain.UserRepository,
	profiles domain.ProfileProvider,
	settings domain.SettingsProvider,
	ids *idgen.Generator,
	jwtSecret []byte,
	tokenTTL time.Duration,
) *Service {
	return &Service{
		userRepo:  userRepo,
		profiles:  profiles,
		settings:  settings,
		ids:       ids,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

func (s *Service) Register(ctx context.Context, name, username, password string) error {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return err
	}
	if !settings.RegistrationOpen {
		return domain.ErrForbidden
	}

	_, err = s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		return domain.ErrConflict
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u := &domain.User{
		ID:       s.ids.Next(),
		Name:     name,
		Username: username,
		Password: string(hashed),
	}
	return s.userRepo.Insert(ctx, u)
}

func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if u.IsBanned {
		return "", domain.ErrForbidden
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", domain.ErrBadParamInput
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *Service) GetProfile(ctx context.Context, userID int64) (domain.Profile, error) {
	return s.profiles.GetProfile(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, u *domain.User) error {
	current, err := s.userRepo.GetByID(ctx, u.ID)
	if err != nil {
		return err
	}

	if u.Name != "" {
		current.Name = u.Name
	}
	if u.Bio != "" {
		current.Bio = u.Bio
	}
	if u.AvatarURL != "" {
		current.AvatarURL = u.AvatarURL
	}

	if err := s.userRepo.Update(ctx, &current); err != nil {
		return err
	}
	// invalidate only after the row is committed
	s.profiles.Invalidate(ctx, u.ID)
	*u = current
	return nil
}
