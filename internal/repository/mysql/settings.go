package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pulseapp/pulse/domain"
	"github.com/pulseapp/pulse/internal/repository/mysql/model"
)

const settingsRowID = 1

type settingsRepository struct {
	DB *gorm.DB
}

var _ domain.SettingsRepository = (*settingsRepository)(nil)

func NewSettingsRepository(db *gorm.DB) *settingsRepository {
	return &settingsRepository{db}
}

func (m *settingsRepository) Get(ctx context.Context) (domain.Settings, error) {
	var s model.Settings
	err := m.DB.WithContext(ctx).First(&s, "id = ?", settingsRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// no explicit row yet, serve defaults
		def := model.Settings{RegistrationOpen: true}
		return def.ToDomain(), nil
	}
	if err != nil {
		return domain.Settings{}, err
	}
	return s.ToDomain(), nil
}

func (m *settingsRepository) Update(ctx context.Context, s domain.Settings) error {
	row := model.Settings{
		ID:               settingsRowID,
		RegistrationOpen: s.RegistrationOpen,
		MaxPostLength:    s.MaxPostLength,
	}
	return m.DB.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
}
