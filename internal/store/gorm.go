package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/krizhnx/internyx/internal/model"
	"github.com/krizhnx/internyx/pkg/config"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// pgUndefinedTable is the SQLSTATE reported when a backing relation is
// missing, i.e. the store has not been provisioned yet
const pgUndefinedTable = "42P01"

// Store is the gorm-backed implementation of the persistence gateway
type Store struct {
	db *gorm.DB
}

// Open connects to PostgreSQL using the configuration and runs migrations
func Open(cfg *config.Config) (*Store, error) {
	logLevel := logger.Error
	if cfg.Server.Env == "development" {
		logLevel = logger.Info
	}

	pgConfig := postgres.Config{
		DSN:                  cfg.DB.GetDSN(),
		PreferSimpleProtocol: true, // Disables implicit prepared statement usage
	}

	db, err := gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	s := &Store{db: db}
	if err := s.Migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// New wraps an already-open gorm connection; used by tests with sqlite
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate runs the schema migrations
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&model.Application{}, &model.Tag{}, &model.Preference{}); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	return nil
}

// gatewayError maps driver errors onto the engine's error taxonomy
func gatewayError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable {
		return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	return err
}

// ListApplications returns all records for the owner ordered by creation
// time, newest first
func (s *Store) ListApplications(ctx context.Context, ownerID string) ([]model.Application, error) {
	var apps []model.Application
	result := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&apps)
	if result.Error != nil {
		return nil, gatewayError(result.Error)
	}
	return apps, nil
}

// GetApplication returns one record by id, scoped to the owner
func (s *Store) GetApplication(ctx context.Context, ownerID string, id uint) (*model.Application, error) {
	var app model.Application
	result := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&app)
	if result.Error != nil {
		return nil, gatewayError(result.Error)
	}
	return &app, nil
}

// CreateApplication persists a new record; the store assigns the id
func (s *Store) CreateApplication(ctx context.Context, app *model.Application) error {
	return gatewayError(s.db.WithContext(ctx).Create(app).Error)
}

// UpdateApplication persists a full record, scoped to its owner
func (s *Store) UpdateApplication(ctx context.Context, app *model.Application) error {
	result := s.db.WithContext(ctx).
		Where("owner_id = ?", app.OwnerID).
		Save(app)
	if result.Error != nil {
		return gatewayError(result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// UpdateApplicationTags rewrites only the tag set of one record
func (s *Store) UpdateApplicationTags(ctx context.Context, ownerID string, id uint, tags []string) error {
	result := s.db.WithContext(ctx).
		Model(&model.Application{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("tags", tags)
	if result.Error != nil {
		return gatewayError(result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// DeleteApplication removes one record, scoped to the owner
func (s *Store) DeleteApplication(ctx context.Context, ownerID string, id uint) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.Application{})
	if result.Error != nil {
		return gatewayError(result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ListTags returns the owner's tags ordered by name
func (s *Store) ListTags(ctx context.Context, ownerID string) ([]model.Tag, error) {
	var tags []model.Tag
	result := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name").
		Find(&tags)
	if result.Error != nil {
		return nil, gatewayError(result.Error)
	}
	return tags, nil
}

// CreateTag persists a new tag
func (s *Store) CreateTag(ctx context.Context, tag *model.Tag) error {
	return gatewayError(s.db.WithContext(ctx).Create(tag).Error)
}

// DeleteTag removes one tag by name, scoped to the owner
func (s *Store) DeleteTag(ctx context.Context, ownerID, name string) error {
	result := s.db.WithContext(ctx).
		Where("name = ? AND owner_id = ?", name, ownerID).
		Delete(&model.Tag{})
	if result.Error != nil {
		return gatewayError(result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// GetPreference returns the owner's UI preferences, falling back to defaults
// when none are stored yet
func (s *Store) GetPreference(ctx context.Context, ownerID string) (*model.Preference, error) {
	var pref model.Preference
	result := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&pref)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return &model.Preference{
				OwnerID:     ownerID,
				PageSize:    model.DefaultPageSize,
				DefaultView: model.ViewCard,
			}, nil
		}
		return nil, gatewayError(result.Error)
	}
	return &pref, nil
}

// SavePreference persists the owner's UI preferences
func (s *Store) SavePreference(ctx context.Context, pref *model.Preference) error {
	var existing model.Preference
	result := s.db.WithContext(ctx).
		Where("owner_id = ?", pref.OwnerID).
		First(&existing)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return gatewayError(s.db.WithContext(ctx).Create(pref).Error)
		}
		return gatewayError(result.Error)
	}

	existing.PageSize = pref.PageSize
	existing.DefaultView = pref.DefaultView
	if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return gatewayError(err)
	}
	*pref = existing
	return nil
}
