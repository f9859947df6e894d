package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"roleplay-chat/backend/internal/models"
	apperrors "roleplay-chat/backend/pkg/errors"
	"roleplay-chat/backend/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const settingsKeyPrefix = "settings:"

// SettingsService persists per-user provider settings in redis, one record
// per user holding every provider's entry plus the active selector. Saving
// for one provider never clobbers another provider's saved configuration.
type SettingsService struct {
	client *redis.Client
	log    *logger.Logger
}

// NewSettingsService creates a settings service over the given redis client
func NewSettingsService(client *redis.Client, log *logger.Logger) *SettingsService {
	return &SettingsService{
		client: client,
		log:    log,
	}
}

// Save validates and persists settings for one provider and marks it
// active. Validation names the first missing field; all fields are trimmed
// before the blank check and stored trimmed.
func (s *SettingsService) Save(ctx context.Context, ownerID string, kind models.ProviderKind, settings models.ProviderSettings) error {
	settings.Model = strings.TrimSpace(settings.Model)
	settings.APIKey = strings.TrimSpace(settings.APIKey)
	settings.APIURL = strings.TrimSpace(settings.APIURL)
	settings.CustomPrompt = strings.TrimSpace(settings.CustomPrompt)

	switch kind {
	case models.ProviderClaude, models.ProviderOpenAI, models.ProviderCustom:
	default:
		return apperrors.NewValidationError("provider", "provider must be one of claude, openai, custom")
	}

	if settings.Model == "" {
		return apperrors.NewValidationError("model", "model is required")
	}
	if settings.APIKey == "" {
		return apperrors.NewValidationError("apiKey", "API key is required")
	}
	if kind == models.ProviderCustom && settings.APIURL == "" {
		return apperrors.NewValidationError("apiUrl", "endpoint URL is required")
	}
	if settings.CustomPrompt == "" {
		return apperrors.NewValidationError("customPrompt", "custom instruction text is required")
	}

	record, err := s.loadRecord(ctx, ownerID)
	if err != nil {
		return err
	}

	record.Providers[kind] = settings
	record.Active = kind

	payload, err := json.Marshal(record)
	if err != nil {
		return apperrors.NewPersistenceError("failed to serialize settings")
	}

	if err := s.client.Set(ctx, settingsKeyPrefix+ownerID, payload, 0).Err(); err != nil {
		s.log.LogError(err, "settings write failed", "owner", ownerID)
		return apperrors.NewPersistenceError("failed to save settings")
	}

	s.log.Info("provider settings saved", "owner", ownerID, "provider", string(kind))
	return nil
}

// LoadActive returns the active provider kind and its settings, or an
// empty result when nothing has been saved yet.
func (s *SettingsService) LoadActive(ctx context.Context, ownerID string) (models.ProviderKind, *models.ProviderSettings, error) {
	record, err := s.loadRecord(ctx, ownerID)
	if err != nil {
		return "", nil, err
	}

	if record.Active == "" {
		return "", nil, nil
	}

	settings, ok := record.Providers[record.Active]
	if !ok {
		return "", nil, nil
	}

	return record.Active, &settings, nil
}

// Ping reports whether the settings store is reachable
func (s *SettingsService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *SettingsService) loadRecord(ctx context.Context, ownerID string) (*models.SettingsRecord, error) {
	record := &models.SettingsRecord{
		Providers: make(map[models.ProviderKind]models.ProviderSettings),
	}

	payload, err := s.client.Get(ctx, settingsKeyPrefix+ownerID).Bytes()
	if errors.Is(err, redis.Nil) {
		return record, nil
	}
	if err != nil {
		s.log.LogError(err, "settings read failed", "owner", ownerID)
		return nil, apperrors.NewPersistenceError("failed to load settings")
	}

	if err := json.Unmarshal(payload, record); err != nil {
		s.log.LogError(err, "settings record corrupt", "owner", ownerID)
		return nil, apperrors.NewPersistenceError("stored settings are unreadable")
	}
	if record.Providers == nil {
		record.Providers = make(map[models.ProviderKind]models.ProviderSettings)
	}

	return record, nil
}
