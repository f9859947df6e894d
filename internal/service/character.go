package service

import (
	"context"

	"roleplay-chat/backend/internal/models"
	apperrors "roleplay-chat/backend/pkg/errors"
	"roleplay-chat/backend/pkg/logger"
)

// CharacterStore is the repository contract the service depends on
type CharacterStore interface {
	List(ctx context.Context) ([]models.CharacterSummary, error)
	Get(ctx context.Context, lookupKey string) (*models.Character, error)
	Create(ctx context.Context, image models.ImageUpload, fields models.CharacterFields) (*models.Character, error)
}

// CharacterService mediates between the API layer and the character store
type CharacterService struct {
	store CharacterStore
	log   *logger.Logger
}

// NewCharacterService creates a character service over the given store
func NewCharacterService(store CharacterStore, log *logger.Logger) *CharacterService {
	return &CharacterService{
		store: store,
		log:   log,
	}
}

// List returns the character directory. Records are fetched fresh on every
// call; the host is the only source of truth.
func (s *CharacterService) List(ctx context.Context) ([]models.CharacterSummary, error) {
	return s.store.List(ctx)
}

// Get returns one character by lookup key
func (s *CharacterService) Get(ctx context.Context, lookupKey string) (*models.Character, error) {
	return s.store.Get(ctx, lookupKey)
}

// Create validates the submitted fields and persists a new character
func (s *CharacterService) Create(ctx context.Context, image models.ImageUpload, fields models.CharacterFields) (*models.Character, error) {
	if fields.Name == "" {
		return nil, apperrors.NewValidationError("name", "character name is required")
	}
	if len(image.Data) == 0 {
		return nil, apperrors.NewValidationError("image", "character portrait is required")
	}

	character, err := s.store.Create(ctx, image, fields)
	if err != nil {
		return nil, err
	}

	s.log.Info("character created", "url_name", character.URLName)
	return character, nil
}
