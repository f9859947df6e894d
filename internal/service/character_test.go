package service

import (
	"context"
	"testing"

	"roleplay-chat/backend/internal/models"
	apperrors "roleplay-chat/backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharacterCreateRequiresName(t *testing.T) {
	svc := NewCharacterService(&fakeStore{}, testLogger())

	_, err := svc.Create(context.Background(),
		models.ImageUpload{Filename: "a.png", ContentType: "image/png", Data: []byte("x")},
		models.CharacterFields{})

	require.Error(t, err)
	appErr := apperrors.FromError(err)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Equal(t, map[string]string{"field": "name"}, appErr.Details)
}

func TestCharacterCreateRequiresImage(t *testing.T) {
	svc := NewCharacterService(&fakeStore{}, testLogger())

	_, err := svc.Create(context.Background(),
		models.ImageUpload{Filename: "a.png", ContentType: "image/png"},
		models.CharacterFields{Name: "Aria"})

	require.Error(t, err)
	appErr := apperrors.FromError(err)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Equal(t, map[string]string{"field": "image"}, appErr.Details)
}

func TestCharacterGetPassesThrough(t *testing.T) {
	store := &fakeStore{characters: map[string]*models.Character{
		"aria": {Name: "Aria", URLName: "aria"},
	}}
	svc := NewCharacterService(store, testLogger())

	character, err := svc.Get(context.Background(), "aria")
	require.NoError(t, err)
	assert.Equal(t, "Aria", character.Name)
}
