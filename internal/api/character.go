package api

import (
	"io"
	"net/http"
	"strings"

	"roleplay-chat/backend/internal/models"
	"roleplay-chat/backend/internal/repository"
	"roleplay-chat/backend/internal/service"
	apperrors "roleplay-chat/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

// CharacterHandler serves the character directory, detail and create routes
type CharacterHandler struct {
	service *service.CharacterService
}

// NewCharacterHandler creates a character handler
func NewCharacterHandler(service *service.CharacterService) *CharacterHandler {
	return &CharacterHandler{service: service}
}

// List handles GET /characters
func (h *CharacterHandler) List(c *gin.Context) {
	characters, err := h.service.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"characters": characters})
}

// Get handles GET /characters/:name
func (h *CharacterHandler) Get(c *gin.Context) {
	character, err := h.service.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"character": character})
}

// Create handles POST /characters as a multipart form: the portrait under
// "image" plus the structured text fields.
func (h *CharacterHandler) Create(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(repository.MaxImageBytes); err != nil {
		c.Error(apperrors.NewValidationError("", "invalid multipart form"))
		return
	}

	fields := models.CharacterFields{
		Name:           c.PostForm("name"),
		Bio:            c.PostForm("bio"),
		Scenario:       c.PostForm("scenario"),
		Personality:    c.PostForm("personality"),
		FirstMessage:   c.PostForm("first_message"),
		ExampleDialogs: c.PostForm("example_dialogs"),
		Tags:           splitTags(c.PostForm("tags")),
	}

	image, err := readImage(c)
	if err != nil {
		c.Error(err)
		return
	}

	character, err := h.service.Create(c.Request.Context(), image, fields)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"character": character})
}

func readImage(c *gin.Context) (models.ImageUpload, error) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		return models.ImageUpload{}, apperrors.NewValidationError("image", "character portrait is required")
	}
	defer file.Close()

	// Read one byte past the ceiling so the size check in the adapter can
	// reject oversized uploads without buffering them whole.
	data, err := io.ReadAll(io.LimitReader(file, repository.MaxImageBytes+1))
	if err != nil {
		return models.ImageUpload{}, apperrors.NewValidationError("image", "failed to read uploaded image")
	}

	return models.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
