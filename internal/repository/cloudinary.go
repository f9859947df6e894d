// Package repository adapts the Cloudinary media host into a character
// record store. Structured fields ride in the asset's context metadata as a
// '|'-delimited key=value string; tags ride as a comma-joined tag list. The
// asset's public ID is the character's normalized lookup key.
package repository

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"roleplay-chat/backend/internal/models"
	"roleplay-chat/backend/pkg/config"
	apperrors "roleplay-chat/backend/pkg/errors"
	"roleplay-chat/backend/pkg/logger"
	"roleplay-chat/backend/pkg/observability"
)

// MaxImageBytes is the portrait upload ceiling
const MaxImageBytes = 10 << 20 // 10 MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Cloudinary talks to the media host's search, admin and upload APIs
type Cloudinary struct {
	cloudName       string
	apiKey          string
	apiSecret       string
	uploadPreset    string
	dataFolder      string
	baseURL         string
	contextValueMax int
	httpClient      *http.Client
	log             *logger.Logger
	metrics         *observability.Metrics
}

// NewCloudinary creates the adapter from configuration. The API secret is
// passed separately because it may come from Vault rather than the
// environment.
func NewCloudinary(cfg *config.Config, apiSecret string, log *logger.Logger, metrics *observability.Metrics) *Cloudinary {
	return &Cloudinary{
		cloudName:       cfg.Cloudinary.CloudName,
		apiKey:          cfg.Cloudinary.APIKey,
		apiSecret:       apiSecret,
		uploadPreset:    cfg.Cloudinary.UploadPreset,
		dataFolder:      cfg.Cloudinary.DataFolder,
		baseURL:         cfg.Cloudinary.BaseURL,
		contextValueMax: cfg.Uploads.ContextValueMax,
		httpClient:      &http.Client{Timeout: 30 * time.Second},
		log:             log,
		metrics:         metrics,
	}
}

// resource is the host's asset shape, narrowed to the fields the adapter reads
type resource struct {
	Filename  string   `json:"filename"`
	PublicID  string   `json:"public_id"`
	SecureURL string   `json:"secure_url"`
	Tags      []string `json:"tags"`
	Context   struct {
		Custom map[string]string `json:"custom"`
	} `json:"context"`
}

type searchResponse struct {
	Resources []resource `json:"resources"`
}

// List requests all character assets from the host: images in either the
// root folder or the data folder.
func (c *Cloudinary) List(ctx context.Context) ([]models.CharacterSummary, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	expression := fmt.Sprintf(`resource_type:image AND (folder="" OR folder:%s)`, c.dataFolder)
	body, err := json.Marshal(map[string]string{"expression": expression})
	if err != nil {
		return nil, fmt.Errorf("error marshaling search request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/resources/search", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error creating search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.basicAuth())

	respBody, status, err := c.do(req, "list")
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, apperrors.NewUpstreamError(status, "character host search failed")
	}

	var search searchResponse
	if err := json.Unmarshal(respBody, &search); err != nil {
		return nil, fmt.Errorf("error unmarshaling search response: %w", err)
	}

	summaries := make([]models.CharacterSummary, 0, len(search.Resources))
	for _, res := range search.Resources {
		summary := models.CharacterSummary{
			Name:     res.Filename,
			ImageURL: res.SecureURL,
			Bio:      res.Context.Custom[keyBio],
			Tags:     res.Tags,
		}
		if summary.Tags == nil {
			summary.Tags = []string{}
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// Get fetches one character by lookup key. The key is normalized first, so
// callers may pass either a display name or an existing key.
func (c *Cloudinary) Get(ctx context.Context, lookupKey string) (*models.Character, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	slug := NormalizeLookupKey(lookupKey)

	url := fmt.Sprintf("%s/%s/resources/image/upload/%s", c.baseURL, c.cloudName, slug)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating resource request: %w", err)
	}
	req.Header.Set("Authorization", c.basicAuth())

	respBody, status, err := c.do(req, "get")
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		c.log.Warn("character lookup miss", "slug", slug, "status", status)
		return nil, apperrors.NewNotFoundError("character not found")
	}

	var res resource
	if err := json.Unmarshal(respBody, &res); err != nil {
		return nil, fmt.Errorf("error unmarshaling resource: %w", err)
	}

	custom := res.Context.Custom

	name := custom[keyName]
	if name == "" {
		name = TitleCaseLookupKey(slug)
	}

	character := &models.Character{
		Name:           name,
		URLName:        slug,
		ImageURL:       res.SecureURL,
		Bio:            StripBioHTML(custom[keyBio]),
		Scenario:       custom[keyScenario],
		Personality:    custom[keyPersonality],
		FirstMessage:   custom[keyFirstMessage],
		ExampleDialogs: custom[keyExampleDialogs],
		Tags:           res.Tags,
	}
	if character.Tags == nil {
		character.Tags = []string{}
	}

	return character, nil
}

// Create uploads a portrait with the character fields encoded as context
// metadata. The normalized name becomes the asset's public ID.
func (c *Cloudinary) Create(ctx context.Context, image models.ImageUpload, fields models.CharacterFields) (*models.Character, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}
	if err := validateImage(image); err != nil {
		return nil, err
	}

	slug := NormalizeLookupKey(fields.Name)

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)

	part, err := writer.CreateFormFile("file", image.Filename)
	if err != nil {
		return nil, fmt.Errorf("error building upload form: %w", err)
	}
	if _, err := part.Write(image.Data); err != nil {
		return nil, fmt.Errorf("error building upload form: %w", err)
	}

	writer.WriteField("upload_preset", c.uploadPreset)
	writer.WriteField("public_id", slug)
	writer.WriteField("context", EncodeContext(fields, c.contextValueMax))
	if len(fields.Tags) > 0 {
		writer.WriteField("tags", strings.Join(fields.Tags, ","))
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("error building upload form: %w", err)
	}

	url := fmt.Sprintf("%s/%s/image/upload", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &form)
	if err != nil {
		return nil, fmt.Errorf("error creating upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	if c.metrics != nil {
		c.metrics.UploadBytes.Observe(float64(len(image.Data)))
	}

	respBody, status, err := c.do(req, "create")
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		c.log.Error("character upload rejected", "slug", slug, "status", status, "body", string(respBody))
		return nil, apperrors.NewUpstreamError(status, "character upload failed")
	}

	var res resource
	if err := json.Unmarshal(respBody, &res); err != nil {
		return nil, fmt.Errorf("error unmarshaling upload response: %w", err)
	}

	character := &models.Character{
		Name:           fields.Name,
		URLName:        slug,
		ImageURL:       res.SecureURL,
		Bio:            CleanContextValue(fields.Bio, c.contextValueMax),
		Scenario:       CleanContextValue(fields.Scenario, c.contextValueMax),
		Personality:    CleanContextValue(fields.Personality, c.contextValueMax),
		FirstMessage:   CleanContextValue(fields.FirstMessage, c.contextValueMax),
		ExampleDialogs: CleanContextValue(fields.ExampleDialogs, c.contextValueMax),
		Tags:           fields.Tags,
	}
	if character.Tags == nil {
		character.Tags = []string{}
	}

	return character, nil
}

// Ping probes the host's search endpoint for the health checker
func (c *Cloudinary) Ping(ctx context.Context) error {
	if err := c.checkCredentials(); err != nil {
		return err
	}
	_, err := c.List(ctx)
	return err
}

func (c *Cloudinary) checkCredentials() error {
	if c.cloudName == "" || c.apiKey == "" || c.apiSecret == "" {
		return apperrors.NewConfigurationError("missing character host credentials")
	}
	return nil
}

func (c *Cloudinary) basicAuth() string {
	credentials := base64.StdEncoding.EncodeToString([]byte(c.apiKey + ":" + c.apiSecret))
	return "Basic " + credentials
}

// do executes a request and returns the body and status, recording metrics
func (c *Cloudinary) do(req *http.Request, operation string) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(operation, "error")
		return nil, 0, apperrors.NewUpstreamError(0, fmt.Sprintf("character host unreachable: %v", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(operation, "error")
		return nil, 0, fmt.Errorf("error reading host response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.observe(operation, "success")
	} else {
		c.observe(operation, "error")
	}

	return body, resp.StatusCode, nil
}

func (c *Cloudinary) observe(operation, outcome string) {
	if c.metrics != nil {
		c.metrics.CharacterFetch.WithLabelValues(operation, outcome).Inc()
	}
}

func validateImage(image models.ImageUpload) error {
	if int64(len(image.Data)) > MaxImageBytes {
		return apperrors.NewValidationError("image", "image exceeds the 10 MB size limit")
	}
	if !allowedImageTypes[image.ContentType] {
		return apperrors.NewValidationError("image", "image must be JPEG, PNG, GIF or WebP")
	}
	return nil
}
