package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Cloudinary does unsigned uploads with an upload preset:
// POST {api}/{cloud}/image/upload, fields "file" and "upload_preset".
type Cloudinary struct {
	Endpoint string
	Preset   string
	client   *http.Client
}

type CloudinaryConfig struct {
	APIBase   string
	CloudName string
	Preset    string
	Timeout   time.Duration
}

func NewCloudinary(cfg CloudinaryConfig) (*Cloudinary, error) {
	if cfg.CloudName == "" || cfg.Preset == "" {
		return nil, fmt.Errorf("cloudinary config missing: CLOUD_NAME and UPLOAD_PRESET required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}
	return &Cloudinary{
		Endpoint: fmt.Sprintf("%s/%s/image/upload", strings.TrimRight(cfg.APIBase, "/"), cfg.CloudName),
		Preset:   cfg.Preset,
		client:   &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type cloudinaryResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Cloudinary) Upload(ctx context.Context, f File) (Asset, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", f.Name)
	if err != nil {
		return Asset{}, err
	}
	if _, err := part.Write(f.Data); err != nil {
		return Asset{}, err
	}
	if err := mw.WriteField("upload_preset", c.Preset); err != nil {
		return Asset{}, err
	}
	if err := mw.Close(); err != nil {
		return Asset{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, &body)
	if err != nil {
		return Asset{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return Asset{}, fmt.Errorf("cloudinary request: %w", err)
	}
	defer resp.Body.Close()

	var out cloudinaryResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return Asset{}, fmt.Errorf("cloudinary response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return Asset{}, fmt.Errorf("cloudinary status %d: %s", resp.StatusCode, out.Error.Message)
	}
	return Asset{URL: out.SecureURL, PublicID: out.PublicID}, nil
}

func (c *Cloudinary) String() string { return "cloudinary(" + c.Endpoint + ")" }
