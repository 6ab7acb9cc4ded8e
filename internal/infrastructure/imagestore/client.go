// Package imagestore is the HTTP client for the external image microservice.
// The service is a black box: store a file, get back a path; delete by
// filename.
package imagestore

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

	"github.com/wardlink/hospital-system/internal/core/domain"
)

const requestTimeout = 15 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
	}
}

type uploadResponse struct {
	Path string `json:"path"`
}

// Upload posts the file as multipart form data and returns the
// store-relative path. A response without a usable path is an upload error.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("image upload: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("image upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("image upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/image/user", &body)
	if err != nil {
		return "", fmt.Errorf("image upload: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrImageUpload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", domain.ErrImageUpload, resp.StatusCode)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Path == "" {
		return "", domain.ErrImageUpload
	}
	return out.Path, nil
}

// Delete removes a previously uploaded file. The store signals failure with
// a non-2xx status or an empty/falsy body.
func (c *Client) Delete(ctx context.Context, filename string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/image/user/"+filename, nil)
	if err != nil {
		return fmt.Errorf("image delete: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrImageDelete, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", domain.ErrImageDelete, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return fmt.Errorf("image delete: %w", err)
	}
	switch strings.TrimSpace(string(raw)) {
	case "", "false", "null", "0":
		return domain.ErrImageDelete
	}
	return nil
}

// ResolveURL turns a store-relative path into the absolute URL persisted on
// user records.
func (c *Client) ResolveURL(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}
