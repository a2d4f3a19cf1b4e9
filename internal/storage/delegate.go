package storage

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

// DelegateStorage forwards images to the external upload service.
// Contract: POST {base}/upload with a multipart "file" field; the service
// answers {"url": ...} on success or an error body with a non-2xx status.
type DelegateStorage struct {
	baseURL string
	client  *http.Client
}

func NewDelegateStorage(baseURL string, timeout time.Duration) *DelegateStorage {
	return &DelegateStorage{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (d *DelegateStorage) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	_, err = io.Copy(part, file)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	err = writer.Close()
	if err != nil {
		return "", fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/upload", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := d.client.Do(req)
	if err != nil {
		return "", &UploadError{StatusCode: 0, Details: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &UploadError{StatusCode: resp.StatusCode, Details: strings.TrimSpace(string(detail))}
	}

	var result struct {
		URL   string `json:"url"`
		Error string `json:"error"`
	}
	err = json.NewDecoder(resp.Body).Decode(&result)
	if err != nil {
		return "", &UploadError{StatusCode: resp.StatusCode, Details: "invalid upload service response"}
	}

	if result.Error != "" || result.URL == "" {
		return "", &UploadError{StatusCode: resp.StatusCode, Details: result.Error}
	}

	return result.URL, nil
}
