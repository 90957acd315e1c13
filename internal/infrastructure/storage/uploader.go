// Package storage sube imágenes a la plataforma externa mediante su endpoint de subida sin firma
// (multipart con file, upload_preset y folder; respuesta JSON con secure_url).
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/inventario-movimientos/internal/application/ports"
)

const responseBodyReadLimit int64 = 1024

var _ ports.ImageStorage = (*Uploader)(nil)

// Uploader implementa ports.ImageStorage.
type Uploader struct {
	httpClient *http.Client
	uploadURL  string
	preset     string
}

// Option configura el uploader.
type Option func(*Uploader)

// WithHTTPClient reemplaza el cliente HTTP por defecto.
func WithHTTPClient(client *http.Client) Option {
	return func(u *Uploader) {
		if client != nil {
			u.httpClient = client
		}
	}
}

// NewUploader construye el uploader. uploadURL es obligatorio.
func NewUploader(uploadURL, preset string, opts ...Option) (*Uploader, error) {
	uploadURL = strings.TrimSpace(uploadURL)
	if uploadURL == "" {
		return nil, errors.New("storage: upload url requerida")
	}
	u := &Uploader{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		uploadURL:  uploadURL,
		preset:     strings.TrimSpace(preset),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(u)
		}
	}
	return u, nil
}

// Upload envía la imagen y devuelve la URL pública (secure_url).
func (u *Uploader) Upload(ctx context.Context, folder, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("storage: archivo vacío")
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("storage: crear parte file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("storage: escribir archivo: %w", err)
	}
	if u.preset != "" {
		_ = w.WriteField("upload_preset", u.preset)
	}
	if folder != "" {
		_ = w.WriteField("folder", folder)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("storage: cerrar multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("storage: construir request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage: subir: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return "", fmt.Errorf("storage: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("storage: decodificar respuesta: %w", err)
	}
	if out.SecureURL == "" {
		return "", errors.New("storage: respuesta sin secure_url")
	}
	return out.SecureURL, nil
}
