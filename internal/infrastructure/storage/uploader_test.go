package storage_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-movimientos/internal/infrastructure/storage"
)

func TestUpload_EnviaMultipartYDevuelveURL(t *testing.T) {
	var gotPreset, gotFolder, gotName string
	var gotData []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotPreset = r.FormValue("upload_preset")
		gotFolder = r.FormValue("folder")
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		gotName = hdr.Filename
		gotData, _ = io.ReadAll(f)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url":"https://img.example.com/qr/BIN-Q-01.png"}`))
	}))
	defer srv.Close()

	up, err := storage.NewUploader(srv.URL, "inventario", storage.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	url, err := up.Upload(context.Background(), "qr", "BIN-Q-01.png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/qr/BIN-Q-01.png", url)
	assert.Equal(t, "inventario", gotPreset)
	assert.Equal(t, "qr", gotFolder)
	assert.Equal(t, "BIN-Q-01.png", gotName)
	assert.Equal(t, []byte("png-bytes"), gotData)
}

func TestUpload_ErrorDelServidor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "preset inválido", http.StatusBadRequest)
	}))
	defer srv.Close()

	up, err := storage.NewUploader(srv.URL, "x")
	require.NoError(t, err)
	_, err = up.Upload(context.Background(), "", "a.png", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestUpload_RespuestaSinURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	up, err := storage.NewUploader(srv.URL, "")
	require.NoError(t, err)
	_, err = up.Upload(context.Background(), "", "a.png", []byte("x"))
	assert.Error(t, err)
}

func TestNewUploader_Validaciones(t *testing.T) {
	_, err := storage.NewUploader("  ", "p")
	assert.Error(t, err)

	up, err := storage.NewUploader("http://localhost", "p")
	require.NoError(t, err)
	_, err = up.Upload(context.Background(), "", "a.png", nil)
	assert.Error(t, err)
}
