package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDelegateUpload(t *testing.T) {
	t.Parallel()

	t.Run("successful upload returns the public url", func(t *testing.T) {
		var gotPath, gotFilename string
		var gotBody []byte

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path

			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			defer func() { _ = file.Close() }()

			gotFilename = header.Filename
			gotBody, err = io.ReadAll(file)
			require.NoError(t, err)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"url": "https://cdn.example.com/abc.png"}`))
		}))
		defer srv.Close()

		store := NewDelegateStorage(srv.URL+"/", time.Second)

		url, err := store.Upload(context.Background(), "abc.png", strings.NewReader("png-bytes"))
		require.NoError(t, err)
		require.Equal(t, "https://cdn.example.com/abc.png", url)
		require.Equal(t, "/upload", gotPath)
		require.Equal(t, "abc.png", gotFilename)
		require.Equal(t, []byte("png-bytes"), gotBody)
	})

	t.Run("upstream error status is surfaced", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			_, _ = w.Write([]byte(`{"error": "file too large"}`))
		}))
		defer srv.Close()

		store := NewDelegateStorage(srv.URL, time.Second)

		_, err := store.Upload(context.Background(), "big.png", strings.NewReader("x"))
		var uploadErr *UploadError
		require.ErrorAs(t, err, &uploadErr)
		require.Equal(t, http.StatusRequestEntityTooLarge, uploadErr.StatusCode)
		require.Contains(t, uploadErr.Details, "file too large")
	})

	t.Run("error field in a 2xx body is still a failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"error": "unsupported format"}`))
		}))
		defer srv.Close()

		store := NewDelegateStorage(srv.URL, time.Second)

		_, err := store.Upload(context.Background(), "x.bmp", strings.NewReader("x"))
		var uploadErr *UploadError
		require.ErrorAs(t, err, &uploadErr)
		require.Equal(t, http.StatusOK, uploadErr.StatusCode)
		require.Equal(t, "unsupported format", uploadErr.Details)
	})

	t.Run("unreachable service maps to status zero", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close()

		store := NewDelegateStorage(srv.URL, time.Second)

		_, err := store.Upload(context.Background(), "x.png", strings.NewReader("x"))
		var uploadErr *UploadError
		require.ErrorAs(t, err, &uploadErr)
		require.Zero(t, uploadErr.StatusCode)
	})

	t.Run("garbage response body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html>not json</html>"))
		}))
		defer srv.Close()

		store := NewDelegateStorage(srv.URL, time.Second)

		_, err := store.Upload(context.Background(), "x.png", strings.NewReader("x"))
		var uploadErr *UploadError
		require.ErrorAs(t, err, &uploadErr)
		require.Equal(t, "invalid upload service response", uploadErr.Details)
	})
}
