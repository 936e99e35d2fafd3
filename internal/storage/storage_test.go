package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"chagual/internal/config"
)

func TestLocalStore_Upload(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir, "/static/uploads/")
	s.now = func() time.Time { return time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC) }

	url, err := s.Upload(context.Background(), "fachada norte.jpg", "image/jpeg", []byte("jpeg-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/static/uploads/2025/03/07/"), url)
	assert.True(t, strings.HasSuffix(url, "_fachada_norte.jpg"), url)

	rel := strings.TrimPrefix(url, "/static/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)
}

func TestLocalStore_ExtensionFromContentType(t *testing.T) {
	s := NewLocalStore(t.TempDir(), "")
	url, err := s.Upload(context.Background(), "audio", "audio/mpeg", []byte{0x49, 0x44, 0x33})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, "_audio.mp3"), url)

	url, err = s.Upload(context.Background(), "blob", "application/x-unknown-thing", []byte{1})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".bin"), url)
}

func TestLocalStore_FailureIsUpstream(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	_, err := NewLocalStore(file, "").Upload(context.Background(), "x.jpg", "image/jpeg", []byte{1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.True(t, strings.HasPrefix(err.Error(), "error al subir archivo al almacenamiento"))
}

type failingStore struct {
	calls atomic.Int32
	err   error
}

func (f *failingStore) Upload(context.Context, string, string, []byte) (string, error) {
	f.calls.Add(1)
	return "", f.err
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	next := &failingStore{err: errors.New("503 backend error")}
	b := NewBreaker("test-open", next)

	for i := 0; i < 5; i++ {
		_, err := b.Upload(context.Background(), "a", "image/png", []byte{1})
		assert.ErrorIs(t, err, ErrUpstream)
	}

	_, err := b.Upload(context.Background(), "a", "image/png", []byte{1})
	assert.ErrorIs(t, err, ErrUpstream)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.EqualValues(t, 5, next.calls.Load(), "open breaker must not reach the store")
}

func TestBreaker_IgnoresCallerCancellation(t *testing.T) {
	next := &failingStore{err: context.Canceled}
	b := NewBreaker("test-cancel", next)

	for i := 0; i < 10; i++ {
		_, err := b.Upload(context.Background(), "a", "image/png", []byte{1})
		assert.NotErrorIs(t, err, gobreaker.ErrOpenState)
	}
	assert.EqualValues(t, 10, next.calls.Load(), "cancelled uploads must not open the breaker")
}

func TestNew_LocalProvider(t *testing.T) {
	store, err := New(context.Background(), config.StorageConfig{
		Provider: config.ProviderLocal,
		LocalDir: t.TempDir(),
	})
	require.NoError(t, err)

	b, ok := store.(*Breaker)
	require.True(t, ok)
	_, ok = b.Unwrap().(*LocalStore)
	assert.True(t, ok)
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), config.StorageConfig{Provider: "s3"})
	assert.Error(t, err)
}

func newDriveServer(t *testing.T, failPermission bool) (*httptest.Server, *atomic.Value) {
	t.Helper()
	var body atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/permissions"):
			if failPermission {
				w.WriteHeader(http.StatusForbidden)
				_, _ = io.WriteString(w, `{"error":{"code":403,"message":"insufficient permissions"}}`)
				return
			}
			_, _ = io.WriteString(w, `{"id":"anyoneWithLink","type":"anyone","role":"reader"}`)
		case strings.HasSuffix(r.URL.Path, "/files") && r.Method == http.MethodPost:
			b, _ := io.ReadAll(r.Body)
			body.Store(string(b))
			_, _ = io.WriteString(w, `{"id":"f1","webViewLink":"https://drive.google.com/file/d/f1/view"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &body
}

func TestDriveStore_Upload(t *testing.T) {
	srv, body := newDriveServer(t, false)

	s, err := NewDriveStore(context.Background(), "folder-123",
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	url, err := s.Upload(context.Background(), "foto.jpg", "image/jpeg", []byte("JPEGDATA"))
	require.NoError(t, err)
	assert.Equal(t, "https://drive.google.com/file/d/f1/view", url)

	sent, _ := body.Load().(string)
	assert.Contains(t, sent, "JPEGDATA")
	assert.Contains(t, sent, "folder-123")
}

func TestDriveStore_PermissionFailureIsUpstream(t *testing.T) {
	srv, _ := newDriveServer(t, true)

	s, err := NewDriveStore(context.Background(), "",
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	_, err = s.Upload(context.Background(), "foto.jpg", "image/jpeg", []byte("JPEGDATA"))
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestCredentialsJSON_InlineWins(t *testing.T) {
	file := filepath.Join(t.TempDir(), "creds.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"from":"file"}`), 0600))

	raw, err := credentialsJSON(config.StorageConfig{CredentialsJSON: `{"from":"env"}`, CredentialsFile: file})
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"env"}`, string(raw))

	raw, err = credentialsJSON(config.StorageConfig{CredentialsFile: file})
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"file"}`, string(raw))

	_, err = credentialsJSON(config.StorageConfig{})
	assert.Error(t, err)
}

func TestClientOption_Formats(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"authorized user", `{"type":"authorized_user","client_id":"c","client_secret":"s","refresh_token":"r"}`, false},
		{"token generator output", `{"token":"ya29.x","refresh_token":"1//r","token_uri":"https://oauth2.googleapis.com/token","client_id":"c","client_secret":"s","scopes":["https://www.googleapis.com/auth/drive.file"],"expiry":"2025-01-01T00:00:00.000000Z"}`, false},
		{"unrecognised", `{"foo":"bar"}`, true},
		{"not json", `not json`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt, err := clientOption(ctx, []byte(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, opt)
		})
	}
}
