package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"chagual/internal/config"
	"chagual/internal/logging"
	"chagual/internal/metrics"
)

// DriveStore uploads into a Google Drive folder and shares every file with
// anyone holding the link.
type DriveStore struct {
	svc      *drive.Service
	folderID string
}

func NewDriveStore(ctx context.Context, folderID string, opts ...option.ClientOption) (*DriveStore, error) {
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creando servicio de Google Drive: %w", err)
	}
	return &DriveStore{svc: svc, folderID: folderID}, nil
}

// NewDriveStoreFromConfig reads the credentials named by cfg.
func NewDriveStoreFromConfig(ctx context.Context, cfg config.StorageConfig) (*DriveStore, error) {
	raw, err := credentialsJSON(cfg)
	if err != nil {
		return nil, err
	}
	opt, err := clientOption(ctx, raw)
	if err != nil {
		return nil, err
	}
	store, err := NewDriveStore(ctx, cfg.DriveFolderID, opt)
	if err != nil {
		return nil, err
	}
	logging.Info().Str("folder_id", cfg.DriveFolderID).Msg("[GOOGLE_DRIVE] service initialised")
	return store, nil
}

func credentialsJSON(cfg config.StorageConfig) ([]byte, error) {
	switch {
	case cfg.CredentialsJSON != "":
		if cfg.CredentialsFile != "" {
			logging.Warn().Msg("GOOGLE_CREDENTIALS_JSON and GOOGLE_CREDENTIALS_FILE are both set; using GOOGLE_CREDENTIALS_JSON")
		}
		return []byte(cfg.CredentialsJSON), nil
	case cfg.CredentialsFile != "":
		raw, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("error leyendo archivo de credenciales: %w", err)
		}
		return raw, nil
	}
	return nil, errors.New("GOOGLE_CREDENTIALS_JSON o GOOGLE_CREDENTIALS_FILE debe estar configurado")
}

// clientOption accepts Google credential files (service_account,
// authorized_user) and the bare OAuth token JSON written by the token
// generator, which carries no "type".
func clientOption(ctx context.Context, raw []byte) (option.ClientOption, error) {
	if !gjson.ValidBytes(raw) {
		return nil, errors.New("credenciales de Google: JSON inválido")
	}
	doc := gjson.ParseBytes(raw)

	if doc.Get("type").String() != "" {
		creds, err := google.CredentialsFromJSON(ctx, raw, drive.DriveFileScope)
		if err != nil {
			return nil, fmt.Errorf("error cargando credenciales: %w", err)
		}
		return option.WithCredentials(creds), nil
	}

	if !doc.Get("refresh_token").Exists() && !doc.Get("token").Exists() {
		return nil, errors.New("credenciales de Google: formato no reconocido")
	}
	endpoint := google.Endpoint
	if uri := doc.Get("token_uri").String(); uri != "" {
		endpoint.TokenURL = uri
	}
	conf := &oauth2.Config{
		ClientID:     doc.Get("client_id").String(),
		ClientSecret: doc.Get("client_secret").String(),
		Endpoint:     endpoint,
		Scopes:       []string{drive.DriveFileScope},
	}
	tok := &oauth2.Token{
		AccessToken:  doc.Get("token").String(),
		RefreshToken: doc.Get("refresh_token").String(),
		TokenType:    "Bearer",
	}
	if exp := doc.Get("expiry").String(); exp != "" {
		if t, err := time.Parse(time.RFC3339Nano, exp); err == nil {
			tok.Expiry = t
		}
	}
	return option.WithTokenSource(conf.TokenSource(ctx, tok)), nil
}

func (s *DriveStore) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	meta := &drive.File{Name: name}
	if s.folderID != "" {
		meta.Parents = []string{s.folderID}
	}

	created, err := s.svc.Files.Create(meta).
		Media(bytes.NewReader(data), googleapi.ContentType(contentType)).
		Fields("id", "webViewLink").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		metrics.StorageUploads.WithLabelValues("drive", "failure").Inc()
		return "", upstream(err)
	}

	_, err = s.svc.Permissions.Create(created.Id, &drive.Permission{Type: "anyone", Role: "reader"}).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		metrics.StorageUploads.WithLabelValues("drive", "failure").Inc()
		return "", upstream(fmt.Errorf("compartir %s: %w", created.Id, err))
	}

	metrics.StorageUploads.WithLabelValues("drive", "success").Inc()
	logging.Ctx(ctx).Debug().Str("file_id", created.Id).Int("bytes", len(data)).Msg("[GOOGLE_DRIVE] file uploaded")

	if created.WebViewLink != "" {
		return created.WebViewLink, nil
	}
	return "https://drive.google.com/file/d/" + created.Id + "/view", nil
}
