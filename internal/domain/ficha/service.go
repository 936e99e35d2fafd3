package ficha

import (
	"context"
	"fmt"

	"chagual/internal/media"
	"chagual/internal/pkg/validator"
	"chagual/internal/storage"
)

// Service applies the audio strategy to ficha writes and reads.
type Service struct {
	repo      Repository
	strategy  media.Strategy
	store     storage.ObjectStore
	extractor media.Extractor
}

// NewService builds the ficha service. store is only used under the
// object_store audio strategy and may be nil otherwise.
func NewService(repo Repository, audioStrategy media.Strategy, store storage.ObjectStore, maxBytes int64) *Service {
	return &Service{
		repo:      repo,
		strategy:  audioStrategy,
		store:     store,
		extractor: media.Extractor{MaxBytes: maxBytes},
	}
}

// Create stores a new ficha. Under object_store the audio is uploaded
// before the procedure call; a rejected insert leaves that object behind.
func (s *Service) Create(ctx context.Context, req *CreateFichaRequest) (int64, error) {
	f, err := s.ficha(ctx, &req.FichaFields, "ficha_audio")
	if err != nil {
		return 0, err
	}
	return s.repo.Create(ctx, *req.IDControl, f)
}

func (s *Service) Update(ctx context.Context, id int64, req *UpdateFichaRequest) error {
	f, err := s.ficha(ctx, &req.FichaFields, fmt.Sprintf("ficha_%d_audio", id))
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, id, f)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// List renders fichas for JSON. Inline audio comes back base64 encoded;
// under the URL strategies the audio column is text.
func (s *Service) List(ctx context.Context) ([]map[string]any, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		if s.strategy == media.Inline {
			out = append(out, row.Map())
		} else {
			out = append(out, row.MapWithText("audio"))
		}
	}
	return out, nil
}

// ficha resolves the audio field into its stored form: bytes (inline), the
// uploaded object's URL (object_store) or the URL as sent (external_url).
func (s *Service) ficha(ctx context.Context, fields *FichaFields, objectPrefix string) (*Ficha, error) {
	f := &Ficha{FichaFields: *fields}
	if fields.Audio == nil || *fields.Audio == "" {
		return f, nil
	}
	if s.strategy == media.ExternalURL {
		if err := validator.Var("audio", *fields.Audio, "url"); err != nil {
			return nil, err
		}
		f.AudioValue = *fields.Audio
		return f, nil
	}

	p, err := s.extractor.FromBase64(*fields.Audio, "")
	if err != nil {
		return nil, err
	}
	if err := p.Check(media.Audio); err != nil {
		return nil, err
	}
	if s.strategy == media.Inline {
		f.AudioValue = p.Data
		return f, nil
	}

	url, err := s.store.Upload(ctx, p.ObjectName(objectPrefix), media.BaseMIME(p.ContentType), p.Data)
	if err != nil {
		return nil, err
	}
	f.AudioValue = url
	return f, nil
}
