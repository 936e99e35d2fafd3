package foto

import (
	"context"
	"fmt"

	"chagual/internal/database"
	"chagual/internal/media"
	"chagual/internal/storage"
)

// Input is a photo write after transport decoding. File is set for
// multipart uploads.
type Input struct {
	FotoRequest
	File *media.Payload
}

// Created describes a stored photo.
type Created struct {
	ID      int64
	IDFicha int64
	URL     string
	Bytes   int
}

// Service applies the photo strategy. Uploads to object storage happen
// before the store call so that no connection is held during the transfer.
type Service struct {
	repo      Repository
	strategy  media.Strategy
	store     storage.ObjectStore
	extractor media.Extractor
}

func NewService(repo Repository, strategy media.Strategy, store storage.ObjectStore, maxBytes int64) *Service {
	return &Service{
		repo:      repo,
		strategy:  strategy,
		store:     store,
		extractor: media.Extractor{MaxBytes: maxBytes},
	}
}

func (s *Service) Create(ctx context.Context, in *Input) (*Created, error) {
	if in.IDFicha == nil {
		return nil, ErrFichaRequired
	}
	idFicha := *in.IDFicha

	value, err := s.resolve(ctx, fmt.Sprintf("ficha_%d_foto", idFicha), in)
	if err != nil {
		return nil, err
	}

	// tipo_foto and origen default to empty strings on creation.
	tipo, origen := "", ""
	if in.TipoFoto != nil {
		tipo = *in.TipoFoto
	}
	if in.Origen != nil {
		origen = *in.Origen
	}

	id, err := s.repo.Create(ctx, idFicha, value, tipo, origen)
	if err != nil {
		return nil, err
	}

	out := &Created{ID: id, IDFicha: idFicha}
	switch v := value.(type) {
	case []byte:
		out.Bytes = len(v)
	case string:
		out.URL = v
	}
	return out, nil
}

func (s *Service) ListByFicha(ctx context.Context, idFicha int64) ([]map[string]any, error) {
	rows, err := s.repo.ListByFicha(ctx, idFicha)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		if s.strategy == media.Inline {
			out = append(out, row.Map())
		} else {
			out = append(out, row.MapWithText("url_foto"))
		}
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, id int64, in *Input) error {
	value, err := s.resolve(ctx, fmt.Sprintf("foto_%d", id), in)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, id, value, database.Opt(in.TipoFoto), database.Opt(in.Origen))
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// resolve returns what the store keeps for the photo under the configured
// strategy.
func (s *Service) resolve(ctx context.Context, objectPrefix string, in *Input) (any, error) {
	if s.strategy == media.ExternalURL {
		if in.URLFoto == nil || *in.URLFoto == "" {
			return nil, ErrURLRequired
		}
		return *in.URLFoto, nil
	}

	p, err := s.payload(in)
	if err != nil {
		return nil, err
	}
	if err := p.Check(media.Image); err != nil {
		return nil, err
	}
	if s.strategy == media.Inline {
		return p.Data, nil
	}
	return s.store.Upload(ctx, p.ObjectName(objectPrefix), media.BaseMIME(p.ContentType), p.Data)
}

func (s *Service) payload(in *Input) (*media.Payload, error) {
	switch {
	case in.File != nil:
		return in.File, nil
	case in.ArchivoBase64 != nil:
		return s.extractor.FromBase64(*in.ArchivoBase64, "")
	}
	return nil, ErrFileRequired
}

// Extractor exposes the payload limits for multipart decoding.
func (s *Service) Extractor() media.Extractor { return s.extractor }
