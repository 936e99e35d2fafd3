package audio

import (
	"context"
	"fmt"

	"chagual/internal/media"
	"chagual/internal/storage"
)

// Input is an audio save after transport decoding.
type Input struct {
	AudioRequest
	File *media.Payload
}

// Saved describes what was stored: Bytes for inline audio, URL otherwise.
type Saved struct {
	IDFicha int64
	Bytes   int
	URL     string
}

// Stored is audio read back from the store.
type Stored struct {
	Data        []byte
	ContentType string
	URL         string
}

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

func (s *Service) Strategy() media.Strategy { return s.strategy }

func (s *Service) Extractor() media.Extractor { return s.extractor }

func (s *Service) Save(ctx context.Context, in *Input) (*Saved, error) {
	idFicha := *in.IDFicha
	out := &Saved{IDFicha: idFicha}

	if s.strategy == media.ExternalURL {
		if in.URLAudio == nil || *in.URLAudio == "" {
			return nil, ErrURLRequired
		}
		out.URL = *in.URLAudio
		return s.save(ctx, out, out.URL)
	}

	p, err := s.payload(in)
	if err != nil {
		return nil, err
	}
	if err := p.Check(media.Audio); err != nil {
		return nil, err
	}

	if s.strategy == media.Inline {
		out.Bytes = len(p.Data)
		return s.save(ctx, out, p.Data)
	}

	// No upload for a ficha that cannot hold it.
	_, ok, err := s.repo.Get(ctx, idFicha)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrFichaNotFound
	}
	url, err := s.store.Upload(ctx, p.ObjectName(fmt.Sprintf("ficha_%d_audio", idFicha)), media.BaseMIME(p.ContentType), p.Data)
	if err != nil {
		return nil, err
	}
	out.URL = url
	return s.save(ctx, out, url)
}

func (s *Service) save(ctx context.Context, out *Saved, value any) (*Saved, error) {
	if err := s.repo.Save(ctx, out.IDFicha, value); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns the audio of a ficha or ErrAudioNotFound.
func (s *Service) Get(ctx context.Context, idFicha int64) (*Stored, error) {
	row, ok, err := s.repo.Get(ctx, idFicha)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAudioNotFound
	}
	data, ok := row.Bytes("audio")
	if !ok || len(data) == 0 {
		return nil, ErrAudioNotFound
	}

	if s.strategy != media.Inline {
		return &Stored{URL: string(data)}, nil
	}
	return &Stored{Data: data, ContentType: media.Sniff(data)}, nil
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
