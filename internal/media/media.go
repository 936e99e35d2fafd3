// Package media turns uploaded photo and audio payloads into bytes the
// store or the object storage can take.
package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"chagual/internal/config"
)

// Strategy decides how media travels to the store.
type Strategy string

const (
	// Inline persists the raw bytes in the store.
	Inline Strategy = config.StrategyInline
	// ObjectStore uploads the bytes and persists the resulting URL.
	ObjectStore Strategy = config.StrategyObjectStore
	// ExternalURL persists a URL the client already uploaded to.
	ExternalURL Strategy = config.StrategyExternalURL
)

func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case Inline, ObjectStore, ExternalURL:
		return st, nil
	}
	return "", fmt.Errorf("unknown media strategy %q", s)
}

var (
	ErrEmptyPayload  = errors.New("el archivo está vacío")
	ErrTooLarge      = errors.New("el archivo excede el tamaño máximo permitido")
	ErrInvalidBase64 = errors.New("archivo_base64 no es base64 válido")
	ErrInvalidType   = errors.New("tipo de archivo no permitido")
)

// Family is the kind of content an entity accepts.
type Family int

const (
	Image Family = iota
	Audio
)

func (f Family) String() string {
	if f == Audio {
		return "audio"
	}
	return "image"
}

// Payload is one decoded upload.
type Payload struct {
	Data        []byte
	Name        string
	ContentType string
}

// Extractor reads payloads no larger than MaxBytes.
type Extractor struct {
	MaxBytes int64
}

// FromMultipart reads an uploaded form file.
func (e Extractor) FromMultipart(fh *multipart.FileHeader) (*Payload, error) {
	if fh.Size == 0 {
		return nil, ErrEmptyPayload
	}
	if e.MaxBytes > 0 && fh.Size > e.MaxBytes {
		return nil, ErrTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if e.MaxBytes > 0 {
		r = io.LimitReader(f, e.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return e.payload(data, fh.Filename)
}

// FromBase64 decodes a standard base64 string. A data URL prefix
// ("data:audio/mpeg;base64,") and embedded whitespace are accepted.
func (e Extractor) FromBase64(s, name string) (*Payload, error) {
	if i := strings.Index(s, ","); i >= 0 && strings.HasPrefix(s, "data:") {
		s = s[i+1:]
	}
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return nil, ErrEmptyPayload
	}
	if e.MaxBytes > 0 && int64(base64.StdEncoding.DecodedLen(len(s))) > e.MaxBytes+3 {
		return nil, ErrTooLarge
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(s)
		if err != nil {
			return nil, ErrInvalidBase64
		}
	}
	return e.payload(data, name)
}

func (e Extractor) payload(data []byte, name string) (*Payload, error) {
	if len(data) == 0 {
		return nil, ErrEmptyPayload
	}
	if e.MaxBytes > 0 && int64(len(data)) > e.MaxBytes {
		return nil, ErrTooLarge
	}
	return &Payload{
		Data:        data,
		Name:        name,
		ContentType: mimetype.Detect(data).String(),
	}, nil
}

// Check rejects payloads whose sniffed content is outside f. Phone
// recorders often wrap audio in video containers, so those count as audio.
func (p *Payload) Check(f Family) error {
	m := mimetype.Detect(p.Data)
	for ; m != nil; m = m.Parent() {
		t := m.String()
		switch f {
		case Image:
			if strings.HasPrefix(t, "image/") {
				return nil
			}
		case Audio:
			if strings.HasPrefix(t, "audio/") || strings.HasPrefix(t, "video/") || m.Is("application/ogg") {
				return nil
			}
		}
	}
	return fmt.Errorf("%w: se esperaba %s, se recibió %s", ErrInvalidType, f, p.ContentType)
}

// ObjectName names the payload in object storage.
func (p *Payload) ObjectName(prefix string) string {
	if p.Name != "" {
		return prefix + "_" + p.Name
	}
	ext := mimetype.Detect(p.Data).Extension()
	if ext == "" {
		ext = ".bin"
	}
	return prefix + "_" + uuid.New().String() + ext
}

// Sniff returns the content type of data without parameters.
func Sniff(data []byte) string {
	return BaseMIME(mimetype.Detect(data).String())
}

// BaseMIME strips parameters from a sniffed content type.
func BaseMIME(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		return strings.TrimSpace(contentType[:i])
	}
	return contentType
}
