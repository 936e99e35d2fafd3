package media

import (
	"bytes"
	"encoding/base64"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
	mp3Bytes = append([]byte("ID3\x03\x00\x00\x00\x00\x00\x00"), 0xff, 0xfb, 0x90, 0x00, 0x01, 0x02)
)

func fileHeader(t *testing.T, field, filename string, data []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File[field][0]
}

func TestParseStrategy(t *testing.T) {
	for in, want := range map[string]Strategy{
		"inline":        Inline,
		" OBJECT_STORE": ObjectStore,
		"external_url":  ExternalURL,
	} {
		got, err := ParseStrategy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseStrategy("s3")
	assert.Error(t, err)
}

func TestFromBase64_RoundTrip(t *testing.T) {
	e := Extractor{MaxBytes: 1 << 20}
	encoded := base64.StdEncoding.EncodeToString(mp3Bytes)

	p, err := e.FromBase64(encoded, "")
	require.NoError(t, err)
	assert.Equal(t, mp3Bytes, p.Data)
	assert.Equal(t, "audio/mpeg", BaseMIME(p.ContentType))
	assert.NoError(t, p.Check(Audio))

	p, err = e.FromBase64("data:audio/mpeg;base64,"+encoded[:8]+"\n"+encoded[8:], "")
	require.NoError(t, err)
	assert.Equal(t, mp3Bytes, p.Data)
}

func TestFromBase64_Errors(t *testing.T) {
	e := Extractor{MaxBytes: 8}

	_, err := e.FromBase64("", "")
	assert.ErrorIs(t, err, ErrEmptyPayload)

	_, err = e.FromBase64("   ", "")
	assert.ErrorIs(t, err, ErrEmptyPayload)

	_, err = e.FromBase64("!!!!", "")
	assert.ErrorIs(t, err, ErrInvalidBase64)

	_, err = e.FromBase64(base64.StdEncoding.EncodeToString(make([]byte, 64)), "")
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = e.FromBase64(base64.StdEncoding.EncodeToString(make([]byte, 9)), "")
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestFromMultipart(t *testing.T) {
	e := Extractor{MaxBytes: 1 << 20}

	p, err := e.FromMultipart(fileHeader(t, "file", "fachada.png", pngBytes))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, p.Data)
	assert.Equal(t, "fachada.png", p.Name)
	assert.Equal(t, "image/png", p.ContentType)
	assert.NoError(t, p.Check(Image))
	assert.ErrorIs(t, p.Check(Audio), ErrInvalidType)

	_, err = e.FromMultipart(fileHeader(t, "file", "vacio.mp3", nil))
	assert.ErrorIs(t, err, ErrEmptyPayload)

	_, err = Extractor{MaxBytes: 4}.FromMultipart(fileHeader(t, "file", "big.png", pngBytes))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestCheck_RejectsText(t *testing.T) {
	p, err := Extractor{}.FromBase64(base64.StdEncoding.EncodeToString([]byte("hola mundo")), "")
	require.NoError(t, err)

	err = p.Check(Image)
	assert.ErrorIs(t, err, ErrInvalidType)
	assert.Contains(t, err.Error(), "text/plain")
}

func TestObjectName(t *testing.T) {
	p := &Payload{Data: pngBytes}
	name := p.ObjectName("ficha_3_foto")
	assert.True(t, strings.HasPrefix(name, "ficha_3_foto_"), name)
	assert.True(t, strings.HasSuffix(name, ".png"), name)

	p.Name = "frente.png"
	assert.Equal(t, "ficha_3_foto_frente.png", p.ObjectName("ficha_3_foto"))
}
