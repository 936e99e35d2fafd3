package ficha_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chagual/internal/database/dbtest"
	"chagual/internal/domain/control"
	"chagual/internal/domain/ficha"
	"chagual/internal/gateway"
	"chagual/internal/media"
	"chagual/internal/storage"
)

var mp3Bytes = append([]byte("ID3\x03\x00\x00\x00\x00\x00\x00"), 0xff, 0xfb, 0x90, 0x00, 0x80, 0xfe)

type fakeStore struct {
	uploads map[string][]byte
	types   []string
	err     error
}

func (f *fakeStore) Upload(_ context.Context, name, contentType string, data []byte) (string, error) {
	if f.err != nil {
		return "", fmt.Errorf("%w: %w", storage.ErrUpstream, f.err)
	}
	if f.uploads == nil {
		f.uploads = map[string][]byte{}
	}
	f.uploads[name] = data
	f.types = append(f.types, contentType)
	return "https://drive.google.com/file/d/" + name + "/view", nil
}

func setupRouter(t *testing.T, audio media.Strategy) (*gin.Engine, *gateway.Gateway) {
	return setupRouterWithStore(t, audio, nil)
}

func setupRouterWithStore(t *testing.T, audio media.Strategy, store storage.ObjectStore) (*gin.Engine, *gateway.Gateway) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gw, _ := dbtest.NewGateway(t)
	r := gin.New()
	control.RegisterRoutes(r, control.NewHandler(control.NewRepository(gw)))
	ficha.RegisterRoutes(r, ficha.NewHandler(ficha.NewService(ficha.NewRepository(gw), audio, store, 1<<20)))
	return r, gw
}

func performRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env.Error.Code
}

func listFichas(t *testing.T, r http.Handler) []map[string]any {
	t.Helper()
	w := performRequest(r, http.MethodGet, "/fichas", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	return rows
}

func sampleFicha() map[string]any {
	return map[string]any{
		"id_control":        1,
		"codigo":            "CH-0001",
		"nombres_apellidos": "Rosa Quispe Mamani",
		"dni":               "45871236",
		"centro_poblado":    "Chagual",
		"total_ambientes":   3,
		"latitud":           -7.8254,
		"longitud":          -77.6521,
		"altitud":           1280.5,
		"tipo_riego":        "Gravedad",
	}
}

func TestCreateThenUpdateFicha(t *testing.T) {
	r, gw := setupRouter(t, media.ExternalURL)
	require.Equal(t, http.StatusCreated, performRequest(r, http.MethodPost, "/controles", nil).Code)

	body := sampleFicha()
	w := performRequest(r, http.MethodPost, "/fichas", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{"message":"Datos de la ficha sincronizados correctamente","id_ficha":1}`, w.Body.String())

	before := listFichas(t, r)
	require.Len(t, before, 1)
	assert.Equal(t, "CH-0001", before[0]["codigo"])
	assert.EqualValues(t, 3, before[0]["total_ambientes"])
	assert.Nil(t, before[0]["audio"])

	body["tipo_riego"] = "Aspersión"
	w = performRequest(r, http.MethodPut, "/fichas/1", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"message":"Ficha actualizada correctamente"}`, w.Body.String())

	after := listFichas(t, r)
	require.Len(t, after, 1)
	for k, v := range before[0] {
		if k == "tipo_riego" {
			assert.Equal(t, "Aspersión", after[0][k])
			continue
		}
		assert.Equal(t, v, after[0][k], k)
	}
	assert.Zero(t, gw.Stats().Open())
}

func TestCreateFicha_Validation(t *testing.T) {
	r, _ := setupRouter(t, media.ExternalURL)
	performRequest(r, http.MethodPost, "/controles", nil)

	missingCodigo := sampleFicha()
	delete(missingCodigo, "codigo")

	missingControl := sampleFicha()
	delete(missingControl, "id_control")

	badLatitude := sampleFicha()
	badLatitude["latitud"] = 123.0

	unknown := sampleFicha()
	unknown["color_casa"] = "azul"

	negative := sampleFicha()
	negative["total_ambientes"] = -1

	for name, body := range map[string]map[string]any{
		"missing codigo":     missingCodigo,
		"missing id_control": missingControl,
		"latitude":           badLatitude,
		"unknown field":      unknown,
		"negative ambientes": negative,
	} {
		w := performRequest(r, http.MethodPost, "/fichas", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w), name)
	}
	assert.Empty(t, listFichas(t, r))
}

func TestCreateFicha_UnknownControlIsConflict(t *testing.T) {
	r, _ := setupRouter(t, media.ExternalURL)

	w := performRequest(r, http.MethodPost, "/fichas", sampleFicha())
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	assert.Equal(t, "CONFLICT", errorCode(t, w))
	assert.Empty(t, listFichas(t, r))
}

func TestDeleteControlWithFichasIsConflict(t *testing.T) {
	r, _ := setupRouter(t, media.ExternalURL)
	performRequest(r, http.MethodPost, "/controles", nil)
	require.Equal(t, http.StatusCreated, performRequest(r, http.MethodPost, "/fichas", sampleFicha()).Code)

	w := performRequest(r, http.MethodDelete, "/controles/1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Len(t, listFichas(t, r), 1)
}

func TestInlineAudioRoundTrip(t *testing.T) {
	r, _ := setupRouter(t, media.Inline)
	performRequest(r, http.MethodPost, "/controles", nil)

	body := sampleFicha()
	body["audio"] = base64.StdEncoding.EncodeToString(mp3Bytes)
	w := performRequest(r, http.MethodPost, "/fichas", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	rows := listFichas(t, r)
	require.Len(t, rows, 1)
	got, err := base64.StdEncoding.DecodeString(rows[0]["audio"].(string))
	require.NoError(t, err)
	assert.Equal(t, mp3Bytes, got)
}

func TestInlineAudioRejectsNonAudio(t *testing.T) {
	r, _ := setupRouter(t, media.Inline)
	performRequest(r, http.MethodPost, "/controles", nil)

	body := sampleFicha()
	body["audio"] = base64.StdEncoding.EncodeToString([]byte("no es audio"))
	w := performRequest(r, http.MethodPost, "/fichas", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
}

func TestExternalAudioURLStoredAsText(t *testing.T) {
	r, _ := setupRouter(t, media.ExternalURL)
	performRequest(r, http.MethodPost, "/controles", nil)

	body := sampleFicha()
	body["audio"] = "https://drive.google.com/file/d/abc/view"
	require.Equal(t, http.StatusCreated, performRequest(r, http.MethodPost, "/fichas", body).Code)

	rows := listFichas(t, r)
	require.Len(t, rows, 1)
	assert.Equal(t, "https://drive.google.com/file/d/abc/view", rows[0]["audio"])
}

func TestUpdateAndDeleteNonexistentFicha(t *testing.T) {
	r, _ := setupRouter(t, media.ExternalURL)
	performRequest(r, http.MethodPost, "/controles", nil)
	performRequest(r, http.MethodPost, "/fichas", sampleFicha())
	before := listFichas(t, r)

	changed := sampleFicha()
	changed["codigo"] = "CH-9999"
	w := performRequest(r, http.MethodPut, "/fichas/42", changed)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, before, listFichas(t, r))

	for i := 0; i < 2; i++ {
		w = performRequest(r, http.MethodDelete, "/fichas/42", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, before, listFichas(t, r))

	w = performRequest(r, http.MethodDelete, "/fichas/x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", errorCode(t, w))
}

func TestObjectStoreAudioIsUploaded(t *testing.T) {
	store := &fakeStore{}
	r, gw := setupRouterWithStore(t, media.ObjectStore, store)
	performRequest(r, http.MethodPost, "/controles", nil)

	body := sampleFicha()
	body["audio"] = base64.StdEncoding.EncodeToString(mp3Bytes)
	w := performRequest(r, http.MethodPost, "/fichas", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.Len(t, store.uploads, 1)
	var url string
	for name, data := range store.uploads {
		assert.Equal(t, mp3Bytes, data)
		url = "https://drive.google.com/file/d/" + name + "/view"
	}
	assert.Equal(t, []string{"audio/mpeg"}, store.types)

	rows := listFichas(t, r)
	require.Len(t, rows, 1)
	assert.Equal(t, url, rows[0]["audio"])

	w = performRequest(r, http.MethodPut, "/fichas/1", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, store.uploads, 2)
	assert.Contains(t, listFichas(t, r)[0]["audio"], "ficha_1_audio")
	assert.Zero(t, gw.Stats().Open())
}

func TestObjectStoreAudioRejectsNonAudioAndUpstreamFailure(t *testing.T) {
	store := &fakeStore{}
	r, _ := setupRouterWithStore(t, media.ObjectStore, store)
	performRequest(r, http.MethodPost, "/controles", nil)

	body := sampleFicha()
	body["audio"] = base64.StdEncoding.EncodeToString([]byte("no es audio"))
	w := performRequest(r, http.MethodPost, "/fichas", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.uploads)

	store.err = errors.New("quota exceeded")
	body["audio"] = base64.StdEncoding.EncodeToString(mp3Bytes)
	w = performRequest(r, http.MethodPost, "/fichas", body)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "STORAGE_UPSTREAM_ERROR", errorCode(t, w))
	assert.Empty(t, listFichas(t, r))
}

func TestExternalAudioMustBeURL(t *testing.T) {
	r, _ := setupRouter(t, media.ExternalURL)
	performRequest(r, http.MethodPost, "/controles", nil)

	body := sampleFicha()
	body["audio"] = base64.StdEncoding.EncodeToString(mp3Bytes)
	w := performRequest(r, http.MethodPost, "/fichas", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
	assert.Contains(t, w.Body.String(), `"audio":"url"`)
	assert.Empty(t, listFichas(t, r))
}
