package audio

// AudioRequest is the JSON body of POST /audios. archivo_base64 is used by
// the inline and object_store strategies, url_audio by external_url.
type AudioRequest struct {
	IDFicha       *int64  `json:"id_ficha" validate:"required,gt=0"`
	ArchivoBase64 *string `json:"archivo_base64"`
	URLAudio      *string `json:"url_audio" validate:"omitempty,url"`
}

// SavedInlineResponse answers an inline save.
type SavedInlineResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	IDFicha int64  `json:"id_ficha"`
	Bytes   int    `json:"bytes"`
}

// SavedURLResponse answers a save that persisted a URL.
type SavedURLResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

// AudioURLResponse is returned by GET /audios/:id_ficha for URL strategies.
type AudioURLResponse struct {
	IDFicha  int64  `json:"id_ficha"`
	URLAudio string `json:"url_audio"`
}

const (
	msgSaved = "Audio guardado correctamente"
)
