package foto

// FotoRequest is the JSON body of POST /fotos and PUT /fotos/:id. Which of
// url_foto and archivo_base64 is required depends on the photo strategy.
// Multipart requests carry the same fields as form values plus a "file".
type FotoRequest struct {
	IDFicha       *int64  `json:"id_ficha" validate:"omitempty,gt=0"`
	URLFoto       *string `json:"url_foto" validate:"omitempty,url"`
	ArchivoBase64 *string `json:"archivo_base64"`
	TipoFoto      *string `json:"tipo_foto" validate:"omitempty,max=50"`
	Origen        *string `json:"origen" validate:"omitempty,max=50"`
}

type CreateFotoResponse struct {
	Message string `json:"message"`
	IDFoto  int64  `json:"id_foto"`
	IDFicha int64  `json:"id_ficha"`
	URLFoto string `json:"url_foto,omitempty"`
	Bytes   int    `json:"bytes,omitempty"`
}

const (
	msgCreated = "Foto vinculada correctamente"
	msgUpdated = "Foto actualizada correctamente"
	msgDeleted = "Foto eliminada correctamente"
)
