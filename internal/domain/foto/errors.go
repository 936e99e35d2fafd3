package foto

import "chagual/internal/pkg/validator"

var (
	ErrFichaRequired = &validator.Error{
		Message: "id_ficha es obligatorio",
		Fields:  map[string]string{"id_ficha": "required"},
	}
	ErrFileRequired = &validator.Error{
		Message: "se requiere el archivo de la foto",
		Fields:  map[string]string{"file": "required"},
	}
	ErrURLRequired = &validator.Error{
		Message: "url_foto es obligatorio",
		Fields:  map[string]string{"url_foto": "required"},
	}
)
