package audio

import (
	"errors"

	"chagual/internal/gateway"
	"chagual/internal/pkg/validator"
)

var (
	ErrAudioNotFound = &gateway.Error{
		Kind: gateway.KindNotFound,
		Op:   "audio.get",
		Err:  errors.New("no hay audio registrado para esta ficha"),
	}
	ErrFichaNotFound = &gateway.Error{
		Kind: gateway.KindNotFound,
		Op:   "audio.save",
		Err:  errors.New("la ficha no existe"),
	}
	ErrFileRequired = &validator.Error{
		Message: "se requiere el archivo de audio",
		Fields:  map[string]string{"file": "required"},
	}
	ErrURLRequired = &validator.Error{
		Message: "url_audio es obligatorio",
		Fields:  map[string]string{"url_audio": "required"},
	}
)
