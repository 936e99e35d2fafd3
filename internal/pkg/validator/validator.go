package validator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// Report fields by their JSON names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

// Error is a rejected request body.
type Error struct {
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string { return e.Message }

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}
	fields := make(map[string]string)
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}

// Var validates a single value against tag and reports it under field.
func Var(field string, value any, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	failed := tag
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		failed = verrs[0].Tag()
	}
	return &Error{Message: "datos inválidos", Fields: map[string]string{field: failed}}
}

// DecodeJSON decodes body into dst, rejecting unknown fields and trailing
// data. An empty body decodes as {}.
func DecodeJSON(body io.Reader, dst any) error {
	raw, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return &Error{Message: "el cuerpo contiene datos adicionales"}
	}
	return nil
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr):
		return &Error{
			Message: "tipo de dato inválido",
			Fields:  map[string]string{typeErr.Field: "type:" + typeErr.Type.String()},
		}
	case errors.As(err, &syntaxErr):
		return &Error{Message: fmt.Sprintf("JSON inválido en la posición %d", syntaxErr.Offset)}
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return &Error{Message: "campo no reconocido", Fields: map[string]string{field: "unknown"}}
	}
	return &Error{Message: "JSON inválido: " + err.Error()}
}

// BindJSON decodes the request body into dst and validates it.
func BindJSON(c *gin.Context, dst any) error {
	if err := DecodeJSON(c.Request.Body, dst); err != nil {
		return err
	}
	if fields := Validate(dst); fields != nil {
		return &Error{Message: "datos inválidos", Fields: fields}
	}
	return nil
}

// ParseMultipart parses a multipart body. Body size violations are returned
// unchanged; any other failure is a validation error.
func ParseMultipart(c *gin.Context, maxMemory int64) error {
	if err := c.Request.ParseMultipartForm(maxMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		return &Error{Message: "formulario multipart inválido: " + err.Error()}
	}
	return nil
}
