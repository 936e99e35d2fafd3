package audio

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"chagual/internal/media"
	"chagual/internal/pkg/response"
	"chagual/internal/pkg/utils"
	"chagual/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Save handles POST /audios
// @Summary Attach audio to a ficha
// @Description multipart(id_ficha, file) or JSON(id_ficha, archivo_base64 | url_audio). Empty audio is rejected.
// @Tags Audios
// @Accept json,mpfd
// @Produce json
// @Param request body AudioRequest false "JSON body"
// @Success 200 {object} SavedInlineResponse
// @Success 201 {object} SavedURLResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 413 {object} response.ErrorBody
// @Failure 502 {object} response.ErrorBody
// @Router /audios [post]
func (h *Handler) Save(c *gin.Context) {
	in, err := h.bind(c)
	if err != nil {
		response.Fail(c, err)
		return
	}

	saved, err := h.service.Save(c.Request.Context(), in)
	if err != nil {
		response.Fail(c, err)
		return
	}

	if h.service.Strategy() == media.Inline {
		c.JSON(http.StatusOK, SavedInlineResponse{
			Status:  "success",
			Message: msgSaved,
			IDFicha: saved.IDFicha,
			Bytes:   saved.Bytes,
		})
		return
	}
	c.JSON(http.StatusCreated, SavedURLResponse{Message: msgSaved, URL: saved.URL})
}

// Get handles GET /audios/:id_ficha
// @Summary Fetch the audio of a ficha
// @Description Streams inline audio with its sniffed content type; returns the URL otherwise
// @Tags Audios
// @Produce octet-stream,json
// @Param id_ficha path int true "Ficha ID"
// @Success 200 {object} AudioURLResponse
// @Failure 404 {object} response.ErrorBody
// @Router /audios/{id_ficha} [get]
func (h *Handler) Get(c *gin.Context) {
	idFicha, err := utils.ParseID(c.Param("id_ficha"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	stored, err := h.service.Get(c.Request.Context(), idFicha)
	if err != nil {
		response.Fail(c, err)
		return
	}

	if stored.Data == nil {
		c.JSON(http.StatusOK, AudioURLResponse{IDFicha: idFicha, URLAudio: stored.URL})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="ficha_%d_audio"`, idFicha))
	c.Data(http.StatusOK, stored.ContentType, stored.Data)
}

func (h *Handler) bind(c *gin.Context) (*Input, error) {
	in := &Input{}
	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		if err := validator.BindJSON(c, &in.AudioRequest); err != nil {
			return nil, err
		}
		return in, nil
	}

	if err := validator.ParseMultipart(c, 32<<20); err != nil {
		return nil, err
	}
	if v, ok := c.GetPostForm("id_ficha"); ok {
		id, err := utils.ParseID(v)
		if err != nil {
			return nil, &validator.Error{Message: "id_ficha inválido", Fields: map[string]string{"id_ficha": "gt"}}
		}
		in.IDFicha = &id
	}
	if v, ok := c.GetPostForm("url_audio"); ok {
		in.URLAudio = &v
	}
	if v, ok := c.GetPostForm("archivo_base64"); ok {
		in.ArchivoBase64 = &v
	}
	if fields := validator.Validate(&in.AudioRequest); fields != nil {
		return nil, &validator.Error{Message: "datos inválidos", Fields: fields}
	}

	fh, err := c.FormFile("file")
	switch {
	case err == nil:
		p, err := h.service.Extractor().FromMultipart(fh)
		if err != nil {
			return nil, err
		}
		in.File = p
	case errors.Is(err, http.ErrMissingFile):
	default:
		return nil, &validator.Error{Message: "archivo inválido: " + err.Error()}
	}
	return in, nil
}
