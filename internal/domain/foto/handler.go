package foto

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

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

// Create handles POST /fotos
// @Summary Link a photo to a ficha
// @Description multipart(id_ficha, file, tipo_foto, origen) or JSON(id_ficha, url_foto | archivo_base64, tipo_foto, origen)
// @Tags Fotos
// @Accept json,mpfd
// @Produce json
// @Param request body FotoRequest false "JSON body"
// @Success 201 {object} CreateFotoResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 413 {object} response.ErrorBody
// @Failure 502 {object} response.ErrorBody
// @Router /fotos [post]
func (h *Handler) Create(c *gin.Context) {
	in, err := h.bind(c)
	if err != nil {
		response.Fail(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		response.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateFotoResponse{
		Message: msgCreated,
		IDFoto:  created.ID,
		IDFicha: created.IDFicha,
		URLFoto: created.URL,
		Bytes:   created.Bytes,
	})
}

// ListByFicha handles GET /fotos/:id_ficha
// @Summary List the photos of a ficha
// @Description Inline photos are returned base64 encoded
// @Tags Fotos
// @Produce json
// @Param id_ficha path int true "Ficha ID"
// @Success 200 {array} object
// @Failure 400 {object} response.ErrorBody
// @Router /fotos/{id_ficha} [get]
func (h *Handler) ListByFicha(c *gin.Context) {
	idFicha, err := utils.ParseID(c.Param("id_ficha"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	rows, err := h.service.ListByFicha(c.Request.Context(), idFicha)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.List(c, rows)
}

// Update handles PUT /fotos/:id
// @Summary Replace a photo
// @Tags Fotos
// @Accept json,mpfd
// @Produce json
// @Param id path int true "Foto ID"
// @Param request body FotoRequest true "Photo"
// @Success 200 {object} object
// @Failure 400 {object} response.ErrorBody
// @Failure 502 {object} response.ErrorBody
// @Router /fotos/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	in, err := h.bind(c)
	if err != nil {
		response.Fail(c, err)
		return
	}

	if err := h.service.Update(c.Request.Context(), id, in); err != nil {
		response.Fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, msgUpdated, nil)
}

// Delete handles DELETE /fotos/:id
// @Summary Delete a photo
// @Tags Fotos
// @Produce json
// @Param id path int true "Foto ID"
// @Success 200 {object} object
// @Failure 400 {object} response.ErrorBody
// @Router /fotos/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, msgDeleted, nil)
}

func (h *Handler) bind(c *gin.Context) (*Input, error) {
	in := &Input{}
	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		if err := validator.BindJSON(c, &in.FotoRequest); err != nil {
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
	for name, dst := range map[string]**string{
		"url_foto":       &in.URLFoto,
		"archivo_base64": &in.ArchivoBase64,
		"tipo_foto":      &in.TipoFoto,
		"origen":         &in.Origen,
	} {
		if v, ok := c.GetPostForm(name); ok {
			*dst = &v
		}
	}
	if fields := validator.Validate(&in.FotoRequest); fields != nil {
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
