package ficha

import (
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

// List handles GET /fichas
// @Summary List fichas
// @Description Binary audio is returned base64 encoded
// @Tags Fichas
// @Produce json
// @Success 200 {array} object
// @Failure 400 {object} response.ErrorBody
// @Router /fichas [get]
func (h *Handler) List(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.List(c, rows)
}

// Create handles POST /fichas
// @Summary Register ficha
// @Tags Fichas
// @Accept json
// @Produce json
// @Param request body CreateFichaRequest true "Ficha"
// @Success 201 {object} CreateFichaResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /fichas [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateFichaRequest
	if err := validator.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}

	id, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, CreateFichaResponse{Message: msgCreated, IDFicha: id})
}

// Update handles PUT /fichas/:id
// @Summary Replace ficha fields
// @Description Every field is written; omitted optional fields become NULL
// @Tags Fichas
// @Accept json
// @Produce json
// @Param id path int true "Ficha ID"
// @Param request body UpdateFichaRequest true "Ficha"
// @Success 200 {object} object
// @Failure 400 {object} response.ErrorBody
// @Router /fichas/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	var req UpdateFichaRequest
	if err := validator.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}

	if err := h.service.Update(c.Request.Context(), id, &req); err != nil {
		response.Fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, msgUpdated, nil)
}

// Delete handles DELETE /fichas/:id
// @Summary Delete ficha
// @Tags Fichas
// @Produce json
// @Param id path int true "Ficha ID"
// @Success 200 {object} object
// @Failure 400 {object} response.ErrorBody
// @Router /fichas/{id} [delete]
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
