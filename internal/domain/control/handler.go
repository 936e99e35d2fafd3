package control

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chagual/internal/pkg/response"
	"chagual/internal/pkg/utils"
	"chagual/internal/pkg/validator"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// Create handles POST /controles
// @Summary Register control
// @Description Creates a control with the given estado (BORRADOR when omitted) and returns its id
// @Tags Controles
// @Accept json
// @Produce json
// @Param request body CreateControlRequest false "Initial estado"
// @Success 201 {object} CreateControlResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 503 {object} response.ErrorBody
// @Router /controles [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateControlRequest
	if err := validator.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}

	estado := EstadoBorrador
	if req.Estado != nil {
		estado = *req.Estado
	}

	id, err := h.repo.Create(c.Request.Context(), estado)
	if err != nil {
		response.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateControlResponse{Message: msgCreated, IDControl: id})
}

// List handles GET /controles
// @Summary List controls
// @Tags Controles
// @Produce json
// @Success 200 {array} object
// @Failure 400 {object} response.ErrorBody
// @Router /controles [get]
func (h *Handler) List(c *gin.Context) {
	rows, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.List(c, rows)
}

// Update handles PUT /controles/:id
// @Summary Change control estado
// @Tags Controles
// @Accept json
// @Produce json
// @Param id path int true "Control ID"
// @Param request body UpdateControlRequest true "New estado"
// @Success 200 {object} object
// @Failure 400 {object} response.ErrorBody
// @Router /controles/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	var req UpdateControlRequest
	if err := validator.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}

	if err := h.repo.UpdateEstado(c.Request.Context(), id, req.Estado); err != nil {
		response.Fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, msgUpdated, nil)
}

// Delete handles DELETE /controles/:id
// @Summary Delete control
// @Tags Controles
// @Produce json
// @Param id path int true "Control ID"
// @Success 200 {object} object
// @Failure 400 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /controles/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, msgDeleted, nil)
}
