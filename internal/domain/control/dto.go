package control

// Estados a control moves through.
const (
	EstadoBorrador   = "BORRADOR"
	EstadoFinalizado = "FINALIZADO"
	EstadoEnviado    = "ENVIADO"
)

// CreateControlRequest is the body of POST /controles.
type CreateControlRequest struct {
	Estado *string `json:"estado" validate:"omitempty,oneof=BORRADOR FINALIZADO ENVIADO"`
}

// UpdateControlRequest is the body of PUT /controles/:id.
type UpdateControlRequest struct {
	Estado string `json:"estado" validate:"required,oneof=BORRADOR FINALIZADO ENVIADO"`
}

// CreateControlResponse is returned once a control is registered.
type CreateControlResponse struct {
	Message   string `json:"message"`
	IDControl int64  `json:"id_control"`
}

const (
	msgCreated = "Control registrado correctamente"
	msgUpdated = "Estado del control actualizado exitosamente"
	msgDeleted = "Control eliminado correctamente"
)
