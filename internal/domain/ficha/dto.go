package ficha

// FichaFields are the survey fields shared by create and update. Optional
// fields left out of the body are stored as NULL.
type FichaFields struct {
	Codigo                      *string  `json:"codigo" validate:"required,min=1,max=50"`
	TelefonoContacto            *string  `json:"telefono_contacto" validate:"omitempty,max=20"`
	CentroPoblado               *string  `json:"centro_poblado" validate:"omitempty,max=150"`
	NombresApellidos            *string  `json:"nombres_apellidos" validate:"omitempty,max=200"`
	DNI                         *string  `json:"dni" validate:"omitempty,max=15"`
	Audio                       *string  `json:"audio"`
	UsoAreaAfectada             *string  `json:"uso_area_afectada"`
	TenenciaEdificacion         *string  `json:"tenencia_edificacion"`
	TotalAmbientes              *int64   `json:"total_ambientes" validate:"omitempty,gte=0"`
	AniosConstruccion           *int64   `json:"anios_construccion" validate:"omitempty,gte=0"`
	AguaUtilizada               *string  `json:"agua_utilizada"`
	TieneDesague                *string  `json:"tiene_desague"`
	NecesidadesFisiologicas     *string  `json:"necesidades_fisiologicas"`
	TipoAlumbrado               *string  `json:"tipo_alumbrado"`
	ServiciosEdificacion        *string  `json:"servicios_edificacion"`
	NivelEstudio                *string  `json:"nivel_estudio"`
	CentrosEducativos           *string  `json:"centros_educativos"`
	TiempoAcceso                *string  `json:"tiempo_acceso"`
	SintomasRecientes           *string  `json:"sintomas_recientes"`
	CentroSaludCercano          *string  `json:"centro_salud_cercano"`
	TiempoDemoraEstablecimiento *string  `json:"tiempo_demora_establecimiento"`
	AtencionEnfermedad          *string  `json:"atencion_enfermedad"`
	OcupacionPrincipal          *string  `json:"ocupacion_principal"`
	OcupacionSecundaria         *string  `json:"ocupacion_secundaria"`
	FrecuenciaIngreso           *string  `json:"frecuencia_ingreso"`
	TipoRiego                   *string  `json:"tipo_riego"`
	ProduccionAgricola          *string  `json:"produccion_agricola"`
	ProduccionPecuaria          *string  `json:"produccion_pecuaria"`
	VendeCultivos               *string  `json:"vende_cultivos"`
	Latitud                     *float64 `json:"latitud" validate:"omitempty,gte=-90,lte=90"`
	Longitud                    *float64 `json:"longitud" validate:"omitempty,gte=-180,lte=180"`
	Altitud                     *float64 `json:"altitud"`
	PrecisionGPS                *float64 `json:"precision_gps" validate:"omitempty,gte=0"`
	RegistroDigitalDNI          *string  `json:"registro_digital_dni"`
}

// CreateFichaRequest is the body of POST /fichas.
type CreateFichaRequest struct {
	IDControl *int64 `json:"id_control" validate:"required,gt=0"`
	FichaFields
}

// UpdateFichaRequest is the body of PUT /fichas/:id. id_control is
// accepted so clients can send the record they created, but a ficha never
// moves to another control.
type UpdateFichaRequest struct {
	IDControl *int64 `json:"id_control" validate:"omitempty,gt=0"`
	FichaFields
}

type CreateFichaResponse struct {
	Message string `json:"message"`
	IDFicha int64  `json:"id_ficha"`
}

const (
	msgCreated = "Datos de la ficha sincronizados correctamente"
	msgUpdated = "Ficha actualizada correctamente"
	msgDeleted = "Ficha eliminada correctamente"
)
