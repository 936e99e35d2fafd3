package ficha

import "chagual/internal/database"

// Ficha is a validated form ready for the store. AudioValue holds the
// stored representation of the audio: raw bytes, a URL, or nil.
type Ficha struct {
	FichaFields
	AudioValue any
}

// params lists the ficha values in the order the procedures declare them,
// after the leading key parameter.
func (f *Ficha) params() []database.Param {
	o := &f.FichaFields
	return []database.Param{
		database.P("codigo", database.Opt(o.Codigo)),
		database.P("telefono_contacto", database.Opt(o.TelefonoContacto)),
		database.P("centro_poblado", database.Opt(o.CentroPoblado)),
		database.P("nombres_apellidos", database.Opt(o.NombresApellidos)),
		database.P("dni", database.Opt(o.DNI)),
		database.P("audio", f.AudioValue),
		database.P("uso_area_afectada", database.Opt(o.UsoAreaAfectada)),
		database.P("tenencia_edificacion", database.Opt(o.TenenciaEdificacion)),
		database.P("total_ambientes", database.Opt(o.TotalAmbientes)),
		database.P("anios_construccion", database.Opt(o.AniosConstruccion)),
		database.P("agua_utilizada", database.Opt(o.AguaUtilizada)),
		database.P("tiene_desague", database.Opt(o.TieneDesague)),
		database.P("necesidades_fisiologicas", database.Opt(o.NecesidadesFisiologicas)),
		database.P("tipo_alumbrado", database.Opt(o.TipoAlumbrado)),
		database.P("servicios_edificacion", database.Opt(o.ServiciosEdificacion)),
		database.P("nivel_estudio", database.Opt(o.NivelEstudio)),
		database.P("centros_educativos", database.Opt(o.CentrosEducativos)),
		database.P("tiempo_acceso", database.Opt(o.TiempoAcceso)),
		database.P("sintomas_recientes", database.Opt(o.SintomasRecientes)),
		database.P("centro_salud_cercano", database.Opt(o.CentroSaludCercano)),
		database.P("tiempo_demora_establecimiento", database.Opt(o.TiempoDemoraEstablecimiento)),
		database.P("atencion_enfermedad", database.Opt(o.AtencionEnfermedad)),
		database.P("ocupacion_principal", database.Opt(o.OcupacionPrincipal)),
		database.P("ocupacion_secundaria", database.Opt(o.OcupacionSecundaria)),
		database.P("frecuencia_ingreso", database.Opt(o.FrecuenciaIngreso)),
		database.P("tipo_riego", database.Opt(o.TipoRiego)),
		database.P("produccion_agricola", database.Opt(o.ProduccionAgricola)),
		database.P("produccion_pecuaria", database.Opt(o.ProduccionPecuaria)),
		database.P("vende_cultivos", database.Opt(o.VendeCultivos)),
		database.P("latitud", database.Opt(o.Latitud)),
		database.P("longitud", database.Opt(o.Longitud)),
		database.P("altitud", database.Opt(o.Altitud)),
		database.P("precision_gps", database.Opt(o.PrecisionGPS)),
		database.P("registro_digital_dni", database.Opt(o.RegistroDigitalDNI)),
	}
}
