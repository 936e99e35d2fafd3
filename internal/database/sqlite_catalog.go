package database

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// sqliteSchema mirrors the tables behind the production procedures.
// Media columns are declared BLOB so that rows report binary payloads as
// such; URLs stored in them still come back as text.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS controles (
		id_control INTEGER PRIMARY KEY AUTOINCREMENT,
		estado TEXT NOT NULL,
		fecha_borrador TEXT,
		hora_borrador TEXT,
		fecha_finalizado TEXT,
		hora_finalizado TEXT,
		fecha_enviado TEXT,
		hora_enviado TEXT,
		fecha_registro TEXT NOT NULL DEFAULT (datetime('now', 'localtime'))
	)`,
	`CREATE TABLE IF NOT EXISTS fichas (
		id_ficha INTEGER PRIMARY KEY AUTOINCREMENT,
		id_control INTEGER NOT NULL REFERENCES controles (id_control),
		codigo TEXT NOT NULL,
		telefono_contacto TEXT,
		centro_poblado TEXT,
		nombres_apellidos TEXT,
		dni TEXT,
		audio BLOB,
		uso_area_afectada TEXT,
		tenencia_edificacion TEXT,
		total_ambientes INTEGER,
		anios_construccion INTEGER,
		agua_utilizada TEXT,
		tiene_desague TEXT,
		necesidades_fisiologicas TEXT,
		tipo_alumbrado TEXT,
		servicios_edificacion TEXT,
		nivel_estudio TEXT,
		centros_educativos TEXT,
		tiempo_acceso TEXT,
		sintomas_recientes TEXT,
		centro_salud_cercano TEXT,
		tiempo_demora_establecimiento TEXT,
		atencion_enfermedad TEXT,
		ocupacion_principal TEXT,
		ocupacion_secundaria TEXT,
		frecuencia_ingreso TEXT,
		tipo_riego TEXT,
		produccion_agricola TEXT,
		produccion_pecuaria TEXT,
		vende_cultivos TEXT,
		latitud REAL,
		longitud REAL,
		altitud REAL,
		precision_gps REAL,
		registro_digital_dni TEXT,
		fecha_registro TEXT NOT NULL DEFAULT (datetime('now', 'localtime'))
	)`,
	`CREATE TABLE IF NOT EXISTS fotos (
		id_foto INTEGER PRIMARY KEY AUTOINCREMENT,
		id_ficha INTEGER NOT NULL REFERENCES fichas (id_ficha) ON DELETE CASCADE,
		url_foto BLOB NOT NULL,
		tipo_foto TEXT,
		origen TEXT,
		fecha_subida TEXT NOT NULL DEFAULT (datetime('now', 'localtime'))
	)`,
}

// fichaColumns lists the ficha fields after id_control in procedure order.
var fichaColumns = []string{
	"codigo", "telefono_contacto", "centro_poblado", "nombres_apellidos", "dni", "audio",
	"uso_area_afectada", "tenencia_edificacion", "total_ambientes",
	"anios_construccion", "agua_utilizada", "tiene_desague",
	"necesidades_fisiologicas", "tipo_alumbrado", "servicios_edificacion",
	"nivel_estudio", "centros_educativos", "tiempo_acceso",
	"sintomas_recientes", "centro_salud_cercano",
	"tiempo_demora_establecimiento", "atencion_enfermedad",
	"ocupacion_principal", "ocupacion_secundaria", "frecuencia_ingreso",
	"tipo_riego", "produccion_agricola", "produccion_pecuaria",
	"vende_cultivos", "latitud", "longitud", "altitud",
	"precision_gps", "registro_digital_dni",
}

// stamp sets the date/time pair of the status being entered and keeps the others.
func stamp(status, column string) string {
	return fmt.Sprintf(
		"fecha_%[2]s = CASE WHEN @estado = '%[1]s' THEN date('now', 'localtime') ELSE fecha_%[2]s END, "+
			"hora_%[2]s = CASE WHEN @estado = '%[1]s' THEN time('now', 'localtime') ELSE hora_%[2]s END",
		status, column)
}

var sqliteCatalog = map[string]string{
	"insertar_control": `INSERT INTO controles (estado, fecha_borrador, hora_borrador)
		VALUES (@estado ,
			CASE WHEN @estado = 'BORRADOR' THEN date('now', 'localtime') END,
			CASE WHEN @estado = 'BORRADOR' THEN time('now', 'localtime') END)`,
	"listar_control": `SELECT id_control, estado, fecha_borrador, hora_borrador,
		fecha_finalizado, hora_finalizado, fecha_enviado, hora_enviado, fecha_registro
		FROM controles ORDER BY id_control`,
	"actualizar_control": "UPDATE controles SET estado = @estado , " +
		stamp("BORRADOR", "borrador") + ", " +
		stamp("FINALIZADO", "finalizado") + ", " +
		stamp("ENVIADO", "enviado") +
		" WHERE id_control = @id",
	"eliminar_control": `DELETE FROM controles WHERE id_control = @id`,

	"listar_ficha_chagual":     `SELECT * FROM fichas ORDER BY id_ficha`,
	"insertar_ficha_chagual":   insertFicha(),
	"actualizar_ficha_chagual": updateFicha(),
	"eliminar_ficha_chagual":   `DELETE FROM fichas WHERE id_ficha = @id`,

	"insertar_ficha_foto": `INSERT INTO fotos (id_ficha, url_foto, tipo_foto, origen)
		VALUES (@id_ficha, @url_foto, @tipo_foto, @origen)`,
	"listar_ficha_foto": `SELECT id_foto, id_ficha, url_foto, tipo_foto, origen, fecha_subida
		FROM fotos WHERE id_ficha = @id_ficha ORDER BY id_foto`,
	"actualizar_ficha_foto": `UPDATE fotos SET url_foto = @url , tipo_foto = @tipo , origen = @origen
		WHERE id_foto = @id`,
	"eliminar_ficha_foto": `DELETE FROM fotos WHERE id_foto = @id`,

	"guardar_audio_ficha": `UPDATE fichas SET audio = @audio WHERE id_ficha = @id_ficha`,
	"obtener_audio_ficha": `SELECT id_ficha, audio FROM fichas WHERE id_ficha = @id_ficha`,
}

func insertFicha() string {
	cols := append([]string{"id_control"}, fichaColumns...)
	vals := make([]string, len(cols))
	for i, c := range cols {
		vals[i] = "@" + c
	}
	return "INSERT INTO fichas (" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(vals, ", ") + ")"
}

func updateFicha() string {
	sets := make([]string, len(fichaColumns))
	for i, c := range fichaColumns {
		sets[i] = c + " = @" + c
	}
	return "UPDATE fichas SET " + strings.Join(sets, ", ") + " WHERE id_ficha = @p_id_ficha"
}

// Migrate creates the development schema. It is a no-op for stores whose
// schema and procedures are managed outside this service.
func Migrate(ctx context.Context, db *gorm.DB, d Dialect) error {
	if d.Name() != "sqlite" {
		return nil
	}
	for _, ddl := range sqliteSchema {
		if err := db.WithContext(ctx).Exec(ddl).Error; err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
