package main

import (
	"context"
	"fmt"
	"math/rand"

	"chagual/internal/config"
	"chagual/internal/database"
	"chagual/internal/domain/control"
	"chagual/internal/domain/ficha"
	"chagual/internal/domain/foto"
	"chagual/internal/gateway"
	"chagual/internal/logging"
)

const (
	numControles     = 3
	fichasPorControl = 4
)

var (
	centrosPoblados = []string{"Chagual", "Pueblo Nuevo", "Vijus", "Alpamarca", "Tayabamba"}
	nombres         = []string{"Rosa Quispe Mamani", "Juan Huaman Flores", "Maria Condori Rojas", "Pedro Ccallo Inga", "Lucia Yupanqui Soto"}
	riegos          = []string{"Gravedad", "Aspersión", "Goteo", "Secano"}
	ocupaciones     = []string{"Agricultor", "Ganadero", "Minero artesanal", "Comerciante"}
	alumbrados      = []string{"Red pública", "Panel solar", "Vela", "Mechero"}
	tiposFoto       = []string{"fachada", "interior", "afectacion"}
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	ctx := context.Background()
	db, dialect, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("DB connection failed")
	}
	defer database.Close(db)

	if err := database.Migrate(ctx, db, dialect); err != nil {
		logging.Fatal().Err(err).Msg("migrate failed")
	}

	gw := gateway.New(db, dialect, gateway.WithCallTimeout(cfg.Database.CallTimeout))
	controles := control.NewRepository(gw)
	fichas := ficha.NewRepository(gw)
	fotos := foto.NewRepository(gw)

	var nFichas, nFotos int
	for c := 0; c < numControles; c++ {
		idControl, err := controles.Create(ctx, control.EstadoBorrador)
		if err != nil {
			logging.Fatal().Err(err).Msg("create control failed")
		}

		for i := 0; i < fichasPorControl; i++ {
			codigo := fmt.Sprintf("CH-%02d-%03d", idControl, i+1)
			idFicha, err := fichas.Create(ctx, idControl, randomFicha(codigo))
			if err != nil {
				logging.Fatal().Err(err).Str("codigo", codigo).Msg("create ficha failed")
			}
			nFichas++

			for f := 0; f < rand.Intn(3); f++ {
				url := fmt.Sprintf("https://picsum.photos/seed/%s-%d/800/600", codigo, f)
				if _, err := fotos.Create(ctx, idFicha, url, pick(tiposFoto), "seed"); err != nil {
					logging.Fatal().Err(err).Int64("id_ficha", idFicha).Msg("create foto failed")
				}
				nFotos++
			}
		}

		if c == numControles-1 {
			if err := controles.UpdateEstado(ctx, idControl, control.EstadoEnviado); err != nil {
				logging.Fatal().Err(err).Msg("update control failed")
			}
		}
	}

	logging.Info().
		Int("controles", numControles).
		Int("fichas", nFichas).
		Int("fotos", nFotos).
		Msg("seed completed")
}

func randomFicha(codigo string) *ficha.Ficha {
	lat := -7.80 - rand.Float64()*0.1
	lng := -77.60 - rand.Float64()*0.1
	alt := 1100 + rand.Float64()*900
	precision := 3 + rand.Float64()*12
	ambientes := int64(1 + rand.Intn(6))
	anios := int64(rand.Intn(40))

	return &ficha.Ficha{FichaFields: ficha.FichaFields{
		Codigo:             &codigo,
		CentroPoblado:      ptr(pick(centrosPoblados)),
		NombresApellidos:   ptr(pick(nombres)),
		DNI:                ptr(fmt.Sprintf("%08d", rand.Intn(100000000))),
		TelefonoContacto:   ptr(fmt.Sprintf("9%08d", rand.Intn(100000000))),
		TotalAmbientes:     &ambientes,
		AniosConstruccion:  &anios,
		TipoAlumbrado:      ptr(pick(alumbrados)),
		TipoRiego:          ptr(pick(riegos)),
		OcupacionPrincipal: ptr(pick(ocupaciones)),
		Latitud:            &lat,
		Longitud:           &lng,
		Altitud:            &alt,
		PrecisionGPS:       &precision,
	}}
}

func pick(xs []string) string { return xs[rand.Intn(len(xs))] }

func ptr[T any](v T) *T { return &v }
