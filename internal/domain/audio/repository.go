package audio

import (
	"context"

	"chagual/internal/database"
	"chagual/internal/gateway"
)

type Repository interface {
	// Save stores audio (bytes or URL) on the ficha. It returns
	// ErrFichaNotFound when the call touched no row. MySQL counts the
	// procedure's last statement; PostgreSQL does not count and the
	// procedure is expected to raise no_data_found (P0002) instead.
	Save(ctx context.Context, idFicha int64, audio any) error
	// Get returns the stored audio column, ok=false when there is none.
	Get(ctx context.Context, idFicha int64) (row gateway.Row, ok bool, err error)
}

type gatewayRepository struct {
	gw *gateway.Gateway
}

func NewRepository(gw *gateway.Gateway) Repository {
	return &gatewayRepository{gw: gw}
}

func (r *gatewayRepository) Save(ctx context.Context, idFicha int64, audio any) error {
	return r.gw.Write(ctx, "audio.save", func(s *gateway.Session) error {
		n, err := s.Exec(database.NewCall("guardar_audio_ficha",
			database.P("id_ficha", idFicha),
			database.P("audio", audio)))
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrFichaNotFound
		}
		return nil
	})
}

func (r *gatewayRepository) Get(ctx context.Context, idFicha int64) (gateway.Row, bool, error) {
	var rows []gateway.Row
	err := r.gw.Read(ctx, "audio.get", func(s *gateway.Session) error {
		var err error
		rows, err = s.Query(database.NewCall("obtener_audio_ficha", database.P("id_ficha", idFicha)))
		return err
	})
	if err != nil || len(rows) == 0 {
		return gateway.Row{}, false, err
	}
	return rows[0], true, nil
}
