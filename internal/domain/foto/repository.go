package foto

import (
	"context"

	"chagual/internal/database"
	"chagual/internal/gateway"
)

// Repository stores photos. foto is the stored representation of the
// image: raw bytes or a URL.
type Repository interface {
	Create(ctx context.Context, idFicha int64, foto, tipo, origen any) (int64, error)
	ListByFicha(ctx context.Context, idFicha int64) ([]gateway.Row, error)
	Update(ctx context.Context, id int64, foto, tipo, origen any) error
	Delete(ctx context.Context, id int64) error
}

type gatewayRepository struct {
	gw *gateway.Gateway
}

func NewRepository(gw *gateway.Gateway) Repository {
	return &gatewayRepository{gw: gw}
}

func (r *gatewayRepository) Create(ctx context.Context, idFicha int64, foto, tipo, origen any) (int64, error) {
	var id int64
	err := r.gw.Write(ctx, "foto.create", func(s *gateway.Session) error {
		_, err := s.Exec(database.NewCall("insertar_ficha_foto",
			database.P("id_ficha", idFicha),
			database.P("url_foto", foto),
			database.P("tipo_foto", tipo),
			database.P("origen", origen)))
		if err != nil {
			return err
		}
		id, err = s.LastInsertID()
		return err
	})
	return id, err
}

func (r *gatewayRepository) ListByFicha(ctx context.Context, idFicha int64) ([]gateway.Row, error) {
	var rows []gateway.Row
	err := r.gw.Read(ctx, "foto.list", func(s *gateway.Session) error {
		var err error
		rows, err = s.Query(database.NewCall("listar_ficha_foto", database.P("id_ficha", idFicha)))
		return err
	})
	return rows, err
}

func (r *gatewayRepository) Update(ctx context.Context, id int64, foto, tipo, origen any) error {
	return r.gw.Write(ctx, "foto.update", func(s *gateway.Session) error {
		_, err := s.Exec(database.NewCall("actualizar_ficha_foto",
			database.P("id", id),
			database.P("url", foto),
			database.P("tipo", tipo),
			database.P("origen", origen)))
		return err
	})
}

func (r *gatewayRepository) Delete(ctx context.Context, id int64) error {
	return r.gw.Write(ctx, "foto.delete", func(s *gateway.Session) error {
		_, err := s.Exec(database.NewCall("eliminar_ficha_foto", database.P("id", id)))
		return err
	})
}
