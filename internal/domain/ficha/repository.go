package ficha

import (
	"context"

	"chagual/internal/database"
	"chagual/internal/gateway"
)

type Repository interface {
	Create(ctx context.Context, idControl int64, f *Ficha) (int64, error)
	List(ctx context.Context) ([]gateway.Row, error)
	Update(ctx context.Context, id int64, f *Ficha) error
	Delete(ctx context.Context, id int64) error
}

type gatewayRepository struct {
	gw *gateway.Gateway
}

func NewRepository(gw *gateway.Gateway) Repository {
	return &gatewayRepository{gw: gw}
}

func (r *gatewayRepository) Create(ctx context.Context, idControl int64, f *Ficha) (int64, error) {
	params := append([]database.Param{database.P("id_control", idControl)}, f.params()...)

	var id int64
	err := r.gw.Write(ctx, "ficha.create", func(s *gateway.Session) error {
		if _, err := s.Exec(database.NewCall("insertar_ficha_chagual", params...)); err != nil {
			return err
		}
		var err error
		id, err = s.LastInsertID()
		return err
	})
	return id, err
}

func (r *gatewayRepository) List(ctx context.Context) ([]gateway.Row, error) {
	var rows []gateway.Row
	err := r.gw.Read(ctx, "ficha.list", func(s *gateway.Session) error {
		var err error
		rows, err = s.Query(database.NewCall("listar_ficha_chagual"))
		return err
	})
	return rows, err
}

func (r *gatewayRepository) Update(ctx context.Context, id int64, f *Ficha) error {
	params := append([]database.Param{database.P("p_id_ficha", id)}, f.params()...)
	return r.gw.Write(ctx, "ficha.update", func(s *gateway.Session) error {
		_, err := s.Exec(database.NewCall("actualizar_ficha_chagual", params...))
		return err
	})
}

func (r *gatewayRepository) Delete(ctx context.Context, id int64) error {
	return r.gw.Write(ctx, "ficha.delete", func(s *gateway.Session) error {
		_, err := s.Exec(database.NewCall("eliminar_ficha_chagual", database.P("id", id)))
		return err
	})
}
