package control

import (
	"context"

	"chagual/internal/database"
	"chagual/internal/gateway"
)

// Repository is the control data access used by the handler.
type Repository interface {
	Create(ctx context.Context, estado string) (int64, error)
	List(ctx context.Context) ([]map[string]any, error)
	UpdateEstado(ctx context.Context, id int64, estado string) error
	Delete(ctx context.Context, id int64) error
}

type gatewayRepository struct {
	gw *gateway.Gateway
}

// NewRepository calls the control procedures through gw.
func NewRepository(gw *gateway.Gateway) Repository {
	return &gatewayRepository{gw: gw}
}

func (r *gatewayRepository) Create(ctx context.Context, estado string) (int64, error) {
	var id int64
	err := r.gw.Write(ctx, "control.create", func(s *gateway.Session) error {
		if _, err := s.Exec(database.NewCall("insertar_control", database.P("estado", estado))); err != nil {
			return err
		}
		var err error
		id, err = s.LastInsertID()
		return err
	})
	return id, err
}

func (r *gatewayRepository) List(ctx context.Context) ([]map[string]any, error) {
	var rows []gateway.Row
	err := r.gw.Read(ctx, "control.list", func(s *gateway.Session) error {
		var err error
		rows, err = s.Query(database.NewCall("listar_control"))
		return err
	})
	if err != nil {
		return nil, err
	}
	return gateway.Maps(rows), nil
}

func (r *gatewayRepository) UpdateEstado(ctx context.Context, id int64, estado string) error {
	return r.gw.Write(ctx, "control.update", func(s *gateway.Session) error {
		_, err := s.Exec(database.NewCall("actualizar_control",
			database.P("id", id),
			database.P("estado", estado)))
		return err
	})
}

func (r *gatewayRepository) Delete(ctx context.Context, id int64) error {
	return r.gw.Write(ctx, "control.delete", func(s *gateway.Session) error {
		_, err := s.Exec(database.NewCall("eliminar_control", database.P("id", id)))
		return err
	})
}
