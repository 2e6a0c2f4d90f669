package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dasava11/santuario-api-sub002/internal/domain/entity"
	"github.com/dasava11/santuario-api-sub002/internal/domain/repository"
)

var _ repository.ProviderRepository = (*ProviderRepo)(nil)

// ProviderRepo implementación de ProviderRepository sobre PostgreSQL (solo lectura).
type ProviderRepo struct {
	q Querier
}

// NewProviderRepository construye el adaptador de proveedores.
func NewProviderRepository(q Querier) *ProviderRepo {
	return &ProviderRepo{q: q}
}

// GetByID obtiene un proveedor por ID. Devuelve nil, nil si no existe.
func (r *ProviderRepo) GetByID(id string) (*entity.Provider, error) {
	query := `
		SELECT id, nombre, nit, email, telefono, activo, created_at, updated_at
		FROM proveedores WHERE id = $1`
	var p entity.Provider
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.NIT, &p.Email, &p.Phone, &p.Activo, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get provider: %w", err)
	}
	return &p, nil
}

// List lista proveedores con paginación.
func (r *ProviderRepo) List(limit, offset int) ([]*entity.Provider, error) {
	query := `
		SELECT id, nombre, nit, email, telefono, activo, created_at, updated_at
		FROM proveedores ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Provider
	for rows.Next() {
		var p entity.Provider
		if err := rows.Scan(
			&p.ID, &p.Name, &p.NIT, &p.Email, &p.Phone, &p.Activo, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan provider: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
