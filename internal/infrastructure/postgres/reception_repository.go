package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dasava11/santuario-api-sub002/internal/domain"
	"github.com/dasava11/santuario-api-sub002/internal/domain/entity"
	"github.com/dasava11/santuario-api-sub002/internal/domain/repository"
)

var _ repository.ReceptionRepository = (*ReceptionRepo)(nil)

const receptionColumns = `id, numero_factura, proveedor_id, usuario_id, total, estado, observaciones, fecha_recepcion, created_at, updated_at`

// ReceptionRepo implementación de ReceptionRepository sobre PostgreSQL
// (usable con pool o tx). La tabla recepciones tiene constraint único sobre
// (proveedor_id, numero_factura); la violación se mapea a ErrDuplicateInvoice.
type ReceptionRepo struct {
	q Querier
}

// NewReceptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceptionRepository(q Querier) *ReceptionRepo {
	return &ReceptionRepo{q: q}
}

// Create persiste cabecera y líneas. Llamar con el repo atado a una tx.
func (r *ReceptionRepo) Create(reception *entity.Reception, items []*entity.ReceptionItem) error {
	query := `
		INSERT INTO recepciones (` + receptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		reception.ID, reception.NumeroFactura, reception.ProviderID, reception.UserID,
		reception.Total, reception.Estado, reception.Observaciones, reception.FechaRecepcion,
		reception.CreatedAt, reception.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateInvoice
		}
		return fmt.Errorf("create reception: %w", err)
	}

	for _, item := range items {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO recepcion_detalles (id, recepcion_id, producto_id, cantidad, precio_unitario, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, item.ReceptionID, item.ProductID, item.Cantidad, item.PrecioUnitario, item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("create reception item: %w", err)
		}
	}
	return nil
}

func scanReception(row pgx.Row) (*entity.Reception, error) {
	var rec entity.Reception
	err := row.Scan(
		&rec.ID, &rec.NumeroFactura, &rec.ProviderID, &rec.UserID, &rec.Total,
		&rec.Estado, &rec.Observaciones, &rec.FechaRecepcion, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetByID obtiene una recepción por ID. Devuelve nil, nil si no existe.
func (r *ReceptionRepo) GetByID(id string) (*entity.Reception, error) {
	query := `SELECT ` + receptionColumns + ` FROM recepciones WHERE id = $1`
	rec, err := scanReception(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reception: %w", err)
	}
	return rec, nil
}

// GetForUpdate obtiene la recepción y bloquea su fila para la transición de estado.
func (r *ReceptionRepo) GetForUpdate(id string) (*entity.Reception, error) {
	query := `SELECT ` + receptionColumns + ` FROM recepciones WHERE id = $1 FOR UPDATE`
	rec, err := scanReception(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if isLockNotAvailable(err) {
			return nil, domain.ErrConcurrencyConflict
		}
		return nil, fmt.Errorf("get reception for update: %w", err)
	}
	return rec, nil
}

// GetItems devuelve las líneas de una recepción.
func (r *ReceptionRepo) GetItems(receptionID string) ([]*entity.ReceptionItem, error) {
	query := `
		SELECT id, recepcion_id, producto_id, cantidad, precio_unitario, subtotal
		FROM recepcion_detalles WHERE recepcion_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, receptionID)
	if err != nil {
		return nil, fmt.Errorf("get reception items: %w", err)
	}
	defer rows.Close()

	var items []*entity.ReceptionItem
	for rows.Next() {
		var item entity.ReceptionItem
		if err := rows.Scan(
			&item.ID, &item.ReceptionID, &item.ProductID,
			&item.Cantidad, &item.PrecioUnitario, &item.Subtotal,
		); err != nil {
			return nil, fmt.Errorf("scan reception item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// ExistsByProviderAndInvoice verifica unicidad de numero_factura por proveedor.
func (r *ReceptionRepo) ExistsByProviderAndInvoice(providerID, numeroFactura string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM recepciones WHERE proveedor_id = $1 AND numero_factura = $2)`,
		providerID, numeroFactura,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists reception by invoice: %w", err)
	}
	return exists, nil
}

// Update persiste estado, observaciones y updated_at. Las líneas son inmutables.
func (r *ReceptionRepo) Update(reception *entity.Reception) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE recepciones SET estado = $2, observaciones = $3, updated_at = $4 WHERE id = $1`,
		reception.ID, reception.Estado, reception.Observaciones, reception.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update reception: %w", err)
	}
	return nil
}

// List lista recepciones con filtros opcionales de estado y proveedor.
func (r *ReceptionRepo) List(estado, providerID string, limit, offset int) ([]*entity.Reception, error) {
	query := `SELECT ` + receptionColumns + ` FROM recepciones WHERE 1=1`
	args := []any{}
	pos := 1
	if estado != "" {
		query += fmt.Sprintf(" AND estado = $%d", pos)
		args = append(args, estado)
		pos++
	}
	if providerID != "" {
		query += fmt.Sprintf(" AND proveedor_id = $%d", pos)
		args = append(args, providerID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY fecha_recepcion DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list receptions: %w", err)
	}
	defer rows.Close()

	var list []*entity.Reception
	for rows.Next() {
		var rec entity.Reception
		if err := rows.Scan(
			&rec.ID, &rec.NumeroFactura, &rec.ProviderID, &rec.UserID, &rec.Total,
			&rec.Estado, &rec.Observaciones, &rec.FechaRecepcion, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan reception: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
