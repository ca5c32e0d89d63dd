package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

const warehouseColumns = `id, code, name`

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	uow *UnitOfWork
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE id = $1`
	return r.getOne(ctx, "get warehouse", query, id)
}

// GetByCode obtiene una bodega por código (coincidencia exacta).
func (r *WarehouseRepo) GetByCode(ctx context.Context, code string) (*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE code = $1`
	return r.getOne(ctx, "get warehouse by code", query, code)
}

// GetAll lista todas las bodegas.
func (r *WarehouseRepo) GetAll(ctx context.Context) ([]*entity.Warehouse, error) {
	return r.Find(ctx, entity.WarehouseFilter{})
}

// Find lista bodegas que cumplen el filtro.
func (r *WarehouseRepo) Find(ctx context.Context, filter entity.WarehouseFilter) ([]*entity.Warehouse, error) {
	var w where
	if len(filter.Codes) > 0 {
		w.add("code = ANY($%d)", filter.Codes)
	}
	rows, err := r.uow.querier().Query(ctx, `SELECT `+warehouseColumns+` FROM warehouses`+w.String()+` ORDER BY id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var wh entity.Warehouse
		if err := rows.Scan(&wh.ID, &wh.Code, &wh.Name); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &wh)
	}
	return list, rows.Err()
}

// Add registra la inserción; el ID se asigna al guardar.
func (r *WarehouseRepo) Add(_ context.Context, w *entity.Warehouse) error {
	r.uow.register(change{key: w, apply: func(ctx context.Context, q Querier) (int64, error) {
		if err := w.Validate(); err != nil {
			return 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		err := q.QueryRow(ctx,
			`INSERT INTO warehouses (code, name) VALUES ($1, $2) RETURNING id`,
			w.Code, w.Name,
		).Scan(&w.ID)
		if err != nil {
			return 0, translateError("insert warehouse", err, domain.ErrAlreadyExists)
		}
		return 1, nil
	}})
	return nil
}

// Update registra la actualización del nombre (el código es inmutable).
func (r *WarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	r.uow.register(change{key: w, apply: func(ctx context.Context, q Querier) (int64, error) {
		if err := w.Validate(); err != nil {
			return 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		cmd, err := q.Exec(ctx, `UPDATE warehouses SET name = $2 WHERE id = $1`, w.ID, w.Name)
		if err != nil {
			return 0, translateError("update warehouse", err, domain.ErrAlreadyExists)
		}
		return cmd.RowsAffected(), nil
	}})
	return nil
}

func (r *WarehouseRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.Warehouse, error) {
	var wh entity.Warehouse
	err := r.uow.querier().QueryRow(ctx, query, arg).Scan(&wh.ID, &wh.Code, &wh.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &wh, nil
}
