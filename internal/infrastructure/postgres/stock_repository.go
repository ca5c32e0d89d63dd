package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// Cada lectura trae producto y bodega en el mismo round trip.
const stockSelect = `
	SELECT s.product_id, s.warehouse_id, s.quantity,
	       p.id, p.code, p.description,
	       w.id, w.code, w.name
	FROM stock s
	JOIN products p ON p.id = s.product_id
	JOIN warehouses w ON w.id = s.warehouse_id`

// StockRepo implementación de StockRepository sobre PostgreSQL.
type StockRepo struct {
	uow *UnitOfWork
}

// Get obtiene la fila de stock de un producto en una bodega, o nil si no existe.
// Dentro de una transacción bloquea la fila (SELECT FOR UPDATE).
func (r *StockRepo) Get(ctx context.Context, productID, warehouseID int64) (*entity.Stock, error) {
	list, err := r.Find(ctx, entity.StockFilter{ProductID: productID, WarehouseID: warehouseID})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// GetAll lista todas las filas de stock.
func (r *StockRepo) GetAll(ctx context.Context) ([]*entity.Stock, error) {
	return r.Find(ctx, entity.StockFilter{})
}

// Find lista las filas de stock que cumplen el filtro.
func (r *StockRepo) Find(ctx context.Context, filter entity.StockFilter) ([]*entity.Stock, error) {
	var w where
	if filter.ProductID != 0 {
		w.add("s.product_id = $%d", filter.ProductID)
	}
	if filter.WarehouseID != 0 {
		w.add("s.warehouse_id = $%d", filter.WarehouseID)
	}
	query := stockSelect + w.String()
	if r.uow.inTransaction() {
		query += " FOR UPDATE OF s"
	}
	rows, err := r.uow.querier().Query(ctx, query, w.args...)
	if err != nil {
		return nil, translateError("list stock", err, domain.ErrConflict)
	}
	list, err := pgx.CollectRows(rows, scanStock)
	if err != nil {
		return nil, translateError("scan stock", err, domain.ErrConflict)
	}
	return list, nil
}

// Add registra la inserción de una fila nueva.
func (r *StockRepo) Add(_ context.Context, s *entity.Stock) error {
	r.uow.register(change{key: s, apply: func(ctx context.Context, q Querier) (int64, error) {
		if err := s.Validate(); err != nil {
			return 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		cmd, err := q.Exec(ctx,
			`INSERT INTO stock (product_id, warehouse_id, quantity, updated_at) VALUES ($1, $2, $3, now())`,
			s.ProductID, s.WarehouseID, s.Quantity,
		)
		if err != nil {
			return 0, translateError("insert stock", err, domain.ErrConflict)
		}
		return cmd.RowsAffected(), nil
	}})
	return nil
}

// Update registra la actualización de la cantidad.
func (r *StockRepo) Update(_ context.Context, s *entity.Stock) error {
	r.uow.register(change{key: s, apply: func(ctx context.Context, q Querier) (int64, error) {
		if err := s.Validate(); err != nil {
			return 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		cmd, err := q.Exec(ctx,
			`UPDATE stock SET quantity = $3, updated_at = now() WHERE product_id = $1 AND warehouse_id = $2`,
			s.ProductID, s.WarehouseID, s.Quantity,
		)
		if err != nil {
			return 0, translateError("update stock", err, domain.ErrConflict)
		}
		return cmd.RowsAffected(), nil
	}})
	return nil
}

func scanStock(row pgx.CollectableRow) (*entity.Stock, error) {
	var (
		s entity.Stock
		p entity.Product
		w entity.Warehouse
	)
	if err := row.Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity,
		&p.ID, &p.Code, &p.Description,
		&w.ID, &w.Code, &w.Name,
	); err != nil {
		return nil, err
	}
	s.Product = &p
	s.Warehouse = &w
	return &s, nil
}
