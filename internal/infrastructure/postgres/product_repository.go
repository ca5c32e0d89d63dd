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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, code, description`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	uow *UnitOfWork
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.getOne(ctx, "get product", query, id)
}

// GetByCode obtiene un producto por código (coincidencia exacta).
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE code = $1`
	return r.getOne(ctx, "get product by code", query, code)
}

// GetAll lista todos los productos.
func (r *ProductRepo) GetAll(ctx context.Context) ([]*entity.Product, error) {
	return r.Find(ctx, entity.ProductFilter{})
}

// Find lista productos que cumplen el filtro.
func (r *ProductRepo) Find(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	var w where
	if len(filter.Codes) > 0 {
		w.add("code = ANY($%d)", filter.Codes)
	}
	rows, err := r.uow.querier().Query(ctx, `SELECT `+productColumns+` FROM products`+w.String()+` ORDER BY id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Description); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Add registra la inserción; el ID se asigna al guardar.
func (r *ProductRepo) Add(_ context.Context, p *entity.Product) error {
	r.uow.register(change{key: p, apply: func(ctx context.Context, q Querier) (int64, error) {
		if err := p.Validate(); err != nil {
			return 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		err := q.QueryRow(ctx,
			`INSERT INTO products (code, description) VALUES ($1, $2) RETURNING id`,
			p.Code, p.Description,
		).Scan(&p.ID)
		if err != nil {
			return 0, translateError("insert product", err, domain.ErrAlreadyExists)
		}
		return 1, nil
	}})
	return nil
}

// Update registra la actualización de la descripción (el código es inmutable).
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.uow.register(change{key: p, apply: func(ctx context.Context, q Querier) (int64, error) {
		if err := p.Validate(); err != nil {
			return 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		cmd, err := q.Exec(ctx, `UPDATE products SET description = $2 WHERE id = $1`, p.ID, p.Description)
		if err != nil {
			return 0, translateError("update product", err, domain.ErrAlreadyExists)
		}
		return cmd.RowsAffected(), nil
	}})
	return nil
}

func (r *ProductRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.uow.querier().QueryRow(ctx, query, arg).Scan(&p.ID, &p.Code, &p.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}
