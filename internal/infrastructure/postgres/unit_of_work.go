package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/rs/zerolog"
)

var (
	_ repository.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
	_ repository.UnitOfWork        = (*UnitOfWork)(nil)
)

// UnitOfWorkFactory crea unidades de trabajo, cada una con su propia conexión del pool.
type UnitOfWorkFactory struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewUnitOfWorkFactory construye la fábrica con el pool.
func NewUnitOfWorkFactory(pool *pgxpool.Pool, log zerolog.Logger) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{pool: pool, log: log}
}

// New adquiere una conexión del pool; la conexión se devuelve en UnitOfWork.Close.
func (f *UnitOfWorkFactory) New(ctx context.Context) (repository.UnitOfWork, error) {
	conn, err := f.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return &UnitOfWork{conn: conn, log: f.log}, nil
}

// change es una escritura pendiente. apply lee los campos de la entidad en el momento del flush.
type change struct {
	key   any
	apply func(ctx context.Context, q Querier) (int64, error)
}

// UnitOfWork implementación sobre una conexión PostgreSQL dedicada.
type UnitOfWork struct {
	conn    *pgxpool.Conn
	tx      pgx.Tx
	pending []change
	log     zerolog.Logger
	closed  bool

	products   *ProductRepo
	warehouses *WarehouseRepo
	stocks     *StockRepo
	users      *UserRepo
}

// Products devuelve el repositorio de productos de esta unidad de trabajo.
func (u *UnitOfWork) Products() repository.ProductRepository {
	if u.products == nil {
		u.products = &ProductRepo{uow: u}
	}
	return u.products
}

// Warehouses devuelve el repositorio de bodegas de esta unidad de trabajo.
func (u *UnitOfWork) Warehouses() repository.WarehouseRepository {
	if u.warehouses == nil {
		u.warehouses = &WarehouseRepo{uow: u}
	}
	return u.warehouses
}

// Stocks devuelve el repositorio de stock de esta unidad de trabajo.
func (u *UnitOfWork) Stocks() repository.StockRepository {
	if u.stocks == nil {
		u.stocks = &StockRepo{uow: u}
	}
	return u.stocks
}

// Users devuelve el repositorio de usuarios de esta unidad de trabajo.
func (u *UnitOfWork) Users() repository.UserRepository {
	if u.users == nil {
		u.users = &UserRepo{uow: u}
	}
	return u.users
}

// BeginTransaction abre una transacción READ COMMITTED; las lecturas de stock usan FOR UPDATE.
func (u *UnitOfWork) BeginTransaction(ctx context.Context) error {
	if u.tx != nil {
		return domain.ErrTransactionInProgress
	}
	tx, err := u.conn.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	u.tx = tx
	return nil
}

// SaveChanges escribe los cambios pendientes. Fuera de una transacción explícita
// el flush corre en una transacción corta propia.
func (u *UnitOfWork) SaveChanges(ctx context.Context) (int64, error) {
	if len(u.pending) == 0 {
		return 0, nil
	}
	if u.tx != nil {
		return u.flush(ctx, u.tx)
	}

	tx, err := u.conn.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	n, err := u.flush(ctx, tx)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, translateError("commit transaction", err, domain.ErrConflict)
	}
	return n, nil
}

// CommitTransaction escribe los cambios pendientes y confirma. Ante cualquier error revierte.
func (u *UnitOfWork) CommitTransaction(ctx context.Context) error {
	if u.tx == nil {
		_, err := u.SaveChanges(ctx)
		return err
	}
	if _, err := u.flush(ctx, u.tx); err != nil {
		if rbErr := u.RollbackTransaction(ctx); rbErr != nil {
			u.log.Warn().Err(rbErr).Msg("rollback tras fallo de flush")
		}
		return err
	}
	tx := u.tx
	u.tx = nil
	if err := tx.Commit(ctx); err != nil {
		// pgx cierra la transacción aunque el commit falle.
		u.pending = nil
		return translateError("commit transaction", err, domain.ErrConflict)
	}
	return nil
}

// RollbackTransaction descarta cambios pendientes y la transacción abierta, si la hay.
func (u *UnitOfWork) RollbackTransaction(ctx context.Context) error {
	u.pending = nil
	if u.tx == nil {
		return nil
	}
	tx := u.tx
	u.tx = nil
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("rollback transaction: %w", err)
	}
	return nil
}

// Close revierte una transacción abierta y devuelve la conexión al pool.
func (u *UnitOfWork) Close() error {
	if u.closed {
		return nil
	}
	u.closed = true
	var err error
	if u.tx != nil {
		err = u.RollbackTransaction(context.Background())
	}
	u.conn.Release()
	return err
}

func (u *UnitOfWork) querier() Querier {
	if u.tx != nil {
		return u.tx
	}
	return u.conn
}

func (u *UnitOfWork) inTransaction() bool {
	return u.tx != nil
}

// register agrega una escritura pendiente; una misma entidad se registra una sola vez.
func (u *UnitOfWork) register(c change) {
	for _, p := range u.pending {
		if p.key == c.key {
			return
		}
	}
	u.pending = append(u.pending, c)
}

func (u *UnitOfWork) flush(ctx context.Context, q Querier) (int64, error) {
	var total int64
	for _, c := range u.pending {
		n, err := c.apply(ctx, q)
		if err != nil {
			return total, err
		}
		total += n
	}
	u.pending = nil
	return total, nil
}
