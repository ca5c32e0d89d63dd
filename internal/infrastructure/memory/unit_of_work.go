package memory

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.UnitOfWork = (*UnitOfWork)(nil)

type change struct {
	key   any
	apply func(st *state) (int64, error)
}

// UnitOfWork implementación en memoria. Una transacción abierta retiene el permiso de escritura
// del Store hasta Commit o Rollback, de modo que las transferencias concurrentes se serializan.
type UnitOfWork struct {
	store   *Store
	tx      *state
	pending []change
	closed  bool

	products   *productRepo
	warehouses *warehouseRepo
	stocks     *stockRepo
	users      *userRepo
}

// Products devuelve el repositorio de productos de esta unidad de trabajo.
func (u *UnitOfWork) Products() repository.ProductRepository {
	if u.products == nil {
		u.products = &productRepo{uow: u}
	}
	return u.products
}

// Warehouses devuelve el repositorio de bodegas de esta unidad de trabajo.
func (u *UnitOfWork) Warehouses() repository.WarehouseRepository {
	if u.warehouses == nil {
		u.warehouses = &warehouseRepo{uow: u}
	}
	return u.warehouses
}

// Stocks devuelve el repositorio de stock de esta unidad de trabajo.
func (u *UnitOfWork) Stocks() repository.StockRepository {
	if u.stocks == nil {
		u.stocks = &stockRepo{uow: u}
	}
	return u.stocks
}

// Users devuelve el repositorio de usuarios de esta unidad de trabajo.
func (u *UnitOfWork) Users() repository.UserRepository {
	if u.users == nil {
		u.users = &userRepo{uow: u}
	}
	return u.users
}

// BeginTransaction toma el permiso de escritura y trabaja sobre una copia del estado.
func (u *UnitOfWork) BeginTransaction(ctx context.Context) error {
	if u.tx != nil {
		return domain.ErrTransactionInProgress
	}
	if err := u.store.lockWrites(ctx); err != nil {
		return err
	}
	u.tx = u.store.snapshot()
	return nil
}

// SaveChanges aplica los cambios pendientes de forma atómica.
func (u *UnitOfWork) SaveChanges(ctx context.Context) (int64, error) {
	if len(u.pending) == 0 {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if u.tx != nil {
		next, n, err := u.flush(u.tx)
		if err != nil {
			return 0, err
		}
		u.tx = next
		return n, nil
	}

	if err := u.store.lockWrites(ctx); err != nil {
		return 0, err
	}
	defer u.store.unlockWrites()
	next, n, err := u.flush(u.store.snapshot())
	if err != nil {
		return 0, err
	}
	u.store.publish(next)
	return n, nil
}

// CommitTransaction aplica los cambios pendientes y publica el estado de la transacción.
func (u *UnitOfWork) CommitTransaction(ctx context.Context) error {
	if u.tx == nil {
		_, err := u.SaveChanges(ctx)
		return err
	}
	if _, err := u.SaveChanges(ctx); err != nil {
		_ = u.RollbackTransaction(ctx)
		return err
	}
	u.store.publish(u.tx)
	u.tx = nil
	u.store.unlockWrites()
	return nil
}

// RollbackTransaction descarta la copia de trabajo y libera el permiso de escritura.
func (u *UnitOfWork) RollbackTransaction(_ context.Context) error {
	u.pending = nil
	if u.tx == nil {
		return nil
	}
	u.tx = nil
	u.store.unlockWrites()
	return nil
}

// Close revierte una transacción abierta. Es seguro llamarlo varias veces.
func (u *UnitOfWork) Close() error {
	if u.closed {
		return nil
	}
	u.closed = true
	return u.RollbackTransaction(context.Background())
}

func (u *UnitOfWork) register(c change) {
	for _, p := range u.pending {
		if p.key == c.key {
			return
		}
	}
	u.pending = append(u.pending, c)
}

// flush aplica los cambios sobre un clon de base; base no se modifica si algo falla.
func (u *UnitOfWork) flush(base *state) (*state, int64, error) {
	next := base.clone()
	var total int64
	for _, c := range u.pending {
		n, err := c.apply(next)
		if err != nil {
			return nil, 0, err
		}
		total += n
	}
	u.pending = nil
	return next, total, nil
}

// read ejecuta fn sobre la copia de la transacción o sobre el estado confirmado.
func (u *UnitOfWork) read(ctx context.Context, fn func(st *state)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if u.tx != nil {
		fn(u.tx)
		return nil
	}
	u.store.read(fn)
	return nil
}
