package repository

import "context"

// UnitOfWork agrupa los repositorios de una operación lógica bajo una sola frontera transaccional.
// Cada accesor devuelve siempre la misma instancia durante la vida de la unidad de trabajo.
// No es seguro para uso concurrente: una unidad de trabajo pertenece a una sola operación.
type UnitOfWork interface {
	Products() ProductRepository
	Warehouses() WarehouseRepository
	Stocks() StockRepository
	Users() UserRepository

	// BeginTransaction abre una transacción explícita. Devuelve domain.ErrTransactionInProgress
	// si ya hay una abierta.
	BeginTransaction(ctx context.Context) error
	// SaveChanges escribe los cambios pendientes y devuelve las filas afectadas.
	// No abre ni cierra la transacción explícita.
	SaveChanges(ctx context.Context) (int64, error)
	// CommitTransaction escribe los cambios pendientes y confirma la transacción.
	// Si algo falla, la transacción se revierte y se cierra antes de devolver el error.
	CommitTransaction(ctx context.Context) error
	// RollbackTransaction descarta los cambios pendientes y cierra la transacción (idempotente).
	RollbackTransaction(ctx context.Context) error
	// Close libera la conexión subyacente. Es seguro llamarlo varias veces.
	Close() error
}

// UnitOfWorkFactory crea una unidad de trabajo por operación.
type UnitOfWorkFactory interface {
	New(ctx context.Context) (UnitOfWork, error)
}
