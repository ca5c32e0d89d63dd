package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// Repository es el puerto genérico de acceso a datos para una entidad T con filtro F.
// Las lecturas devuelven (nil, nil) cuando no hay resultado; los errores de almacenamiento se propagan.
// Add y Update registran cambios pendientes que se escriben en UnitOfWork.SaveChanges.
type Repository[T any, F any] interface {
	GetAll(ctx context.Context) ([]*T, error)
	Find(ctx context.Context, filter F) ([]*T, error)
	Add(ctx context.Context, e *T) error
	Update(ctx context.Context, e *T) error
}

// EntityRepository agrega la búsqueda por identidad sustituta.
type EntityRepository[T any, F any] interface {
	Repository[T, F]
	GetByID(ctx context.Context, id int64) (*T, error)
}

// CodeRepository agrega GetByCode; solo existe para entidades con código de negocio.
type CodeRepository[T entity.Coded, F any] interface {
	EntityRepository[T, F]
	GetByCode(ctx context.Context, code string) (*T, error)
}
