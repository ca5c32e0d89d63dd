package repository

import "github.com/jhoicas/stock-ledger/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	EntityRepository[entity.User, entity.UserFilter]
}
