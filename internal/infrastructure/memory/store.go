// Package memory implementa las unidades de trabajo sobre un almacén en memoria.
// Se usa con STORAGE_DRIVER=memory y en los tests de los casos de uso.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.UnitOfWorkFactory = (*Store)(nil)

type stockKey struct {
	productID   int64
	warehouseID int64
}

// state es una foto completa de los datos. Las transacciones trabajan sobre un clon.
type state struct {
	products   map[int64]entity.Product
	warehouses map[int64]entity.Warehouse
	stock      map[stockKey]int64
	users      map[int64]entity.User

	nextProductID   int64
	nextWarehouseID int64
	nextUserID      int64
}

func newState() *state {
	return &state{
		products:   make(map[int64]entity.Product),
		warehouses: make(map[int64]entity.Warehouse),
		stock:      make(map[stockKey]int64),
		users:      make(map[int64]entity.User),
	}
}

func (s *state) clone() *state {
	c := &state{
		products:        make(map[int64]entity.Product, len(s.products)),
		warehouses:      make(map[int64]entity.Warehouse, len(s.warehouses)),
		stock:           make(map[stockKey]int64, len(s.stock)),
		users:           make(map[int64]entity.User, len(s.users)),
		nextProductID:   s.nextProductID,
		nextWarehouseID: s.nextWarehouseID,
		nextUserID:      s.nextUserID,
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

func (s *state) stockRow(k stockKey, qty int64) *entity.Stock {
	p := s.products[k.productID]
	w := s.warehouses[k.warehouseID]
	return &entity.Stock{
		ProductID:   k.productID,
		WarehouseID: k.warehouseID,
		Quantity:    qty,
		Product:     &p,
		Warehouse:   &w,
	}
}

func (s *state) sortedStockKeys() []stockKey {
	keys := make([]stockKey, 0, len(s.stock))
	for k := range s.stock {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].productID != keys[j].productID {
			return keys[i].productID < keys[j].productID
		}
		return keys[i].warehouseID < keys[j].warehouseID
	})
	return keys
}

// Store es el almacén compartido. Las escrituras (transacciones explícitas o SaveChanges)
// se serializan con writeSem; las lecturas fuera de transacción ven el último estado confirmado.
type Store struct {
	mu       sync.RWMutex
	current  *state
	writeSem chan struct{}
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{current: newState(), writeSem: make(chan struct{}, 1)}
}

// New crea una unidad de trabajo sobre el almacén.
func (s *Store) New(ctx context.Context) (repository.UnitOfWork, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &UnitOfWork{store: s}, nil
}

func (s *Store) lockWrites(ctx context.Context) error {
	select {
	case s.writeSem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) unlockWrites() {
	<-s.writeSem
}

func (s *Store) snapshot() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.clone()
}

func (s *Store) publish(st *state) {
	s.mu.Lock()
	s.current = st
	s.mu.Unlock()
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.current)
}
