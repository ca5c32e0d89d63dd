package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var (
	_ repository.ProductRepository   = (*productRepo)(nil)
	_ repository.WarehouseRepository = (*warehouseRepo)(nil)
	_ repository.StockRepository     = (*stockRepo)(nil)
	_ repository.UserRepository      = (*userRepo)(nil)
)

func sortedIDs[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ──────────────────────────────────────────────────────────────────────────────
// Products
// ──────────────────────────────────────────────────────────────────────────────

type productRepo struct {
	uow *UnitOfWork
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	err := r.uow.read(ctx, func(st *state) {
		if p, ok := st.products[id]; ok {
			out = &p
		}
	})
	return out, err
}

func (r *productRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	list, err := r.Find(ctx, entity.ProductFilter{Codes: []string{code}})
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *productRepo) GetAll(ctx context.Context) ([]*entity.Product, error) {
	return r.Find(ctx, entity.ProductFilter{})
}

func (r *productRepo) Find(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.uow.read(ctx, func(st *state) {
		for _, id := range sortedIDs(st.products) {
			p := st.products[id]
			if filter.Match(&p) {
				list = append(list, &p)
			}
		}
	})
	return list, err
}

func (r *productRepo) Add(_ context.Context, p *entity.Product) error {
	r.uow.register(change{key: p, apply: func(st *state) (int64, error) {
		if err := p.Validate(); err != nil {
			return 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		for _, existing := range st.products {
			if existing.Code == p.Code {
				return 0, fmt.Errorf("insert product: %w", domain.ErrAlreadyExists)
			}
		}
		st.nextProductID++
		p.ID = st.nextProductID
		st.products[p.ID] = *p
		return 1, nil
	}})
	return nil
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	r.uow.register(change{key: p, apply: func(st *state) (int64, error) {
		if err := p.Validate(); err != nil {
			return 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		existing, ok := st.products[p.ID]
		if !ok {
			return 0, nil
		}
		existing.Description = p.Description
		st.products[p.ID] = existing
		return 1, nil
	}})
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Warehouses
// ──────────────────────────────────────────────────────────────────────────────

type warehouseRepo struct {
	uow *UnitOfWork
}

func (r *warehouseRepo) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.uow.read(ctx, func(st *state) {
		if w, ok := st.warehouses[id]; ok {
			out = &w
		}
	})
	return out, err
}

func (r *warehouseRepo) GetByCode(ctx context.Context, code string) (*entity.Warehouse, error) {
	list, err := r.Find(ctx, entity.WarehouseFilter{Codes: []string{code}})
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *warehouseRepo) GetAll(ctx context.Context) ([]*entity.Warehouse, error) {
	return r.Find(ctx, entity.WarehouseFilter{})
}

func (r *warehouseRepo) Find(ctx context.Context, filter entity.WarehouseFilter) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	err := r.uow.read(ctx, func(st *state) {
		for _, id := range sortedIDs(st.warehouses) {
			w := st.warehouses[id]
			if filter.Match(&w) {
				list = append(list, &w)
			}
		}
	})
	return list, err
}

func (r *warehouseRepo) Add(_ context.Context, w *entity.Warehouse) error {
	r.uow.register(change{key: w, apply: func(st *state) (int64, error) {
		if err := w.Validate(); err != nil {
			return 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		for _, existing := range st.warehouses {
			if existing.Code == w.Code {
				return 0, fmt.Errorf("insert warehouse: %w", domain.ErrAlreadyExists)
			}
		}
		st.nextWarehouseID++
		w.ID = st.nextWarehouseID
		st.warehouses[w.ID] = *w
		return 1, nil
	}})
	return nil
}

func (r *warehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	r.uow.register(change{key: w, apply: func(st *state) (int64, error) {
		if err := w.Validate(); err != nil {
			return 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		existing, ok := st.warehouses[w.ID]
		if !ok {
			return 0, nil
		}
		existing.Name = w.Name
		st.warehouses[w.ID] = existing
		return 1, nil
	}})
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock
// ──────────────────────────────────────────────────────────────────────────────

type stockRepo struct {
	uow *UnitOfWork
}

func (r *stockRepo) Get(ctx context.Context, productID, warehouseID int64) (*entity.Stock, error) {
	var out *entity.Stock
	err := r.uow.read(ctx, func(st *state) {
		k := stockKey{productID: productID, warehouseID: warehouseID}
		if qty, ok := st.stock[k]; ok {
			out = st.stockRow(k, qty)
		}
	})
	return out, err
}

func (r *stockRepo) GetAll(ctx context.Context) ([]*entity.Stock, error) {
	return r.Find(ctx, entity.StockFilter{})
}

func (r *stockRepo) Find(ctx context.Context, filter entity.StockFilter) ([]*entity.Stock, error) {
	var list []*entity.Stock
	err := r.uow.read(ctx, func(st *state) {
		for _, k := range st.sortedStockKeys() {
			row := st.stockRow(k, st.stock[k])
			if filter.Match(row) {
				list = append(list, row)
			}
		}
	})
	return list, err
}

func (r *stockRepo) Add(_ context.Context, s *entity.Stock) error {
	r.uow.register(change{key: s, apply: func(st *state) (int64, error) {
		if err := checkStock(st, s); err != nil {
			return 0, fmt.Errorf("insert stock: %w", err)
		}
		k := stockKey{productID: s.ProductID, warehouseID: s.WarehouseID}
		if _, ok := st.stock[k]; ok {
			return 0, fmt.Errorf("insert stock: %w", domain.ErrConflict)
		}
		st.stock[k] = s.Quantity
		return 1, nil
	}})
	return nil
}

func (r *stockRepo) Update(_ context.Context, s *entity.Stock) error {
	r.uow.register(change{key: s, apply: func(st *state) (int64, error) {
		if err := checkStock(st, s); err != nil {
			return 0, fmt.Errorf("update stock: %w", err)
		}
		k := stockKey{productID: s.ProductID, warehouseID: s.WarehouseID}
		if _, ok := st.stock[k]; !ok {
			return 0, nil
		}
		st.stock[k] = s.Quantity
		return 1, nil
	}})
	return nil
}

// checkStock replica los constraints de la tabla: CHECK quantity >= 0 y claves foráneas.
func checkStock(st *state, s *entity.Stock) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if _, ok := st.products[s.ProductID]; !ok {
		return fmt.Errorf("%w: producto %d no existe", domain.ErrConflict, s.ProductID)
	}
	if _, ok := st.warehouses[s.WarehouseID]; !ok {
		return fmt.Errorf("%w: bodega %d no existe", domain.ErrConflict, s.WarehouseID)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Users
// ──────────────────────────────────────────────────────────────────────────────

type userRepo struct {
	uow *UnitOfWork
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	var out *entity.User
	err := r.uow.read(ctx, func(st *state) {
		if u, ok := st.users[id]; ok {
			out = &u
		}
	})
	return out, err
}

func (r *userRepo) GetAll(ctx context.Context) ([]*entity.User, error) {
	return r.Find(ctx, entity.UserFilter{})
}

func (r *userRepo) Find(ctx context.Context, filter entity.UserFilter) ([]*entity.User, error) {
	var list []*entity.User
	err := r.uow.read(ctx, func(st *state) {
		for _, id := range sortedIDs(st.users) {
			u := st.users[id]
			if filter.Match(&u) {
				list = append(list, &u)
			}
		}
	})
	return list, err
}

func (r *userRepo) Add(_ context.Context, u *entity.User) error {
	r.uow.register(change{key: u, apply: func(st *state) (int64, error) {
		for _, existing := range st.users {
			if existing.Username == u.Username {
				return 0, fmt.Errorf("insert user: %w", domain.ErrAlreadyExists)
			}
		}
		st.nextUserID++
		u.ID = st.nextUserID
		st.users[u.ID] = *u
		return 1, nil
	}})
	return nil
}

func (r *userRepo) Update(_ context.Context, u *entity.User) error {
	r.uow.register(change{key: u, apply: func(st *state) (int64, error) {
		if _, ok := st.users[u.ID]; !ok {
			return 0, nil
		}
		st.users[u.ID] = *u
		return 1, nil
	}})
	return nil
}
