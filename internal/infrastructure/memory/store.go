// Package memory implementa los puertos de persistencia en memoria, con las mismas reglas de
// cascada, unicidad y marcas de tiempo que el esquema PostgreSQL. Lo usan los tests de casos de uso y HTTP.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/jhoicas/labstock/internal/domain/entity"
	"github.com/jhoicas/labstock/internal/domain/repository"
)

// Store agrupa las tablas en memoria.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	t tables
}

type tables struct {
	seq        map[string]int64
	products   map[int64]*entity.Product
	warehouses map[int64]*entity.Warehouse
	stocks     map[int64]*entity.Stock
	movements  map[int64]*entity.StockMovement
	users      map[int64]*entity.User
}

// Option configura el Store.
type Option func(*Store)

// WithClock reemplaza el reloj usado para created_at, last_updated y timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New crea un Store vacío.
func New(opts ...Option) *Store {
	s := &Store{
		now: time.Now,
		t: tables{
			seq:        map[string]int64{},
			products:   map[int64]*entity.Product{},
			warehouses: map[int64]*entity.Warehouse{},
			stocks:     map[int64]*entity.Stock{},
			movements:  map[int64]*entity.StockMovement{},
			users:      map[int64]*entity.User{},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) nextID(table string) int64 {
	s.t.seq[table]++
	return s.t.seq[table]
}

// Products repositorio de productos sobre el Store.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Warehouses repositorio de bodegas sobre el Store.
func (s *Store) Warehouses() *WarehouseRepo { return &WarehouseRepo{s: s} }

// Stocks repositorio de stocks sobre el Store.
func (s *Store) Stocks() *StockRepo { return &StockRepo{s: s} }

// Movements repositorio de movimientos sobre el Store.
func (s *Store) Movements() *StockMovementRepo { return &StockMovementRepo{s: s} }

// Users repositorio de usuarios sobre el Store.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Run ejecuta fn como transacción sobre una copia de las tablas; la copia solo se publica si fn
// termina sin error. Mientras dura, el resto de lecturas y escrituras del Store esperan.
func (s *Store) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return s.atomically(ctx, func(tx *Store) error { return fn(tx.Stocks(), tx.Movements()) })
}

// RunUsers ejecuta fn como transacción sobre el repositorio de usuarios.
func (s *Store) RunUsers(ctx context.Context, fn func(userRepo repository.UserRepository) error) error {
	return s.atomically(ctx, func(tx *Store) error { return fn(tx.Users()) })
}

func (s *Store) atomically(ctx context.Context, fn func(tx *Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Store{now: s.now, t: s.t.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	s.t = tx.t
	return nil
}

func (t tables) clone() tables {
	out := tables{
		seq:        make(map[string]int64, len(t.seq)),
		products:   make(map[int64]*entity.Product, len(t.products)),
		warehouses: make(map[int64]*entity.Warehouse, len(t.warehouses)),
		stocks:     make(map[int64]*entity.Stock, len(t.stocks)),
		movements:  make(map[int64]*entity.StockMovement, len(t.movements)),
		users:      make(map[int64]*entity.User, len(t.users)),
	}
	for k, v := range t.seq {
		out.seq[k] = v
	}
	for k, v := range t.products {
		out.products[k] = copyProduct(v)
	}
	for k, v := range t.warehouses {
		w := *v
		out.warehouses[k] = &w
	}
	for k, v := range t.stocks {
		out.stocks[k] = copyStock(v)
	}
	for k, v := range t.movements {
		out.movements[k] = copyMovement(v)
	}
	for k, v := range t.users {
		out.users[k] = copyUser(v)
	}
	return out
}

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	if p.Type != nil {
		t := *p.Type
		c.Type = &t
	}
	if p.Price != nil {
		pr := *p.Price
		c.Price = &pr
	}
	return &c
}

func copyStock(s *entity.Stock) *entity.Stock {
	c := *s
	if s.ExpirationDate != nil {
		d := *s.ExpirationDate
		c.ExpirationDate = &d
	}
	return &c
}

func copyMovement(m *entity.StockMovement) *entity.StockMovement {
	c := *m
	if m.CreatedBy != nil {
		id := *m.CreatedBy
		c.CreatedBy = &id
	}
	return &c
}

func copyUser(u *entity.User) *entity.User {
	c := *u
	c.WarehouseIDs = slices.Clone(u.WarehouseIDs)
	return &c
}

// page aplica limit/offset sobre una lista ya ordenada; limit <= 0 devuelve todo desde offset.
func page[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// deleteStockCascade borra un stock y sus movimientos. Requiere s.mu tomado.
func (s *Store) deleteStockCascade(id int64) {
	delete(s.t.stocks, id)
	for mid, m := range s.t.movements {
		if m.StockID == id {
			delete(s.t.movements, mid)
		}
	}
}
