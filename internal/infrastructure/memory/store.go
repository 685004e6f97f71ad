// Package memory implementa los repositorios y el TxRunner en memoria.
// Las transacciones se serializan con un mutex y trabajan sobre una copia del estado que
// solo se publica si el callback termina sin error, así que un fallo a mitad de camino no
// deja escrituras parciales.
package memory

import (
	"context"
	"sort"
	"sync"

	appinventory "github.com/jhoicas/cafe-pos-api/internal/application/inventory"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

var _ appinventory.TxRunner = (*Store)(nil)

// FaultFunc permite inyectar fallos de almacenamiento por operación ("movement.create", ...).
type FaultFunc func(op string) error

type dataset struct {
	items     map[string]entity.InventoryItem
	movements []entity.StockMovement
	products  map[string]entity.Product
	recipes   map[string]entity.Recipe // por product_id
	orders    map[string]entity.Order  // por order_number
}

func newDataset() *dataset {
	return &dataset{
		items:    make(map[string]entity.InventoryItem),
		products: make(map[string]entity.Product),
		recipes:  make(map[string]entity.Recipe),
		orders:   make(map[string]entity.Order),
	}
}

func (d *dataset) clone() *dataset {
	c := &dataset{
		items:     make(map[string]entity.InventoryItem, len(d.items)),
		movements: append([]entity.StockMovement(nil), d.movements...),
		products:  make(map[string]entity.Product, len(d.products)),
		recipes:   make(map[string]entity.Recipe, len(d.recipes)),
		orders:    make(map[string]entity.Order, len(d.orders)),
	}
	for k, v := range d.items {
		c.items[k] = v
	}
	for k, v := range d.products {
		c.products[k] = v
	}
	// Las recetas y órdenes se reemplazan completas, nunca se mutan sus slices.
	for k, v := range d.recipes {
		c.recipes[k] = v
	}
	for k, v := range d.orders {
		c.orders[k] = v
	}
	return c
}

// Store estado en memoria compartido por todos los repositorios.
type Store struct {
	txMu  sync.Mutex   // serializa escrituras y transacciones
	mu    sync.RWMutex // protege data
	data  *dataset
	fault FaultFunc
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newDataset()}
}

// SetFault instala (o quita con nil) un inyector de fallos.
func (s *Store) SetFault(f FaultFunc) {
	s.mu.Lock()
	s.fault = f
	s.mu.Unlock()
}

// access abstrae el acceso al dataset: directo dentro de una tx, con locks fuera de ella.
type access interface {
	read(fn func(d *dataset) error) error
	write(op string, fn func(d *dataset) error) error
}

// committed accede al estado publicado.
type committed struct{ s *Store }

func (c committed) read(fn func(d *dataset) error) error {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	return fn(c.s.data)
}

func (c committed) write(op string, fn func(d *dataset) error) error {
	c.s.txMu.Lock()
	defer c.s.txMu.Unlock()
	if err := c.s.checkFault(op); err != nil {
		return err
	}
	next := c.s.snapshot()
	if err := fn(next); err != nil {
		return err
	}
	c.s.publish(next)
	return nil
}

// staged accede a la copia de trabajo de una transacción.
type staged struct {
	s *Store
	d *dataset
}

func (t staged) read(fn func(d *dataset) error) error { return fn(t.d) }

func (t staged) write(op string, fn func(d *dataset) error) error {
	if err := t.s.checkFault(op); err != nil {
		return err
	}
	return fn(t.d)
}

func (s *Store) checkFault(op string) error {
	s.mu.RLock()
	f := s.fault
	s.mu.RUnlock()
	if f == nil {
		return nil
	}
	return f(op)
}

func (s *Store) snapshot() *dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.clone()
}

func (s *Store) publish(d *dataset) {
	s.mu.Lock()
	s.data = d
	s.mu.Unlock()
}

// Repos devuelve los repositorios sobre el estado publicado (sin transacción).
func (s *Store) Repos() appinventory.TxRepos {
	return reposFor(committed{s: s})
}

func reposFor(a access) appinventory.TxRepos {
	return appinventory.TxRepos{
		Items:     &InventoryItemRepo{a: a},
		Movements: &StockMovementRepo{a: a},
		Recipes:   &RecipeRepo{a: a},
		Products:  &ProductRepo{a: a},
		Orders:    &OrderRepo{a: a},
	}
}

// Run ejecuta fn en una transacción con repos de inventario.
func (s *Store) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return s.RunSale(ctx, func(repos appinventory.TxRepos) error {
		return fn(repos.Items, repos.Movements)
	})
}

// RunSale ejecuta fn en una transacción con todos los repos; publica el estado solo si fn no falla.
func (s *Store) RunSale(ctx context.Context, fn func(repos appinventory.TxRepos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.snapshot()
	if err := fn(reposFor(staged{s: s, d: work})); err != nil {
		return err
	}
	if err := s.checkFault("commit"); err != nil {
		return err
	}
	s.publish(work)
	return nil
}

func sortedItems(m map[string]entity.InventoryItem) []*entity.InventoryItem {
	out := make([]*entity.InventoryItem, 0, len(m))
	for _, v := range m {
		it := v
		out = append(out, &it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
