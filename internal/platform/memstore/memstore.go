// Package memstore is an in-memory implementation of every repository plus
// the transaction scope. Transactions serialize on one store lock and roll
// back by restoring a snapshot taken when they began.
package memstore

import (
	"context"
	"sync"
	"time"

	invdomain "github.com/tair/production-costing/internal/inventory/domain"
	proddomain "github.com/tair/production-costing/internal/production/domain"
	purdomain "github.com/tair/production-costing/internal/purchasing/domain"
	salesdomain "github.com/tair/production-costing/internal/sales/domain"
)

type state struct {
	stock       map[string]invdomain.StockItem
	subproducts map[uint]proddomain.Subproduct
	finals      map[uint]proddomain.FinalProduct
	purchases   []purdomain.Purchase
	clients     map[uint]salesdomain.Client
	sales       []salesdomain.Sale
	seq         map[string]uint
}

func newState() *state {
	return &state{
		stock:       map[string]invdomain.StockItem{},
		subproducts: map[uint]proddomain.Subproduct{},
		finals:      map[uint]proddomain.FinalProduct{},
		clients:     map[uint]salesdomain.Client{},
		seq:         map[string]uint{},
	}
}

func (s *state) clone() *state {
	c := &state{
		stock:       make(map[string]invdomain.StockItem, len(s.stock)),
		subproducts: make(map[uint]proddomain.Subproduct, len(s.subproducts)),
		finals:      make(map[uint]proddomain.FinalProduct, len(s.finals)),
		purchases:   append([]purdomain.Purchase(nil), s.purchases...),
		clients:     make(map[uint]salesdomain.Client, len(s.clients)),
		sales:       append([]salesdomain.Sale(nil), s.sales...),
		seq:         make(map[string]uint, len(s.seq)),
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	for k, v := range s.subproducts {
		c.subproducts[k] = cloneSubproduct(v)
	}
	for k, v := range s.finals {
		c.finals[k] = v
	}
	for k, v := range s.clients {
		c.clients[k] = v
	}
	for k, v := range s.seq {
		c.seq[k] = v
	}
	return c
}

// nextID hands out ids per table, like a serial column.
func (s *state) nextID(table string) uint {
	s.seq[table]++
	return s.seq[table]
}

func cloneSubproduct(sp proddomain.Subproduct) proddomain.Subproduct {
	sp.Ingredients = append([]proddomain.IngredientUsage(nil), sp.Ingredients...)
	return sp
}

// Store holds all state behind a single mutex.
type Store struct {
	mu    sync.Mutex
	state *state
	now   func() time.Time
}

func New() *Store {
	return &Store{
		state: newState(),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

type txKey struct{ store *Store }

// WithinTransaction runs fn holding the store lock. If fn fails every change
// it made is discarded. Nested calls join the running transaction.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(context.WithValue(ctx, txKey{store: s}, true)); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

func (s *Store) inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{store: s}).(bool)
	return v
}

// do runs fn against the current state, taking the lock unless ctx already
// holds it through a transaction.
func (s *Store) do(ctx context.Context, fn func(st *state) error) error {
	if s.inTx(ctx) {
		return fn(s.state)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

func (s *Store) Stock() invdomain.StockRepository                { return stockRepo{s} }
func (s *Store) Subproducts() proddomain.SubproductRepository     { return subproductRepo{s} }
func (s *Store) FinalProducts() proddomain.FinalProductRepository { return finalProductRepo{s} }
func (s *Store) Purchases() purdomain.PurchaseRepository          { return purchaseRepo{s} }
func (s *Store) Clients() salesdomain.ClientRepository            { return clientRepo{s} }
func (s *Store) Sales() salesdomain.SaleRepository                { return saleRepo{s} }

// PingContext always succeeds; the store lives in process memory.
func (s *Store) PingContext(ctx context.Context) error {
	return ctx.Err()
}
