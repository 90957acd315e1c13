package inventory_test

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/inventario-movimientos/internal/application/inventory"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-movimientos/internal/domain/inventory"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

// memStore almacenamiento en memoria con transacciones serializadas y rollback por snapshot.
type memStore struct {
	mu        sync.Mutex
	txMu      sync.Mutex
	products  map[string]*entity.Product
	movements []*entity.Movement

	failAppend  error
	readBarrier *sync.WaitGroup // sincroniza las lecturas previas a la tx en el test concurrente
}

func newMemStore(products ...*entity.Product) *memStore {
	s := &memStore{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		s.products[p.ID] = &cp
	}
	return s
}

func (s *memStore) stock(id string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].Stock
}

func (s *memStore) movementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

// ── TxRunner ──

type memTxRunner struct{ s *memStore }

func (r memTxRunner) Run(ctx context.Context, fn func(repository.MovementRepository, repository.ProductRepository) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	r.s.mu.Lock()
	stocks := make(map[string]int64, len(r.s.products))
	for id, p := range r.s.products {
		stocks[id] = p.Stock
	}
	n := len(r.s.movements)
	r.s.mu.Unlock()

	if err := fn(&memMovementRepo{s: r.s}, &memProductRepo{s: r.s, inTx: true}); err != nil {
		r.s.mu.Lock()
		for id, st := range stocks {
			if p, ok := r.s.products[id]; ok {
				p.Stock = st
			}
		}
		r.s.movements = r.s.movements[:n]
		r.s.mu.Unlock()
		return err
	}
	return nil
}

// ── ProductRepository ──

type memProductRepo struct {
	s    *memStore
	inTx bool
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.products {
		if existing.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	p, ok := r.s.products[id]
	var cp entity.Product
	if ok {
		cp = *p
	}
	r.s.mu.Unlock()

	// Barrera después de la lectura: todas las goroutines ven el mismo stock antes de escribir.
	if !r.inTx && r.s.readBarrier != nil {
		r.s.readBarrier.Done()
		r.s.readBarrier.Wait()
	}
	if !ok {
		return nil, nil
	}
	return &cp, nil
}

func (r *memProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stock, initial := existing.Stock, existing.InitialStock
	cp := *p
	cp.Stock, cp.InitialStock = stock, initial
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateImages(_ context.Context, id, imageURL, qrImageURL string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.ImageURL, p.QRImageURL = imageURL, qrImageURL
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (r *memProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if f.Area != "" && p.Area != f.Area {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.Code), strings.ToLower(f.Search)) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memProductRepo) Count(ctx context.Context, f repository.ProductFilter) (int64, error) {
	list, err := r.List(ctx, f)
	return int64(len(list)), err
}

func (r *memProductRepo) AdjustStock(_ context.Context, id string, delta int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if p.Stock+delta < 0 {
		return 0, domain.ErrInsufficientStock
	}
	if delta > 0 && p.Stock > math.MaxInt64-delta {
		return 0, domain.NewValidationError(domain.CodeInvalidQuantity, "el stock resultante excede el máximo permitido")
	}
	p.Stock += delta
	return p.Stock, nil
}

// ── MovementRepository ──

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Append(_ context.Context, m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failAppend != nil {
		return r.s.failAppend
	}
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *memMovementRepo) matching(f repository.MovementFilter) []*entity.Movement {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		if f.From != nil && m.OccurredAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !m.OccurredAt.Before(*f.To) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	return out
}

func (r *memMovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := r.matching(f)
	if f.Offset >= len(out) {
		return nil, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *memMovementRepo) Count(_ context.Context, f repository.MovementFilter) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.matching(f))), nil
}

func (r *memMovementRepo) ListInWindow(_ context.Context, from, to time.Time, area entity.Area) ([]*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Movement
	for _, m := range r.matching(repository.MovementFilter{From: &from, To: &to}) {
		if area != "" {
			p, ok := r.s.products[m.ProductID]
			if !ok || p.Area != area {
				continue
			}
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *memMovementRepo) Recent(_ context.Context, since time.Time, limit int) ([]*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := r.matching(repository.MovementFilter{From: &since})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memMovementRepo) TotalsByProduct(_ context.Context, productID string) (repository.MovementTotals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var t repository.MovementTotals
	for _, m := range r.s.movements {
		if m.ProductID != productID {
			continue
		}
		t.Count++
		if m.Type == entity.MovementTypeEntry {
			t.Entries += m.Quantity
		} else {
			t.Exits += m.Quantity
		}
	}
	return t, nil
}

// ── métricas ──

type fakeMetrics struct {
	mu         sync.Mutex
	registered map[entity.MovementType]int
	rejected   map[string]int
	risks      int
	drifts     int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{registered: map[entity.MovementType]int{}, rejected: map[string]int{}}
}

func (m *fakeMetrics) MovementRegistered(t entity.MovementType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registered[t]++
}

func (m *fakeMetrics) MovementRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected[reason]++
}

func (m *fakeMetrics) ConsistencyRisk() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.risks++
}

func (m *fakeMetrics) ReconciliationDrift() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drifts++
}

// ── exportador ──

type fakeExporter struct {
	ext   string
	rows  int
	err   error
	table domaininv.ExportTable
}

func (e *fakeExporter) Export(_ context.Context, t domaininv.ExportTable) ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.rows = len(t.Rows)
	e.table = t
	return []byte("contenido-" + e.ext), nil
}

func (e *fakeExporter) ContentType() string { return "application/octet-stream" }
func (e *fakeExporter) Extension() string   { return e.ext }

var errBoom = errors.New("conexión perdida")

var _ inventory.TxRunner = memTxRunner{}
var _ inventory.LedgerMetrics = (*fakeMetrics)(nil)
var _ inventory.ReportExporter = (*fakeExporter)(nil)
