package http_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-movimientos/internal/domain/inventory"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

// store estado compartido en memoria por los repositorios fake.
type store struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	movements []*entity.Movement
	users     map[string]*entity.User
}

func newStore() *store {
	return &store{products: map[string]*entity.Product{}, users: map[string]*entity.User{}}
}

func (s *store) addProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := p
	s.products[p.ID] = &cp
}

// ── ProductRepository ────────────────────────────────────────────────────────

type productRepo struct{ s *store }

var _ repository.ProductRepository = productRepo{}

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.products {
		if x.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r productRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
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

func (r productRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *p
	cp.Stock = cur.Stock
	cp.InitialStock = cur.InitialStock
	r.s.products[p.ID] = &cp
	return nil
}

func (r productRepo) UpdateImages(_ context.Context, id, imageURL, qrImageURL string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.ImageURL, p.QRImageURL = imageURL, qrImageURL
	return nil
}

func (r productRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (r productRepo) filtered(f repository.ProductFilter) []*entity.Product {
	var out []*entity.Product
	for _, p := range r.s.products {
		if f.Area != "" && p.Area != f.Area {
			continue
		}
		if q := strings.ToLower(f.Search); q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Code), q) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r productRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := r.filtered(f)
	if f.Limit > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		end := f.Offset + f.Limit
		if end > len(out) {
			end = len(out)
		}
		out = out[f.Offset:end]
	}
	return out, nil
}

func (r productRepo) Count(_ context.Context, f repository.ProductFilter) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.filtered(f))), nil
}

func (r productRepo) AdjustStock(_ context.Context, id string, delta int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if p.Stock+delta < 0 {
		return p.Stock, domain.ErrInsufficientStock
	}
	p.Stock += delta
	return p.Stock, nil
}

// ── MovementRepository ───────────────────────────────────────────────────────

type movementRepo struct{ s *store }

var _ repository.MovementRepository = movementRepo{}

func (r movementRepo) Append(_ context.Context, m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r movementRepo) match(f repository.MovementFilter) []*entity.Movement {
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
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	return out
}

func (r movementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.match(f), nil
}

func (r movementRepo) Count(_ context.Context, f repository.MovementFilter) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.match(f))), nil
}

func (r movementRepo) ListInWindow(_ context.Context, from, to time.Time, area entity.Area) ([]*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Movement
	for _, m := range r.match(repository.MovementFilter{From: &from, To: &to}) {
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

func (r movementRepo) Recent(_ context.Context, since time.Time, limit int) ([]*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := r.match(repository.MovementFilter{From: &since})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r movementRepo) TotalsByProduct(_ context.Context, id string) (repository.MovementTotals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var t repository.MovementTotals
	for _, m := range r.s.movements {
		if m.ProductID != id {
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

// ── TxRunner ─────────────────────────────────────────────────────────────────

type txRunner struct{ s *store }

func (t txRunner) Run(_ context.Context, fn func(repository.MovementRepository, repository.ProductRepository) error) error {
	return fn(movementRepo(t), productRepo(t))
}

// ── UserRepository ───────────────────────────────────────────────────────────

type userRepo struct{ s *store }

var _ repository.UserRepository = userRepo{}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r userRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.User
	for _, u := range r.s.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r userRepo) Count(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.users)), nil
}

func (r userRepo) UpdateRole(_ context.Context, id, role string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Role = role
	return nil
}

// ── AnalyticsRepository ──────────────────────────────────────────────────────

type analyticsRepo struct{ s *store }

var _ repository.AnalyticsRepository = analyticsRepo{}

func (r analyticsRepo) CountProducts(_ context.Context, area entity.Area, _ int64) (int64, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var total, low int64
	for _, p := range r.s.products {
		if area != "" && p.Area != area {
			continue
		}
		total++
		if p.IsLowStock() {
			low++
		}
	}
	return total, low, nil
}

func (r analyticsRepo) GetMovementTotals(_ context.Context, from, to time.Time, area entity.Area) (repository.MovementTotals, error) {
	list, _ := movementRepo(r).ListInWindow(context.Background(), from, to, area)
	var t repository.MovementTotals
	for _, m := range list {
		t.Count++
		if m.Type == entity.MovementTypeEntry {
			t.Entries += m.Quantity
		} else {
			t.Exits += m.Quantity
		}
	}
	return t, nil
}

func (r analyticsRepo) GetDailyMovementTotals(_ context.Context, from, to time.Time, loc *time.Location, area entity.Area) ([]repository.DailyMovementTotals, error) {
	list, _ := movementRepo(r).ListInWindow(context.Background(), from, to, area)
	index := map[string]int{}
	var days []repository.DailyMovementTotals
	for _, m := range list {
		local := m.OccurredAt.In(loc)
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
		key := day.Format(time.DateOnly)
		i, ok := index[key]
		if !ok {
			days = append(days, repository.DailyMovementTotals{Day: day})
			i = len(days) - 1
			index[key] = i
		}
		if m.Type == entity.MovementTypeEntry {
			days[i].Entries += m.Quantity
		} else {
			days[i].Exits += m.Quantity
		}
	}
	return days, nil
}

func (r analyticsRepo) GetStockByArea(_ context.Context, area entity.Area) ([]repository.AreaStock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byArea := map[entity.Area]*repository.AreaStock{}
	for _, p := range r.s.products {
		if area != "" && p.Area != area {
			continue
		}
		a, ok := byArea[p.Area]
		if !ok {
			a = &repository.AreaStock{Area: p.Area}
			byArea[p.Area] = a
		}
		a.Products++
		a.Stock += p.Stock
	}
	var out []repository.AreaStock
	for _, a := range byArea {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Area < out[j].Area })
	return out, nil
}

// ── Exporter ─────────────────────────────────────────────────────────────────

type csvExporter struct{}

func (csvExporter) Export(_ context.Context, t domaininv.ExportTable) ([]byte, error) {
	var b strings.Builder
	b.WriteString(strings.Join(t.Headers, ";"))
	for _, r := range t.Rows {
		b.WriteString("\n" + strings.Join(r, ";"))
	}
	return []byte(b.String()), nil
}
func (csvExporter) ContentType() string { return "text/csv" }
func (csvExporter) Extension() string   { return "csv" }

// ── IdempotencyStore ─────────────────────────────────────────────────────────

type memIdempotency struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemIdempotency() *memIdempotency { return &memIdempotency{data: map[string]string{}} }

func (m *memIdempotency) Key(scope, id string) string { return scope + ":" + id }

func (m *memIdempotency) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memIdempotency) Reserve(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[key]; ok {
		return false, nil
	}
	m.data[key] = value
	return true, nil
}

func (m *memIdempotency) Save(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memIdempotency) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
