package usecase_test

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

type memProducts struct {
	items      map[string]*entity.Product
	failImages error
}

func newMemProducts(ps ...*entity.Product) *memProducts {
	m := &memProducts{items: map[string]*entity.Product{}}
	for _, p := range ps {
		m.items[p.ID] = p
	}
	return m
}

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	for _, e := range m.items {
		if e.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	for _, p := range m.items {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memProducts) Update(_ context.Context, p *entity.Product) error {
	e, ok := m.items[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *p
	cp.Stock, cp.InitialStock = e.Stock, e.InitialStock
	m.items[p.ID] = &cp
	return nil
}

func (m *memProducts) UpdateImages(_ context.Context, id, img, qr string) error {
	if m.failImages != nil {
		return m.failImages
	}
	p, ok := m.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.ImageURL, p.QRImageURL = img, qr
	return nil
}

func (m *memProducts) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memProducts) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m.items {
		if f.Area != "" && p.Area != f.Area {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.Code), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if f.Offset < len(out) {
		out = out[f.Offset:]
	} else {
		out = nil
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memProducts) Count(ctx context.Context, f repository.ProductFilter) (int64, error) {
	f.Limit, f.Offset = 0, 0
	list, _ := m.List(ctx, f)
	return int64(len(list)), nil
}

func (m *memProducts) AdjustStock(context.Context, string, int64) (int64, error) {
	return 0, errors.New("no usado")
}

type fakeStorage struct {
	err     error
	uploads []string
}

func (s *fakeStorage) Upload(_ context.Context, folder, filename string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.uploads = append(s.uploads, folder+"/"+filename)
	return "https://img.example/" + folder + "/" + filename, nil
}

type fakeQR struct{ contents []string }

func (q *fakeQR) PNG(content string, size int) ([]byte, error) {
	q.contents = append(q.contents, content)
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

type memUsers struct {
	items map[string]*entity.User
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range m.items {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (m *memUsers) Count(context.Context) (int64, error) { return int64(len(m.items)), nil }

func (m *memUsers) UpdateRole(_ context.Context, id, role string) error {
	u, ok := m.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Role = role
	return nil
}
