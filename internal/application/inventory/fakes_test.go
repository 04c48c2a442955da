package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-stock-api/internal/domain"
	"github.com/jhoicas/tienda-stock-api/internal/domain/entity"
	"github.com/jhoicas/tienda-stock-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: repos + TxRunner con semántica de commit/rollback real
// (el callback trabaja sobre una copia; solo se publica si no hay error).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products           map[int64]*entity.Product
	variants           map[string]*entity.Variant
	movements          []*entity.Movement
	nextMovID          int64
	nextProdID         int64
	failMovementCreate bool // simula fallo de persistencia en el libro
}

func newMemStore() *memStore {
	return &memStore{
		products:   make(map[int64]*entity.Product),
		variants:   make(map[string]*entity.Variant),
		nextMovID:  1,
		nextProdID: 1,
	}
}

func variantKey(productID, sizeID int64) string {
	return fmt.Sprintf("%d/%d", productID, sizeID)
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	c.nextMovID = s.nextMovID
	c.nextProdID = s.nextProdID
	c.failMovementCreate = s.failMovementCreate
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for k, v := range s.variants {
		cv := *v
		c.variants[k] = &cv
	}
	for _, m := range s.movements {
		cm := *m
		c.movements = append(c.movements, &cm)
	}
	return c
}

func (s *memStore) addProduct(p *entity.Product) *entity.Product {
	if p.ID == 0 {
		p.ID = s.nextProdID
	}
	if p.ID >= s.nextProdID {
		s.nextProdID = p.ID + 1
	}
	s.products[p.ID] = p
	return p
}

func (s *memStore) addVariant(v *entity.Variant) *entity.Variant {
	s.variants[variantKey(v.ProductID, v.SizeID)] = v
	return v
}

// ── ProductRepository ─────────────────────────────────────────────────────────

type memProductRepo struct{ s *memStore }

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) Create(p *entity.Product) error {
	r.s.addProduct(p)
	return nil
}

func (r *memProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(id int64) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) List(filter repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if filter.LowStockOnly && !p.LowStock() {
			continue
		}
		if filter.OnlyActive && !p.Active {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateStock(id int64, stock, stockMinimo int) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Stock = stock
	p.StockMinimo = stockMinimo
	return nil
}

func (r *memProductRepo) SetActive(id int64, active bool) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Active = active
	return nil
}

func (r *memProductRepo) Delete(id int64) error {
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.s.products, id)
	return nil
}

// ── VariantRepository ─────────────────────────────────────────────────────────

type memVariantRepo struct{ s *memStore }

var _ repository.VariantRepository = (*memVariantRepo)(nil)

func (r *memVariantRepo) ListByProduct(productID int64) ([]*entity.Variant, error) {
	var out []*entity.Variant
	for _, v := range r.s.variants {
		if v.ProductID == productID {
			cv := *v
			out = append(out, &cv)
		}
	}
	return out, nil
}

func (r *memVariantRepo) Get(productID, sizeID int64) (*entity.Variant, error) {
	v, ok := r.s.variants[variantKey(productID, sizeID)]
	if !ok {
		return nil, nil
	}
	cv := *v
	return &cv, nil
}

func (r *memVariantRepo) GetForUpdate(productID, sizeID int64) (*entity.Variant, error) {
	return r.Get(productID, sizeID)
}

func (r *memVariantRepo) UpdateStock(productID, sizeID int64, stock int) error {
	v, ok := r.s.variants[variantKey(productID, sizeID)]
	if !ok {
		return domain.ErrVariantNotFound
	}
	v.Stock = stock
	return nil
}

func (r *memVariantRepo) ReplaceAll(productID int64, variants []*entity.Variant) error {
	for k, v := range r.s.variants {
		if v.ProductID == productID {
			delete(r.s.variants, k)
		}
	}
	for _, v := range variants {
		cv := *v
		r.s.variants[variantKey(v.ProductID, v.SizeID)] = &cv
	}
	return nil
}

// ── MovementRepository ────────────────────────────────────────────────────────

type memMovementRepo struct{ s *memStore }

var _ repository.MovementRepository = (*memMovementRepo)(nil)

func (r *memMovementRepo) Create(m *entity.Movement) error {
	if r.s.failMovementCreate {
		return fmt.Errorf("insert movement: conexión perdida")
	}
	m.ID = r.s.nextMovID
	r.s.nextMovID++
	cm := *m
	r.s.movements = append(r.s.movements, &cm)
	return nil
}

func (r *memMovementRepo) List(filter repository.MovementFilter, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if filter.ProductID != nil && m.ProductID != *filter.ProductID {
			continue
		}
		if filter.Tipo != "" && m.Tipo != filter.Tipo {
			continue
		}
		cm := *m
		out = append(out, &cm)
	}
	if limit > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
		if len(out) > limit {
			out = out[:limit]
		}
	}
	return out, nil
}

func (r *memMovementRepo) Count(filter repository.MovementFilter) (int, error) {
	list, err := r.List(filter, 0, 0)
	return len(list), err
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// memTxRunner ejecuta el callback sobre una copia del store y solo publica
// los cambios si no hubo error: mismo contrato commit/rollback que PostgreSQL.
type memTxRunner struct{ s *memStore }

var _ TxRunner = (*memTxRunner)(nil)

func (r *memTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	movRepo repository.MovementRepository,
) error) error {
	tx := r.s.clone()
	if err := fn(&memProductRepo{tx}, &memVariantRepo{tx}, &memMovementRepo{tx}); err != nil {
		return err
	}
	*r.s = *tx
	return nil
}

// ── SizeRepository ────────────────────────────────────────────────────────────

type memSizeRepo struct{ sizes map[int64]*entity.Size }

var _ repository.SizeRepository = (*memSizeRepo)(nil)

func newMemSizeRepo(sizes ...*entity.Size) *memSizeRepo {
	r := &memSizeRepo{sizes: make(map[int64]*entity.Size)}
	for _, s := range sizes {
		r.sizes[s.ID] = s
	}
	return r
}

func (r *memSizeRepo) List() ([]*entity.Size, error) {
	var out []*entity.Size
	for _, s := range r.sizes {
		out = append(out, s)
	}
	return out, nil
}

func (r *memSizeRepo) GetByID(id int64) (*entity.Size, error) {
	s, ok := r.sizes[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (r *memSizeRepo) Create(s *entity.Size) error {
	r.sizes[s.ID] = s
	return nil
}
