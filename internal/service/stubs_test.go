package service_test

// In-memory repository stubs. They honor the same contracts as the GORM
// implementations (tenant scoping, gorm.ErrRecordNotFound, conditional
// decrement) so services can be exercised without a database. Services pass
// a nil *gorm.DB to the *Tx methods in this mode.

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/peegflow-code/PeegFlow-Piloto/internal/dto"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/model"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/repository"
)

// ── Product repository stub ───────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product

	// beforeIncrement, when set, runs just before IncrementStockTx mutates
	// state — lets tests interleave a concurrent stock movement.
	beforeIncrement func()
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, companyID, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok || p.CompanyID != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) FindBySKU(_ context.Context, companyID uuid.UUID, sku string) (*model.Product, error) {
	for _, p := range r.products {
		if p.CompanyID == companyID && p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context, companyID uuid.UUID, _ dto.ProductFilter) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.CompanyID == companyID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) ListLowStock(_ context.Context, companyID uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.CompanyID == companyID && p.Stock <= p.StockMin {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, companyID, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok || p.CompanyID != companyID {
		return gorm.ErrRecordNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) DecrementStockTx(_ *gorm.DB, companyID, id uuid.UUID, qty int) (int64, error) {
	p, ok := r.products[id]
	if !ok || p.CompanyID != companyID || p.Stock < qty {
		return 0, nil
	}
	p.Stock -= qty
	return 1, nil
}

func (r *stubProductRepo) IncrementStockTx(_ *gorm.DB, companyID, id uuid.UUID, qty int) error {
	if r.beforeIncrement != nil {
		r.beforeIncrement()
	}
	p, ok := r.products[id]
	if !ok || p.CompanyID != companyID {
		return gorm.ErrRecordNotFound
	}
	p.Stock += qty
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// seedProduct registers a product directly in the stub with given stock.
func seedProduct(r *stubProductRepo, companyID uuid.UUID, sku, name string, stock, stockMin int, retail, wholesale float64) *model.Product {
	p := &model.Product{
		ID:             uuid.New(),
		CompanyID:      companyID,
		SKU:            sku,
		Name:           name,
		Category:       "Geral",
		PriceRetail:    decimal.NewFromFloat(retail),
		PriceWholesale: decimal.NewFromFloat(wholesale),
		Stock:          stock,
		StockMin:       stockMin,
	}
	r.products[p.ID] = p
	return p
}

// saleFor builds a bare sale row for seeding stubs directly.
func saleFor(companyID, productID uuid.UUID, qty int, price float64) *model.Sale {
	return &model.Sale{
		ID:        uuid.New(),
		CompanyID: companyID,
		ProductID: productID,
		UserID:    uuid.New(),
		Quantity:  qty,
		Price:     decimal.NewFromFloat(price),
		Kind:      model.KindRetail,
		Date:      time.Now().UTC(),
	}
}

// ── Sale repository stub ──────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales    []*model.Sale
	products *stubProductRepo // for Preload-style name resolution
}

func newStubSaleRepo(products *stubProductRepo) *stubSaleRepo {
	return &stubSaleRepo{products: products}
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	r.sales = append(r.sales, &cp)
	return nil
}

func (r *stubSaleRepo) CountByProduct(_ context.Context, companyID, productID uuid.UUID) (int64, error) {
	var n int64
	for _, s := range r.sales {
		if s.CompanyID == companyID && s.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func (r *stubSaleRepo) ListByRange(_ context.Context, companyID uuid.UUID, from, to time.Time) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.CompanyID != companyID || s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		cp := *s
		if p, ok := r.products.products[s.ProductID]; ok {
			prod := *p
			cp.Product = &prod
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *stubSaleRepo) List(_ context.Context, companyID uuid.UUID, _ dto.SaleFilter) ([]model.Sale, int64, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.CompanyID == companyID {
			cp := *s
			if p, ok := r.products.products[s.ProductID]; ok {
				prod := *p
				cp.Product = &prod
			}
			out = append(out, cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) Revenue(_ context.Context, companyID uuid.UUID, from, to time.Time) (decimal.Decimal, int64, error) {
	total := decimal.Zero
	var count int64
	for _, s := range r.sales {
		if s.CompanyID != companyID || s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		total = total.Add(s.Price.Mul(decimal.NewFromInt(int64(s.Quantity))))
		count++
	}
	return total, count, nil
}

func (r *stubSaleRepo) TopProducts(_ context.Context, companyID uuid.UUID, from, to time.Time, limit int) ([]dto.TopProduct, error) {
	byProduct := make(map[uuid.UUID]*dto.TopProduct)
	for _, s := range r.sales {
		if s.CompanyID != companyID || s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		tp, ok := byProduct[s.ProductID]
		if !ok {
			name := ""
			if p, exists := r.products.products[s.ProductID]; exists {
				name = p.Name
			}
			tp = &dto.TopProduct{ProductID: s.ProductID.String(), Name: name, Revenue: decimal.Zero}
			byProduct[s.ProductID] = tp
		}
		tp.Quantity += int64(s.Quantity)
		tp.Revenue = tp.Revenue.Add(s.Price.Mul(decimal.NewFromInt(int64(s.Quantity))))
	}
	out := make([]dto.TopProduct, 0, len(byProduct))
	for _, tp := range byProduct {
		out = append(out, *tp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue.GreaterThan(out[j].Revenue) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubSaleRepo) RevenueByDay(_ context.Context, companyID uuid.UUID, from, to time.Time) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	for _, s := range r.sales {
		if s.CompanyID != companyID || s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		key := s.Date.Format("2006-01-02")
		out[key] = out[key].Add(s.Price.Mul(decimal.NewFromInt(int64(s.Quantity))))
	}
	return out, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── Expense repository stub ───────────────────────────────────────────────────

type stubExpenseRepo struct {
	expenses []*model.Expense
}

func (r *stubExpenseRepo) Create(_ context.Context, e *model.Expense) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	cp := *e
	r.expenses = append(r.expenses, &cp)
	return nil
}

func (r *stubExpenseRepo) CreateTx(_ *gorm.DB, e *model.Expense) error {
	return r.Create(context.Background(), e)
}

func (r *stubExpenseRepo) ListByRange(_ context.Context, companyID uuid.UUID, from, to time.Time) ([]model.Expense, error) {
	var out []model.Expense
	for _, e := range r.expenses {
		if e.CompanyID == companyID && !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubExpenseRepo) List(_ context.Context, companyID uuid.UUID, _ dto.ExpenseFilter) ([]model.Expense, int64, error) {
	var out []model.Expense
	for _, e := range r.expenses {
		if e.CompanyID == companyID {
			out = append(out, *e)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubExpenseRepo) Total(_ context.Context, companyID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range r.expenses {
		if e.CompanyID == companyID && !e.Date.Before(from) && !e.Date.After(to) {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

func (r *stubExpenseRepo) TotalByDay(_ context.Context, companyID uuid.UUID, from, to time.Time) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	for _, e := range r.expenses {
		if e.CompanyID == companyID && !e.Date.Before(from) && !e.Date.After(to) {
			key := e.Date.Format("2006-01-02")
			out[key] = out[key].Add(e.Amount)
		}
	}
	return out, nil
}

var _ repository.ExpenseRepository = (*stubExpenseRepo)(nil)

// ── User repository stub ──────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.Active {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByUsernameInCompany(_ context.Context, companyID uuid.UUID, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.CompanyID == companyID && u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) List(_ context.Context, companyID uuid.UUID) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.CompanyID == companyID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, companyID, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok || u.CompanyID != companyID {
		return gorm.ErrRecordNotFound
	}
	u.Active = false
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)
