package service

import (
	"context"
	"time"

	"github.com/peegflow-code/PeegFlow-Piloto/internal/apierror"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/dto"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/model"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/repository"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleService is the stock ledger's only writer on the outflow side. Every
// recorded sale decrements stock and appends one immutable Sale row inside a
// single transaction.
type SaleService interface {
	RecordSale(ctx context.Context, companyID, userID uuid.UUID, req dto.RecordSaleRequest) (*dto.SaleResponse, error)
	Checkout(ctx context.Context, companyID, userID uuid.UUID, req dto.CheckoutRequest) (*dto.Receipt, error)
	ListSales(ctx context.Context, companyID uuid.UUID, filter dto.SaleFilter) (*dto.SaleListResponse, error)
}

type saleService struct {
	sales      repository.SaleRepository
	products   repository.ProductRepository
	dispatcher *worker.Dispatcher
}

func NewSaleService(sales repository.SaleRepository, products repository.ProductRepository, dispatcher *worker.Dispatcher) SaleService {
	return &saleService{sales: sales, products: products, dispatcher: dispatcher}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// unitPrice returns the price charged for this sale, captured now. Later
// catalog price edits never touch rows already written.
func unitPrice(p *model.Product, kind model.SaleKind) decimal.Decimal {
	if kind == model.KindWholesale {
		return p.PriceWholesale
	}
	return p.PriceRetail
}

func (s *saleService) RecordSale(ctx context.Context, companyID, userID uuid.UUID, req dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apierror.Validation("product_id", "identificador inválido")
	}
	// Resolve the product first: an absent product answers NotFound even when
	// the rest of the request is also malformed.
	p, err := s.products.FindByID(ctx, companyID, productID)
	if err != nil {
		return nil, apierror.NotFound("produto")
	}
	if req.Quantity <= 0 {
		return nil, apierror.Validation("quantity", "quantidade deve ser positiva")
	}
	kind := model.SaleKind(req.Kind)
	if !kind.Valid() {
		return nil, apierror.Validation("kind", "tipo de venda inválido")
	}
	// Pre-flight check for a friendly fast path; the conditional decrement
	// inside the transaction is the authoritative guard.
	if req.Quantity > p.Stock {
		return nil, &apierror.InsufficientStockError{Available: p.Stock}
	}

	price := unitPrice(p, kind)

	var sale model.Sale
	txErr := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		rows, err := s.products.DecrementStockTx(tx, companyID, productID, req.Quantity)
		if err != nil {
			return err
		}
		if rows == 0 {
			// Lost the race: someone sold from the same shelf first.
			available := 0
			if cur, err := s.products.FindByID(ctx, companyID, productID); err == nil {
				available = cur.Stock
			}
			return &apierror.InsufficientStockError{Available: available}
		}

		sale = model.Sale{
			CompanyID: companyID,
			ProductID: productID,
			UserID:    userID,
			Quantity:  req.Quantity,
			Price:     price,
			Kind:      kind,
			Date:      time.Now().UTC(),
		}
		return s.sales.CreateTx(tx, &sale)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.maybeAlertLowStock(ctx, p, p.Stock-req.Quantity)

	return &dto.SaleResponse{
		ID:          sale.ID.String(),
		ProductID:   productID.String(),
		ProductName: p.Name,
		Quantity:    sale.Quantity,
		Price:       sale.Price,
		Total:       sale.Price.Mul(decimal.NewFromInt(int64(sale.Quantity))),
		Kind:        string(sale.Kind),
		Date:        sale.Date,
	}, nil
}

// Checkout records a whole cart in one transaction: either every line's stock
// decrement and Sale row land, or none do. On success a receipt PDF job is
// enqueued (best effort — the committed sale never depends on it).
func (s *saleService) Checkout(ctx context.Context, companyID, userID uuid.UUID, req dto.CheckoutRequest) (*dto.Receipt, error) {
	kind := model.SaleKind(req.Kind)
	if !kind.Valid() {
		return nil, apierror.Validation("kind", "tipo de venda inválido")
	}
	if len(req.Items) == 0 {
		return nil, apierror.Validation("items", "carrinho vazio")
	}
	if req.Discount.IsNegative() {
		return nil, apierror.Validation("discount", "desconto não pode ser negativo")
	}

	// Resolve every line outside the transaction; prices are captured here.
	type resolvedLine struct {
		product  *model.Product
		quantity int
		price    decimal.Decimal
	}
	resolved := make([]resolvedLine, 0, len(req.Items))
	subtotal := decimal.Zero

	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, apierror.Validation("product_id", "identificador inválido")
		}
		p, err := s.products.FindByID(ctx, companyID, productID)
		if err != nil {
			return nil, apierror.NotFound("produto")
		}
		if item.Quantity <= 0 {
			return nil, apierror.Validation("quantity", "quantidade deve ser positiva")
		}
		if item.Quantity > p.Stock {
			return nil, &apierror.InsufficientStockError{Available: p.Stock}
		}
		price := unitPrice(p, kind)
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		resolved = append(resolved, resolvedLine{product: p, quantity: item.Quantity, price: price})
	}

	total := subtotal.Sub(req.Discount)
	if total.IsNegative() {
		return nil, apierror.Validation("discount", "desconto maior que o subtotal")
	}

	now := time.Now().UTC()
	txErr := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		for _, line := range resolved {
			rows, err := s.products.DecrementStockTx(tx, companyID, line.product.ID, line.quantity)
			if err != nil {
				return err
			}
			if rows == 0 {
				available := 0
				if cur, err := s.products.FindByID(ctx, companyID, line.product.ID); err == nil {
					available = cur.Stock
				}
				return &apierror.InsufficientStockError{Available: available}
			}
			sale := model.Sale{
				CompanyID: companyID,
				ProductID: line.product.ID,
				UserID:    userID,
				Quantity:  line.quantity,
				Price:     line.price,
				Kind:      kind,
				Date:      now,
			}
			if err := s.sales.CreateTx(tx, &sale); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	lines := make([]dto.ReceiptLine, 0, len(resolved))
	for _, line := range resolved {
		lines = append(lines, dto.ReceiptLine{
			Name:      line.product.Name,
			Quantity:  line.quantity,
			UnitPrice: line.price,
			LineTotal: line.price.Mul(decimal.NewFromInt(int64(line.quantity))),
		})
		s.maybeAlertLowStock(ctx, line.product, line.product.Stock-line.quantity)
	}

	receipt := &dto.Receipt{
		ReceiptID:     uuid.NewString(),
		Lines:         lines,
		Subtotal:      subtotal,
		Discount:      req.Discount,
		Total:         total,
		PaymentMethod: req.PaymentMethod,
		Date:          now,
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueReceipt(ctx, receipt)
	}
	return receipt, nil
}

// maybeAlertLowStock fires a low-stock alert job when this sale crossed the
// product's minimum threshold. Fire and forget — never fails the sale.
func (s *saleService) maybeAlertLowStock(ctx context.Context, p *model.Product, newStock int) {
	if s.dispatcher == nil {
		return
	}
	if newStock <= p.StockMin && p.Stock > p.StockMin {
		_ = s.dispatcher.EnqueueLowStock(ctx, worker.LowStockPayload{
			SKU:      p.SKU,
			Name:     p.Name,
			Stock:    newStock,
			StockMin: p.StockMin,
		})
	}
}

func (s *saleService) ListSales(ctx context.Context, companyID uuid.UUID, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.sales.List(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		data = append(data, *saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func saleToResponse(s *model.Sale) *dto.SaleResponse {
	name := ""
	if s.Product != nil {
		name = s.Product.Name
	}
	return &dto.SaleResponse{
		ID:          s.ID.String(),
		ProductID:   s.ProductID.String(),
		ProductName: name,
		Quantity:    s.Quantity,
		Price:       s.Price,
		Total:       s.Price.Mul(decimal.NewFromInt(int64(s.Quantity))),
		Kind:        string(s.Kind),
		Date:        s.Date,
	}
}
