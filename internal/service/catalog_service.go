package service

import (
	"context"
	"errors"
	"strings"

	"github.com/peegflow-code/PeegFlow-Piloto/internal/apierror"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/dto"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/model"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogService owns the product catalog of a tenant. Products are born with
// zero stock; stock moves only through sales and restocks.
type CatalogService interface {
	Register(ctx context.Context, companyID uuid.UUID, req dto.RegisterProductRequest) (*dto.ProductResponse, error)
	Update(ctx context.Context, companyID, productID uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, companyID, productID uuid.UUID) error
	Get(ctx context.Context, companyID, productID uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, companyID uuid.UUID, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	LowStock(ctx context.Context, companyID uuid.UUID) ([]dto.ProductResponse, error)
}

type catalogService struct {
	products repository.ProductRepository
	sales    repository.SaleRepository
}

func NewCatalogService(products repository.ProductRepository, sales repository.SaleRepository) CatalogService {
	return &catalogService{products: products, sales: sales}
}

func (s *catalogService) Register(ctx context.Context, companyID uuid.UUID, req dto.RegisterProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(req.Name)
	sku := strings.TrimSpace(req.SKU)
	if name == "" {
		return nil, apierror.Validation("name", "nome é obrigatório")
	}
	if sku == "" {
		return nil, apierror.Validation("sku", "SKU é obrigatório")
	}
	if req.PriceRetail.IsNegative() || req.PriceWholesale.IsNegative() {
		return nil, apierror.Validation("price", "preço não pode ser negativo")
	}

	if _, err := s.products.FindBySKU(ctx, companyID, sku); err == nil {
		return nil, apierror.Conflict("já existe um produto com esse SKU")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = "Geral"
	}

	p := &model.Product{
		CompanyID:      companyID,
		SKU:            sku,
		Name:           name,
		Category:       category,
		PriceRetail:    req.PriceRetail,
		PriceWholesale: req.PriceWholesale,
		Stock:          0,
		StockMin:       req.StockMin,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *catalogService) Update(ctx context.Context, companyID, productID uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, companyID, productID)
	if err != nil {
		return nil, apierror.NotFound("produto")
	}

	if req.SKU != nil {
		sku := strings.TrimSpace(*req.SKU)
		if sku == "" {
			return nil, apierror.Validation("sku", "SKU é obrigatório")
		}
		if other, err := s.products.FindBySKU(ctx, companyID, sku); err == nil && other.ID != p.ID {
			return nil, apierror.Conflict("já existe um produto com esse SKU")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		p.SKU = sku
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apierror.Validation("name", "nome é obrigatório")
		}
		p.Name = name
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.PriceRetail != nil {
		if req.PriceRetail.IsNegative() {
			return nil, apierror.Validation("price_retail", "preço não pode ser negativo")
		}
		p.PriceRetail = *req.PriceRetail
	}
	if req.PriceWholesale != nil {
		if req.PriceWholesale.IsNegative() {
			return nil, apierror.Validation("price_wholesale", "preço não pode ser negativo")
		}
		p.PriceWholesale = *req.PriceWholesale
	}
	if req.StockMin != nil {
		p.StockMin = *req.StockMin
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *catalogService) Delete(ctx context.Context, companyID, productID uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, companyID, productID); err != nil {
		return apierror.NotFound("produto")
	}

	// Sales history takes precedence over catalog edits: a product that was
	// ever sold stays forever.
	n, err := s.sales.CountByProduct(ctx, companyID, productID)
	if err != nil {
		return err
	}
	if n > 0 {
		return apierror.Conflict("não é possível excluir: produto já tem vendas registradas")
	}

	return s.products.Delete(ctx, companyID, productID)
}

func (s *catalogService) Get(ctx context.Context, companyID, productID uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, companyID, productID)
	if err != nil {
		return nil, apierror.NotFound("produto")
	}
	return productToResponse(p), nil
}

func (s *catalogService) List(ctx context.Context, companyID uuid.UUID, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	products, total, err := s.products.List(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *catalogService) LowStock(ctx context.Context, companyID uuid.UUID) ([]dto.ProductResponse, error) {
	products, err := s.products.ListLowStock(ctx, companyID)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, *productToResponse(&products[i]))
	}
	return data, nil
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:             p.ID.String(),
		SKU:            p.SKU,
		Name:           p.Name,
		Category:       p.Category,
		PriceRetail:    p.PriceRetail,
		PriceWholesale: p.PriceWholesale,
		Stock:          p.Stock,
		StockMin:       p.StockMin,
	}
}
