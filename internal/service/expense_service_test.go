package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peegflow-code/PeegFlow-Piloto/internal/apierror"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/dto"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/model"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/service"
)

func buildExpenseSvc() (service.ExpenseService, *stubProductRepo, *stubExpenseRepo) {
	products := newStubProductRepo()
	expenses := &stubExpenseRepo{}
	return service.NewExpenseService(expenses, products), products, expenses
}

func TestRestock_IncrementsStockAndBooksExpense(t *testing.T) {
	svc, products, expenses := buildExpenseSvc()
	tenant := uuid.New()
	p := seedProduct(products, tenant, "CAF-001", "Café Torrado", 4, 5, 18.90, 15.00)

	resp, err := svc.Restock(context.Background(), tenant, p.ID, dto.RestockRequest{
		Quantity: 20,
		UnitCost: decimal.NewFromFloat(3.50),
	})
	require.NoError(t, err)

	assert.Equal(t, 24, resp.Stock)
	assert.Equal(t, 24, products.products[p.ID].Stock)
	assert.True(t, resp.TotalCost.Equal(decimal.NewFromFloat(70.00)))
	assert.Equal(t, "Reposição Estoque: Café Torrado (20x R$ 3.50)", resp.Description)

	require.Len(t, expenses.expenses, 1)
	booked := expenses.expenses[0]
	assert.Equal(t, model.CategoryRestock, booked.Category)
	assert.True(t, booked.Amount.Equal(decimal.NewFromFloat(70.00)))
	assert.Equal(t, tenant, booked.CompanyID)
}

func TestRestock_ReportsStockAfterConcurrentSale(t *testing.T) {
	svc, products, _ := buildExpenseSvc()
	tenant := uuid.New()
	p := seedProduct(products, tenant, "CAF-001", "Café Torrado", 4, 5, 18.90, 15.00)

	// A sale lands between the pre-flight read and the increment; the
	// response must report the stock as committed, not the stale read + qty.
	products.beforeIncrement = func() {
		products.products[p.ID].Stock--
	}

	resp, err := svc.Restock(context.Background(), tenant, p.ID, dto.RestockRequest{
		Quantity: 20,
		UnitCost: decimal.NewFromFloat(3.50),
	})
	require.NoError(t, err)

	assert.Equal(t, 23, resp.Stock)
	assert.Equal(t, 23, products.products[p.ID].Stock)
}

func TestRestock_NonPositiveQuantity(t *testing.T) {
	svc, products, expenses := buildExpenseSvc()
	tenant := uuid.New()
	p := seedProduct(products, tenant, "CAF-001", "Café", 4, 5, 18.90, 15.00)

	for _, qty := range []int{0, -10} {
		_, err := svc.Restock(context.Background(), tenant, p.ID, dto.RestockRequest{
			Quantity: qty,
			UnitCost: decimal.NewFromFloat(3.50),
		})
		var validation *apierror.ValidationError
		assert.ErrorAs(t, err, &validation)
	}

	// Stock untouched, no expense booked.
	assert.Equal(t, 4, products.products[p.ID].Stock)
	assert.Empty(t, expenses.expenses)
}

func TestRestock_UnknownProduct(t *testing.T) {
	svc, _, _ := buildExpenseSvc()

	_, err := svc.Restock(context.Background(), uuid.New(), uuid.New(), dto.RestockRequest{
		Quantity: 5,
		UnitCost: decimal.NewFromFloat(1),
	})
	var notFound *apierror.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestRestock_CrossTenantProductIsNotFound(t *testing.T) {
	svc, products, _ := buildExpenseSvc()
	p := seedProduct(products, uuid.New(), "CAF-001", "Café", 4, 5, 18.90, 15.00)

	_, err := svc.Restock(context.Background(), uuid.New(), p.ID, dto.RestockRequest{
		Quantity: 5,
		UnitCost: decimal.NewFromFloat(1),
	})
	var notFound *apierror.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestAddExpense_KeepsCallerDate(t *testing.T) {
	svc, _, expenses := buildExpenseSvc()
	tenant := uuid.New()
	backDated := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	resp, err := svc.Add(context.Background(), tenant, dto.AddExpenseRequest{
		Description: "Aluguel da loja",
		Amount:      decimal.NewFromFloat(1200),
		Category:    "Fixas",
		Date:        backDated,
	})
	require.NoError(t, err)
	assert.True(t, resp.Date.Equal(backDated))
	require.Len(t, expenses.expenses, 1)
	assert.True(t, expenses.expenses[0].Date.Equal(backDated))
}

func TestAddExpense_NonPositiveAmount(t *testing.T) {
	svc, _, _ := buildExpenseSvc()

	for _, amount := range []float64{0, -50} {
		_, err := svc.Add(context.Background(), uuid.New(), dto.AddExpenseRequest{
			Description: "Teste",
			Amount:      decimal.NewFromFloat(amount),
			Category:    "Outros",
			Date:        time.Now(),
		})
		var validation *apierror.ValidationError
		assert.ErrorAs(t, err, &validation)
	}
}

func TestAddExpense_BlankDescription(t *testing.T) {
	svc, _, _ := buildExpenseSvc()

	_, err := svc.Add(context.Background(), uuid.New(), dto.AddExpenseRequest{
		Description: "  ",
		Amount:      decimal.NewFromFloat(10),
		Category:    "Outros",
		Date:        time.Now(),
	})
	var validation *apierror.ValidationError
	assert.ErrorAs(t, err, &validation)
}
