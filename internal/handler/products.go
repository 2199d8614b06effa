package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peegflow-code/PeegFlow-Piloto/internal/apierror"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/dto"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/service"
)

type ProductsHandler struct {
	catalog  service.CatalogService
	expenses service.ExpenseService
}

func NewProductsHandler(catalog service.CatalogService, expenses service.ExpenseService) *ProductsHandler {
	return &ProductsHandler{catalog: catalog, expenses: expenses}
}

func (h *ProductsHandler) Register(c *gin.Context) {
	tenant, ok := companyID(c)
	if !ok {
		return
	}
	var req dto.RegisterProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.catalog.Register(c.Request.Context(), tenant, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductsHandler) List(c *gin.Context) {
	tenant, ok := companyID(c)
	if !ok {
		return
	}
	var filter dto.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.catalog.List(c.Request.Context(), tenant, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Get(c *gin.Context) {
	tenant, ok := companyID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.catalog.Get(c.Request.Context(), tenant, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Update(c *gin.Context) {
	tenant, ok := companyID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.catalog.Update(c.Request.Context(), tenant, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	tenant, ok := companyID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.Delete(c.Request.Context(), tenant, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductsHandler) LowStock(c *gin.Context) {
	tenant, ok := companyID(c)
	if !ok {
		return
	}
	resp, err := h.catalog.LowStock(c.Request.Context(), tenant)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Restock increments stock and books the replacement cost as an expense in
// the same transaction.
func (h *ProductsHandler) Restock(c *gin.Context) {
	tenant, ok := companyID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.RestockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.expenses.Restock(c.Request.Context(), tenant, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
