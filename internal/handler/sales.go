package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peegflow-code/PeegFlow-Piloto/internal/apierror"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/dto"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/service"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler {
	return &SalesHandler{svc: svc}
}

func (h *SalesHandler) Record(c *gin.Context) {
	tenant, ok := companyID(c)
	if !ok {
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.RecordSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecordSale(c.Request.Context(), tenant, actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Checkout records a multi-line sale atomically and returns the receipt.
func (h *SalesHandler) Checkout(c *gin.Context) {
	tenant, ok := companyID(c)
	if !ok {
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	receipt, err := h.svc.Checkout(c.Request.Context(), tenant, actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

func (h *SalesHandler) List(c *gin.Context) {
	tenant, ok := companyID(c)
	if !ok {
		return
	}
	var filter dto.SaleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListSales(c.Request.Context(), tenant, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
