package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peegflow-code/PeegFlow-Piloto/internal/service"
)

type FinanceHandler struct{ svc service.FinanceService }

func NewFinanceHandler(svc service.FinanceService) *FinanceHandler {
	return &FinanceHandler{svc: svc}
}

// Financials returns the raw sales and expenses inside [from, to].
func (h *FinanceHandler) Financials(c *gin.Context) {
	tenant, ok := companyID(c)
	if !ok {
		return
	}
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetFinancials(c.Request.Context(), tenant, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Summary returns the aggregated dashboard numbers for [from, to].
func (h *FinanceHandler) Summary(c *gin.Context) {
	tenant, ok := companyID(c)
	if !ok {
		return
	}
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetSummary(c.Request.Context(), tenant, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
