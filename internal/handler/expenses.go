package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peegflow-code/PeegFlow-Piloto/internal/apierror"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/dto"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/service"
)

type ExpensesHandler struct{ svc service.ExpenseService }

func NewExpensesHandler(svc service.ExpenseService) *ExpensesHandler {
	return &ExpensesHandler{svc: svc}
}

func (h *ExpensesHandler) Add(c *gin.Context) {
	tenant, ok := companyID(c)
	if !ok {
		return
	}
	var req dto.AddExpenseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Add(c.Request.Context(), tenant, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ExpensesHandler) List(c *gin.Context) {
	tenant, ok := companyID(c)
	if !ok {
		return
	}
	var filter dto.ExpenseFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), tenant, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
