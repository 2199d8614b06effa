package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peegflow-code/PeegFlow-Piloto/internal/dto"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/service"
)

type UsersHandler struct{ svc service.AuthService }

func NewUsersHandler(svc service.AuthService) *UsersHandler {
	return &UsersHandler{svc: svc}
}

func (h *UsersHandler) Create(c *gin.Context) {
	tenant, ok := companyID(c)
	if !ok {
		return
	}
	var req dto.CreateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateUser(c.Request.Context(), tenant, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *UsersHandler) List(c *gin.Context) {
	tenant, ok := companyID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListUsers(c.Request.Context(), tenant)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UsersHandler) Delete(c *gin.Context) {
	tenant, ok := companyID(c)
	if !ok {
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteUser(c.Request.Context(), tenant, actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ChangePassword lets the authenticated user rotate their own password.
func (h *UsersHandler) ChangePassword(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ChangePassword(c.Request.Context(), actor, req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
