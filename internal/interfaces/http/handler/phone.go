package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/phoneshop/backend/internal/application/inventory"
)

// PhoneHandler handles inventory-related API endpoints
type PhoneHandler struct {
	BaseHandler
	phoneService *inventoryapp.PhoneService
}

// NewPhoneHandler creates a new PhoneHandler
func NewPhoneHandler(phoneService *inventoryapp.PhoneService) *PhoneHandler {
	return &PhoneHandler{
		phoneService: phoneService,
	}
}

// Create godoc
// @ID           createPhone
// @Summary      Register a phone
// @Description  Register a new phone in inventory. The IMEI must be unique.
// @Tags         phones
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.CreatePhoneRequest true "Phone registration request"
// @Success      201 {object} APIResponse[inventoryapp.PhoneResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /inventory/phones [post]
func (h *PhoneHandler) Create(c *gin.Context) {
	var req inventoryapp.CreatePhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	phone, err := h.phoneService.CreatePhone(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, phone)
}

// GetByID godoc
// @ID           getPhoneById
// @Summary      Get phone by ID
// @Tags         phones
// @Produce      json
// @Param        id path string true "Phone ID" format(uuid)
// @Success      200 {object} APIResponse[inventoryapp.PhoneResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /inventory/phones/{id} [get]
func (h *PhoneHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid phone ID format")
		return
	}

	phone, err := h.phoneService.GetPhoneByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, phone)
}

// List godoc
// @ID           listPhones
// @Summary      List phones
// @Description  List phones with pagination, optionally filtered by status
// @Tags         phones
// @Produce      json
// @Param        status query string false "Filter by status" Enums(available, sold)
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search by brand, model or IMEI"
// @Success      200 {object} APIResponse[[]inventoryapp.PhoneResponse]
// @Router       /inventory/phones [get]
func (h *PhoneHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.phoneService.ListPhones(c.Request.Context(), c.Query("status"), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updatePhone
// @Summary      Update a phone
// @Description  Update a phone's descriptive fields and prices
// @Tags         phones
// @Accept       json
// @Produce      json
// @Param        id path string true "Phone ID" format(uuid)
// @Param        request body inventoryapp.UpdatePhoneRequest true "Phone update request"
// @Success      200 {object} APIResponse[inventoryapp.PhoneResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /inventory/phones/{id} [put]
func (h *PhoneHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid phone ID format")
		return
	}

	var req inventoryapp.UpdatePhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	phone, err := h.phoneService.UpdatePhone(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, phone)
}

// Delete godoc
// @ID           deletePhone
// @Summary      Delete a phone
// @Description  Delete a phone that is not referenced by any sale
// @Tags         phones
// @Produce      json
// @Param        id path string true "Phone ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /inventory/phones/{id} [delete]
func (h *PhoneHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid phone ID format")
		return
	}

	if err := h.phoneService.DeletePhone(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
