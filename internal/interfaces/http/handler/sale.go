package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	salesapp "github.com/phoneshop/backend/internal/application/sales"
)

// SaleHandler handles financed sale API endpoints
type SaleHandler struct {
	BaseHandler
	saleService *salesapp.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *salesapp.SaleService) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
	}
}

// Preview godoc
// @ID           previewSchedule
// @Summary      Preview an installment schedule
// @Description  Generate an amortization schedule without recording a sale
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        request body salesapp.PreviewScheduleRequest true "Schedule preview request"
// @Success      200 {object} APIResponse[salesapp.SchedulePreviewResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /sales/preview [post]
func (h *SaleHandler) Preview(c *gin.Context) {
	var req salesapp.PreviewScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	preview, err := h.saleService.PreviewSchedule(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, preview)
}

// Create godoc
// @ID           createSale
// @Summary      Record a financed sale
// @Description  Sell a phone on installments, generate the schedule and reserve partner capital
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        request body salesapp.CreateSaleRequest true "Sale creation request"
// @Success      201 {object} APIResponse[salesapp.SaleResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /sales [post]
func (h *SaleHandler) Create(c *gin.Context) {
	var req salesapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, sale)
}

// GetByID godoc
// @ID           getSaleById
// @Summary      Get sale by ID
// @Description  Retrieve a sale with its full installment schedule
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Success      200 {object} APIResponse[salesapp.SaleResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /sales/{id} [get]
func (h *SaleHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	sale, err := h.saleService.GetSaleByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}

// List godoc
// @ID           listSales
// @Summary      List sales
// @Description  List sales with pagination, optionally filtered by customer or status
// @Tags         sales
// @Produce      json
// @Param        customer_id query string false "Filter by customer ID" format(uuid)
// @Param        status query string false "Filter by status" Enums(active, completed, defaulted)
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]salesapp.SaleResponse]
// @Router       /sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var customerID *uuid.UUID
	if raw := c.Query("customer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid customer ID format")
			return
		}
		customerID = &id
	}

	page, err := h.saleService.ListSales(c.Request.Context(), customerID, c.Query("status"), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// PayInstallment godoc
// @ID           payInstallment
// @Summary      Pay an installment
// @Description  Settle one installment and distribute the collected amount to the partners
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Param        installment_id path string true "Installment ID" format(uuid)
// @Param        request body salesapp.PayInstallmentRequest false "Payment details"
// @Success      200 {object} APIResponse[salesapp.SaleResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /sales/{id}/installments/{installment_id}/pay [post]
func (h *SaleHandler) PayInstallment(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}
	installmentID, err := uuid.Parse(c.Param("installment_id"))
	if err != nil {
		h.BadRequest(c, "Invalid installment ID format")
		return
	}

	var req salesapp.PayInstallmentRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	sale, err := h.saleService.PayInstallment(c.Request.Context(), saleID, installmentID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}

// MarkDefaulted godoc
// @ID           markSaleDefaulted
// @Summary      Mark a sale as defaulted
// @Description  Close out a sale whose customer stopped paying
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Success      200 {object} APIResponse[salesapp.SaleResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /sales/{id}/default [post]
func (h *SaleHandler) MarkDefaulted(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	sale, err := h.saleService.MarkDefaulted(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}

// Delete godoc
// @ID           deleteSale
// @Summary      Delete a sale
// @Description  Delete a sale, release reserved partner capital and return the phone to inventory
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /sales/{id} [delete]
func (h *SaleHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	if err := h.saleService.DeleteSale(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ListInstallments godoc
// @ID           listSaleInstallments
// @Summary      List a sale's installments
// @Description  List the sale's amortization schedule ordered by installment number
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Success      200 {object} APIResponse[[]salesapp.InstallmentResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /sales/{id}/installments [get]
func (h *SaleHandler) ListInstallments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	items, err := h.saleService.ListInstallments(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, items)
}

// ListAllInstallments godoc
// @ID           listAllInstallments
// @Summary      List installments across sales
// @Description  List installments across every sale, nearest due date first
// @Tags         sales
// @Produce      json
// @Param        status query string false "Installment status"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]salesapp.InstallmentResponse]
// @Router       /sales/installments [get]
func (h *SaleHandler) ListAllInstallments(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.saleService.ListAllInstallments(c.Request.Context(), c.Query("status"), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// ListOverdue godoc
// @ID           listOverdueInstallments
// @Summary      List overdue installments
// @Description  List unpaid installments due before the given date, earliest first
// @Tags         sales
// @Produce      json
// @Param        as_of query string false "Reference date (RFC 3339), defaults to now"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]salesapp.InstallmentResponse]
// @Router       /sales/installments/overdue [get]
func (h *SaleHandler) ListOverdue(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	asOf, err := parseAsOf(c.Query("as_of"))
	if err != nil {
		h.BadRequest(c, "Invalid as_of date, expected RFC 3339")
		return
	}

	page, err := h.saleService.ListOverdueInstallments(c.Request.Context(), asOf, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// SweepOverdue godoc
// @ID           sweepOverdueInstallments
// @Summary      Mark overdue installments
// @Description  Flag every pending installment due before the given date as overdue
// @Tags         sales
// @Produce      json
// @Param        as_of query string false "Reference date (RFC 3339), defaults to now"
// @Success      200 {object} APIResponse[CountData]
// @Router       /sales/installments/overdue/sweep [post]
func (h *SaleHandler) SweepOverdue(c *gin.Context) {
	asOf, err := parseAsOf(c.Query("as_of"))
	if err != nil {
		h.BadRequest(c, "Invalid as_of date, expected RFC 3339")
		return
	}

	count, err := h.saleService.MarkOverdueInstallments(c.Request.Context(), asOf)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, CountData{Count: count})
}

func parseAsOf(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse(time.RFC3339, raw)
}
