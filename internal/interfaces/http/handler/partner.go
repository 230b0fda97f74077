package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	partnerapp "github.com/phoneshop/backend/internal/application/partner"
)

// PartnerHandler handles partner capital ledger API endpoints
type PartnerHandler struct {
	BaseHandler
	partnerService *partnerapp.PartnerService
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(partnerService *partnerapp.PartnerService) *PartnerHandler {
	return &PartnerHandler{
		partnerService: partnerService,
	}
}

// Create godoc
// @ID           createPartner
// @Summary      Register a partner
// @Description  Register a new partner with opening capital and profit share
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreatePartnerRequest true "Partner registration request"
// @Success      201 {object} APIResponse[partnerapp.PartnerResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /partners [post]
func (h *PartnerHandler) Create(c *gin.Context) {
	var req partnerapp.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	partner, err := h.partnerService.CreatePartner(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, partner)
}

// GetByID godoc
// @ID           getPartnerById
// @Summary      Get partner by ID
// @Tags         partners
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Success      200 {object} APIResponse[partnerapp.PartnerResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /partners/{id} [get]
func (h *PartnerHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid partner ID format")
		return
	}

	partner, err := h.partnerService.GetPartnerByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, partner)
}

// List godoc
// @ID           listPartners
// @Summary      List partners
// @Description  List partners. Soft-deleted partners are excluded unless include_deleted is set.
// @Tags         partners
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        include_deleted query bool false "Include soft-deleted partners"
// @Success      200 {object} APIResponse[[]partnerapp.PartnerResponse]
// @Router       /partners [get]
func (h *PartnerHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	includeDeleted := c.Query("include_deleted") == "true"

	page, err := h.partnerService.ListPartners(c.Request.Context(), filter, includeDeleted)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updatePartner
// @Summary      Update a partner
// @Description  Update a partner's name or profit share
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Param        request body partnerapp.UpdatePartnerRequest true "Partner update request"
// @Success      200 {object} APIResponse[partnerapp.PartnerResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /partners/{id} [put]
func (h *PartnerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid partner ID format")
		return
	}

	var req partnerapp.UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	partner, err := h.partnerService.UpdatePartner(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, partner)
}

// AdjustBalance godoc
// @ID           adjustPartnerBalance
// @Summary      Adjust a partner's balance
// @Description  Record a manual capital or profit movement against the partner ledger
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Param        request body partnerapp.AdjustBalanceRequest true "Balance adjustment request"
// @Success      200 {object} APIResponse[partnerapp.AdjustBalanceResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /partners/{id}/balance [post]
func (h *PartnerHandler) AdjustBalance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid partner ID format")
		return
	}

	var req partnerapp.AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.partnerService.AdjustBalance(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete godoc
// @ID           deletePartner
// @Summary      Delete a partner
// @Description  Soft-delete a partner. The ledger and history are preserved.
// @Tags         partners
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /partners/{id} [delete]
func (h *PartnerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid partner ID format")
		return
	}

	if err := h.partnerService.DeletePartner(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ListTransactions godoc
// @ID           listPartnerTransactions
// @Summary      List partner ledger entries
// @Description  List the partner's transaction log, newest first
// @Tags         partners
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]partnerapp.TransactionResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /partners/{id}/transactions [get]
func (h *PartnerHandler) ListTransactions(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid partner ID format")
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.partnerService.ListTransactions(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// ListAllTransactions godoc
// @ID           listAllPartnerTransactions
// @Summary      List ledger entries across partners
// @Description  List partner ledger entries across every partner, newest first
// @Tags         partner-transactions
// @Produce      json
// @Param        type query string false "Transaction type"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]partnerapp.TransactionResponse]
// @Router       /partner-transactions [get]
func (h *PartnerHandler) ListAllTransactions(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.partnerService.ListAllTransactions(c.Request.Context(), c.Query("type"), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// ReverseTransaction godoc
// @ID           reversePartnerTransaction
// @Summary      Reverse a capital ledger entry
// @Description  Append the compensating entry for a capital_add or capital_withdraw. Profit entries cannot be reversed.
// @Tags         partner-transactions
// @Accept       json
// @Produce      json
// @Param        id path string true "Transaction ID" format(uuid)
// @Param        request body partnerapp.ReverseTransactionRequest false "Optional reversal note"
// @Success      200 {object} APIResponse[partnerapp.AdjustBalanceResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /partner-transactions/{id}/reverse [post]
func (h *PartnerHandler) ReverseTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	var req partnerapp.ReverseTransactionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	result, err := h.partnerService.ReverseTransaction(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ListHistory godoc
// @ID           listPartnerHistory
// @Summary      List partner balance snapshots
// @Description  List the partner's balance history, newest first
// @Tags         partners
// @Produce      json
// @Param        id path string true "Partner ID" format(uuid)
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]partnerapp.HistoryResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /partners/{id}/history [get]
func (h *PartnerHandler) ListHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid partner ID format")
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.partnerService.ListHistory(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}
