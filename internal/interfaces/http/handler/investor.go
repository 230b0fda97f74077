package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	investorapp "github.com/phoneshop/backend/internal/application/investor"
)

// InvestorHandler handles investor capital ledger API endpoints
type InvestorHandler struct {
	BaseHandler
	investorService *investorapp.InvestorService
}

// NewInvestorHandler creates a new InvestorHandler
func NewInvestorHandler(investorService *investorapp.InvestorService) *InvestorHandler {
	return &InvestorHandler{
		investorService: investorService,
	}
}

// Create godoc
// @ID           createInvestor
// @Summary      Register an investor
// @Description  Register a new investor with an opening investment and fixed profit rate
// @Tags         investors
// @Accept       json
// @Produce      json
// @Param        request body investorapp.CreateInvestorRequest true "Investor registration request"
// @Success      201 {object} APIResponse[investorapp.InvestorResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /investors [post]
func (h *InvestorHandler) Create(c *gin.Context) {
	var req investorapp.CreateInvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	investor, err := h.investorService.CreateInvestor(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, investor)
}

// GetByID godoc
// @ID           getInvestorById
// @Summary      Get investor by ID
// @Tags         investors
// @Produce      json
// @Param        id path string true "Investor ID" format(uuid)
// @Success      200 {object} APIResponse[investorapp.InvestorResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /investors/{id} [get]
func (h *InvestorHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid investor ID format")
		return
	}

	investor, err := h.investorService.GetInvestorByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, investor)
}

// List godoc
// @ID           listInvestors
// @Summary      List investors
// @Tags         investors
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search by name or national ID"
// @Success      200 {object} APIResponse[[]investorapp.InvestorResponse]
// @Router       /investors [get]
func (h *InvestorHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.investorService.ListInvestors(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateInvestor
// @Summary      Update an investor
// @Tags         investors
// @Accept       json
// @Produce      json
// @Param        id path string true "Investor ID" format(uuid)
// @Param        request body investorapp.UpdateInvestorRequest true "Investor update request"
// @Success      200 {object} APIResponse[investorapp.InvestorResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /investors/{id} [put]
func (h *InvestorHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid investor ID format")
		return
	}

	var req investorapp.UpdateInvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	investor, err := h.investorService.UpdateInvestor(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, investor)
}

// AdjustCapital godoc
// @ID           adjustInvestorCapital
// @Summary      Adjust an investor's capital
// @Description  Record a signed capital movement, positive for deposit and negative for withdrawal
// @Tags         investors
// @Accept       json
// @Produce      json
// @Param        id path string true "Investor ID" format(uuid)
// @Param        request body investorapp.AdjustCapitalRequest true "Capital adjustment request"
// @Success      200 {object} APIResponse[investorapp.AdjustCapitalResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /investors/{id}/capital [post]
func (h *InvestorHandler) AdjustCapital(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid investor ID format")
		return
	}

	var req investorapp.AdjustCapitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.investorService.AdjustCapital(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// RecordProfitPayment godoc
// @ID           recordInvestorProfitPayment
// @Summary      Record a profit payment
// @Description  Record a profit payout to the investor and log it in the ledger
// @Tags         investors
// @Accept       json
// @Produce      json
// @Param        id path string true "Investor ID" format(uuid)
// @Param        request body investorapp.RecordProfitPaymentRequest true "Profit payment request"
// @Success      200 {object} APIResponse[investorapp.AdjustCapitalResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /investors/{id}/profit-payment [post]
func (h *InvestorHandler) RecordProfitPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid investor ID format")
		return
	}

	var req investorapp.RecordProfitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.investorService.RecordProfitPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Deactivate godoc
// @ID           deactivateInvestor
// @Summary      Deactivate an investor
// @Description  Mark an investor inactive. The ledger is preserved.
// @Tags         investors
// @Produce      json
// @Param        id path string true "Investor ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /investors/{id} [delete]
func (h *InvestorHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid investor ID format")
		return
	}

	if err := h.investorService.DeactivateInvestor(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ListTransactions godoc
// @ID           listInvestorTransactions
// @Summary      List investor ledger entries
// @Description  List the investor's transaction log, newest first
// @Tags         investors
// @Produce      json
// @Param        id path string true "Investor ID" format(uuid)
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]investorapp.TransactionResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /investors/{id}/transactions [get]
func (h *InvestorHandler) ListTransactions(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid investor ID format")
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.investorService.ListTransactions(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// ListAllTransactions godoc
// @ID           listAllInvestorTransactions
// @Summary      List ledger entries across investors
// @Description  List investor ledger entries across every investor, newest first
// @Tags         investor-transactions
// @Produce      json
// @Param        type query string false "Transaction type"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]investorapp.TransactionResponse]
// @Router       /investor-transactions [get]
func (h *InvestorHandler) ListAllTransactions(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.investorService.ListAllTransactions(c.Request.Context(), c.Query("type"), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}
