package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	financeapp "github.com/phoneshop/backend/internal/application/finance"
)

// ExpenseHandler handles operating expense API endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService *financeapp.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *financeapp.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
	}
}

// Create godoc
// @ID           createExpense
// @Summary      Record an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        request body financeapp.CreateExpenseRequest true "Expense creation request"
// @Success      201 {object} APIResponse[financeapp.ExpenseResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /finance/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req financeapp.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, expense)
}

// GetByID godoc
// @ID           getExpenseById
// @Summary      Get expense by ID
// @Tags         expenses
// @Produce      json
// @Param        id path string true "Expense ID" format(uuid)
// @Success      200 {object} APIResponse[financeapp.ExpenseResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /finance/expenses/{id} [get]
func (h *ExpenseHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, expense)
}

// List godoc
// @ID           listExpenses
// @Summary      List expenses
// @Description  List expenses with pagination, optionally bounded to a period
// @Tags         expenses
// @Produce      json
// @Param        from query string false "Period start (RFC 3339 or YYYY-MM-DD)"
// @Param        to query string false "Period end, exclusive (RFC 3339 or YYYY-MM-DD)"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]financeapp.ExpenseResponse]
// @Router       /finance/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	from, err := parseOptionalDate(c.Query("from"))
	if err != nil {
		h.BadRequest(c, "Invalid from date")
		return
	}
	to, err := parseOptionalDate(c.Query("to"))
	if err != nil {
		h.BadRequest(c, "Invalid to date")
		return
	}
	if expenseType := c.Query("type"); expenseType != "" {
		filter.Filters = map[string]interface{}{"type": expenseType}
	}

	page, err := h.expenseService.ListExpenses(c.Request.Context(), from, to, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateExpense
// @Summary      Update an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id path string true "Expense ID" format(uuid)
// @Param        request body financeapp.UpdateExpenseRequest true "Expense update request"
// @Success      200 {object} APIResponse[financeapp.ExpenseResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /finance/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	var req financeapp.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, expense)
}

// Delete godoc
// @ID           deleteExpense
// @Summary      Delete an expense
// @Tags         expenses
// @Produce      json
// @Param        id path string true "Expense ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /finance/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ReportHandler handles financial report API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *financeapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *financeapp.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Summary godoc
// @ID           getFinancialSummary
// @Summary      Get the financial summary
// @Description  Consolidated inventory, sales, capital and expense totals for a period
// @Tags         reports
// @Produce      json
// @Param        from query string true "Period start (RFC 3339 or YYYY-MM-DD)"
// @Param        to query string true "Period end, exclusive (RFC 3339 or YYYY-MM-DD)"
// @Success      200 {object} APIResponse[finance.FinancialSummary]
// @Failure      400 {object} ErrorResponse
// @Router       /reports/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	from, err := parseOptionalDate(c.Query("from"))
	if err != nil || from == nil {
		h.BadRequest(c, "A valid from date is required")
		return
	}
	to, err := parseOptionalDate(c.Query("to"))
	if err != nil || to == nil {
		h.BadRequest(c, "A valid to date is required")
		return
	}

	summary, err := h.reportService.FinancialSummary(c.Request.Context(), *from, *to)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// parseOptionalDate accepts RFC 3339 timestamps or bare dates
func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
