package finance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesTotals aggregates sale figures over a period
type SalesTotals struct {
	SaleCount        int64           `json:"sale_count"`
	TotalAnnounced   decimal.Decimal `json:"total_announced"`
	TotalDownPayment decimal.Decimal `json:"total_down_payment"`
	InitialProfit    decimal.Decimal `json:"initial_profit"`
	CollectedPrincipal decimal.Decimal `json:"collected_principal"`
	CollectedInterest  decimal.Decimal `json:"collected_interest"`
	OutstandingDebt    decimal.Decimal `json:"outstanding_debt"`
}

// CapitalTotals aggregates partner and investor balances
type CapitalTotals struct {
	PartnerCapital          decimal.Decimal `json:"partner_capital"`
	PartnerAvailableCapital decimal.Decimal `json:"partner_available_capital"`
	PartnerInitialProfit    decimal.Decimal `json:"partner_initial_profit"`
	PartnerMonthlyProfit    decimal.Decimal `json:"partner_monthly_profit"`
	InvestorPrincipal       decimal.Decimal `json:"investor_principal"`
	InvestorProfitPaid      decimal.Decimal `json:"investor_profit_paid"`
}

// FinancialSummary is the consolidated report for one period
type FinancialSummary struct {
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	Sales          SalesTotals     `json:"sales"`
	Capital        CapitalTotals   `json:"capital"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	NetProfit      decimal.Decimal `json:"net_profit"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

// ReportRepository runs the aggregate queries behind the financial summary.
// Reads run against a consistent snapshot; they take no locks.
type ReportRepository interface {
	// InventoryValue sums the purchase price of phones still in stock
	InventoryValue(ctx context.Context) (decimal.Decimal, error)

	// SalesTotals aggregates sales dated within [from, to)
	SalesTotals(ctx context.Context, from, to time.Time) (SalesTotals, error)

	// CapitalTotals aggregates current partner and investor balances
	CapitalTotals(ctx context.Context) (CapitalTotals, error)
}
