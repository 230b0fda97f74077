package persistence

import (
	"context"
	"time"

	"github.com/phoneshop/backend/internal/domain/finance"
	"github.com/phoneshop/backend/internal/domain/investor"
	"github.com/phoneshop/backend/internal/domain/inventory"
	"github.com/phoneshop/backend/internal/domain/partner"
	"github.com/phoneshop/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReportRepository implements ReportRepository using GORM
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// InventoryValue sums the purchase price of phones still in stock
func (r *GormReportRepository) InventoryValue(ctx context.Context) (decimal.Decimal, error) {
	var value decimal.Decimal
	if err := dbFromContext(ctx, r.db).
		Table("phones").
		Select("COALESCE(SUM(purchase_price), 0)").
		Where("status = ?", inventory.PhoneStatusAvailable).
		Scan(&value).Error; err != nil {
		return decimal.Zero, err
	}
	return value, nil
}

// SalesTotals aggregates sales dated within [from, to). Collected figures
// count installments paid within the same window; outstanding debt is the
// unpaid principal of currently active sales.
func (r *GormReportRepository) SalesTotals(ctx context.Context, from, to time.Time) (finance.SalesTotals, error) {
	db := dbFromContext(ctx, r.db)
	var totals finance.SalesTotals

	row := struct {
		SaleCount        int64
		TotalAnnounced   decimal.Decimal
		TotalDownPayment decimal.Decimal
		InitialProfit    decimal.Decimal
	}{}
	if err := db.Table("sales").
		Select("COUNT(*) AS sale_count, " +
			"COALESCE(SUM(announced_price), 0) AS total_announced, " +
			"COALESCE(SUM(down_payment), 0) AS total_down_payment, " +
			"COALESCE(SUM(initial_profit), 0) AS initial_profit").
		Where("sale_date >= ? AND sale_date < ?", from, to).
		Scan(&row).Error; err != nil {
		return totals, err
	}
	totals.SaleCount = row.SaleCount
	totals.TotalAnnounced = row.TotalAnnounced
	totals.TotalDownPayment = row.TotalDownPayment
	totals.InitialProfit = row.InitialProfit

	collected := struct {
		CollectedPrincipal decimal.Decimal
		CollectedInterest  decimal.Decimal
	}{}
	if err := db.Table("installments").
		Select("COALESCE(SUM(principal_amount), 0) AS collected_principal, "+
			"COALESCE(SUM(interest_amount), 0) AS collected_interest").
		Where("status = ?", sales.InstallmentStatusPaid).
		Where("paid_date >= ? AND paid_date < ?", from, to).
		Scan(&collected).Error; err != nil {
		return totals, err
	}
	totals.CollectedPrincipal = collected.CollectedPrincipal
	totals.CollectedInterest = collected.CollectedInterest

	var outstanding decimal.Decimal
	if err := db.Table("installments i").
		Select("COALESCE(SUM(i.principal_amount), 0)").
		Joins("JOIN sales s ON s.id = i.sale_id").
		Where("i.status <> ?", sales.InstallmentStatusPaid).
		Where("s.status = ?", sales.SaleStatusActive).
		Scan(&outstanding).Error; err != nil {
		return totals, err
	}
	totals.OutstandingDebt = outstanding

	return totals, nil
}

// CapitalTotals aggregates current partner and investor balances
func (r *GormReportRepository) CapitalTotals(ctx context.Context) (finance.CapitalTotals, error) {
	db := dbFromContext(ctx, r.db)
	var totals finance.CapitalTotals

	partnerRow := struct {
		PartnerCapital          decimal.Decimal
		PartnerAvailableCapital decimal.Decimal
		PartnerInitialProfit    decimal.Decimal
		PartnerMonthlyProfit    decimal.Decimal
	}{}
	if err := db.Table("partners").
		Select("COALESCE(SUM(capital), 0) AS partner_capital, "+
			"COALESCE(SUM(available_capital), 0) AS partner_available_capital, "+
			"COALESCE(SUM(initial_profit), 0) AS partner_initial_profit, "+
			"COALESCE(SUM(monthly_profit), 0) AS partner_monthly_profit").
		Where("status = ?", partner.PartnerStatusActive).
		Scan(&partnerRow).Error; err != nil {
		return totals, err
	}
	totals.PartnerCapital = partnerRow.PartnerCapital
	totals.PartnerAvailableCapital = partnerRow.PartnerAvailableCapital
	totals.PartnerInitialProfit = partnerRow.PartnerInitialProfit
	totals.PartnerMonthlyProfit = partnerRow.PartnerMonthlyProfit

	investorRow := struct {
		InvestorPrincipal  decimal.Decimal
		InvestorProfitPaid decimal.Decimal
	}{}
	if err := db.Table("investors").
		Select("COALESCE(SUM(investment_amount), 0) AS investor_principal, "+
			"COALESCE(SUM(total_profit), 0) AS investor_profit_paid").
		Where("status = ?", investor.InvestorStatusActive).
		Scan(&investorRow).Error; err != nil {
		return totals, err
	}
	totals.InvestorPrincipal = investorRow.InvestorPrincipal
	totals.InvestorProfitPaid = investorRow.InvestorProfitPaid

	return totals, nil
}

// Ensure GormReportRepository implements ReportRepository
var _ finance.ReportRepository = (*GormReportRepository)(nil)
