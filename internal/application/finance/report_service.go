package finance

import (
	"context"
	"time"

	"github.com/phoneshop/backend/internal/domain/finance"
	"go.uber.org/zap"
)

// SummaryCache caches generated financial summaries keyed by period.
// A nil result with no error means a cache miss.
type SummaryCache interface {
	Get(ctx context.Context, from, to time.Time) (*finance.FinancialSummary, error)
	Set(ctx context.Context, summary *finance.FinancialSummary, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// ReportService assembles the consolidated financial summary from the
// aggregate queries and the expense totals. Summaries are cached briefly
// since they join several tables.
type ReportService struct {
	reportRepo  finance.ReportRepository
	expenseRepo finance.ExpenseRepository
	cache       SummaryCache
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewReportService creates a new ReportService. cache may be nil, in which
// case every request recomputes the summary.
func NewReportService(
	reportRepo finance.ReportRepository,
	expenseRepo finance.ExpenseRepository,
	cache SummaryCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		reportRepo:  reportRepo,
		expenseRepo: expenseRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// FinancialSummary builds the consolidated report for [from, to)
func (s *ReportService) FinancialSummary(ctx context.Context, from, to time.Time) (*finance.FinancialSummary, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, from, to)
		if err != nil {
			s.logger.Warn("summary cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	inventoryValue, err := s.reportRepo.InventoryValue(ctx)
	if err != nil {
		return nil, err
	}
	salesTotals, err := s.reportRepo.SalesTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}
	capitalTotals, err := s.reportRepo.CapitalTotals(ctx)
	if err != nil {
		return nil, err
	}
	totalExpenses, err := s.expenseRepo.SumByPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}

	netProfit := salesTotals.InitialProfit.
		Add(salesTotals.CollectedInterest).
		Sub(totalExpenses).
		Sub(capitalTotals.InvestorProfitPaid)

	summary := &finance.FinancialSummary{
		From:           from,
		To:             to,
		InventoryValue: inventoryValue,
		Sales:          salesTotals,
		Capital:        capitalTotals,
		TotalExpenses:  totalExpenses,
		NetProfit:      netProfit,
		GeneratedAt:    time.Now(),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, summary, s.cacheTTL); err != nil {
			s.logger.Warn("summary cache write failed", zap.Error(err))
		}
	}
	return summary, nil
}
