package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phoneshop/backend/internal/domain/customer"
	"github.com/phoneshop/backend/internal/domain/inventory"
	"github.com/phoneshop/backend/internal/domain/partner"
	"github.com/phoneshop/backend/internal/domain/sales"
	"github.com/phoneshop/backend/internal/domain/shared"
	"github.com/phoneshop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SaleService coordinates the compound sale operations: creating a sale
// writes the sale, its full installment schedule, the phone status flip and
// the partners' capital reservation as one atomic unit; paying an
// installment returns principal to the partners and accrues their interest
// profit in the same unit that marks the installment paid.
type SaleService struct {
	saleRepo     sales.SaleRepository
	instRepo     sales.InstallmentRepository
	phoneRepo    inventory.PhoneRepository
	customerRepo customer.CustomerRepository
	partnerRepo  partner.PartnerRepository
	historyRepo  partner.PartnerHistoryRepository
	txManager    shared.TransactionManager
	generator    *sales.ScheduleGenerator
	allocator    *partner.CapitalAllocator
	defaultRate  decimal.Decimal
}

// NewSaleService creates a new SaleService. defaultRate is the monthly
// interest rate applied when a request does not carry its own.
func NewSaleService(
	saleRepo sales.SaleRepository,
	instRepo sales.InstallmentRepository,
	phoneRepo inventory.PhoneRepository,
	customerRepo customer.CustomerRepository,
	partnerRepo partner.PartnerRepository,
	historyRepo partner.PartnerHistoryRepository,
	txManager shared.TransactionManager,
	defaultRate decimal.Decimal,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		instRepo:     instRepo,
		phoneRepo:    phoneRepo,
		customerRepo: customerRepo,
		partnerRepo:  partnerRepo,
		historyRepo:  historyRepo,
		txManager:    txManager,
		generator:    sales.NewScheduleGenerator(),
		allocator:    partner.NewCapitalAllocator(),
		defaultRate:  defaultRate,
	}
}

// CreateSaleRequest represents a request to record a financed sale
type CreateSaleRequest struct {
	CustomerID      uuid.UUID        `json:"customer_id" binding:"required"`
	PhoneID         uuid.UUID        `json:"phone_id" binding:"required"`
	AnnouncedPrice  decimal.Decimal  `json:"announced_price" binding:"required"`
	DownPayment     decimal.Decimal  `json:"down_payment"`
	Months          int              `json:"months" binding:"required"`
	MonthlyRate     *decimal.Decimal `json:"monthly_rate"`
	CalculationType string           `json:"calculation_type"`
	SaleDate        *time.Time       `json:"sale_date"`
}

// PreviewScheduleRequest asks for a schedule without touching any state
type PreviewScheduleRequest struct {
	PurchasePrice   decimal.Decimal  `json:"purchase_price" binding:"required"`
	DownPayment     decimal.Decimal  `json:"down_payment"`
	Months          int              `json:"months" binding:"required"`
	MonthlyRate     *decimal.Decimal `json:"monthly_rate"`
	CalculationType string           `json:"calculation_type"`
	SaleDate        *time.Time       `json:"sale_date"`
}

// PayInstallmentRequest settles one installment
type PayInstallmentRequest struct {
	PaidAt *time.Time `json:"paid_at"`
}

// InstallmentResponse represents an installment in API responses
type InstallmentResponse struct {
	ID              uuid.UUID       `json:"id"`
	SaleID          uuid.UUID       `json:"sale_id"`
	Number          int             `json:"number"`
	PrincipalAmount decimal.Decimal `json:"principal_amount"`
	InterestAmount  decimal.Decimal `json:"interest_amount"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	RemainingDebt   decimal.Decimal `json:"remaining_debt"`
	DueDate         time.Time       `json:"due_date"`
	Status          string          `json:"status"`
	PaidDate        *time.Time      `json:"paid_date,omitempty"`
}

// SaleResponse represents a sale with its schedule in API responses
type SaleResponse struct {
	ID              uuid.UUID             `json:"id"`
	CustomerID      uuid.UUID             `json:"customer_id"`
	PhoneID         uuid.UUID             `json:"phone_id"`
	AnnouncedPrice  decimal.Decimal       `json:"announced_price"`
	PurchasePrice   decimal.Decimal       `json:"purchase_price"`
	DownPayment     decimal.Decimal       `json:"down_payment"`
	Months          int                   `json:"months"`
	MonthlyRate     decimal.Decimal       `json:"monthly_rate"`
	CalculationType string                `json:"calculation_type"`
	InitialProfit   decimal.Decimal       `json:"initial_profit"`
	TotalProfit     decimal.Decimal       `json:"total_profit"`
	SaleDate        time.Time             `json:"sale_date"`
	Status          string                `json:"status"`
	Installments    []InstallmentResponse `json:"installments,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
	Version         int                   `json:"version"`
}

// SchedulePreviewResponse is a generated schedule with its totals
type SchedulePreviewResponse struct {
	FinancedAmount decimal.Decimal       `json:"financed_amount"`
	TotalInterest  decimal.Decimal       `json:"total_interest"`
	Installments   []InstallmentResponse `json:"installments"`
}

func toInstallmentResponse(inst *sales.Installment) InstallmentResponse {
	return InstallmentResponse{
		ID:              inst.ID,
		SaleID:          inst.SaleID,
		Number:          inst.Number,
		PrincipalAmount: inst.PrincipalAmount.Amount(),
		InterestAmount:  inst.InterestAmount.Amount(),
		TotalAmount:     inst.TotalAmount.Amount(),
		RemainingDebt:   inst.RemainingDebt.Amount(),
		DueDate:         inst.DueDate,
		Status:          string(inst.Status),
		PaidDate:        inst.PaidDate,
	}
}

func toSaleResponse(s *sales.Sale) *SaleResponse {
	resp := &SaleResponse{
		ID:              s.ID,
		CustomerID:      s.CustomerID,
		PhoneID:         s.PhoneID,
		AnnouncedPrice:  s.AnnouncedPrice.Amount(),
		PurchasePrice:   s.PurchasePrice.Amount(),
		DownPayment:     s.DownPayment.Amount(),
		Months:          s.Months,
		MonthlyRate:     s.MonthlyRate,
		CalculationType: string(s.CalculationType),
		InitialProfit:   s.InitialProfit.Amount(),
		TotalProfit:     s.TotalProfit.Amount(),
		SaleDate:        s.SaleDate,
		Status:          string(s.Status),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
		Version:         s.Version,
	}
	resp.Installments = make([]InstallmentResponse, len(s.Installments))
	for i := range s.Installments {
		resp.Installments[i] = toInstallmentResponse(&s.Installments[i])
	}
	return resp
}

func (s *SaleService) resolveTerms(purchasePrice, downPayment decimal.Decimal, months int, rate *decimal.Decimal, calcType string, saleDate *time.Time) sales.ScheduleTerms {
	monthlyRate := s.defaultRate
	if rate != nil {
		monthlyRate = *rate
	}
	calculationType := sales.ProfitCalculationDeclining
	if calcType != "" {
		calculationType = sales.ProfitCalculationType(calcType)
	}
	date := time.Now()
	if saleDate != nil && !saleDate.IsZero() {
		date = *saleDate
	}
	return sales.ScheduleTerms{
		PurchasePrice:   valueobject.NewToman(purchasePrice),
		DownPayment:     valueobject.NewToman(downPayment),
		Months:          months,
		MonthlyRate:     monthlyRate,
		CalculationType: calculationType,
		SaleDate:        date,
	}
}

// PreviewSchedule generates a schedule without persisting anything
func (s *SaleService) PreviewSchedule(ctx context.Context, req PreviewScheduleRequest) (*SchedulePreviewResponse, error) {
	terms := s.resolveTerms(req.PurchasePrice, req.DownPayment, req.Months, req.MonthlyRate, req.CalculationType, req.SaleDate)

	drafts, err := s.generator.Generate(terms)
	if err != nil {
		return nil, err
	}

	resp := &SchedulePreviewResponse{
		FinancedAmount: terms.PurchasePrice.MustSubtract(terms.DownPayment).Amount(),
		TotalInterest:  sales.TotalInterest(drafts).Amount(),
		Installments:   make([]InstallmentResponse, len(drafts)),
	}
	for i, d := range drafts {
		resp.Installments[i] = InstallmentResponse{
			Number:          d.Number,
			PrincipalAmount: d.PrincipalAmount.Amount(),
			InterestAmount:  d.InterestAmount.Amount(),
			TotalAmount:     d.TotalAmount.Amount(),
			RemainingDebt:   d.RemainingDebt.Amount(),
			DueDate:         d.DueDate,
			Status:          string(sales.InstallmentStatusPending),
		}
	}
	return resp, nil
}

// CreateSale records a financed sale. Within one transaction it validates
// the phone is available, generates the schedule, reserves the financed
// amount from the partners' available capital by capital weight, credits
// their one-time margin profit at the same weights, flips the phone to
// sold and persists the sale with all installments. Any failure leaves
// every row untouched.
func (s *SaleService) CreateSale(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	var resp *SaleResponse
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
			return err
		}

		phone, err := s.phoneRepo.FindByIDForUpdate(ctx, req.PhoneID)
		if err != nil {
			return err
		}
		if !phone.IsAvailable() {
			return shared.NewDomainError("PHONE_NOT_AVAILABLE", "Phone is not available for sale")
		}

		terms := s.resolveTerms(req.AnnouncedPrice, req.DownPayment, req.Months, req.MonthlyRate, req.CalculationType, req.SaleDate)
		sale, err := sales.NewSale(req.CustomerID, req.PhoneID,
			valueobject.NewToman(req.AnnouncedPrice), valueobject.NewToman(phone.PurchasePrice), terms, s.generator)
		if err != nil {
			return err
		}

		partners, err := s.partnerRepo.FindAllActiveForUpdate(ctx)
		if err != nil {
			return err
		}

		// Partners fund the financed principal and earn the sale margin
		// in proportion to their contributed capital. The same weights
		// apply when installment payments return the principal, so each
		// partner gets back exactly what they put in.
		if s.allocator.TotalAvailable(partners).LessThan(sale.FinancedAmount().Amount()) {
			return shared.ErrInsufficientFunds
		}
		reservations, err := s.allocator.AllocateByCapital(partners, sale.FinancedAmount())
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]*partner.Partner, len(partners))
		for _, p := range partners {
			byID[p.ID] = p
		}
		for _, r := range reservations {
			if r.Amount.IsZero() {
				continue
			}
			if err := byID[r.PartnerID].ReserveCapital(r.Amount); err != nil {
				return err
			}
		}

		if sale.InitialProfit.IsPositive() {
			margins, err := s.allocator.AllocateByCapital(partners, sale.InitialProfit)
			if err != nil {
				return err
			}
			for _, m := range margins {
				if m.Amount.IsZero() {
					continue
				}
				if err := byID[m.PartnerID].AccrueInitialProfit(m.Amount); err != nil {
					return err
				}
			}
		}

		if err := phone.MarkSold(); err != nil {
			return err
		}
		sale.AddDomainEvent(sales.NewSaleCreated(sale))

		if err := s.saleRepo.Save(ctx, sale); err != nil {
			return err
		}
		if err := s.phoneRepo.Save(ctx, phone); err != nil {
			return err
		}
		if err := s.partnerRepo.SaveAll(ctx, partners); err != nil {
			return err
		}
		if err := s.snapshotAll(ctx, partners); err != nil {
			return err
		}

		resp = toSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetSaleByID gets a sale with its installments
func (s *SaleService) GetSaleByID(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// ListSales lists sales, optionally restricted to a customer or status
func (s *SaleService) ListSales(ctx context.Context, customerID *uuid.UUID, status string, filter shared.Filter) (*shared.Paginated[SaleResponse], error) {
	var (
		items []sales.Sale
		total int64
		err   error
	)
	switch {
	case customerID != nil:
		items, total, err = s.saleRepo.FindByCustomerID(ctx, *customerID, filter)
	case status != "":
		st := sales.SaleStatus(status)
		if !st.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Invalid sale status")
		}
		items, total, err = s.saleRepo.FindByStatus(ctx, st, filter)
	default:
		items, total, err = s.saleRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	resps := make([]SaleResponse, len(items))
	for i := range items {
		resps[i] = *toSaleResponse(&items[i])
	}
	page := shared.NewPaginated(resps, total, filter.Page, filter.PageSize)
	return &page, nil
}

// PayInstallment settles one installment. In the same transaction the paid
// principal flows back into the partners' available capital and the
// interest accrues to their monthly profit pools, split by the capital
// weights the reservation used. Paying the final installment completes
// the sale.
func (s *SaleService) PayInstallment(ctx context.Context, saleID, installmentID uuid.UUID, req PayInstallmentRequest) (*SaleResponse, error) {
	paidAt := time.Now()
	if req.PaidAt != nil && !req.PaidAt.IsZero() {
		paidAt = *req.PaidAt
	}

	var resp *SaleResponse
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		sale, err := s.saleRepo.FindByIDForUpdate(ctx, saleID)
		if err != nil {
			return err
		}

		inst, err := sale.PayInstallment(installmentID, paidAt)
		if err != nil {
			return err
		}
		sale.AddDomainEvent(sales.NewInstallmentPaid(sale, inst))
		if sale.Status == sales.SaleStatusCompleted {
			sale.AddDomainEvent(sales.NewSaleCompleted(sale))
		}

		partners, err := s.partnerRepo.FindAllActiveForUpdate(ctx)
		if err != nil {
			return err
		}
		if err := s.distributeInstallment(partners, inst); err != nil {
			return err
		}

		if err := s.saleRepo.Save(ctx, sale); err != nil {
			return err
		}
		if err := s.partnerRepo.SaveAll(ctx, partners); err != nil {
			return err
		}
		if err := s.snapshotAll(ctx, partners); err != nil {
			return err
		}

		resp = toSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// distributeInstallment returns the paid principal to the partners'
// capital and accrues the interest as monthly profit, both split by the
// same capital weights the reservation used
func (s *SaleService) distributeInstallment(partners []*partner.Partner, inst *sales.Installment) error {
	byID := make(map[uuid.UUID]*partner.Partner, len(partners))
	for _, p := range partners {
		byID[p.ID] = p
	}

	if inst.PrincipalAmount.IsPositive() {
		returns, err := s.allocator.AllocateByCapital(partners, inst.PrincipalAmount)
		if err != nil {
			return err
		}
		for _, r := range returns {
			if r.Amount.IsZero() {
				continue
			}
			if err := byID[r.PartnerID].ReleaseCapital(r.Amount); err != nil {
				return err
			}
		}
	}

	if inst.InterestAmount.IsPositive() {
		profits, err := s.allocator.AllocateByCapital(partners, inst.InterestAmount)
		if err != nil {
			return err
		}
		for _, p := range profits {
			if p.Amount.IsZero() {
				continue
			}
			if err := byID[p.PartnerID].AccrueMonthlyProfit(p.Amount); err != nil {
				return err
			}
		}
	}
	return nil
}

// MarkDefaulted records that the customer stopped paying. The phone stays
// sold; any unpaid principal remains reserved against the partners.
func (s *SaleService) MarkDefaulted(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	var resp *SaleResponse
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		sale, err := s.saleRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := sale.MarkDefaulted(); err != nil {
			return err
		}
		sale.AddDomainEvent(sales.NewSaleDefaulted(sale))
		if err := s.saleRepo.Save(ctx, sale); err != nil {
			return err
		}
		resp = toSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// DeleteSale removes a sale recorded in error. The phone reverts to
// available, the installments are removed with the sale, and the partners
// get their outstanding reservation back.
func (s *SaleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	return s.txManager.Do(ctx, func(ctx context.Context) error {
		sale, err := s.saleRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		phone, err := s.phoneRepo.FindByIDForUpdate(ctx, sale.PhoneID)
		if err != nil {
			return err
		}
		if err := phone.MarkAvailable(); err != nil {
			return err
		}

		outstanding := sale.OutstandingPrincipal()
		if outstanding.IsPositive() {
			partners, err := s.partnerRepo.FindAllActiveForUpdate(ctx)
			if err != nil {
				return err
			}
			returns, err := s.allocator.AllocateByCapital(partners, outstanding)
			if err != nil {
				return err
			}
			byID := make(map[uuid.UUID]*partner.Partner, len(partners))
			for _, p := range partners {
				byID[p.ID] = p
			}
			for _, r := range returns {
				if r.Amount.IsZero() {
					continue
				}
				if err := byID[r.PartnerID].ReleaseCapital(r.Amount); err != nil {
					return err
				}
			}
			if err := s.partnerRepo.SaveAll(ctx, partners); err != nil {
				return err
			}
			if err := s.snapshotAll(ctx, partners); err != nil {
				return err
			}
		}

		if err := s.phoneRepo.Save(ctx, phone); err != nil {
			return err
		}
		return s.saleRepo.Delete(ctx, id)
	})
}

// ListOverdueInstallments lists unpaid installments past due at the given
// instant. Flagging them overdue is left to MarkOverdueInstallments so an
// external scheduler controls when statuses change.
func (s *SaleService) ListOverdueInstallments(ctx context.Context, asOf time.Time, filter shared.Filter) (*shared.Paginated[InstallmentResponse], error) {
	insts, total, err := s.instRepo.FindDueBefore(ctx, asOf, filter)
	if err != nil {
		return nil, err
	}

	items := make([]InstallmentResponse, len(insts))
	for i := range insts {
		items[i] = toInstallmentResponse(&insts[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListInstallments lists one sale's schedule ordered by installment number
func (s *SaleService) ListInstallments(ctx context.Context, saleID uuid.UUID) ([]InstallmentResponse, error) {
	if _, err := s.saleRepo.FindByID(ctx, saleID); err != nil {
		return nil, err
	}

	insts, err := s.instRepo.FindBySaleID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	items := make([]InstallmentResponse, len(insts))
	for i := range insts {
		items[i] = toInstallmentResponse(&insts[i])
	}
	return items, nil
}

// ListAllInstallments pages through installments across every sale, nearest
// due date first. The optional status narrows to one installment status.
func (s *SaleService) ListAllInstallments(ctx context.Context, status string, filter shared.Filter) (*shared.Paginated[InstallmentResponse], error) {
	if status != "" {
		if !sales.InstallmentStatus(status).IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Invalid installment status")
		}
		if filter.Filters == nil {
			filter.Filters = make(map[string]any)
		}
		filter.Filters["status"] = status
	}
	filter.OrderBy = "due_date"
	filter.OrderDir = "asc"

	insts, total, err := s.instRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]InstallmentResponse, len(insts))
	for i := range insts {
		items[i] = toInstallmentResponse(&insts[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// MarkOverdueInstallments flags every unpaid installment past due at the
// given instant and returns how many were flagged
func (s *SaleService) MarkOverdueInstallments(ctx context.Context, asOf time.Time) (int64, error) {
	var marked int64
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		insts, _, err := s.instRepo.FindDueBefore(ctx, asOf, shared.Filter{Page: 1, PageSize: 10000})
		if err != nil {
			return err
		}
		ids := make([]uuid.UUID, 0, len(insts))
		for i := range insts {
			if insts[i].Status == sales.InstallmentStatusPending && insts[i].IsOverdue(asOf) {
				ids = append(ids, insts[i].ID)
			}
		}
		if len(ids) == 0 {
			return nil
		}
		marked, err = s.instRepo.MarkOverdue(ctx, ids)
		return err
	})
	return marked, err
}

func (s *SaleService) snapshotAll(ctx context.Context, partners []*partner.Partner) error {
	snapshots := make([]*partner.PartnerHistory, len(partners))
	for i, p := range partners {
		snapshots[i] = partner.SnapshotPartner(p, partner.HistoryActionUpdated)
	}
	return s.historyRepo.AppendAll(ctx, snapshots)
}
