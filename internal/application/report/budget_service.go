package report

import (
	"context"

	"github.com/retailboard/backend/internal/domain/budget"
	"github.com/retailboard/backend/internal/domain/shared"
	"github.com/retailboard/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// BudgetService manages monthly store targets.
type BudgetService struct {
	repo        budget.Repository
	invalidator SnapshotInvalidator
	logger      *zap.Logger
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(repo budget.Repository, invalidator SnapshotInvalidator, logger *zap.Logger) *BudgetService {
	return &BudgetService{repo: repo, invalidator: invalidator, logger: logger}
}

// Set creates or replaces one store's goals for a month. Later writes for
// the same store and period win.
func (s *BudgetService) Set(ctx context.Context, req SetBudgetTargetRequest) (*BudgetTargetResponse, error) {
	target := &budget.Target{
		BaseEntity:    shared.NewBaseEntity(),
		StoreName:     req.StoreName,
		Year:          req.Year,
		Month:         req.Month,
		CashTarget:    valueobject.AmountFromAny(req.CashTarget),
		AccrualTarget: valueobject.AmountFromAny(req.AccrualTarget),
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, target); err != nil {
		return nil, err
	}

	s.logger.Info("Budget target set",
		zap.String("store", target.StoreName),
		zap.Int("year", target.Year),
		zap.Int("month", target.Month),
	)
	s.invalidateYear(ctx, target.Year)
	return ToBudgetTargetResponse(target), nil
}

// SetBatch applies many targets in one call, typical for yearly planning
// uploads. All targets are validated before any write happens.
func (s *BudgetService) SetBatch(ctx context.Context, reqs []SetBudgetTargetRequest) ([]BudgetTargetResponse, error) {
	targets := make([]budget.Target, len(reqs))
	for i, req := range reqs {
		targets[i] = budget.Target{
			BaseEntity:    shared.NewBaseEntity(),
			StoreName:     req.StoreName,
			Year:          req.Year,
			Month:         req.Month,
			CashTarget:    valueobject.AmountFromAny(req.CashTarget),
			AccrualTarget: valueobject.AmountFromAny(req.AccrualTarget),
		}
		if err := targets[i].Validate(); err != nil {
			return nil, err
		}
	}

	years := map[int]struct{}{}
	responses := make([]BudgetTargetResponse, len(targets))
	for i := range targets {
		if err := s.repo.Upsert(ctx, &targets[i]); err != nil {
			return nil, err
		}
		years[targets[i].Year] = struct{}{}
		responses[i] = *ToBudgetTargetResponse(&targets[i])
	}

	for year := range years {
		s.invalidateYear(ctx, year)
	}
	return responses, nil
}

// ListByPeriod returns every store's target for one month.
func (s *BudgetService) ListByPeriod(ctx context.Context, year, month int) ([]BudgetTargetResponse, error) {
	targets, err := s.repo.FindByPeriod(ctx, year, month)
	if err != nil {
		return nil, err
	}

	responses := make([]BudgetTargetResponse, len(targets))
	for i := range targets {
		responses[i] = *ToBudgetTargetResponse(&targets[i])
	}
	return responses, nil
}

// ListByYear returns every target of one year.
func (s *BudgetService) ListByYear(ctx context.Context, year int) ([]BudgetTargetResponse, error) {
	targets, err := s.repo.FindByYear(ctx, year)
	if err != nil {
		return nil, err
	}

	responses := make([]BudgetTargetResponse, len(targets))
	for i := range targets {
		responses[i] = *ToBudgetTargetResponse(&targets[i])
	}
	return responses, nil
}

func (s *BudgetService) invalidateYear(ctx context.Context, year int) {
	if s.invalidator == nil {
		return
	}
	for month := 1; month <= 12; month++ {
		s.invalidator.InvalidatePeriod(ctx, year, month)
	}
}
