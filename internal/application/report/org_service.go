package report

import (
	"context"

	"github.com/retailboard/backend/internal/domain/org"
	"go.uber.org/zap"
)

// OrgService manages the manager→stores hierarchy.
type OrgService struct {
	repo        org.Repository
	invalidator SnapshotInvalidator
	logger      *zap.Logger
}

// NewOrgService creates a new OrgService.
func NewOrgService(repo org.Repository, invalidator SnapshotInvalidator, logger *zap.Logger) *OrgService {
	return &OrgService{repo: repo, invalidator: invalidator, logger: logger}
}

// Hierarchy returns the full region layout in stable manager order, with
// the unassigned bucket last.
func (s *OrgService) Hierarchy(ctx context.Context) ([]RegionResponse, error) {
	h, err := s.repo.GetHierarchy(ctx)
	if err != nil {
		return nil, err
	}

	managers := h.Managers()
	regions := make([]RegionResponse, len(managers))
	for i, manager := range managers {
		regions[i] = RegionResponse{Manager: manager, Stores: h.Stores(manager)}
	}
	return regions, nil
}

// SaveRegion replaces one manager's store list.
func (s *OrgService) SaveRegion(ctx context.Context, req SaveRegionRequest) error {
	if err := s.repo.SaveRegion(ctx, req.Manager, req.Stores); err != nil {
		return err
	}
	s.logger.Info("Region saved",
		zap.String("manager", req.Manager),
		zap.Int("stores", len(req.Stores)),
	)
	s.invalidateAll(ctx)
	return nil
}

// MoveStore reassigns a store to another manager. The domain validates
// that the destination exists and the store is known before any write.
func (s *OrgService) MoveStore(ctx context.Context, req MoveStoreRequest) error {
	h, err := s.repo.GetHierarchy(ctx)
	if err != nil {
		return err
	}
	if _, err := h.Move(req.ShortName, req.ToManager); err != nil {
		return err
	}

	if err := s.repo.MoveStore(ctx, req.ShortName, req.ToManager); err != nil {
		return err
	}
	s.logger.Info("Store moved",
		zap.String("store", req.ShortName),
		zap.String("to", req.ToManager),
	)
	s.invalidateAll(ctx)
	return nil
}

// invalidateAll drops every cached snapshot: a hierarchy change reshapes
// the regional rollup of every period.
func (s *OrgService) invalidateAll(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	s.invalidator.InvalidateAll(ctx)
}
