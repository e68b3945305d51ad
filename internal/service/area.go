package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/palpita/lottery-api/internal/domain"
	"github.com/palpita/lottery-api/internal/repository"
)

var (
	ErrAreaNotFound       = repository.ErrAreaNotFound
	ErrAreaHasDependents  = repository.ErrAreaHasDependents
	ErrAreaConfigNotFound = repository.ErrAreaConfigNotFound
	ErrMalformedSeries    = domain.ErrMalformedSeries
)

type AreaRepository interface {
	Create(ctx context.Context, area domain.Area) (domain.Area, error)
	FindByID(ctx context.Context, id uint, companyID *uint) (domain.Area, error)
	FindAll(ctx context.Context, companyID *uint) ([]domain.Area, error)
	Update(ctx context.Context, id uint, companyID *uint, patch domain.AreaPatch) (domain.Area, error)
	Delete(ctx context.Context, id uint, companyID *uint) error
	CycleSeries(ctx context.Context, id uint, companyID *uint) (domain.Area, error)
	FindConfig(ctx context.Context, areaID, gameID uint) (domain.AreaConfig, error)
	UpsertConfig(ctx context.Context, conf domain.AreaConfig) (domain.AreaConfig, error)
	DeleteConfig(ctx context.Context, areaID, gameID uint) error
}

type Auditor interface {
	RecordChange(ctx context.Context, log domain.AuditLog)
}

type AreaService struct {
	repo    AreaRepository
	auditor Auditor
}

func NewAreaService(repo AreaRepository, auditor Auditor) *AreaService {
	return &AreaService{
		repo:    repo,
		auditor: auditor,
	}
}

// Create registers a sales area and initializes its series counter: the
// current series starts at the configured series number with zero tickets.
func (s *AreaService) Create(ctx context.Context, area domain.Area) (domain.Area, error) {
	if err := domain.ValidateSeries(area.SeriesNumber); err != nil {
		return domain.Area{}, err
	}

	area.CurrentSeries = area.SeriesNumber
	area.TicketsInSeries = 0

	created, err := s.repo.Create(ctx, area)
	if err != nil {
		return domain.Area{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AreaService) FindAll(ctx context.Context, companyID *uint) ([]domain.Area, error) {
	areas, err := s.repo.FindAll(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return areas, nil
}

func (s *AreaService) FindByID(ctx context.Context, id uint, companyID *uint) (domain.Area, error) {
	area, err := s.repo.FindByID(ctx, id, companyID)
	if err != nil {
		return domain.Area{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return area, nil
}

// Update applies an administrative patch. Supplying a series number
// reconfigures the counter: the current series becomes exactly that value
// (no re-padding) and the ticket count restarts at zero.
func (s *AreaService) Update(ctx context.Context, id uint, companyID *uint, patch domain.AreaPatch) (domain.Area, error) {
	if patch.SeriesNumber != nil {
		if err := domain.ValidateSeries(*patch.SeriesNumber); err != nil {
			return domain.Area{}, err
		}
	}

	updated, err := s.repo.Update(ctx, id, companyID, patch)
	if err != nil {
		return domain.Area{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *AreaService) Delete(ctx context.Context, id uint, companyID *uint) error {
	if err := s.repo.Delete(ctx, id, companyID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// CycleSeries advances the area to the next series label and zeroes the
// ticket count. The increment happens under a store-level row lock.
func (s *AreaService) CycleSeries(ctx context.Context, id uint, companyID *uint) (domain.Area, error) {
	area, err := s.repo.CycleSeries(ctx, id, companyID)
	if err != nil {
		return domain.Area{}, fmt.Errorf("s.repo.CycleSeries -> %w", err)
	}

	return area, nil
}

// UpsertConfig creates or updates the (area, game) commercial override and,
// when an acting admin is known, records a before/after audit entry. The
// action is CREATE or UPDATE depending on whether a prior row existed.
func (s *AreaService) UpsertConfig(ctx context.Context, conf domain.AreaConfig, adminID *uint) (domain.AreaConfig, error) {
	prior, err := s.repo.FindConfig(ctx, conf.AreaID, conf.GameID)
	hadPrior := err == nil
	if err != nil && !errors.Is(err, ErrAreaConfigNotFound) {
		return domain.AreaConfig{}, fmt.Errorf("s.repo.FindConfig -> %w", err)
	}

	upserted, err := s.repo.UpsertConfig(ctx, conf)
	if err != nil {
		return domain.AreaConfig{}, fmt.Errorf("s.repo.UpsertConfig -> %w", err)
	}

	if adminID != nil {
		action := domain.AuditCreate
		oldValue := ""
		if hadPrior {
			action = domain.AuditUpdate
			oldValue = marshalAudit(prior)
		}

		s.auditor.RecordChange(ctx, domain.AuditLog{
			AdminID:   *adminID,
			Action:    action,
			Entity:    "area_config",
			EntityKey: fmt.Sprintf("%d:%d", conf.AreaID, conf.GameID),
			OldValue:  oldValue,
			NewValue:  marshalAudit(upserted),
		})
	}

	return upserted, nil
}

func (s *AreaService) DeleteConfig(ctx context.Context, areaID, gameID uint, adminID *uint) error {
	prior, err := s.repo.FindConfig(ctx, areaID, gameID)
	if err != nil {
		if errors.Is(err, ErrAreaConfigNotFound) {
			return ErrAreaConfigNotFound
		}

		return fmt.Errorf("s.repo.FindConfig -> %w", err)
	}

	if err = s.repo.DeleteConfig(ctx, areaID, gameID); err != nil {
		return fmt.Errorf("s.repo.DeleteConfig -> %w", err)
	}

	if adminID != nil {
		s.auditor.RecordChange(ctx, domain.AuditLog{
			AdminID:   *adminID,
			Action:    domain.AuditDelete,
			Entity:    "area_config",
			EntityKey: fmt.Sprintf("%d:%d", areaID, gameID),
			OldValue:  marshalAudit(prior),
		})
	}

	return nil
}

func marshalAudit(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}

	return string(raw)
}
