package service

import (
	"context"
	"fmt"
	"time"

	"github.com/palpita/lottery-api/internal/cache"
	"github.com/palpita/lottery-api/internal/domain"
	"github.com/palpita/lottery-api/internal/repository"
)

var (
	ErrGameNotFound      = repository.ErrGameNotFound
	ErrGameHasDependents = repository.ErrGameHasDependents
)

type GameRepository interface {
	Create(ctx context.Context, game domain.Game) (domain.Game, error)
	FindByID(ctx context.Context, id uint, companyID *uint) (domain.Game, error)
	FindAll(ctx context.Context, companyID *uint) ([]domain.Game, error)
	Update(ctx context.Context, id uint, companyID *uint, patch domain.GamePatch) (domain.Game, error)
	Delete(ctx context.Context, id uint, companyID *uint) error
	UpsertExtractionSeries(ctx context.Context, es domain.ExtractionSeries) (domain.ExtractionSeries, error)
}

type GameService struct {
	repo    GameRepository
	auditor Auditor
	catalog *cache.Catalog
}

func NewGameService(repo GameRepository, auditor Auditor, catalog *cache.Catalog) *GameService {
	return &GameService{
		repo:    repo,
		auditor: auditor,
		catalog: catalog,
	}
}

func catalogKey(companyID *uint) string {
	if companyID == nil {
		return "games:catalog:all"
	}

	return fmt.Sprintf("games:catalog:%d", *companyID)
}

func (s *GameService) Create(ctx context.Context, game domain.Game) (domain.Game, error) {
	created, err := s.repo.Create(ctx, game)
	if err != nil {
		return domain.Game{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.catalog.Invalidate(ctx, catalogKey(&created.CompanyID))
	s.catalog.Invalidate(ctx, catalogKey(nil))

	return created, nil
}

// FindAll serves the game catalog, reading through the redis cache when one
// is configured. Cache misses and cache outages both fall back to the store.
func (s *GameService) FindAll(ctx context.Context, companyID *uint) ([]domain.Game, error) {
	key := catalogKey(companyID)

	var cached []domain.Game
	if s.catalog.Get(ctx, key, &cached) {
		return cached, nil
	}

	games, err := s.repo.FindAll(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	s.catalog.Set(ctx, key, games)

	return games, nil
}

func (s *GameService) FindByID(ctx context.Context, id uint, companyID *uint) (domain.Game, error) {
	game, err := s.repo.FindByID(ctx, id, companyID)
	if err != nil {
		return domain.Game{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return game, nil
}

func (s *GameService) Update(ctx context.Context, id uint, companyID *uint, patch domain.GamePatch) (domain.Game, error) {
	updated, err := s.repo.Update(ctx, id, companyID, patch)
	if err != nil {
		return domain.Game{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	s.catalog.Invalidate(ctx, catalogKey(&updated.CompanyID))
	s.catalog.Invalidate(ctx, catalogKey(nil))

	return updated, nil
}

// Delete resolves the game before removing it so the owning tenant's catalog
// entry is invalidated even when a platform admin deletes across tenants.
func (s *GameService) Delete(ctx context.Context, id uint, companyID *uint) error {
	game, err := s.repo.FindByID(ctx, id, companyID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = s.repo.Delete(ctx, id, companyID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	s.catalog.Invalidate(ctx, catalogKey(&game.CompanyID))
	s.catalog.Invalidate(ctx, catalogKey(nil))

	return nil
}

// UpsertExtractionSeries writes one scheduled-draw counter for the game.
// The game must exist inside the caller's tenant; the extraction row then
// carries its own (game, area, time) key rather than inheriting ownership
// through relation traversal.
func (s *GameService) UpsertExtractionSeries(ctx context.Context, companyID *uint, es domain.ExtractionSeries, adminID *uint) (domain.ExtractionSeries, error) {
	if _, err := s.repo.FindByID(ctx, es.GameID, companyID); err != nil {
		return domain.ExtractionSeries{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	upserted, err := s.repo.UpsertExtractionSeries(ctx, es)
	if err != nil {
		return domain.ExtractionSeries{}, fmt.Errorf("s.repo.UpsertExtractionSeries -> %w", err)
	}

	if adminID != nil {
		s.auditor.RecordChange(ctx, domain.AuditLog{
			AdminID:   *adminID,
			Action:    domain.AuditUpdate,
			Entity:    "extraction_series",
			EntityKey: extractionKey(upserted),
			NewValue:  marshalAudit(upserted),
		})
	}

	return upserted, nil
}

func extractionKey(es domain.ExtractionSeries) string {
	if es.AreaID == nil {
		return fmt.Sprintf("%d:-:%s", es.GameID, es.Time)
	}

	return fmt.Sprintf("%d:%d:%s", es.GameID, *es.AreaID, es.Time)
}

// ParseScheduleTime validates a schedule label such as "14:00".
func ParseScheduleTime(label string) error {
	_, err := time.Parse("15:04", label)
	if err != nil {
		return fmt.Errorf("invalid schedule time %q", label)
	}

	return nil
}
