package repository

import (
	"context"
	"fmt"

	"github.com/palpita/lottery-api/internal/domain"
	"github.com/palpita/lottery-api/internal/repository/dao"
)

var (
	ErrGameNotFound      = dao.ErrGameNotFound
	ErrGameHasDependents = dao.ErrGameHasDependents
)

type GameDAO interface {
	Insert(ctx context.Context, game dao.Game) (dao.Game, error)
	FindByID(ctx context.Context, id uint, companyID *uint) (dao.Game, error)
	FindAll(ctx context.Context, companyID *uint) ([]dao.Game, error)
	UpdateFields(ctx context.Context, id uint, companyID *uint, fields map[string]any) (dao.Game, error)
	Delete(ctx context.Context, id uint, companyID *uint) error
	UpsertExtractionSeries(ctx context.Context, es dao.ExtractionSeries) (dao.ExtractionSeries, error)
}

type GameRepository struct {
	dao GameDAO
}

func NewGameRepository(dao GameDAO) *GameRepository {
	return &GameRepository{
		dao: dao,
	}
}

func (r *GameRepository) domainToDao(g domain.Game) dao.Game {
	return dao.Game{
		ID:                  g.ID,
		Name:                g.Name,
		CompanyID:           g.CompanyID,
		MaxTicketsPerSeries: g.MaxTicketsPerSeries,
		TicketPriceCents:    g.TicketPriceCents,
		Active:              g.Active,
		CreatedAt:           g.CreatedAt,
		UpdatedAt:           g.UpdatedAt,
	}
}

func (r *GameRepository) daoToDomain(g dao.Game) domain.Game {
	game := domain.Game{
		ID:                  g.ID,
		Name:                g.Name,
		CompanyID:           g.CompanyID,
		MaxTicketsPerSeries: g.MaxTicketsPerSeries,
		TicketPriceCents:    g.TicketPriceCents,
		Active:              g.Active,
		CreatedAt:           g.CreatedAt,
		UpdatedAt:           g.UpdatedAt,
	}

	for _, es := range g.ExtractionSeries {
		game.ExtractionSeries = append(game.ExtractionSeries, r.extractionDaoToDomain(es))
	}

	return game
}

func (r *GameRepository) extractionDaoToDomain(es dao.ExtractionSeries) domain.ExtractionSeries {
	return domain.ExtractionSeries{
		ID:         es.ID,
		GameID:     es.GameID,
		AreaID:     es.AreaID,
		Time:       es.Time,
		LastSeries: es.LastSeries,
		CreatedAt:  es.CreatedAt,
		UpdatedAt:  es.UpdatedAt,
	}
}

func (r *GameRepository) Create(ctx context.Context, game domain.Game) (domain.Game, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(game))
	if err != nil {
		return domain.Game{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *GameRepository) FindByID(ctx context.Context, id uint, companyID *uint) (domain.Game, error) {
	game, err := r.dao.FindByID(ctx, id, companyID)
	if err != nil {
		return domain.Game{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(game), nil
}

func (r *GameRepository) FindAll(ctx context.Context, companyID *uint) ([]domain.Game, error) {
	games, err := r.dao.FindAll(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	result := make([]domain.Game, len(games))
	for i, g := range games {
		result[i] = r.daoToDomain(g)
	}

	return result, nil
}

func (r *GameRepository) Update(ctx context.Context, id uint, companyID *uint, patch domain.GamePatch) (domain.Game, error) {
	fields := map[string]any{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.MaxTicketsPerSeries != nil {
		fields["max_tickets_per_series"] = *patch.MaxTicketsPerSeries
	}
	if patch.TicketPriceCents != nil {
		fields["ticket_price_cents"] = *patch.TicketPriceCents
	}
	if patch.Active != nil {
		fields["active"] = *patch.Active
	}

	if len(fields) == 0 {
		return r.FindByID(ctx, id, companyID)
	}

	updated, err := r.dao.UpdateFields(ctx, id, companyID, fields)
	if err != nil {
		return domain.Game{}, fmt.Errorf("r.dao.UpdateFields -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *GameRepository) Delete(ctx context.Context, id uint, companyID *uint) error {
	if err := r.dao.Delete(ctx, id, companyID); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *GameRepository) UpsertExtractionSeries(ctx context.Context, es domain.ExtractionSeries) (domain.ExtractionSeries, error) {
	upserted, err := r.dao.UpsertExtractionSeries(ctx, dao.ExtractionSeries{
		GameID:     es.GameID,
		AreaID:     es.AreaID,
		Time:       es.Time,
		LastSeries: es.LastSeries,
	})
	if err != nil {
		return domain.ExtractionSeries{}, fmt.Errorf("r.dao.UpsertExtractionSeries -> %w", err)
	}

	return r.extractionDaoToDomain(upserted), nil
}
