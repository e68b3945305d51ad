package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/palpita/lottery-api/internal/domain"
	"github.com/palpita/lottery-api/internal/repository/dao"
)

var (
	ErrAreaNotFound       = dao.ErrAreaNotFound
	ErrAreaHasDependents  = dao.ErrAreaHasDependents
	ErrAreaConfigNotFound = dao.ErrAreaConfigNotFound
)

type AreaDAO interface {
	Insert(ctx context.Context, area dao.Area) (dao.Area, error)
	FindByID(ctx context.Context, id uint, companyID *uint) (dao.Area, error)
	FindAll(ctx context.Context, companyID *uint) ([]dao.Area, error)
	UpdateFields(ctx context.Context, id uint, companyID *uint, fields map[string]any) (dao.Area, error)
	Delete(ctx context.Context, id uint, companyID *uint) error
	CycleSeries(ctx context.Context, id uint, companyID *uint) (dao.Area, error)
	FindConfig(ctx context.Context, areaID, gameID uint) (dao.AreaConfig, error)
	UpsertConfig(ctx context.Context, conf dao.AreaConfig) (dao.AreaConfig, error)
	DeleteConfig(ctx context.Context, areaID, gameID uint) error
}

type AreaRepository struct {
	dao AreaDAO
}

func NewAreaRepository(dao AreaDAO) *AreaRepository {
	return &AreaRepository{
		dao: dao,
	}
}

func (r *AreaRepository) domainToDao(a domain.Area) dao.Area {
	return dao.Area{
		ID:              a.ID,
		Name:            a.Name,
		City:            a.City,
		State:           a.State,
		CompanyID:       a.CompanyID,
		SeriesNumber:    a.SeriesNumber,
		CurrentSeries:   a.CurrentSeries,
		TicketsInSeries: a.TicketsInSeries,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func (r *AreaRepository) daoToDomain(a dao.Area) domain.Area {
	return domain.Area{
		ID:              a.ID,
		Name:            a.Name,
		City:            a.City,
		State:           a.State,
		CompanyID:       a.CompanyID,
		SeriesNumber:    a.SeriesNumber,
		CurrentSeries:   a.CurrentSeries,
		TicketsInSeries: a.TicketsInSeries,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func (r *AreaRepository) configDomainToDao(c domain.AreaConfig) (dao.AreaConfig, error) {
	times, err := json.Marshal(c.ExtractionTimes)
	if err != nil {
		return dao.AreaConfig{}, fmt.Errorf("json.Marshal -> %w", err)
	}

	return dao.AreaConfig{
		AreaID:          c.AreaID,
		GameID:          c.GameID,
		CommissionRate:  c.CommissionRate,
		PrizeMultiplier: c.PrizeMultiplier,
		MaxLiability:    c.MaxLiability,
		ExtractionTimes: string(times),
	}, nil
}

func (r *AreaRepository) configDaoToDomain(c dao.AreaConfig) domain.AreaConfig {
	var times []string
	if c.ExtractionTimes != "" {
		// Corrupt rows fall back to an empty schedule rather than failing
		// the read.
		_ = json.Unmarshal([]byte(c.ExtractionTimes), &times)
	}

	return domain.AreaConfig{
		AreaID:          c.AreaID,
		GameID:          c.GameID,
		CommissionRate:  c.CommissionRate,
		PrizeMultiplier: c.PrizeMultiplier,
		MaxLiability:    c.MaxLiability,
		ExtractionTimes: times,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func (r *AreaRepository) Create(ctx context.Context, area domain.Area) (domain.Area, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(area))
	if err != nil {
		return domain.Area{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *AreaRepository) FindByID(ctx context.Context, id uint, companyID *uint) (domain.Area, error) {
	area, err := r.dao.FindByID(ctx, id, companyID)
	if err != nil {
		return domain.Area{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(area), nil
}

func (r *AreaRepository) FindAll(ctx context.Context, companyID *uint) ([]domain.Area, error) {
	areas, err := r.dao.FindAll(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	result := make([]domain.Area, len(areas))
	for i, a := range areas {
		result[i] = r.daoToDomain(a)
	}

	return result, nil
}

// Update applies an administrative patch. A series reconfiguration resets
// current_series to the new value and zeroes tickets_in_series in the same
// UPDATE; tickets already sold under the old series keep their numbers.
func (r *AreaRepository) Update(ctx context.Context, id uint, companyID *uint, patch domain.AreaPatch) (domain.Area, error) {
	fields := map[string]any{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.City != nil {
		fields["city"] = *patch.City
	}
	if patch.State != nil {
		fields["state"] = *patch.State
	}
	if patch.SeriesNumber != nil {
		fields["series_number"] = *patch.SeriesNumber
		fields["current_series"] = *patch.SeriesNumber
		fields["tickets_in_series"] = 0
	}

	if len(fields) == 0 {
		area, err := r.dao.FindByID(ctx, id, companyID)
		if err != nil {
			return domain.Area{}, fmt.Errorf("r.dao.FindByID -> %w", err)
		}

		return r.daoToDomain(area), nil
	}

	updated, err := r.dao.UpdateFields(ctx, id, companyID, fields)
	if err != nil {
		return domain.Area{}, fmt.Errorf("r.dao.UpdateFields -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *AreaRepository) Delete(ctx context.Context, id uint, companyID *uint) error {
	if err := r.dao.Delete(ctx, id, companyID); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *AreaRepository) CycleSeries(ctx context.Context, id uint, companyID *uint) (domain.Area, error) {
	area, err := r.dao.CycleSeries(ctx, id, companyID)
	if err != nil {
		return domain.Area{}, fmt.Errorf("r.dao.CycleSeries -> %w", err)
	}

	return r.daoToDomain(area), nil
}

func (r *AreaRepository) FindConfig(ctx context.Context, areaID, gameID uint) (domain.AreaConfig, error) {
	conf, err := r.dao.FindConfig(ctx, areaID, gameID)
	if err != nil {
		return domain.AreaConfig{}, fmt.Errorf("r.dao.FindConfig -> %w", err)
	}

	return r.configDaoToDomain(conf), nil
}

func (r *AreaRepository) UpsertConfig(ctx context.Context, conf domain.AreaConfig) (domain.AreaConfig, error) {
	confDAO, err := r.configDomainToDao(conf)
	if err != nil {
		return domain.AreaConfig{}, err
	}

	upserted, err := r.dao.UpsertConfig(ctx, confDAO)
	if err != nil {
		return domain.AreaConfig{}, fmt.Errorf("r.dao.UpsertConfig -> %w", err)
	}

	return r.configDaoToDomain(upserted), nil
}

func (r *AreaRepository) DeleteConfig(ctx context.Context, areaID, gameID uint) error {
	if err := r.dao.DeleteConfig(ctx, areaID, gameID); err != nil {
		return fmt.Errorf("r.dao.DeleteConfig -> %w", err)
	}

	return nil
}
