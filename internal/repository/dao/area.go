package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/palpita/lottery-api/internal/domain"
)

var (
	// ErrAreaNotFound covers both a missing row and a row outside the
	// caller's company. Collapsing the two keeps tenant existence from
	// leaking through error responses.
	ErrAreaNotFound       = errors.New("area not found")
	ErrAreaHasDependents  = errors.New("area has dependent records")
	ErrAreaConfigNotFound = errors.New("area config not found")
)

type Area struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	City      string
	State     string
	CompanyID uint `gorm:"not null;index"`

	SeriesNumber    string `gorm:"not null"`
	CurrentSeries   string `gorm:"not null"`
	TicketsInSeries int    `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type AreaConfig struct {
	ID     uint `gorm:"primaryKey"`
	AreaID uint `gorm:"not null;uniqueIndex:idx_area_configs_area_game"`
	Area   Area `gorm:"foreignKey:AreaID;constraint:OnDelete:RESTRICT"`
	GameID uint `gorm:"not null;uniqueIndex:idx_area_configs_area_game"`
	Game   Game `gorm:"foreignKey:GameID;constraint:OnDelete:RESTRICT"`

	CommissionRate  *float64
	PrizeMultiplier *float64
	MaxLiability    *int64
	// ExtractionTimes is a JSON-encoded list of schedule labels.
	ExtractionTimes string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (AreaConfig) TableName() string {
	return "area_configs"
}

type AreaDAO struct {
	db *gorm.DB
}

func NewAreaDAO(db *gorm.DB) *AreaDAO {
	return &AreaDAO{
		db: db,
	}
}

// scoped narrows a query to one company; a nil companyID means the caller is
// a platform admin and sees every tenant.
func scoped(tx *gorm.DB, companyID *uint) *gorm.DB {
	if companyID != nil {
		return tx.Where("company_id = ?", *companyID)
	}

	return tx
}

func (d *AreaDAO) Insert(ctx context.Context, area Area) (Area, error) {
	result := d.db.WithContext(ctx).Create(&area)
	if result.Error != nil {
		return Area{}, result.Error
	}

	return area, nil
}

func (d *AreaDAO) FindByID(ctx context.Context, id uint, companyID *uint) (Area, error) {
	var area Area

	result := scoped(d.db.WithContext(ctx), companyID).First(&area, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Area{}, ErrAreaNotFound
		}

		return Area{}, result.Error
	}

	return area, nil
}

func (d *AreaDAO) FindAll(ctx context.Context, companyID *uint) ([]Area, error) {
	var areas []Area

	result := scoped(d.db.WithContext(ctx), companyID).Order("id").Find(&areas)
	if result.Error != nil {
		return nil, result.Error
	}

	return areas, nil
}

// UpdateFields applies the given column updates to one area. When the patch
// reconfigures the series, the caller includes current_series and a zeroed
// tickets_in_series so the whole reset is a single UPDATE.
func (d *AreaDAO) UpdateFields(ctx context.Context, id uint, companyID *uint, fields map[string]any) (Area, error) {
	result := scoped(d.db.WithContext(ctx).Model(&Area{}).Where("id = ?", id), companyID).
		Updates(fields)
	if result.Error != nil {
		return Area{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Area{}, ErrAreaNotFound
	}

	return d.FindByID(ctx, id, companyID)
}

func (d *AreaDAO) Delete(ctx context.Context, id uint, companyID *uint) error {
	result := scoped(d.db.WithContext(ctx).Where("id = ?", id), companyID).Delete(&Area{})
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrAreaHasDependents
		}

		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAreaNotFound
	}

	return nil
}

// CycleSeries advances the area to the next series and zeroes the ticket
// count. The read-modify-write runs inside one transaction holding a row
// lock, so concurrent cycles for the same area serialize instead of both
// writing the same "next" value.
func (d *AreaDAO) CycleSeries(ctx context.Context, id uint, companyID *uint) (Area, error) {
	var area Area

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := scoped(tx.Clauses(clause.Locking{Strength: "UPDATE"}), companyID).
			First(&area, id)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrAreaNotFound
			}

			return result.Error
		}

		next, err := domain.NextSeries(area.CurrentSeries)
		if err != nil {
			return fmt.Errorf("domain.NextSeries -> %w", err)
		}

		area.CurrentSeries = next
		area.TicketsInSeries = 0

		return tx.Model(&Area{}).Where("id = ?", area.ID).
			Updates(map[string]any{
				"current_series":    area.CurrentSeries,
				"tickets_in_series": area.TicketsInSeries,
			}).Error
	})
	if err != nil {
		return Area{}, err
	}

	return area, nil
}

func (d *AreaDAO) FindConfig(ctx context.Context, areaID, gameID uint) (AreaConfig, error) {
	var conf AreaConfig

	result := d.db.WithContext(ctx).
		Where("area_id = ? AND game_id = ?", areaID, gameID).
		First(&conf)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return AreaConfig{}, ErrAreaConfigNotFound
		}

		return AreaConfig{}, result.Error
	}

	return conf, nil
}

// UpsertConfig creates or updates the single row for (areaID, gameID).
func (d *AreaDAO) UpsertConfig(ctx context.Context, conf AreaConfig) (AreaConfig, error) {
	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "area_id"}, {Name: "game_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"commission_rate", "prize_multiplier", "max_liability", "extraction_times", "updated_at",
		}),
	}).Create(&conf)
	if result.Error != nil {
		return AreaConfig{}, result.Error
	}

	return d.FindConfig(ctx, conf.AreaID, conf.GameID)
}

func (d *AreaDAO) DeleteConfig(ctx context.Context, areaID, gameID uint) error {
	result := d.db.WithContext(ctx).
		Where("area_id = ? AND game_id = ?", areaID, gameID).
		Delete(&AreaConfig{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAreaConfigNotFound
	}

	return nil
}
