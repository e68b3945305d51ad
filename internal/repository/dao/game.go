package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrGameHasDependents = errors.New("game has dependent records")
)

type Game struct {
	ID                  uint   `gorm:"primaryKey"`
	Name                string `gorm:"not null"`
	CompanyID           uint   `gorm:"not null;index"`
	MaxTicketsPerSeries int    `gorm:"not null"`
	TicketPriceCents    int64  `gorm:"not null"`
	Active              bool   `gorm:"not null;default:true"`

	ExtractionSeries []ExtractionSeries `gorm:"foreignKey:GameID;constraint:OnDelete:RESTRICT"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ExtractionSeries holds the last drawn series per (game, area, time label).
// AreaID NULL means company-wide. Postgres treats NULLs as distinct inside a
// unique index, so company-wide rows go through a lookup-first upsert.
type ExtractionSeries struct {
	ID         uint   `gorm:"primaryKey"`
	GameID     uint   `gorm:"not null;uniqueIndex:idx_extraction_series_key"`
	AreaID     *uint  `gorm:"uniqueIndex:idx_extraction_series_key"`
	Area       *Area  `gorm:"foreignKey:AreaID;constraint:OnDelete:RESTRICT"`
	Time       string `gorm:"not null;uniqueIndex:idx_extraction_series_key"`
	LastSeries int    `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ExtractionSeries) TableName() string {
	return "extraction_series"
}

type GameDAO struct {
	db *gorm.DB
}

func NewGameDAO(db *gorm.DB) *GameDAO {
	return &GameDAO{
		db: db,
	}
}

func (d *GameDAO) Insert(ctx context.Context, game Game) (Game, error) {
	result := d.db.WithContext(ctx).Create(&game)
	if result.Error != nil {
		return Game{}, result.Error
	}

	return game, nil
}

func (d *GameDAO) FindByID(ctx context.Context, id uint, companyID *uint) (Game, error) {
	var game Game

	result := scoped(d.db.WithContext(ctx), companyID).
		Preload("ExtractionSeries").
		First(&game, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Game{}, ErrGameNotFound
		}

		return Game{}, result.Error
	}

	return game, nil
}

func (d *GameDAO) FindAll(ctx context.Context, companyID *uint) ([]Game, error) {
	var games []Game

	result := scoped(d.db.WithContext(ctx), companyID).
		Preload("ExtractionSeries").
		Order("id").
		Find(&games)
	if result.Error != nil {
		return nil, result.Error
	}

	return games, nil
}

func (d *GameDAO) UpdateFields(ctx context.Context, id uint, companyID *uint, fields map[string]any) (Game, error) {
	result := scoped(d.db.WithContext(ctx).Model(&Game{}).Where("id = ?", id), companyID).
		Updates(fields)
	if result.Error != nil {
		return Game{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Game{}, ErrGameNotFound
	}

	return d.FindByID(ctx, id, companyID)
}

func (d *GameDAO) Delete(ctx context.Context, id uint, companyID *uint) error {
	result := scoped(d.db.WithContext(ctx).Where("id = ?", id), companyID).Delete(&Game{})
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrGameHasDependents
		}

		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGameNotFound
	}

	return nil
}

// UpsertExtractionSeries writes one schedule counter keyed on
// (game_id, area_id, time).
func (d *GameDAO) UpsertExtractionSeries(ctx context.Context, es ExtractionSeries) (ExtractionSeries, error) {
	if es.AreaID == nil {
		return d.upsertCompanyWideExtraction(ctx, es)
	}

	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_id"}, {Name: "area_id"}, {Name: "time"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_series", "updated_at"}),
	}).Create(&es)
	if result.Error != nil {
		return ExtractionSeries{}, result.Error
	}

	return d.findExtraction(ctx, es)
}

// upsertCompanyWideExtraction handles the NULL area key, which ON CONFLICT
// cannot match against the composite unique index.
func (d *GameDAO) upsertCompanyWideExtraction(ctx context.Context, es ExtractionSeries) (ExtractionSeries, error) {
	return es, d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing ExtractionSeries

		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("game_id = ? AND area_id IS NULL AND time = ?", es.GameID, es.Time).
			First(&existing)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return tx.Create(&es).Error
			}

			return result.Error
		}

		es.ID = existing.ID
		es.CreatedAt = existing.CreatedAt

		return tx.Model(&ExtractionSeries{}).Where("id = ?", existing.ID).
			Update("last_series", es.LastSeries).Error
	})
}

func (d *GameDAO) findExtraction(ctx context.Context, es ExtractionSeries) (ExtractionSeries, error) {
	var found ExtractionSeries

	query := d.db.WithContext(ctx).Where("game_id = ? AND time = ?", es.GameID, es.Time)
	if es.AreaID == nil {
		query = query.Where("area_id IS NULL")
	} else {
		query = query.Where("area_id = ?", *es.AreaID)
	}

	result := query.First(&found)
	if result.Error != nil {
		return ExtractionSeries{}, result.Error
	}

	return found, nil
}
